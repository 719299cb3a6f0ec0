// Package guesser picks form field types from model schemas so admins do not
// have to spell out a type for every property.
package guesser

import (
	"github.com/goliatone/go-formmapper/pkg/fields"
	"github.com/goliatone/go-formmapper/pkg/form"
	"github.com/goliatone/go-formmapper/pkg/schema"
)

// Guess is a guessed field configuration. Options carry schema-derived
// defaults; mappers merge them below caller-supplied options.
type Guess struct {
	Type     string
	Options  fields.Options
	Required bool
}

// Guesser guesses a field configuration for a class property.
type Guesser interface {
	Guess(class, property string) (Guess, bool)
}

// GuesserFunc adapts a function to the Guesser interface.
type GuesserFunc func(class, property string) (Guess, bool)

// Guess calls fn.
func (fn GuesserFunc) Guess(class, property string) (Guess, bool) {
	return fn(class, property)
}

// SchemaGuesser derives guesses from an OpenAPI-backed catalog.
type SchemaGuesser struct {
	catalog *schema.Catalog
}

// NewSchema builds a guesser over the given catalog.
func NewSchema(catalog *schema.Catalog) *SchemaGuesser {
	return &SchemaGuesser{catalog: catalog}
}

// Guess maps the property's schema onto a form field type. Unknown classes
// and properties report false so callers fall through to their own default.
func (g *SchemaGuesser) Guess(class, property string) (Guess, bool) {
	if g == nil || g.catalog == nil {
		return Guess{}, false
	}
	prop, ok := g.catalog.Property(class, property)
	if !ok {
		return Guess{}, false
	}

	guess := Guess{
		Type:     fieldType(prop),
		Options:  fields.Options{},
		Required: prop.Required && !prop.Nullable,
	}
	guess.Options[fields.OptionRequired] = guess.Required

	if len(prop.Enum) > 0 {
		guess.Options[fields.OptionChoices] = append([]any(nil), prop.Enum...)
	}
	if prop.MaxLength != nil {
		guess.Options[fields.OptionMaxLength] = *prop.MaxLength
	}
	if prop.ReadOnly {
		guess.Options[fields.OptionDisabled] = true
	}
	if prop.Type == "array" {
		guess.Options[fields.OptionEntryType] = entryType(prop.Items)
	}
	if prop.Description != "" {
		guess.Options[fields.OptionHelp] = prop.Description
	}
	return guess, true
}

func fieldType(prop schema.Property) string {
	if len(prop.Enum) > 0 {
		return form.TypeChoice
	}

	switch prop.Type {
	case "boolean":
		return form.TypeCheckbox
	case "integer":
		return form.TypeInteger
	case "number":
		return form.TypeNumber
	case "array":
		return form.TypeNativeCollection
	case "object":
		return form.TypeModel
	case "string", "":
		return stringType(prop)
	default:
		return form.TypeText
	}
}

func stringType(prop schema.Property) string {
	switch prop.Format {
	case "email":
		return form.TypeEmail
	case "date-time":
		return form.TypeDatetime
	case "date":
		return form.TypeDate
	case "time":
		return form.TypeTime
	case "uri", "url":
		return form.TypeURL
	case "password":
		return form.TypePassword
	}
	if prop.WriteOnly {
		return form.TypePassword
	}
	if prop.MaxLength != nil && *prop.MaxLength > 255 {
		return form.TypeTextarea
	}
	if prop.MaxLength == nil && prop.MinLength > 255 {
		return form.TypeTextarea
	}
	return form.TypeText
}

func entryType(items *schema.Property) string {
	if items == nil {
		return form.TypeText
	}
	return fieldType(*items)
}
