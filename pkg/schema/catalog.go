// Package schema loads model schemas from OpenAPI documents and exposes them
// as a catalog of classes with typed properties. The guesser consults the
// catalog to pick form field types; nothing here depends on the mapper
// packages.
package schema

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Property describes one property of a class schema.
type Property struct {
	Name        string
	Type        string
	Format      string
	Title       string
	Description string
	Required    bool
	Nullable    bool
	ReadOnly    bool
	WriteOnly   bool
	Pattern     string
	Enum        []any
	Default     any
	MinLength   int
	MaxLength   *int
	Items       *Property
}

// Class is one named object schema with its properties in sorted order.
type Class struct {
	Name        string
	Title       string
	Description string

	properties map[string]Property
	order      []string
}

// Property returns the named property.
func (c *Class) Property(name string) (Property, bool) {
	p, ok := c.properties[name]
	return p, ok
}

// PropertyNames lists the class properties in sorted order.
func (c *Class) PropertyNames() []string {
	return append([]string(nil), c.order...)
}

// Properties returns the class properties in sorted order.
func (c *Class) Properties() []Property {
	out := make([]Property, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.properties[name])
	}
	return out
}

// Catalog holds every class schema extracted from a document.
type Catalog struct {
	classes map[string]*Class
	order   []string
}

// Class returns the named class schema.
func (c *Catalog) Class(name string) (*Class, bool) {
	if c == nil {
		return nil, false
	}
	class, ok := c.classes[name]
	return class, ok
}

// Classes lists the catalog's class names in sorted order.
func (c *Catalog) Classes() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.order...)
}

// Property is a shorthand for Class(class).Property(property).
func (c *Catalog) Property(class, property string) (Property, bool) {
	target, ok := c.Class(class)
	if !ok {
		return Property{}, false
	}
	return target.Property(property)
}

// Len reports how many classes the catalog holds.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Parse extracts a catalog from a raw OpenAPI document. Only object schemas
// under components/schemas become classes; scalar and array component
// schemas are skipped.
func Parse(ctx context.Context, data []byte) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("schema: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: false}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("schema: load document: %w", err)
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("schema: document has no component schemas")
	}

	catalog := &Catalog{classes: make(map[string]*Class)}
	for name, ref := range spec.Components.Schemas {
		class, ok := convertClass(name, ref)
		if !ok {
			continue
		}
		catalog.classes[name] = class
		catalog.order = append(catalog.order, name)
	}
	sort.Strings(catalog.order)

	if len(catalog.order) == 0 {
		return nil, errors.New("schema: no object schemas found")
	}
	return catalog, nil
}

func convertClass(name string, ref *openapi3.SchemaRef) (*Class, bool) {
	if ref == nil || ref.Value == nil {
		return nil, false
	}
	src := ref.Value
	if !isObjectSchema(src) {
		return nil, false
	}

	class := &Class{
		Name:        name,
		Title:       src.Title,
		Description: src.Description,
		properties:  make(map[string]Property, len(src.Properties)),
	}

	required := make(map[string]bool, len(src.Required))
	for _, field := range src.Required {
		required[field] = true
	}

	for propName, propRef := range src.Properties {
		prop := convertProperty(propName, propRef)
		prop.Required = required[propName]
		class.properties[propName] = prop
		class.order = append(class.order, propName)
	}
	sort.Strings(class.order)
	return class, true
}

func convertProperty(name string, ref *openapi3.SchemaRef) Property {
	prop := Property{Name: name}
	if ref == nil || ref.Value == nil {
		return prop
	}
	src := ref.Value

	prop.Type = firstType(src.Type)
	prop.Format = src.Format
	prop.Title = src.Title
	prop.Description = src.Description
	prop.Nullable = src.Nullable
	prop.ReadOnly = src.ReadOnly
	prop.WriteOnly = src.WriteOnly
	prop.Pattern = src.Pattern
	prop.Default = src.Default

	if len(src.Enum) > 0 {
		prop.Enum = append([]any(nil), src.Enum...)
	}
	if src.MinLength != 0 {
		prop.MinLength = int(src.MinLength)
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		prop.MaxLength = &value
	}
	if src.Items != nil {
		items := convertProperty(name, src.Items)
		prop.Items = &items
	}
	return prop
}

// isObjectSchema treats an untyped schema with properties as an object, the
// common shorthand in hand-written documents.
func isObjectSchema(src *openapi3.Schema) bool {
	if src.Type != nil {
		for _, t := range src.Type.Slice() {
			if t == "object" {
				return true
			}
		}
		return false
	}
	return len(src.Properties) > 0
}

func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	for _, value := range values {
		if !strings.EqualFold(value, "null") {
			return value
		}
	}
	if len(values) > 0 {
		return values[0]
	}
	return ""
}
