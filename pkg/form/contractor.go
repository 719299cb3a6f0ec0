package form

import (
	"fmt"

	"github.com/goliatone/go-formmapper/pkg/fields"
)

// Contractor completes field descriptions on behalf of the persistence layer
// and supplies per-type form option defaults. The default implementation knows
// nothing about storage; ORM integrations provide their own.
type Contractor interface {
	// Defaults returns the form options implied by the field type. Caller
	// options are merged over these.
	Defaults(fieldType string, desc *fields.Description) fields.Options
	// Complete fills the gaps a mapper leaves on a freshly built
	// description, such as an unset type or property path.
	Complete(desc *fields.Description) error
}

// DefaultContractor completes descriptions using only the information already
// on them.
type DefaultContractor struct{}

// NewContractor returns the storage-agnostic contractor.
func NewContractor() *DefaultContractor { return &DefaultContractor{} }

// Defaults implements Contractor. Every type starts out required; a handful of
// types carry extra defaults their widgets expect.
func (c *DefaultContractor) Defaults(fieldType string, _ *fields.Description) fields.Options {
	opts := fields.Options{fields.OptionRequired: true}
	switch fieldType {
	case TypeChoice, TypeModel:
		opts[fields.OptionMultiple] = false
		opts[fields.OptionExpanded] = false
	case TypeNativeCollection:
		opts[fields.OptionModifiable] = true
		opts[fields.OptionEntryType] = TypeText
	case TypeDate, TypeDatetime, TypeTime:
		opts["widget"] = "single_text"
	case TypeCheckbox:
		opts[fields.OptionRequired] = false
	}
	return opts
}

// Complete implements Contractor. It assigns the fallback type and derives the
// property path from the field name when the caller set neither.
func (c *DefaultContractor) Complete(desc *fields.Description) error {
	if desc == nil {
		return fmt.Errorf("form: cannot complete nil description")
	}
	if desc.Name == "" {
		return fmt.Errorf("form: description has no name")
	}
	if desc.Type == "" {
		desc.Type = TypeText
	}
	if desc.PropertyPath == "" {
		desc.PropertyPath = fields.PropertyPath(desc.Name)
	}
	return nil
}
