// Package show builds and renders the read-only view of an admin screen.
// The Builder completes show field descriptions, assigning each one the
// template registered for its type; the Renderer draws completed descriptions
// against a model subject.
package show

import (
	"fmt"

	"github.com/goliatone/go-formmapper/pkg/admin"
	"github.com/goliatone/go-formmapper/pkg/fields"
	"github.com/goliatone/go-formmapper/pkg/templates"
)

// Builder completes show field descriptions before they are registered with
// an admin definition.
type Builder struct {
	templates *templates.Registry
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithTemplates replaces the template registry consulted for type templates.
func WithTemplates(reg *templates.Registry) BuilderOption {
	return func(b *Builder) {
		if reg != nil {
			b.templates = reg
		}
	}
}

// NewBuilder returns a Builder backed by the default template registry.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{templates: templates.NewRegistry()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Templates exposes the registry, mainly so callers can install overrides.
func (b *Builder) Templates() *templates.Registry { return b.templates }

// FixDescription completes a show field description: the property path falls
// back to the field name, the translation domain to the admin's, and the
// template to the one registered for the field's type. A type without a
// registered template leaves the description untemplated; renderers skip such
// fields.
func (b *Builder) FixDescription(a *admin.Definition, desc *fields.Description) error {
	if desc == nil {
		return fmt.Errorf("show: cannot fix nil description")
	}
	if desc.Name == "" {
		return fmt.Errorf("show: description has no name")
	}
	if desc.PropertyPath == "" {
		desc.PropertyPath = fields.PropertyPath(desc.Name)
	}
	if desc.TranslationDomain == "" && a != nil {
		desc.TranslationDomain = a.TranslationDomain()
	}
	if desc.Template == "" {
		if tpl, ok := b.templates.Resolve(desc.Type); ok {
			desc.Template = tpl
		}
	}
	return nil
}
