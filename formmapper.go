package formmapper

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formmapper/pkg/admin"
	"github.com/goliatone/go-formmapper/pkg/fields"
	"github.com/goliatone/go-formmapper/pkg/form"
	"github.com/goliatone/go-formmapper/pkg/guesser"
	"github.com/goliatone/go-formmapper/pkg/mapper"
	"github.com/goliatone/go-formmapper/pkg/schema"
	"github.com/goliatone/go-formmapper/pkg/show"
)

// Definition is the host admin screen mappers configure; alias exported via
// the root package for convenience.
type Definition = admin.Definition

// Description captures the metadata of a single admin field.
type Description = fields.Description

// Options carries free-form field configuration maps.
type Options = fields.Options

// FormMapper is the fluent DSL for configuring an admin's edit form.
type FormMapper = mapper.FormMapper

// ShowMapper is the fluent DSL for configuring an admin's show screen.
type ShowMapper = mapper.ShowMapper

// Catalog is the parsed schema catalog field guessing draws from.
type Catalog = schema.Catalog

// NewAdmin builds an admin definition identified by code.
func NewAdmin(code string, opts ...admin.Option) *Definition {
	return admin.New(code, opts...)
}

// NewFormMapper exposes the form mapper constructor from the top-level
// module. The builder receives the mapped children; a plain form.NewTree()
// works for most callers.
func NewFormMapper(ctx context.Context, a *Definition, builder form.Builder, opts ...mapper.FormOption) *FormMapper {
	return mapper.NewFormMapper(ctx, a, builder, opts...)
}

// NewShowMapper exposes the show mapper constructor from the top-level
// module.
func NewShowMapper(ctx context.Context, a *Definition, opts ...mapper.ShowOption) *ShowMapper {
	return mapper.NewShowMapper(ctx, a, opts...)
}

// NewSchemaLoader constructs a schema loader while keeping the fetch
// machinery hidden from consumers.
func NewSchemaLoader(opts ...schema.LoaderOption) *schema.Loader {
	return schema.NewLoader(opts...)
}

// EmbeddedShowTemplates exposes the built-in show templates so callers can
// reuse or extend them without importing the show package directly.
func EmbeddedShowTemplates() fs.FS {
	return show.TemplateFS()
}

// MapClassForm is the simplest entry point for schema-driven mapping: it
// loads the schema document from source, builds an admin definition for the
// class, and maps every class property onto a fresh form tree with guessed
// field types. Callers wanting to pick fields or groups themselves should
// wire a FormMapper directly.
func MapClassForm(ctx context.Context, source, code, class string, opts ...admin.Option) (*Definition, *form.Tree, error) {
	catalog, err := schema.NewLoader().Load(ctx, source)
	if err != nil {
		return nil, nil, err
	}
	cls, ok := catalog.Class(class)
	if !ok {
		return nil, nil, fmt.Errorf("formmapper: class %q not found in %q", class, source)
	}

	def := admin.New(code, append([]admin.Option{admin.WithClass(class)}, opts...)...)
	tree := form.NewTree()
	m := mapper.NewFormMapper(ctx, def, tree, mapper.WithGuesser(guesser.NewSchema(catalog)))
	for _, name := range cls.PropertyNames() {
		m.Add(name)
	}
	if err := m.Err(); err != nil {
		return nil, nil, err
	}
	return def, tree, nil
}
