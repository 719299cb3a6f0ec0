package mapper

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formmapper/pkg/admin"
	"github.com/goliatone/go-formmapper/pkg/fields"
	"github.com/goliatone/go-formmapper/pkg/form"
	"github.com/goliatone/go-formmapper/pkg/guesser"
)

// FormMapper declares the fields of an admin's edit form. It completes a
// field description for every added field, registers it with the admin, and
// delegates the widget to the form builder under a sanitized name.
//
// Mappers are request-scoped and not safe for concurrent use. Calls chain;
// after a failure every further call is a no-op and Err returns the cause.
type FormMapper struct {
	grouped
	builder    form.Builder
	contractor form.Contractor
	guesser    guesser.Guesser
}

// FormOption configures a FormMapper.
type FormOption func(*FormMapper)

// WithContractor replaces the contractor that completes descriptions and
// supplies per-type option defaults.
func WithContractor(c form.Contractor) FormOption {
	return func(m *FormMapper) {
		if c != nil {
			m.contractor = c
		}
	}
}

// WithGuesser installs a type guesser. Add consults it, keyed by the admin's
// class, whenever a field is declared without an explicit type.
func WithGuesser(g guesser.Guesser) FormOption {
	return func(m *FormMapper) { m.guesser = g }
}

// NewFormMapper builds a mapper for the admin's form view. The context feeds
// access checks for role-guarded fields.
func NewFormMapper(ctx context.Context, a *admin.Definition, builder form.Builder, opts ...FormOption) *FormMapper {
	target := a
	if target == nil {
		target = admin.New("unconfigured")
	}
	m := &FormMapper{
		grouped:    newGrouped(ctx, target, target.Form(), "form"),
		builder:    builder,
		contractor: form.NewContractor(),
	}
	if a == nil {
		m.failf("mapper: admin definition is required")
	}
	if builder == nil {
		m.failf("mapper: form builder is required")
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Admin returns the definition the mapper configures.
func (m *FormMapper) Admin() *admin.Definition { return m.admin }

// Builder returns the underlying form builder.
func (m *FormMapper) Builder() form.Builder { return m.builder }

// Err returns the first error any chained call produced.
func (m *FormMapper) Err() error { return m.err }

// Add declares a field. The description is completed (type, property path,
// translation domain, label), registered with the admin under the sanitized
// name, and handed to the form builder with the contractor's defaults merged
// under the caller's options. Without an explicit type the configured guesser
// is consulted first, then the contractor falls back to text.
//
// A field whose role the access checker refuses, or one added inside a false
// condition block, is skipped without error and leaves no trace on the admin
// or the builder.
func (m *FormMapper) Add(name string, opts ...AddOption) *FormMapper {
	if m.err != nil || !m.applies() {
		return m
	}
	if name == "" {
		m.failf("mapper: field name is required")
		return m
	}

	cfg := addConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	desc := fields.New(name, cfg.descriptor)
	if cfg.fieldType != "" {
		desc.Type = cfg.fieldType
	}

	if m.gated(desc) {
		return m
	}

	var guessed fields.Options
	if desc.Type == "" && m.guesser != nil {
		if g, ok := m.guesser.Guess(m.admin.Class(), name); ok {
			desc.Type = g.Type
			guessed = g.Options
		}
	}
	if help := guessed.String(fields.OptionHelp, ""); help != "" {
		if desc.Help == "" {
			desc.SetHelpHTML(help)
		}
		delete(guessed, fields.OptionHelp)
	}

	if desc.Type == form.TypeCollection {
		desc.Type = form.TypeNativeCollection
	}
	if err := m.contractor.Complete(desc); err != nil {
		m.fail(err)
		return m
	}
	if desc.TranslationDomain == "" {
		desc.TranslationDomain = m.scopeTranslationDomain()
	}
	if desc.TranslationDomain == "" {
		desc.TranslationDomain = m.admin.TranslationDomain()
	}
	if desc.Label == "" {
		desc.Label = m.admin.LabelStrategy().Label(name, m.labelContext, "label")
	}

	merged := m.contractor.Defaults(desc.Type, desc).Merge(guessed).Merge(cfg.options)
	if !merged.Has(fields.OptionLabel) {
		merged[fields.OptionLabel] = desc.Label
	}

	key := form.SanitizeName(name)
	if err := m.store.Add(key, desc); err != nil {
		m.fail(err)
		return m
	}
	if err := m.builder.Add(key, desc.Type, merged); err != nil {
		m.store.Remove(key)
		m.fail(fmt.Errorf("mapper: add field %q: %w", name, err))
		return m
	}
	m.attach(key)
	return m
}

// Get returns the field description registered under name, applying the same
// sanitization Add applied.
func (m *FormMapper) Get(name string) (*fields.Description, bool) {
	return m.store.Get(form.SanitizeName(name))
}

// Has reports whether a field is registered under name.
func (m *FormMapper) Has(name string) bool {
	return m.store.Has(form.SanitizeName(name))
}

// Remove drops the field from the admin and the builder. Removing an absent
// field is a no-op.
func (m *FormMapper) Remove(name string) *FormMapper {
	if m.err != nil {
		return m
	}
	key := form.SanitizeName(name)
	m.store.Remove(key)
	m.builder.Remove(key)
	return m
}

// Keys lists the builder's child names in insertion order.
func (m *FormMapper) Keys() []string {
	if m.builder == nil {
		return nil
	}
	return m.builder.Keys()
}

// Reorder rearranges the current group so the given fields come first, in the
// given order. Names are sanitized like in Add.
func (m *FormMapper) Reorder(keys ...string) *FormMapper {
	if m.err != nil {
		return m
	}
	sanitized := make([]string, len(keys))
	for i, key := range keys {
		sanitized[i] = form.SanitizeName(key)
	}
	if err := m.store.ReorderGroup(m.targetGroup(), sanitized); err != nil {
		m.fail(err)
	}
	return m
}

// With opens a group; subsequent adds land in it until End.
func (m *FormMapper) With(name string, opts ...GroupOption) *FormMapper {
	if m.err != nil {
		return m
	}
	cfg := groupConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	m.openGroup(name, cfg)
	return m
}

// Tab opens a tab; groups opened before the matching End attach to it.
func (m *FormMapper) Tab(name string, opts ...GroupOption) *FormMapper {
	if m.err != nil {
		return m
	}
	cfg := groupConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	m.openTab(name, cfg)
	return m
}

// End closes the innermost open group or tab.
func (m *FormMapper) End() *FormMapper {
	if m.err != nil {
		return m
	}
	m.closeInnermost()
	return m
}

// RemoveGroup drops a group and every field it held from the admin and the
// builder.
func (m *FormMapper) RemoveGroup(name string) *FormMapper {
	if m.err != nil {
		return m
	}
	m.removeGroup(name, m.builder.Remove)
	return m
}

// RemoveTab drops a tab, its groups, and their fields.
func (m *FormMapper) RemoveTab(name string) *FormMapper {
	if m.err != nil {
		return m
	}
	m.removeTab(name, m.builder.Remove)
	return m
}

// IfTrue opens a condition block: adds apply only while the condition holds.
// Blocks nest; close each with IfEnd.
func (m *FormMapper) IfTrue(cond bool) *FormMapper {
	if m.err != nil {
		return m
	}
	m.pushCond(cond)
	return m
}

// IfFalse opens a condition block that applies while cond is false.
func (m *FormMapper) IfFalse(cond bool) *FormMapper {
	if m.err != nil {
		return m
	}
	m.pushCond(!cond)
	return m
}

// IfEnd closes the innermost condition block.
func (m *FormMapper) IfEnd() *FormMapper {
	if m.err != nil {
		return m
	}
	m.popCond()
	return m
}
