package mapper

import (
	"context"

	"github.com/goliatone/go-formmapper/pkg/admin"
	"github.com/goliatone/go-formmapper/pkg/fields"
	"github.com/goliatone/go-formmapper/pkg/form"
	"github.com/goliatone/go-formmapper/pkg/show"
)

// ShowMapper declares the fields of an admin's read-only show view. Each
// added field is completed by the show builder, which assigns the template
// registered for the field's type, and registered with the admin under a
// sanitized name.
//
// Like FormMapper, it is request-scoped, chainable, and sticky on error.
type ShowMapper struct {
	grouped
	builder *show.Builder
}

// ShowOption configures a ShowMapper.
type ShowOption func(*ShowMapper)

// WithShowBuilder replaces the builder that completes show descriptions.
func WithShowBuilder(b *show.Builder) ShowOption {
	return func(m *ShowMapper) {
		if b != nil {
			m.builder = b
		}
	}
}

// NewShowMapper builds a mapper for the admin's show view. The context feeds
// access checks for role-guarded fields.
func NewShowMapper(ctx context.Context, a *admin.Definition, opts ...ShowOption) *ShowMapper {
	target := a
	if target == nil {
		target = admin.New("unconfigured")
	}
	m := &ShowMapper{
		grouped: newGrouped(ctx, target, target.Show(), "show"),
		builder: show.NewBuilder(),
	}
	if a == nil {
		m.failf("mapper: admin definition is required")
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Admin returns the definition the mapper configures.
func (m *ShowMapper) Admin() *admin.Definition { return m.admin }

// Builder returns the show builder completing the descriptions.
func (m *ShowMapper) Builder() *show.Builder { return m.builder }

// Err returns the first error any chained call produced.
func (m *ShowMapper) Err() error { return m.err }

// Add declares a show field. The show builder completes the description,
// assigning the template registered for its type; types without a template
// stay untemplated and renderers skip them. Gating works exactly as on the
// form mapper.
func (m *ShowMapper) Add(name string, opts ...AddOption) *ShowMapper {
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

	if desc.Type == "" {
		desc.Type = form.TypeText
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
	if err := m.builder.FixDescription(m.admin, desc); err != nil {
		m.fail(err)
		return m
	}

	key := form.SanitizeName(name)
	if err := m.store.Add(key, desc); err != nil {
		m.fail(err)
		return m
	}
	m.attach(key)
	return m
}

// Get returns the field description registered under name, applying the same
// sanitization Add applied.
func (m *ShowMapper) Get(name string) (*fields.Description, bool) {
	return m.store.Get(form.SanitizeName(name))
}

// Has reports whether a field is registered under name.
func (m *ShowMapper) Has(name string) bool {
	return m.store.Has(form.SanitizeName(name))
}

// Remove drops the field from the admin. Removing an absent field is a
// no-op.
func (m *ShowMapper) Remove(name string) *ShowMapper {
	if m.err != nil {
		return m
	}
	m.store.Remove(form.SanitizeName(name))
	return m
}

// Keys lists registered field names in registration order.
func (m *ShowMapper) Keys() []string {
	return m.store.Names()
}

// Reorder rearranges the current group so the given fields come first, in
// the given order.
func (m *ShowMapper) Reorder(keys ...string) *ShowMapper {
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
func (m *ShowMapper) With(name string, opts ...GroupOption) *ShowMapper {
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
func (m *ShowMapper) Tab(name string, opts ...GroupOption) *ShowMapper {
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
func (m *ShowMapper) End() *ShowMapper {
	if m.err != nil {
		return m
	}
	m.closeInnermost()
	return m
}

// RemoveGroup drops a group and every field it held.
func (m *ShowMapper) RemoveGroup(name string) *ShowMapper {
	if m.err != nil {
		return m
	}
	m.removeGroup(name, nil)
	return m
}

// RemoveTab drops a tab, its groups, and their fields.
func (m *ShowMapper) RemoveTab(name string) *ShowMapper {
	if m.err != nil {
		return m
	}
	m.removeTab(name, nil)
	return m
}

// IfTrue opens a condition block: adds apply only while the condition holds.
func (m *ShowMapper) IfTrue(cond bool) *ShowMapper {
	if m.err != nil {
		return m
	}
	m.pushCond(cond)
	return m
}

// IfFalse opens a condition block that applies while cond is false.
func (m *ShowMapper) IfFalse(cond bool) *ShowMapper {
	if m.err != nil {
		return m
	}
	m.pushCond(!cond)
	return m
}

// IfEnd closes the innermost condition block.
func (m *ShowMapper) IfEnd() *ShowMapper {
	if m.err != nil {
		return m
	}
	m.popCond()
	return m
}
