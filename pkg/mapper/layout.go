package mapper

import (
	"github.com/goliatone/go-formmapper/pkg/fields"
	"github.com/goliatone/go-formmapper/pkg/layout"
)

// ApplyLayout replays a declarative layout: tabs and groups open in document
// order and every listed field is added inside its group. Field entries with
// no type go through the mapper's normal guessing and defaulting.
func (m *FormMapper) ApplyLayout(doc layout.Admin) *FormMapper {
	if m.err != nil {
		return m
	}
	for _, tab := range doc.Tabs {
		m.Tab(tab.Name, tabOptions(tab)...)
		for _, group := range tab.Groups {
			m.applyGroup(group)
		}
		m.End()
	}
	for _, group := range doc.Groups {
		m.applyGroup(group)
	}
	return m
}

func (m *FormMapper) applyGroup(group layout.GroupConfig) {
	m.With(group.Name, groupOptions(group)...)
	for _, field := range group.Fields {
		m.Add(field.Name, fieldOptions(field)...)
	}
	m.End()
}

// ApplyLayout replays a declarative layout onto the show view. Same walk as
// the form variant; templates come from the show builder's registry.
func (m *ShowMapper) ApplyLayout(doc layout.Admin) *ShowMapper {
	if m.err != nil {
		return m
	}
	for _, tab := range doc.Tabs {
		m.Tab(tab.Name, tabOptions(tab)...)
		for _, group := range tab.Groups {
			m.applyGroup(group)
		}
		m.End()
	}
	for _, group := range doc.Groups {
		m.applyGroup(group)
	}
	return m
}

func (m *ShowMapper) applyGroup(group layout.GroupConfig) {
	m.With(group.Name, groupOptions(group)...)
	for _, field := range group.Fields {
		m.Add(field.Name, fieldOptions(field)...)
	}
	m.End()
}

func tabOptions(tab layout.TabConfig) []GroupOption {
	var opts []GroupOption
	if tab.Label != "" {
		opts = append(opts, GroupLabel(tab.Label))
	}
	if tab.TranslationDomain != "" {
		opts = append(opts, GroupTranslationDomain(tab.TranslationDomain))
	}
	return opts
}

func groupOptions(group layout.GroupConfig) []GroupOption {
	var opts []GroupOption
	if group.Label != "" {
		opts = append(opts, GroupLabel(group.Label))
	}
	if group.TranslationDomain != "" {
		opts = append(opts, GroupTranslationDomain(group.TranslationDomain))
	}
	if group.Description != "" {
		opts = append(opts, GroupDescription(group.Description))
	}
	if group.Class != "" {
		opts = append(opts, GroupClass(group.Class))
	}
	return opts
}

func fieldOptions(field layout.FieldConfig) []AddOption {
	var opts []AddOption
	if field.Type != "" {
		opts = append(opts, WithFieldType(field.Type))
	}
	if field.Label != "" {
		opts = append(opts, WithLabel(field.Label))
	}
	if field.Role != "" {
		opts = append(opts, WithRole(field.Role))
	}
	if field.Help != "" {
		opts = append(opts, WithHelp(field.Help))
	}
	if field.Required != nil {
		opts = append(opts, WithRequired(*field.Required))
	}
	if len(field.Options) > 0 {
		opts = append(opts, WithOptions(fields.Options(field.Options)))
	}
	return opts
}
