package mapper

import "github.com/goliatone/go-formmapper/pkg/fields"

type addConfig struct {
	fieldType  string
	options    fields.Options
	descriptor fields.Options
}

// AddOption configures a single Add call. Options apply in order, later
// values winning, so sugar like WithLabel can be combined freely with the
// map-based forms.
type AddOption func(*addConfig)

// WithFieldType sets the field type, such as form.TypeChoice. Left unset, the
// contractor picks a fallback.
func WithFieldType(fieldType string) AddOption {
	return func(cfg *addConfig) { cfg.fieldType = fieldType }
}

// WithOptions merges form options for the builder child. Caller options win
// over the contractor's per-type defaults.
func WithOptions(opts fields.Options) AddOption {
	return func(cfg *addConfig) { cfg.options = cfg.options.Merge(opts) }
}

// WithOption sets one form option.
func WithOption(key string, value any) AddOption {
	return func(cfg *addConfig) {
		cfg.options = cfg.options.Merge(fields.Options{key: value})
	}
}

// WithDescriptorOptions merges descriptor options for the field description.
func WithDescriptorOptions(opts fields.Options) AddOption {
	return func(cfg *addConfig) { cfg.descriptor = cfg.descriptor.Merge(opts) }
}

// WithDescriptorOption sets one descriptor option.
func WithDescriptorOption(key string, value any) AddOption {
	return func(cfg *addConfig) {
		cfg.descriptor = cfg.descriptor.Merge(fields.Options{key: value})
	}
}

// WithLabel pins the field label, bypassing the admin's label strategy.
func WithLabel(label string) AddOption {
	return WithDescriptorOption(fields.OptionLabel, label)
}

// WithRequired overrides the required flag on the builder child.
func WithRequired(required bool) AddOption {
	return WithOption(fields.OptionRequired, required)
}

// WithHelp attaches help markup to the field; it is sanitized before storage.
func WithHelp(markup string) AddOption {
	return WithDescriptorOption(fields.OptionHelp, markup)
}

// WithRole guards the field behind an access attribute. When the admin's
// checker refuses the attribute the field is skipped entirely.
func WithRole(attribute string) AddOption {
	return WithDescriptorOption(fields.OptionRole, attribute)
}

// WithPropertyPath overrides the property path derived from the field name.
func WithPropertyPath(path string) AddOption {
	return WithDescriptorOption(fields.OptionPropertyPath, path)
}

// WithTemplate pins the show template, bypassing the type lookup. Form
// builders ignore it.
func WithTemplate(template string) AddOption {
	return WithDescriptorOption(fields.OptionTemplate, template)
}

// GroupOption configures a group or tab opened through With or Tab.
type GroupOption func(*groupConfig)

type groupConfig struct {
	label             string
	translationDomain string
	description       string
	class             string
}

// GroupLabel sets the group heading, or the translation key for it.
func GroupLabel(label string) GroupOption {
	return func(cfg *groupConfig) { cfg.label = label }
}

// GroupTranslationDomain overrides the catalog used for the group heading.
func GroupTranslationDomain(domain string) GroupOption {
	return func(cfg *groupConfig) { cfg.translationDomain = domain }
}

// GroupDescription adds explanatory text under the group heading. Tabs ignore
// it.
func GroupDescription(description string) GroupOption {
	return func(cfg *groupConfig) { cfg.description = description }
}

// GroupClass adds presentation classes to the group container. Tabs ignore
// it.
func GroupClass(class string) GroupOption {
	return func(cfg *groupConfig) { cfg.class = class }
}
