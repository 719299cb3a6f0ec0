// Package fields defines the field description record shared by the form and
// show mappers: a named slot on an admin screen plus the metadata renderers
// and form builders need to present it.
package fields

// Description captures everything the admin layer knows about a single field.
// Mappers create descriptions, contractors complete them, and the owning admin
// definition stores them for renderers to consume.
type Description struct {
	// Name is the raw field name as given by the caller, before any
	// sanitization applied for form path syntax.
	Name string

	// Type is the field type understood by the form layer, such as "text"
	// or "choice". Empty until a mapper or contractor assigns one.
	Type string

	// PropertyPath locates the field's value on the model subject. Defaults
	// to the field name when the caller does not override it.
	PropertyPath PropertyPath

	// Label is the resolved display label. May be a translation key when a
	// label strategy produced it.
	Label string

	// Template is the template reference used to render the field on show
	// screens. Empty when no template has been assigned for the type.
	Template string

	// TranslationDomain selects the message catalog for Label and Help.
	TranslationDomain string

	// Help is sanitized help markup shown next to the field.
	Help string

	// Position orders the field inside its group.
	Position int

	// Options holds the remaining descriptor options that have no dedicated
	// field, such as "role" or renderer specific settings.
	Options Options
}

// New builds a description from descriptor options, lifting the well-known
// keys into struct fields and keeping the rest in Options. The input map is
// not retained.
func New(name string, options Options) *Description {
	desc := &Description{Name: name, Options: options.Clone()}
	if desc.Options == nil {
		desc.Options = Options{}
	}
	if v := desc.Options.String(OptionType, ""); v != "" {
		desc.Type = v
	}
	if v := desc.Options.String(OptionPropertyPath, ""); v != "" {
		desc.PropertyPath = PropertyPath(v)
	}
	if v := desc.Options.String(OptionLabel, ""); v != "" {
		desc.Label = v
	}
	if v := desc.Options.String(OptionTemplate, ""); v != "" {
		desc.Template = v
	}
	if v := desc.Options.String(OptionTranslationDomain, ""); v != "" {
		desc.TranslationDomain = v
	}
	if v := desc.Options.String(OptionHelp, ""); v != "" {
		desc.Help = SanitizeHelp(v)
	}
	if desc.Options.Has(OptionPosition) {
		desc.Position = desc.Options.Int(OptionPosition, 0)
	}
	for _, key := range []string{
		OptionType, OptionPropertyPath, OptionLabel, OptionTemplate,
		OptionTranslationDomain, OptionHelp, OptionPosition,
	} {
		delete(desc.Options, key)
	}
	return desc
}

// Option returns a descriptor option by key.
func (d *Description) Option(key string) (any, bool) {
	value, ok := d.Options[key]
	return value, ok
}

// SetOption stores a descriptor option, allocating the map when needed.
func (d *Description) SetOption(key string, value any) {
	if d.Options == nil {
		d.Options = Options{}
	}
	d.Options[key] = value
}

// SetHelpHTML sanitizes markup and stores it as the field's help text.
func (d *Description) SetHelpHTML(markup string) {
	d.Help = SanitizeHelp(markup)
}

// Role returns the access attribute guarding this field, if any.
func (d *Description) Role() (string, bool) {
	role := d.Options.String(OptionRole, "")
	return role, role != ""
}

// Value resolves the description's property path against a model subject.
func (d *Description) Value(subject any) (any, bool) {
	return d.PropertyPath.Value(subject)
}
