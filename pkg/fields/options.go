package fields

import "sort"

// Option keys shared between mappers, contractors, and renderers. Keys mirror
// the form library's snake_case vocabulary so option maps can be passed through
// without translation.
const (
	OptionLabel             = "label"
	OptionPropertyPath      = "property_path"
	OptionRequired          = "required"
	OptionTranslationDomain = "translation_domain"
	OptionHelp              = "help"
	OptionRole              = "role"
	OptionType              = "type"
	OptionTemplate          = "template"
	OptionPosition          = "position"
	OptionChoices           = "choices"
	OptionChoicesEndpoint   = "choices_endpoint"
	OptionMultiple          = "multiple"
	OptionExpanded          = "expanded"
	OptionEntryType         = "entry_type"
	OptionModifiable        = "modifiable"
	OptionPlaceholder       = "placeholder"
	OptionMaxLength         = "max_length"
	OptionDisabled          = "disabled"
)

// Options carries free-form field configuration. Values are typically scalars,
// nested Options, or plain maps produced by config decoding.
type Options map[string]any

// Clone returns a shallow copy at the top level with nested option maps copied
// recursively. A nil receiver yields nil.
func (o Options) Clone() Options {
	if o == nil {
		return nil
	}
	out := make(Options, len(o))
	for key, value := range o {
		out[key] = cloneValue(value)
	}
	return out
}

// Merge layers overrides on top of the receiver and returns the result. Caller
// supplied keys always win; maps present on both sides merge recursively.
// Neither input is mutated.
func (o Options) Merge(overrides Options) Options {
	if len(overrides) == 0 {
		return o.Clone()
	}
	out := o.Clone()
	if out == nil {
		out = make(Options, len(overrides))
	}
	for _, key := range sortedOptionKeys(overrides) {
		value := overrides[key]
		existing, ok := out[key]
		if ok {
			if base, target := asOptions(existing), asOptions(value); base != nil && target != nil {
				out[key] = base.Merge(target)
				continue
			}
		}
		out[key] = cloneValue(value)
	}
	return out
}

// Has reports whether the key is present, regardless of its value.
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// String returns the option as a string, or fallback when absent or of another
// type.
func (o Options) String(key, fallback string) string {
	value, ok := o[key]
	if !ok {
		return fallback
	}
	str, ok := value.(string)
	if !ok {
		return fallback
	}
	return str
}

// Bool returns the option as a bool, or fallback when absent or of another
// type.
func (o Options) Bool(key string, fallback bool) bool {
	value, ok := o[key]
	if !ok {
		return fallback
	}
	b, ok := value.(bool)
	if !ok {
		return fallback
	}
	return b
}

// Int returns the option as an int, accepting the numeric types YAML and JSON
// decoders produce.
func (o Options) Int(key string, fallback int) int {
	value, ok := o[key]
	if !ok {
		return fallback
	}
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

func asOptions(value any) Options {
	switch v := value.(type) {
	case Options:
		return v
	case map[string]any:
		return Options(v)
	default:
		return nil
	}
}

func cloneValue(value any) any {
	if nested := asOptions(value); nested != nil {
		return nested.Clone()
	}
	return value
}

func sortedOptionKeys(o Options) []string {
	keys := make([]string, 0, len(o))
	for key := range o {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
