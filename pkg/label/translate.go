package label

import "fmt"

// Translator resolves a catalog key for a locale and domain. Params, when
// present, are substituted into the message using fmt verbs.
type Translator interface {
	Translate(locale, domain, key string, params ...any) (string, error)
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(locale, domain, key string, params ...any) (string, error)

// Translate implements Translator.
func (f TranslatorFunc) Translate(locale, domain, key string, params ...any) (string, error) {
	return f(locale, domain, key, params...)
}

// MissingHandler supplies the label used when a key cannot be resolved.
type MissingHandler func(locale, domain, key string) string

// Translate resolves key through t and falls back gracefully: on a missing
// translation it consults the handler, then the fallback, then returns the
// key itself. A nil translator short-circuits to the same fallback chain.
func Translate(t Translator, locale, domain, key, fallback string, missing MissingHandler) string {
	if t != nil {
		if msg, err := t.Translate(locale, domain, key); err == nil && msg != "" {
			return msg
		}
	}
	if missing != nil {
		if msg := missing(locale, domain, key); msg != "" {
			return msg
		}
	}
	if fallback != "" {
		return fallback
	}
	return key
}

// MapTranslator serves translations from an in-memory catalog, keyed by
// locale, then domain, then key. It backs tests and small deployments.
type MapTranslator struct {
	catalog map[string]map[string]map[string]string
}

// NewMapTranslator wraps a locale/domain/key catalog. The map is retained, not
// copied.
func NewMapTranslator(catalog map[string]map[string]map[string]string) *MapTranslator {
	return &MapTranslator{catalog: catalog}
}

// Translate implements Translator.
func (m *MapTranslator) Translate(locale, domain, key string, params ...any) (string, error) {
	domains, ok := m.catalog[locale]
	if !ok {
		return "", fmt.Errorf("label: unknown locale %q", locale)
	}
	messages, ok := domains[domain]
	if !ok {
		return "", fmt.Errorf("label: unknown domain %q for locale %q", domain, locale)
	}
	msg, ok := messages[key]
	if !ok {
		return "", fmt.Errorf("label: no translation for %q in domain %q", key, domain)
	}
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return msg, nil
}
