// Package label derives display labels and translation keys for admin fields.
// Strategies turn a raw field name into either a human readable label or a
// catalog key that a Translator resolves at render time.
package label

import (
	"fmt"
	"strings"
	"unicode"
)

// Strategy produces a label for a field name. The context identifies the
// screen ("form", "show"), kind the element being labelled ("label", "help").
type Strategy interface {
	Label(name, context, kind string) string
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc func(name, context, kind string) string

// Label implements Strategy.
func (f StrategyFunc) Label(name, context, kind string) string {
	return f(name, context, kind)
}

// Default returns the strategy used when an admin does not configure one.
func Default() Strategy { return Native{} }

// Native humanizes the field name directly: "published_at" and "publishedAt"
// both become "Published At". The context and kind are ignored.
type Native struct{}

// Label implements Strategy.
func (Native) Label(name, _, _ string) string { return Humanize(name) }

// Noop returns the field name untouched, for admins whose field names are
// already display ready or translated elsewhere.
type Noop struct{}

// Label implements Strategy.
func (Noop) Label(name, _, _ string) string { return name }

// Underscore builds a translation catalog key from the context, kind, and
// snake_cased name: ("publishedAt", "form", "label") yields
// "form.label_published_at".
type Underscore struct{}

// Label implements Strategy.
func (Underscore) Label(name, context, kind string) string {
	return fmt.Sprintf("%s.%s_%s", context, kind, Underscorify(name))
}

// Humanize splits a field name on underscores, dashes, dots, and camel case
// boundaries and title-cases each word. Words already in upper case keep it.
func Humanize(name string) string {
	words := splitWords(name)
	if len(words) == 0 {
		return name
	}
	for i, word := range words {
		words[i] = upperFirst(word)
	}
	return strings.Join(words, " ")
}

// Underscorify lowers a field name to snake_case, treating dots, dashes,
// spaces, and camel case boundaries as separators.
func Underscorify(name string) string {
	words := splitWords(name)
	for i, word := range words {
		words[i] = strings.ToLower(word)
	}
	return strings.Join(words, "_")
}

func splitWords(s string) []string {
	var words []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == '.' || r == ' ':
			flush()
		case unicode.IsUpper(r) && i > 0 && unicode.IsLower(runes[i-1]):
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return words
}

func upperFirst(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
