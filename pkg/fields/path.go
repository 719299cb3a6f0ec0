package fields

import (
	"fmt"
	"strings"

	"github.com/ohler55/ojg/jp"
)

// PropertyPath addresses a value inside a model subject. Segments are joined
// with dots; "author.email" reads the email field of the author association.
type PropertyPath string

// NewPropertyPath builds a path from individual segments, skipping empties.
func NewPropertyPath(segments ...string) PropertyPath {
	parts := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		parts = append(parts, segment)
	}
	return PropertyPath(strings.Join(parts, "."))
}

func (p PropertyPath) String() string { return string(p) }

// IsNested reports whether the path traverses more than one segment.
func (p PropertyPath) IsNested() bool { return strings.Contains(string(p), ".") }

// Segments splits the path on dots. An empty path yields nil.
func (p PropertyPath) Segments() []string {
	if p == "" {
		return nil
	}
	return strings.Split(string(p), ".")
}

// Value resolves the path against subject, typically a decoded document of
// maps and slices. The second return is false when any segment is missing.
func (p PropertyPath) Value(subject any) (any, bool) {
	if p == "" || subject == nil {
		return nil, false
	}
	expr, err := jp.ParseString(string(p))
	if err != nil {
		return nil, false
	}
	results := expr.Get(subject)
	if len(results) == 0 {
		return nil, false
	}
	return results[0], true
}

// MustValue is Value for callers that treat a missing segment as a programming
// error, such as template integrations resolving known model fields.
func (p PropertyPath) MustValue(subject any) any {
	value, ok := p.Value(subject)
	if !ok {
		panic(fmt.Sprintf("fields: property path %q not resolvable", p))
	}
	return value
}
