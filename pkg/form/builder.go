package form

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formmapper/pkg/fields"
)

// Builder is the form assembly surface mappers delegate to. Implementations
// must reject child names containing reserved path characters; mappers
// sanitize names before delegating.
type Builder interface {
	// Add appends a child with the given type and options.
	Add(name, fieldType string, options fields.Options) error
	// Get returns a previously added child.
	Get(name string) (*Child, bool)
	// Has reports whether a child exists.
	Has(name string) bool
	// Remove drops a child. Removing an absent child is a no-op.
	Remove(name string)
	// Keys lists child names in insertion order.
	Keys() []string
}

// Child is a single entry in a form tree.
type Child struct {
	Name    string
	Type    string
	Options fields.Options
}

// Tree is the in-memory Builder used by admin screens and tests. It preserves
// insertion order and is not safe for concurrent use; forms are assembled
// within a single request.
type Tree struct {
	children map[string]*Child
	order    []string
}

// NewTree returns an empty form tree.
func NewTree() *Tree {
	return &Tree{children: map[string]*Child{}}
}

// Add appends a child. The name must be non-empty, free of reserved path
// characters, and unused. An empty field type defaults to TypeText.
func (t *Tree) Add(name, fieldType string, options fields.Options) error {
	if name == "" {
		return fmt.Errorf("form: child name is required")
	}
	if strings.ContainsAny(name, reservedNameChars) {
		return fmt.Errorf("form: child name %q contains reserved characters", name)
	}
	if _, exists := t.children[name]; exists {
		return fmt.Errorf("form: child %q already exists", name)
	}
	if fieldType == "" {
		fieldType = TypeText
	}
	t.children[name] = &Child{Name: name, Type: fieldType, Options: options.Clone()}
	t.order = append(t.order, name)
	return nil
}

// Get returns the child registered under name.
func (t *Tree) Get(name string) (*Child, bool) {
	child, ok := t.children[name]
	return child, ok
}

// Has reports whether a child is registered under name.
func (t *Tree) Has(name string) bool {
	_, ok := t.children[name]
	return ok
}

// Remove drops the child registered under name, if any.
func (t *Tree) Remove(name string) {
	if _, ok := t.children[name]; !ok {
		return
	}
	delete(t.children, name)
	for i, key := range t.order {
		if key == name {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Keys lists child names in insertion order.
func (t *Tree) Keys() []string {
	keys := make([]string, len(t.order))
	copy(keys, t.order)
	return keys
}

// Children returns the tree's children in insertion order.
func (t *Tree) Children() []*Child {
	out := make([]*Child, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.children[name])
	}
	return out
}

// Len reports the number of children.
func (t *Tree) Len() int { return len(t.order) }
