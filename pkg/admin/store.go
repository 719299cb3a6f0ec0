package admin

import (
	"fmt"

	"github.com/goliatone/go-formmapper/pkg/fields"
)

// FieldStore keeps the field descriptions of one view (form or show) together
// with their grouping into groups and tabs. Registration order is preserved.
type FieldStore struct {
	descriptions map[string]*fields.Description
	order        []string

	groups     map[string]*Group
	groupOrder []string

	tabs     map[string]*Tab
	tabOrder []string
}

func newFieldStore() *FieldStore {
	return &FieldStore{
		descriptions: map[string]*fields.Description{},
		groups:       map[string]*Group{},
		tabs:         map[string]*Tab{},
	}
}

// Add registers a description under name. Registering the same name twice is
// an error; remove the field first to replace it.
func (s *FieldStore) Add(name string, desc *fields.Description) error {
	if name == "" {
		return fmt.Errorf("admin: field name is required")
	}
	if desc == nil {
		return fmt.Errorf("admin: field %q has no description", name)
	}
	if _, exists := s.descriptions[name]; exists {
		return fmt.Errorf("admin: field %q already registered", name)
	}
	s.descriptions[name] = desc
	s.order = append(s.order, name)
	return nil
}

// Has reports whether a description is registered under name.
func (s *FieldStore) Has(name string) bool {
	_, ok := s.descriptions[name]
	return ok
}

// Get returns the description registered under name.
func (s *FieldStore) Get(name string) (*fields.Description, bool) {
	desc, ok := s.descriptions[name]
	return desc, ok
}

// Remove unregisters a description and detaches it from any group. Removing
// an absent field is a no-op.
func (s *FieldStore) Remove(name string) {
	if _, ok := s.descriptions[name]; !ok {
		return
	}
	delete(s.descriptions, name)
	s.order = removeString(s.order, name)
	for _, group := range s.groups {
		group.Fields = removeString(group.Fields, name)
	}
}

// Names lists registered field names in registration order.
func (s *FieldStore) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Descriptions returns the registered descriptions in registration order.
func (s *FieldStore) Descriptions() []*fields.Description {
	out := make([]*fields.Description, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.descriptions[name])
	}
	return out
}

// Len reports the number of registered descriptions.
func (s *FieldStore) Len() int { return len(s.order) }

func removeString(list []string, value string) []string {
	for i, v := range list {
		if v == value {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
