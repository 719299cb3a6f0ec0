package admin

import "fmt"

// Group collects fields under a heading on a form or show screen. A group may
// belong to a tab; ungrouped fields land in the mapper's default group.
type Group struct {
	Name              string
	Label             string
	TranslationDomain string
	Description       string
	Class             string
	Tab               string
	Fields            []string
}

// Tab collects groups under a tab header.
type Tab struct {
	Name              string
	Label             string
	TranslationDomain string
	Groups            []string
}

// EnsureGroup returns the group registered under name, creating it when
// absent. The returned pointer is live; mutations are visible to the store.
func (s *FieldStore) EnsureGroup(name string) *Group {
	if group, ok := s.groups[name]; ok {
		return group
	}
	group := &Group{Name: name}
	s.groups[name] = group
	s.groupOrder = append(s.groupOrder, name)
	return group
}

// Group returns the group registered under name.
func (s *FieldStore) Group(name string) (*Group, bool) {
	group, ok := s.groups[name]
	return group, ok
}

// Groups returns copies of the registered groups in creation order.
func (s *FieldStore) Groups() []Group {
	out := make([]Group, 0, len(s.groupOrder))
	for _, name := range s.groupOrder {
		group := s.groups[name]
		copied := *group
		copied.Fields = append([]string(nil), group.Fields...)
		out = append(out, copied)
	}
	return out
}

// AppendToGroup records a field in a group, creating the group when needed.
// Appending an already listed field is a no-op.
func (s *FieldStore) AppendToGroup(groupName, field string) {
	group := s.EnsureGroup(groupName)
	for _, existing := range group.Fields {
		if existing == field {
			return
		}
	}
	group.Fields = append(group.Fields, field)
}

// RemoveGroup drops a group and detaches it from its tab. It returns the
// field names the group held; callers decide whether those fields are
// unregistered too.
func (s *FieldStore) RemoveGroup(name string) []string {
	group, ok := s.groups[name]
	if !ok {
		return nil
	}
	delete(s.groups, name)
	s.groupOrder = removeString(s.groupOrder, name)
	if group.Tab != "" {
		if tab, ok := s.tabs[group.Tab]; ok {
			tab.Groups = removeString(tab.Groups, name)
		}
	}
	return group.Fields
}

// ReorderGroup rearranges a group's fields so the given keys come first, in
// the given order. Fields not listed keep their relative order after the
// listed ones. Unknown group or field names are errors.
func (s *FieldStore) ReorderGroup(name string, keys []string) error {
	group, ok := s.groups[name]
	if !ok {
		return fmt.Errorf("admin: group %q not found", name)
	}
	present := make(map[string]bool, len(group.Fields))
	for _, field := range group.Fields {
		present[field] = true
	}
	seen := make(map[string]bool, len(keys))
	reordered := make([]string, 0, len(group.Fields))
	for _, key := range keys {
		if !present[key] {
			return fmt.Errorf("admin: field %q not in group %q", key, name)
		}
		if seen[key] {
			return fmt.Errorf("admin: field %q listed twice in reorder", key)
		}
		seen[key] = true
		reordered = append(reordered, key)
	}
	for _, field := range group.Fields {
		if !seen[field] {
			reordered = append(reordered, field)
		}
	}
	group.Fields = reordered
	return nil
}

// EnsureTab returns the tab registered under name, creating it when absent.
func (s *FieldStore) EnsureTab(name string) *Tab {
	if tab, ok := s.tabs[name]; ok {
		return tab
	}
	tab := &Tab{Name: name}
	s.tabs[name] = tab
	s.tabOrder = append(s.tabOrder, name)
	return tab
}

// Tab returns the tab registered under name.
func (s *FieldStore) Tab(name string) (*Tab, bool) {
	tab, ok := s.tabs[name]
	return tab, ok
}

// Tabs returns copies of the registered tabs in creation order.
func (s *FieldStore) Tabs() []Tab {
	out := make([]Tab, 0, len(s.tabOrder))
	for _, name := range s.tabOrder {
		tab := s.tabs[name]
		copied := *tab
		copied.Groups = append([]string(nil), tab.Groups...)
		out = append(out, copied)
	}
	return out
}

// AttachGroupToTab records group membership on both sides. The group and tab
// are created when absent.
func (s *FieldStore) AttachGroupToTab(groupName, tabName string) {
	group := s.EnsureGroup(groupName)
	tab := s.EnsureTab(tabName)
	if group.Tab == tabName {
		return
	}
	if group.Tab != "" {
		if previous, ok := s.tabs[group.Tab]; ok {
			previous.Groups = removeString(previous.Groups, groupName)
		}
	}
	group.Tab = tabName
	tab.Groups = append(tab.Groups, groupName)
}

// RemoveTab drops a tab and all its groups, returning every field name those
// groups held.
func (s *FieldStore) RemoveTab(name string) []string {
	tab, ok := s.tabs[name]
	if !ok {
		return nil
	}
	delete(s.tabs, name)
	s.tabOrder = removeString(s.tabOrder, name)
	var removed []string
	for _, groupName := range tab.Groups {
		if group, ok := s.groups[groupName]; ok {
			group.Tab = ""
			removed = append(removed, s.RemoveGroup(groupName)...)
		}
	}
	return removed
}
