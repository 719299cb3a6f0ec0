// Package layout loads declarative admin form layouts from YAML or JSON
// documents. A layout names the tabs and groups of one or more admins and
// the fields each group holds, in order; mappers replay a loaded layout
// instead of hand-written Add chains.
package layout

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// DefaultPatterns are the include globs Load uses when none are given.
var DefaultPatterns = []string{"**/*.yaml", "**/*.yml", "**/*.json"}

// FieldConfig declares one field inside a group. Only Name is required;
// everything else falls back to the mapper's own defaulting.
type FieldConfig struct {
	Name     string         `json:"name" yaml:"name"`
	Type     string         `json:"type" yaml:"type"`
	Label    string         `json:"label" yaml:"label"`
	Role     string         `json:"role" yaml:"role"`
	Help     string         `json:"help" yaml:"help"`
	Required *bool          `json:"required" yaml:"required"`
	Options  map[string]any `json:"options" yaml:"options"`
}

// GroupConfig declares a group and its fields in display order.
type GroupConfig struct {
	Name              string        `json:"name" yaml:"name"`
	Label             string        `json:"label" yaml:"label"`
	TranslationDomain string        `json:"translation_domain" yaml:"translation_domain"`
	Description       string        `json:"description" yaml:"description"`
	Class             string        `json:"class" yaml:"class"`
	Fields            []FieldConfig `json:"fields" yaml:"fields"`
}

// TabConfig declares a tab and the groups it contains.
type TabConfig struct {
	Name              string        `json:"name" yaml:"name"`
	Label             string        `json:"label" yaml:"label"`
	TranslationDomain string        `json:"translation_domain" yaml:"translation_domain"`
	Groups            []GroupConfig `json:"groups" yaml:"groups"`
}

// Admin is the layout of one admin: tabbed groups first, then loose groups.
// Class optionally names the model class the admin manages so tools can check
// layout fields against a schema catalog.
type Admin struct {
	Code   string
	Class  string
	Source string
	Tabs   []TabConfig
	Groups []GroupConfig
}

// Set holds every admin layout found under a filesystem.
type Set struct {
	admins map[string]Admin
	order  []string
}

// Admin returns the layout registered for the given admin code.
func (s *Set) Admin(code string) (Admin, bool) {
	if s == nil {
		return Admin{}, false
	}
	a, ok := s.admins[code]
	return a, ok
}

// Codes lists the admin codes in sorted order.
func (s *Set) Codes() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Empty reports whether the set holds any layouts.
func (s *Set) Empty() bool {
	return s == nil || len(s.admins) == 0
}

type documentFile struct {
	Admins map[string]adminFile `json:"admins" yaml:"admins"`
}

type adminFile struct {
	Class  string        `json:"class" yaml:"class"`
	Tabs   []TabConfig   `json:"tabs" yaml:"tabs"`
	Groups []GroupConfig `json:"groups" yaml:"groups"`
}

// Load walks the filesystem with the given doublestar include patterns and
// parses every matching layout document. When fsys is nil or nothing
// matches, the returned set is empty. Duplicate admin codes across files are
// rejected.
func Load(fsys fs.FS, patterns ...string) (*Set, error) {
	set := &Set{admins: make(map[string]Admin)}
	if fsys == nil {
		return set, nil
	}
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	paths, err := matchPatterns(fsys, patterns)
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("layout: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return nil, err
		}
		for code, raw := range doc.Admins {
			id := strings.TrimSpace(code)
			if id == "" {
				return nil, fmt.Errorf("layout: file %s defines an empty admin code", path)
			}
			if existing, ok := set.admins[id]; ok {
				return nil, fmt.Errorf("layout: duplicate admin %q (files %s and %s)", id, existing.Source, path)
			}
			admin, err := normalizeAdmin(id, path, raw)
			if err != nil {
				return nil, err
			}
			set.admins[id] = admin
			set.order = append(set.order, id)
		}
	}
	sort.Strings(set.order)
	return set, nil
}

func matchPatterns(fsys fs.FS, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("layout: glob %q: %w", pattern, err)
		}
		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				paths = append(paths, match)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("layout: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return documentFile{}, fmt.Errorf("layout: parse %s: invalid JSON or YAML", source)
}

func normalizeAdmin(code, source string, raw adminFile) (Admin, error) {
	admin := Admin{Code: code, Class: strings.TrimSpace(raw.Class), Source: source}

	groupNames := make(map[string]bool)
	fieldNames := make(map[string]string)
	tabNames := make(map[string]bool)

	for _, tab := range raw.Tabs {
		name := strings.TrimSpace(tab.Name)
		if name == "" {
			return Admin{}, fmt.Errorf("layout: admin %q (file %s) defines a tab without a name", code, source)
		}
		if tabNames[name] {
			return Admin{}, fmt.Errorf("layout: admin %q (file %s) defines duplicate tab %q", code, source, name)
		}
		tabNames[name] = true

		normalized := tab
		normalized.Name = name
		normalized.Groups = nil
		for _, group := range tab.Groups {
			out, err := normalizeGroup(code, source, group, groupNames, fieldNames)
			if err != nil {
				return Admin{}, err
			}
			normalized.Groups = append(normalized.Groups, out)
		}
		admin.Tabs = append(admin.Tabs, normalized)
	}

	for _, group := range raw.Groups {
		out, err := normalizeGroup(code, source, group, groupNames, fieldNames)
		if err != nil {
			return Admin{}, err
		}
		admin.Groups = append(admin.Groups, out)
	}

	return admin, nil
}

func normalizeGroup(code, source string, raw GroupConfig, groups map[string]bool, fieldOwners map[string]string) (GroupConfig, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return GroupConfig{}, fmt.Errorf("layout: admin %q (file %s) defines a group without a name", code, source)
	}
	if groups[name] {
		return GroupConfig{}, fmt.Errorf("layout: admin %q (file %s) defines duplicate group %q", code, source, name)
	}
	groups[name] = true

	out := raw
	out.Name = name
	out.Fields = nil
	for _, field := range raw.Fields {
		fieldName := strings.TrimSpace(field.Name)
		if fieldName == "" {
			return GroupConfig{}, fmt.Errorf("layout: admin %q (file %s) group %q lists a field without a name", code, source, name)
		}
		if owner, ok := fieldOwners[fieldName]; ok {
			return GroupConfig{}, fmt.Errorf("layout: admin %q (file %s) field %q appears in groups %q and %q", code, source, fieldName, owner, name)
		}
		fieldOwners[fieldName] = name

		cloned := field
		cloned.Name = fieldName
		cloned.Options = cloneOptionMap(field.Options)
		out.Fields = append(out.Fields, cloned)
	}
	return out, nil
}

func cloneOptionMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}
