// Package templates maps field types to the templates that render them on
// show screens. The registry starts from a built-in table, accepts explicit
// overrides, and can consult a theme for skin-specific templates.
package templates

import (
	"fmt"
	"sort"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formmapper/pkg/form"
)

// themeKeyPrefix namespaces show templates inside a theme manifest, keeping
// them apart from form and layout partials the same theme may carry.
const themeKeyPrefix = "show."

// Defaults returns the built-in field type to template table. Types without a
// sensible read-only rendering, such as passwords, are deliberately absent.
func Defaults() map[string]string {
	return map[string]string{
		form.TypeText:             "show/text.html.tpl",
		form.TypeTextarea:         "show/text.html.tpl",
		form.TypeEmail:            "show/email.html.tpl",
		form.TypeURL:              "show/url.html.tpl",
		form.TypeInteger:          "show/number.html.tpl",
		form.TypeNumber:           "show/number.html.tpl",
		form.TypePercent:          "show/percent.html.tpl",
		form.TypeCheckbox:         "show/boolean.html.tpl",
		form.TypeChoice:           "show/choice.html.tpl",
		form.TypeDate:             "show/date.html.tpl",
		form.TypeDatetime:         "show/datetime.html.tpl",
		form.TypeTime:             "show/time.html.tpl",
		form.TypeModel:            "show/model.html.tpl",
		form.TypeCollection:       "show/collection.html.tpl",
		form.TypeNativeCollection: "show/collection.html.tpl",
	}
}

// Registry resolves the template for a field type. Explicit registrations win
// over theme templates, which win over the built-in defaults. The registry is
// shared between admins and safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	defaults  map[string]string
	overrides map[string]string

	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
	selected     bool
	selection    *theme.Selection
	selectionErr error
}

// Option configures a Registry.
type Option func(*Registry)

// WithTheme attaches a theme selector; Resolve consults the named theme and
// variant for "show.<type>" template entries.
func WithTheme(selector theme.ThemeSelector, name, variant string) Option {
	return func(r *Registry) {
		r.selector = selector
		r.themeName = name
		r.themeVariant = variant
	}
}

// WithTemplate seeds an explicit override at construction time.
func WithTemplate(fieldType, template string) Option {
	return func(r *Registry) { r.overrides[fieldType] = template }
}

// NewRegistry builds a registry seeded with the built-in defaults.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{defaults: Defaults(), overrides: map[string]string{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register installs an explicit template for a field type, shadowing both the
// theme and the defaults.
func (r *Registry) Register(fieldType, template string) error {
	if fieldType == "" {
		return fmt.Errorf("templates: field type is required")
	}
	if template == "" {
		return fmt.Errorf("templates: template for %q is required", fieldType)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides[fieldType] = template
	return nil
}

// Resolve returns the template for a field type. The second return is false
// when no source provides one, which callers treat as "no template assigned".
func (r *Registry) Resolve(fieldType string) (string, bool) {
	if fieldType == "" {
		return "", false
	}
	r.mu.RLock()
	if tpl, ok := r.overrides[fieldType]; ok {
		r.mu.RUnlock()
		return tpl, true
	}
	r.mu.RUnlock()

	if tpl, ok := r.themeTemplate(fieldType); ok {
		return tpl, true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	tpl, ok := r.defaults[fieldType]
	return tpl, ok
}

// Types lists every field type the registry can resolve, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{}, len(r.defaults)+len(r.overrides))
	for t := range r.defaults {
		seen[t] = struct{}{}
	}
	for t := range r.overrides {
		seen[t] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Selection returns the resolved theme selection, selecting it on first use.
// Without a configured selector both returns are nil.
func (r *Registry) Selection() (*theme.Selection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selectionLocked()
}

func (r *Registry) selectionLocked() (*theme.Selection, error) {
	if r.selector == nil {
		return nil, nil
	}
	if !r.selected {
		r.selection, r.selectionErr = r.selector.Select(r.themeName, r.themeVariant)
		r.selected = true
	}
	return r.selection, r.selectionErr
}

// themeTemplate looks up "show.<type>" in the selected theme, variant entries
// first, then the manifest-wide table. Selection failures disable the theme
// source rather than failing resolution.
func (r *Registry) themeTemplate(fieldType string) (string, bool) {
	r.mu.Lock()
	selection, err := r.selectionLocked()
	r.mu.Unlock()
	if err != nil || selection == nil || selection.Manifest == nil {
		return "", false
	}

	key := themeKeyPrefix + fieldType
	manifest := selection.Manifest
	if selection.Variant != "" {
		if variant, ok := manifest.Variants[selection.Variant]; ok {
			if tpl, ok := variant.Templates[key]; ok && tpl != "" {
				return tpl, true
			}
		}
	}
	if tpl, ok := manifest.Templates[key]; ok && tpl != "" {
		return tpl, true
	}
	return "", false
}
