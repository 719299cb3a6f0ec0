package show

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formmapper/pkg/admin"
	"github.com/goliatone/go-formmapper/pkg/fields"
	"github.com/goliatone/go-formmapper/pkg/form"
	"github.com/goliatone/go-formmapper/pkg/label"
	"github.com/goliatone/go-formmapper/pkg/show/template"
	"github.com/goliatone/go-formmapper/pkg/show/template/gotemplate"
)

const (
	groupTemplate = "show/group.html.tpl"
	viewTemplate  = "show/view.html.tpl"
)

// Renderer draws completed show field descriptions against a model subject.
type Renderer struct {
	engine     template.Renderer
	translator label.Translator
	locale     string
	missing    label.MissingHandler
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithEngine replaces the template engine. The default engine loads the
// embedded show templates.
func WithEngine(e template.Renderer) RendererOption {
	return func(r *Renderer) {
		if e != nil {
			r.engine = e
		}
	}
}

// WithTranslator resolves field and group labels through a message catalog
// for the given locale.
func WithTranslator(t label.Translator, locale string) RendererOption {
	return func(r *Renderer) {
		r.translator = t
		if locale != "" {
			r.locale = locale
		}
	}
}

// WithMissingHandler customizes the label used when a translation key cannot
// be resolved.
func WithMissingHandler(h label.MissingHandler) RendererOption {
	return func(r *Renderer) { r.missing = h }
}

// NewRenderer builds a renderer, defaulting to a pongo2 engine over the
// embedded templates.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	r := &Renderer{locale: "en"}
	for _, opt := range opts {
		opt(r)
	}
	if r.engine == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(TemplateFS()))
		if err != nil {
			return nil, fmt.Errorf("show: build default engine: %w", err)
		}
		r.engine = engine
	}
	return r, nil
}

// RenderField renders one field. The description must carry a template;
// untemplated fields are the caller's to skip.
func (r *Renderer) RenderField(a *admin.Definition, desc *fields.Description, subject any) (string, error) {
	if desc == nil {
		return "", fmt.Errorf("show: cannot render nil description")
	}
	if desc.Template == "" {
		return "", fmt.Errorf("show: field %q has no template", desc.Name)
	}

	raw, ok := desc.Value(subject)
	ctx := map[string]any{
		"name":  desc.Name,
		"type":  desc.Type,
		"label": r.fieldLabel(a, desc),
		"help":  desc.Help,
		"empty": !ok,
	}
	if ok {
		if isCollectionType(desc.Type) {
			ctx["items"] = collectionItems(raw)
		} else {
			ctx["value"] = displayValue(desc.Type, raw)
		}
	}
	return r.engine.RenderTemplate(desc.Template, ctx)
}

// RenderView renders every templated show field of the admin, group by group,
// and wraps the result in the view chrome. Groups whose fields all lack
// templates are omitted.
func (r *Renderer) RenderView(a *admin.Definition, subject any) (string, error) {
	if a == nil {
		return "", fmt.Errorf("show: cannot render nil admin")
	}
	store := a.Show()

	var rendered []string
	for _, group := range store.Groups() {
		var fieldHTML []string
		for _, name := range group.Fields {
			desc, ok := store.Get(name)
			if !ok || desc.Template == "" {
				continue
			}
			html, err := r.RenderField(a, desc, subject)
			if err != nil {
				return "", fmt.Errorf("show: render field %q: %w", name, err)
			}
			fieldHTML = append(fieldHTML, html)
		}
		if len(fieldHTML) == 0 {
			continue
		}
		html, err := r.engine.RenderTemplate(groupTemplate, map[string]any{
			"label":       r.groupLabel(a, group),
			"description": group.Description,
			"fields":      fieldHTML,
		})
		if err != nil {
			return "", fmt.Errorf("show: render group %q: %w", group.Name, err)
		}
		rendered = append(rendered, html)
	}

	return r.engine.RenderTemplate(viewTemplate, map[string]any{
		"admin":  a.Code(),
		"title":  a.Label(),
		"groups": rendered,
	})
}

func (r *Renderer) fieldLabel(a *admin.Definition, desc *fields.Description) string {
	lbl := desc.Label
	if lbl == "" {
		lbl = label.Humanize(desc.Name)
	}
	if r.translator == nil {
		return lbl
	}
	domain := desc.TranslationDomain
	if domain == "" && a != nil {
		domain = a.TranslationDomain()
	}
	return label.Translate(r.translator, r.locale, domain, lbl, lbl, r.missing)
}

func (r *Renderer) groupLabel(a *admin.Definition, group admin.Group) string {
	if group.Label == "" {
		return ""
	}
	if r.translator == nil {
		return group.Label
	}
	domain := group.TranslationDomain
	if domain == "" && a != nil {
		domain = a.TranslationDomain()
	}
	return label.Translate(r.translator, r.locale, domain, group.Label, group.Label, r.missing)
}

func isCollectionType(fieldType string) bool {
	return fieldType == form.TypeCollection || fieldType == form.TypeNativeCollection
}

// displayValue formats raw model values for their field type. Times are
// rendered with fixed layouts; percent fractions are scaled to percent
// points; multi-select choices join into one line.
func displayValue(fieldType string, value any) any {
	switch fieldType {
	case form.TypeDate:
		return formatTime(value, "2006-01-02")
	case form.TypeDatetime:
		return formatTime(value, "2006-01-02 15:04")
	case form.TypeTime:
		return formatTime(value, "15:04")
	case form.TypePercent:
		return formatPercent(value)
	case form.TypeChoice:
		if list, ok := value.([]any); ok {
			items := collectionItems(list)
			return strings.Join(items, ", ")
		}
	case form.TypeModel:
		return itemLabel(value)
	}
	return value
}

func formatTime(value any, layout string) any {
	switch v := value.(type) {
	case time.Time:
		return v.Format(layout)
	case *time.Time:
		if v != nil {
			return v.Format(layout)
		}
		return ""
	}
	return value
}

// formatPercent assumes fractional storage for floats, so 0.15 renders as 15.
// Integers are taken as percent points already.
func formatPercent(value any) any {
	switch v := value.(type) {
	case float64:
		return strconv.FormatFloat(v*100, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v)*100, 'f', -1, 32)
	}
	return value
}

func collectionItems(value any) []string {
	switch v := value.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, itemLabel(item))
		}
		return out
	default:
		return []string{itemLabel(value)}
	}
}

// itemLabel picks a display string for an associated item: decoded documents
// advertise themselves through a label-ish key, everything else stringifies.
func itemLabel(item any) string {
	if m, ok := item.(map[string]any); ok {
		for _, key := range []string{"label", "name", "title"} {
			if s, ok := m[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return fmt.Sprint(item)
}
