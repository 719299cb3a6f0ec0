package show

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-formmapper/pkg/admin"
	"github.com/goliatone/go-formmapper/pkg/fields"
	"github.com/goliatone/go-formmapper/pkg/form"
	"github.com/goliatone/go-formmapper/pkg/label"
)

func fixedDescription(t *testing.T, def *admin.Definition, name string, opts fields.Options) *fields.Description {
	t.Helper()
	desc := fields.New(name, opts)
	if err := NewBuilder().FixDescription(def, desc); err != nil {
		t.Fatalf("FixDescription %s: %v", name, err)
	}
	return desc
}

func TestRenderFieldText(t *testing.T) {
	t.Parallel()

	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	def := admin.New("app.article")
	desc := fixedDescription(t, def, "title", fields.Options{
		fields.OptionType:  form.TypeText,
		fields.OptionLabel: "Title",
	})

	html, err := renderer.RenderField(def, desc, map[string]any{"title": "Hello <World>"})
	if err != nil {
		t.Fatalf("RenderField: %v", err)
	}

	if !strings.Contains(html, "Title") {
		t.Fatalf("label missing:\n%s", html)
	}
	if !strings.Contains(html, "Hello &lt;World&gt;") {
		t.Fatalf("value should be escaped:\n%s", html)
	}
	if !strings.Contains(html, "show-field-text") {
		t.Fatalf("type class missing:\n%s", html)
	}
}

func TestRenderFieldMissingValue(t *testing.T) {
	t.Parallel()

	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	def := admin.New("app.article")
	desc := fixedDescription(t, def, "subtitle", fields.Options{fields.OptionType: form.TypeText})

	html, err := renderer.RenderField(def, desc, map[string]any{"title": "present"})
	if err != nil {
		t.Fatalf("RenderField: %v", err)
	}
	if !strings.Contains(html, "show-field-missing") {
		t.Fatalf("missing marker absent:\n%s", html)
	}
}

func TestRenderFieldEmail(t *testing.T) {
	t.Parallel()

	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	def := admin.New("app.article")
	desc := fixedDescription(t, def, "author.email", fields.Options{
		fields.OptionType:         form.TypeEmail,
		fields.OptionPropertyPath: "author.email",
	})

	subject := map[string]any{"author": map[string]any{"email": "ada@example.com"}}
	html, err := renderer.RenderField(def, desc, subject)
	if err != nil {
		t.Fatalf("RenderField: %v", err)
	}
	if !strings.Contains(html, `href="mailto:ada@example.com"`) {
		t.Fatalf("mailto link missing:\n%s", html)
	}
}

func TestRenderFieldBoolean(t *testing.T) {
	t.Parallel()

	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	def := admin.New("app.article")
	desc := fixedDescription(t, def, "published", fields.Options{fields.OptionType: form.TypeCheckbox})

	html, err := renderer.RenderField(def, desc, map[string]any{"published": true})
	if err != nil {
		t.Fatalf("RenderField: %v", err)
	}
	if !strings.Contains(html, "show-field-yes") {
		t.Fatalf("true value not rendered:\n%s", html)
	}

	html, err = renderer.RenderField(def, desc, map[string]any{"published": false})
	if err != nil {
		t.Fatalf("RenderField: %v", err)
	}
	if !strings.Contains(html, "show-field-no") {
		t.Fatalf("false value not rendered:\n%s", html)
	}
}

func TestRenderFieldDate(t *testing.T) {
	t.Parallel()

	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	def := admin.New("app.article")
	desc := fixedDescription(t, def, "published_at", fields.Options{fields.OptionType: form.TypeDate})

	when := time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC)
	html, err := renderer.RenderField(def, desc, map[string]any{"published_at": when})
	if err != nil {
		t.Fatalf("RenderField: %v", err)
	}
	if !strings.Contains(html, "2024-05-17") {
		t.Fatalf("date not formatted:\n%s", html)
	}
}

func TestRenderFieldCollection(t *testing.T) {
	t.Parallel()

	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	def := admin.New("app.article")
	desc := fixedDescription(t, def, "tags", fields.Options{fields.OptionType: form.TypeNativeCollection})

	subject := map[string]any{"tags": []any{"go", map[string]any{"name": "admin"}}}
	html, err := renderer.RenderField(def, desc, subject)
	if err != nil {
		t.Fatalf("RenderField: %v", err)
	}
	if !strings.Contains(html, "<li>go</li>") || !strings.Contains(html, "<li>admin</li>") {
		t.Fatalf("collection items missing:\n%s", html)
	}
}

func TestRenderFieldUntemplated(t *testing.T) {
	t.Parallel()

	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	desc := fields.New("secret", fields.Options{fields.OptionType: form.TypePassword})
	if _, err := renderer.RenderField(admin.New("a"), desc, nil); err == nil {
		t.Fatal("expected error for untemplated field")
	}
}

func TestRenderFieldTranslatesLabels(t *testing.T) {
	t.Parallel()

	translator := label.NewMapTranslator(map[string]map[string]map[string]string{
		"de": {"admin": {"show.label_title": "Titel"}},
	})
	renderer, err := NewRenderer(WithTranslator(translator, "de"))
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	def := admin.New("app.article", admin.WithTranslationDomain("admin"))
	desc := fixedDescription(t, def, "title", fields.Options{
		fields.OptionType:  form.TypeText,
		fields.OptionLabel: "show.label_title",
	})

	html, err := renderer.RenderField(def, desc, map[string]any{"title": "x"})
	if err != nil {
		t.Fatalf("RenderField: %v", err)
	}
	if !strings.Contains(html, "Titel") {
		t.Fatalf("label not translated:\n%s", html)
	}
}

func TestRenderView(t *testing.T) {
	t.Parallel()

	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	def := admin.New("app.article", admin.WithLabel("Article"))
	store := def.Show()
	builder := NewBuilder()

	for _, spec := range []struct {
		name string
		opts fields.Options
	}{
		{name: "title", opts: fields.Options{fields.OptionType: form.TypeText}},
		{name: "published", opts: fields.Options{fields.OptionType: form.TypeCheckbox}},
	} {
		desc := fields.New(spec.name, spec.opts)
		if err := builder.FixDescription(def, desc); err != nil {
			t.Fatalf("FixDescription: %v", err)
		}
		if err := store.Add(spec.name, desc); err != nil {
			t.Fatalf("Add: %v", err)
		}
		store.AppendToGroup("default", spec.name)
	}
	content, _ := store.Group("default")
	content.Label = "Content"

	subject := map[string]any{"title": "Hello", "published": true}
	html, err := renderer.RenderView(def, subject)
	if err != nil {
		t.Fatalf("RenderView: %v", err)
	}

	for _, want := range []string{
		`data-admin="app.article"`,
		"Article",
		"Content",
		"Hello",
		"show-field-yes",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("view missing %q:\n%s", want, html)
		}
	}
}

func TestRenderViewSkipsUntemplatedFields(t *testing.T) {
	t.Parallel()

	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	def := admin.New("app.account")
	store := def.Show()
	desc := fields.New("password", fields.Options{fields.OptionType: form.TypePassword})
	if err := NewBuilder().FixDescription(def, desc); err != nil {
		t.Fatalf("FixDescription: %v", err)
	}
	if err := store.Add("password", desc); err != nil {
		t.Fatalf("Add: %v", err)
	}
	store.AppendToGroup("default", "password")

	html, err := renderer.RenderView(def, map[string]any{"password": "hunter2"})
	if err != nil {
		t.Fatalf("RenderView: %v", err)
	}
	if strings.Contains(html, "hunter2") {
		t.Fatalf("untemplated field leaked into view:\n%s", html)
	}
	if strings.Contains(html, "show-group") {
		t.Fatalf("empty group should be omitted:\n%s", html)
	}
}
