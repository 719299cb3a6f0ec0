package show

import (
	"testing"

	"github.com/goliatone/go-formmapper/pkg/admin"
	"github.com/goliatone/go-formmapper/pkg/fields"
	"github.com/goliatone/go-formmapper/pkg/form"
	"github.com/goliatone/go-formmapper/pkg/templates"
)

func TestFixDescriptionAssignsTemplate(t *testing.T) {
	t.Parallel()

	builder := NewBuilder()
	def := admin.New("app.article", admin.WithTranslationDomain("admin"))

	desc := fields.New("email", fields.Options{fields.OptionType: form.TypeEmail})
	if err := builder.FixDescription(def, desc); err != nil {
		t.Fatalf("FixDescription: %v", err)
	}

	if desc.Template != "show/email.html.tpl" {
		t.Fatalf("template: got %q", desc.Template)
	}
	if desc.PropertyPath != "email" {
		t.Fatalf("property path: got %q", desc.PropertyPath)
	}
	if desc.TranslationDomain != "admin" {
		t.Fatalf("translation domain: got %q", desc.TranslationDomain)
	}
}

func TestFixDescriptionLeavesUnknownTypesUntemplated(t *testing.T) {
	t.Parallel()

	builder := NewBuilder()
	desc := fields.New("secret", fields.Options{fields.OptionType: form.TypePassword})
	if err := builder.FixDescription(admin.New("app.article"), desc); err != nil {
		t.Fatalf("FixDescription: %v", err)
	}
	if desc.Template != "" {
		t.Fatalf("password fields have no show template, got %q", desc.Template)
	}
}

func TestFixDescriptionKeepsExplicitValues(t *testing.T) {
	t.Parallel()

	builder := NewBuilder()
	desc := fields.New("email", fields.Options{
		fields.OptionType:              form.TypeEmail,
		fields.OptionTemplate:          "custom/contact.html.tpl",
		fields.OptionPropertyPath:      "contact.email",
		fields.OptionTranslationDomain: "contacts",
	})
	if err := builder.FixDescription(admin.New("app.article"), desc); err != nil {
		t.Fatalf("FixDescription: %v", err)
	}

	if desc.Template != "custom/contact.html.tpl" {
		t.Fatalf("explicit template lost: %q", desc.Template)
	}
	if desc.PropertyPath != "contact.email" {
		t.Fatalf("explicit property path lost: %q", desc.PropertyPath)
	}
	if desc.TranslationDomain != "contacts" {
		t.Fatalf("explicit domain lost: %q", desc.TranslationDomain)
	}
}

func TestFixDescriptionCustomRegistry(t *testing.T) {
	t.Parallel()

	reg := templates.NewRegistry(templates.WithTemplate(form.TypeText, "acme/text.html.tpl"))
	builder := NewBuilder(WithTemplates(reg))

	desc := fields.New("title", fields.Options{fields.OptionType: form.TypeText})
	if err := builder.FixDescription(admin.New("app.article"), desc); err != nil {
		t.Fatalf("FixDescription: %v", err)
	}
	if desc.Template != "acme/text.html.tpl" {
		t.Fatalf("custom registry ignored: %q", desc.Template)
	}
	if builder.Templates() != reg {
		t.Fatal("Templates accessor should expose the registry")
	}
}

func TestFixDescriptionValidation(t *testing.T) {
	t.Parallel()

	builder := NewBuilder()
	if err := builder.FixDescription(admin.New("a"), nil); err == nil {
		t.Fatal("expected error for nil description")
	}
	if err := builder.FixDescription(admin.New("a"), &fields.Description{}); err == nil {
		t.Fatal("expected error for unnamed description")
	}
}
