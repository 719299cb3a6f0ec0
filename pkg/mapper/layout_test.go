package mapper

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formmapper/pkg/access"
	"github.com/goliatone/go-formmapper/pkg/admin"
	"github.com/goliatone/go-formmapper/pkg/fields"
	"github.com/goliatone/go-formmapper/pkg/form"
	"github.com/goliatone/go-formmapper/pkg/layout"
)

const articleLayoutDoc = `admins:
  app.article:
    tabs:
      - name: main
        label: Main
        groups:
          - name: content
            label: Content
            fields:
              - name: title
              - name: body
                type: textarea
                required: false
    groups:
      - name: meta
        fields:
          - name: slug
          - name: internal_notes
            role: admin.article.secret
`

func loadArticleLayout(t *testing.T) layout.Admin {
	t.Helper()
	set, err := layout.Load(fstest.MapFS{
		"article.yaml": &fstest.MapFile{Data: []byte(articleLayoutDoc)},
	})
	if err != nil {
		t.Fatalf("load layout: %v", err)
	}
	doc, ok := set.Admin("app.article")
	if !ok {
		t.Fatal("layout missing app.article")
	}
	return doc
}

func TestApplyLayoutForm(t *testing.T) {
	t.Parallel()

	doc := loadArticleLayout(t)
	m, tree, def := newFormMapper(t)
	m.ApplyLayout(doc)
	if err := m.Err(); err != nil {
		t.Fatalf("ApplyLayout: %v", err)
	}

	if diff := cmp.Diff([]string{"title", "body", "slug", "internal_notes"}, tree.Keys()); diff != "" {
		t.Fatalf("builder keys (-want +got):\n%s", diff)
	}

	body, _ := def.Form().Get("body")
	if body.Type != form.TypeTextarea {
		t.Fatalf("body type: %q", body.Type)
	}
	child, _ := tree.Get("body")
	if child.Options.Bool(fields.OptionRequired, true) {
		t.Fatal("layout required=false should reach the builder")
	}

	content, _ := def.Form().Group("content")
	if content.Label != "Content" || content.Tab != "main" {
		t.Fatalf("content group: %+v", content)
	}
	if diff := cmp.Diff([]string{"title", "body"}, content.Fields); diff != "" {
		t.Fatalf("content fields (-want +got):\n%s", diff)
	}

	meta, _ := def.Form().Group("meta")
	if diff := cmp.Diff([]string{"slug", "internal_notes"}, meta.Fields); diff != "" {
		t.Fatalf("meta fields (-want +got):\n%s", diff)
	}

	tab, _ := def.Form().Tab("main")
	if diff := cmp.Diff([]string{"content"}, tab.Groups); diff != "" {
		t.Fatalf("tab groups (-want +got):\n%s", diff)
	}
}

func TestApplyLayoutHonorsRoles(t *testing.T) {
	t.Parallel()

	doc := loadArticleLayout(t)
	m, tree, def := newFormMapper(t,
		admin.WithChecker(access.NewRoleChecker("admin.article.view")),
	)
	m.ApplyLayout(doc)
	if err := m.Err(); err != nil {
		t.Fatalf("ApplyLayout: %v", err)
	}

	if tree.Has("internal_notes") || def.Form().Has("internal_notes") {
		t.Fatal("gated layout field should leave no trace")
	}
	if !tree.Has("title") {
		t.Fatal("ungated fields should still register")
	}
}

func TestApplyLayoutShow(t *testing.T) {
	t.Parallel()

	doc := loadArticleLayout(t)
	m, def := newShowMapper(t)
	m.ApplyLayout(doc)
	if err := m.Err(); err != nil {
		t.Fatalf("ApplyLayout: %v", err)
	}

	body, _ := def.Show().Get("body")
	if body.Template != "show/text.html.tpl" {
		t.Fatalf("body template: %q", body.Template)
	}
	content, _ := def.Show().Group("content")
	if diff := cmp.Diff([]string{"title", "body"}, content.Fields); diff != "" {
		t.Fatalf("content fields (-want +got):\n%s", diff)
	}
}

func TestApplyLayoutSticky(t *testing.T) {
	t.Parallel()

	doc := loadArticleLayout(t)
	m := NewFormMapper(context.Background(), nil, form.NewTree())
	m.ApplyLayout(doc)
	if m.Err() == nil {
		t.Fatal("failed mapper should stay failed")
	}
	if len(m.Keys()) != 0 {
		t.Fatalf("keys: %v", m.Keys())
	}
}
