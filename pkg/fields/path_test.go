package fields

import "testing"

func TestPropertyPathValue(t *testing.T) {
	t.Parallel()

	subject := map[string]any{
		"title": "Hello",
		"author": map[string]any{
			"name":  "Ada",
			"email": "ada@example.com",
		},
		"tags": []any{"go", "admin"},
	}

	tests := []struct {
		name   string
		path   PropertyPath
		want   any
		wantOK bool
	}{
		{name: "top level", path: "title", want: "Hello", wantOK: true},
		{name: "nested", path: "author.email", want: "ada@example.com", wantOK: true},
		{name: "missing leaf", path: "author.phone", wantOK: false},
		{name: "missing branch", path: "editor.name", wantOK: false},
		{name: "empty path", path: "", wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := tc.path.Value(subject)
			if ok != tc.wantOK {
				t.Fatalf("ok: got %v, want %v", ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Fatalf("value: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPropertyPathValueIndexed(t *testing.T) {
	t.Parallel()

	subject := map[string]any{
		"tags": []any{"go", "admin"},
	}

	got, ok := PropertyPath("tags[1]").Value(subject)
	if !ok {
		t.Fatal("expected indexed path to resolve")
	}
	if got != "admin" {
		t.Fatalf("value: got %v", got)
	}
}

func TestNewPropertyPath(t *testing.T) {
	t.Parallel()

	if got := NewPropertyPath("author", "", "email"); got != "author.email" {
		t.Fatalf("NewPropertyPath: got %q", got)
	}
	if got := NewPropertyPath("title"); got.IsNested() {
		t.Fatal("single segment reported as nested")
	}
	segs := PropertyPath("a.b.c").Segments()
	if len(segs) != 3 || segs[1] != "b" {
		t.Fatalf("Segments: got %v", segs)
	}
}
