package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formmapper/pkg/fields"
)

func TestTreeAddAndKeys(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	if err := tree.Add("title", TypeText, nil); err != nil {
		t.Fatalf("Add title: %v", err)
	}
	if err := tree.Add("body", TypeTextarea, fields.Options{"rows": 10}); err != nil {
		t.Fatalf("Add body: %v", err)
	}

	if diff := cmp.Diff([]string{"title", "body"}, tree.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	child, ok := tree.Get("body")
	if !ok {
		t.Fatal("Get body: not found")
	}
	if child.Type != TypeTextarea {
		t.Fatalf("child type: got %q", child.Type)
	}
	if child.Options.Int("rows", 0) != 10 {
		t.Fatalf("child options: got %v", child.Options)
	}
}

func TestTreeAddRejectsReservedNames(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	for _, name := range []string{"author.email", "tags[]", "tags[0]"} {
		if err := tree.Add(name, TypeText, nil); err == nil {
			t.Fatalf("Add(%q): expected reserved character error", name)
		}
	}
	if err := tree.Add("", TypeText, nil); err == nil {
		t.Fatal("Add(empty): expected error")
	}
}

func TestTreeAddDuplicate(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	if err := tree.Add("title", TypeText, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := tree.Add("title", TypeTextarea, nil); err == nil {
		t.Fatal("expected duplicate error")
	}
}

func TestTreeAddDefaultsType(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	if err := tree.Add("title", "", nil); err != nil {
		t.Fatalf("Add: %v", err)
	}
	child, _ := tree.Get("title")
	if child.Type != TypeText {
		t.Fatalf("default type: got %q", child.Type)
	}
}

func TestTreeRemove(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	for _, name := range []string{"a", "b", "c"} {
		if err := tree.Add(name, TypeText, nil); err != nil {
			t.Fatalf("Add %s: %v", name, err)
		}
	}

	tree.Remove("b")
	tree.Remove("missing")

	if tree.Has("b") {
		t.Fatal("b should be gone")
	}
	if diff := cmp.Diff([]string{"a", "c"}, tree.Keys()); diff != "" {
		t.Fatalf("keys after remove (-want +got):\n%s", diff)
	}
	if tree.Len() != 2 {
		t.Fatalf("Len: got %d", tree.Len())
	}
}

func TestTreeDoesNotRetainOptions(t *testing.T) {
	t.Parallel()

	opts := fields.Options{"rows": 4}
	tree := NewTree()
	if err := tree.Add("body", TypeTextarea, opts); err != nil {
		t.Fatalf("Add: %v", err)
	}
	opts["rows"] = 99

	child, _ := tree.Get("body")
	if got := child.Options.Int("rows", 0); got != 4 {
		t.Fatalf("tree shares caller map: got %d", got)
	}
}
