package schema

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "openapi.json")
	if err := os.WriteFile(path, []byte(articleDocument), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	catalog, err := NewLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := catalog.Class("Article"); !ok {
		t.Fatal("Article class missing")
	}
}

func TestLoadFromURL(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(articleDocument))
	}))
	defer server.Close()

	catalog, err := NewLoader().Load(context.Background(), server.URL+"/openapi.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if catalog.Len() != 1 {
		t.Fatalf("classes: %v", catalog.Classes())
	}
}

func TestLoadFromFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"schemas/openapi.json": &fstest.MapFile{Data: []byte(articleDocument)},
	}
	catalog, err := NewLoader().LoadSource(context.Background(), SourceFromFS(fsys, "schemas/openapi.json"))
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	if _, ok := catalog.Class("Article"); !ok {
		t.Fatal("Article class missing")
	}

	if _, err := NewLoader().LoadSource(context.Background(), SourceFromFS(nil, "x.json")); err == nil {
		t.Fatal("expected error for a source without a filesystem")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := NewLoader().Load(context.Background(), "/nonexistent/openapi.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := NewLoader().Load(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty source")
	}
	if _, err := NewLoader().LoadSource(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil source")
	}
}
