package schema

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
)

// Source identifies where a schema document comes from so the loader can read
// files, fs.FS entries, and URLs without callers sniffing prefixes. Sources
// are built with the SourceFrom constructors.
type Source interface {
	Kind() SourceKind
	Location() string

	read(ctx context.Context, l *Loader) ([]byte, error)
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

type fileSource struct {
	path string
}

func (s fileSource) Kind() SourceKind { return SourceKindFile }

func (s fileSource) Location() string { return s.path }

func (s fileSource) read(_ context.Context, _ *Loader) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %q: %w", s.path, err)
	}
	return data, nil
}

// SourceFromFile returns a Source pointing at an on-disk document.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	fsys fs.FS
	name string
}

func (s fsSource) Kind() SourceKind { return SourceKindFS }

func (s fsSource) Location() string { return s.name }

func (s fsSource) read(_ context.Context, _ *Loader) ([]byte, error) {
	if s.fsys == nil {
		return nil, fmt.Errorf("schema: source %q has no filesystem", s.name)
	}
	data, err := fs.ReadFile(s.fsys, s.name)
	if err != nil {
		return nil, fmt.Errorf("schema: read %q: %w", s.name, err)
	}
	return data, nil
}

// SourceFromFS returns a Source identifying a document inside an fs.FS, such
// as an embedded schema shipped with the binary.
func SourceFromFS(fsys fs.FS, name string) Source {
	return fsSource{fsys: fsys, name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Kind() SourceKind { return SourceKindURL }

func (s urlSource) Location() string { return s.raw }

func (s urlSource) read(ctx context.Context, l *Loader) ([]byte, error) {
	doc, err := l.client.Get(ctx, s.raw)
	if err != nil {
		return nil, fmt.Errorf("schema: fetch %q: %w", s.raw, err)
	}
	return doc.Body, nil
}

// SourceFromURL parses the supplied URL string and returns a Source. It panics
// on an invalid URL to surface configuration mistakes early.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("schema: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("schema: invalid URL %q: %v", raw, err))
	}
	return urlSource{raw: raw}
}
