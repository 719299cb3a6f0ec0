// Package template defines the rendering seam between show screens and the
// template engine that draws them.
package template

import "io"

// Renderer mirrors the github.com/goliatone/go-template engine contract so
// show rendering can swap engines without touching callers. Render dispatches
// on its argument: template syntax renders inline, anything else is treated as
// a template path.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
