package show

import (
	"embed"
	"io/fs"
)

//go:embed templates
var embedded embed.FS

// TemplateFS returns the built-in show templates, rooted so the paths in the
// default template table resolve directly.
func TemplateFS() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic("show: embedded templates missing: " + err.Error())
	}
	return sub
}
