package form

import "strings"

// reservedNameChars are the characters the form path notation assigns meaning
// to: dots separate nested paths, brackets index collections. Child names
// containing them would be torn apart when the form layer parses submitted
// field paths.
const reservedNameChars = ".[]"

var nameSanitizer = strings.NewReplacer(
	"[]", "__",
	"[", "__",
	"]", "",
	".", "__",
)

// SanitizeName rewrites reserved path characters in a child name to
// double underscores so the name survives as a single path segment. Names
// without reserved characters pass through unchanged, so applying the function
// to an already sanitized name is a no-op.
func SanitizeName(name string) string {
	if !strings.ContainsAny(name, reservedNameChars) {
		return name
	}
	return nameSanitizer.Replace(name)
}
