package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-formmapper/pkg/form"
	"github.com/goliatone/go-formmapper/pkg/layout"
	"github.com/goliatone/go-formmapper/pkg/schema"
)

type violation struct {
	file     string
	location string
	message  string
}

var knownTypes = []string{
	form.TypeText, form.TypeTextarea, form.TypeEmail, form.TypeURL,
	form.TypeInteger, form.TypeNumber, form.TypePercent, form.TypeCheckbox,
	form.TypeChoice, form.TypeDate, form.TypeDatetime, form.TypeTime,
	form.TypePassword, form.TypeHidden, form.TypeFile, form.TypeModel,
	form.TypeCollection, form.TypeNativeCollection,
}

func main() {
	source := flag.String("source", "", "schema document path or URL to check layouts against")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-source schema] [layout dirs...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nLint admin layout documents for unknown field types and properties.\n")
	}
	flag.Parse()

	dirs := flag.Args()
	if len(dirs) == 0 {
		dirs = []string{"layouts"}
	}

	ctx := context.Background()

	var catalog *schema.Catalog
	if *source != "" {
		loaded, err := schema.NewLoader().Load(ctx, *source)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load schema %s: %v\n", *source, err)
			os.Exit(1)
		}
		catalog = loaded
	}

	var violations []violation
	for _, dir := range dirs {
		set, err := layout.Load(os.DirFS(dir))
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", dir, err)
			os.Exit(1)
		}
		for _, code := range set.Codes() {
			doc, ok := set.Admin(code)
			if !ok {
				continue
			}
			violations = append(violations, lintAdmin(catalog, doc)...)
		}
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func lintAdmin(catalog *schema.Catalog, doc layout.Admin) []violation {
	var cls *schema.Class
	var result []violation

	base := []string{"admin", doc.Code}
	if catalog != nil && doc.Class != "" {
		found, ok := catalog.Class(doc.Class)
		if !ok {
			result = append(result, violation{
				file:     doc.Source,
				location: formatLocation(base),
				message:  fmt.Sprintf("class %q not found in schema (available: %s)", doc.Class, strings.Join(catalog.Classes(), ", ")),
			})
		} else {
			cls = found
		}
	}

	for _, tab := range doc.Tabs {
		tabPath := appendPath(base, "tab "+tab.Name)
		for _, group := range tab.Groups {
			result = append(result, lintGroup(doc, cls, tabPath, group)...)
		}
	}
	for _, group := range doc.Groups {
		result = append(result, lintGroup(doc, cls, base, group)...)
	}
	return result
}

func lintGroup(doc layout.Admin, cls *schema.Class, path []string, group layout.GroupConfig) []violation {
	var result []violation
	groupPath := appendPath(path, "group "+group.Name)
	for _, field := range group.Fields {
		fieldPath := appendPath(groupPath, "field "+field.Name)
		if field.Type != "" && !isKnownType(field.Type) {
			result = append(result, violation{
				file:     doc.Source,
				location: formatLocation(fieldPath),
				message:  fmt.Sprintf("unknown field type %q (supported: %s)", field.Type, strings.Join(knownTypes, ", ")),
			})
		}
		if cls != nil && field.Type == "" {
			if _, ok := cls.Property(field.Name); !ok {
				result = append(result, violation{
					file:     doc.Source,
					location: formatLocation(fieldPath),
					message:  fmt.Sprintf("property %q not in class %q; declare a type for virtual fields", field.Name, doc.Class),
				})
			}
		}
	}
	return result
}

func isKnownType(fieldType string) bool {
	for _, known := range knownTypes {
		if known == fieldType {
			return true
		}
	}
	return false
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	next = append(next, segment)
	return next
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
