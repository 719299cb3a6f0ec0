package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/ohler55/ojg/oj"

	"github.com/goliatone/go-formmapper/pkg/admin"
	"github.com/goliatone/go-formmapper/pkg/fields"
	"github.com/goliatone/go-formmapper/pkg/form"
	"github.com/goliatone/go-formmapper/pkg/guesser"
	"github.com/goliatone/go-formmapper/pkg/layout"
	"github.com/goliatone/go-formmapper/pkg/mapper"
	"github.com/goliatone/go-formmapper/pkg/preview"
	"github.com/goliatone/go-formmapper/pkg/schema"
)

func main() {
	source := flag.String("source", "", "schema document path or URL")
	class := flag.String("class", "", "schema class to map (empty lists the available classes)")
	code := flag.String("code", "", "admin code (defaults to app.<class>)")
	layoutDir := flag.String("layout", "", "directory of layout documents")
	view := flag.String("view", "form", "view to build: form or show")
	format := flag.String("format", "text", "summary format: text or json")
	output := flag.String("output", "", "output file (stdout if empty)")
	interactive := flag.Bool("interactive", false, "walk the form fields interactively")
	dump := flag.Bool("dump", false, "dump the raw definition instead of a summary")
	flag.Parse()

	ctx := context.Background()

	if *source == "" {
		log.Fatal("a -source path or URL is required")
	}
	catalog, err := schema.NewLoader().Load(ctx, *source)
	if err != nil {
		log.Fatalf("Failed to load schema: %v", err)
	}

	if *class == "" {
		fmt.Println("available classes:")
		for _, name := range catalog.Classes() {
			fmt.Printf("  %s\n", name)
		}
		return
	}
	if _, ok := catalog.Class(*class); !ok {
		log.Fatalf("class %q not found; available: %s", *class, strings.Join(catalog.Classes(), ", "))
	}

	adminCode := *code
	if adminCode == "" {
		adminCode = "app." + strings.ToLower(*class)
	}

	var (
		doc       layout.Admin
		hasLayout bool
	)
	if *layoutDir != "" {
		set, err := layout.Load(os.DirFS(*layoutDir))
		if err != nil {
			log.Fatalf("Failed to load layouts: %v", err)
		}
		doc, hasLayout = set.Admin(adminCode)
		if !hasLayout {
			log.Fatalf("no layout for admin %q in %s (have: %s)", adminCode, *layoutDir, strings.Join(set.Codes(), ", "))
		}
	}

	def := admin.New(adminCode, admin.WithClass(*class))
	tree := form.NewTree()
	guess := guesser.NewSchema(catalog)

	switch *view {
	case "form":
		m := mapper.NewFormMapper(ctx, def, tree, mapper.WithGuesser(guess))
		if hasLayout {
			m.ApplyLayout(doc)
		} else {
			addClassProperties(m.Add, catalog, *class)
		}
		if err := m.Err(); err != nil {
			log.Fatalf("Failed to map form: %v", err)
		}
	case "show":
		m := mapper.NewShowMapper(ctx, def)
		if hasLayout {
			m.ApplyLayout(doc)
		} else {
			addGuessedShowFields(m, guess, catalog, *class)
		}
		if err := m.Err(); err != nil {
			log.Fatalf("Failed to map show view: %v", err)
		}
	default:
		log.Fatalf("unknown view %q (want form or show)", *view)
	}

	if *dump {
		writeOut(*output, []byte(spew.Sdump(def)))
		return
	}

	if *interactive {
		if *view != "form" {
			log.Fatal("interactive mode previews the form view")
		}
		values, err := preview.New().Run(ctx, def, tree)
		if err != nil {
			log.Fatalf("Preview aborted: %v", err)
		}
		writeOut(*output, []byte(oj.JSON(values, 2)+"\n"))
		return
	}

	summary := buildSummary(def, tree, *view)
	switch *format {
	case "json":
		data, err := oj.Marshal(summary, 2)
		if err != nil {
			log.Fatalf("Failed to encode summary: %v", err)
		}
		writeOut(*output, append(data, '\n'))
	case "text":
		writeOut(*output, []byte(renderText(summary)))
	default:
		log.Fatalf("unknown format %q (want text or json)", *format)
	}
}

// addClassProperties maps every schema property of the class through add,
// letting the guesser pick field types.
func addClassProperties(add func(string, ...mapper.AddOption) *mapper.FormMapper, catalog *schema.Catalog, class string) {
	cls, ok := catalog.Class(class)
	if !ok {
		return
	}
	for _, name := range cls.PropertyNames() {
		add(name)
	}
}

// addGuessedShowFields adds every class property with an explicitly guessed
// type; the show mapper itself never consults a guesser.
func addGuessedShowFields(m *mapper.ShowMapper, guess guesser.Guesser, catalog *schema.Catalog, class string) {
	cls, ok := catalog.Class(class)
	if !ok {
		return
	}
	for _, name := range cls.PropertyNames() {
		if g, ok := guess.Guess(class, name); ok && g.Type != "" {
			m.Add(name, mapper.WithFieldType(g.Type))
			continue
		}
		m.Add(name)
	}
}

type fieldSummary struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Label    string `json:"label"`
	Required bool   `json:"required,omitempty"`
	Template string `json:"template,omitempty"`
	Help     string `json:"help,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
}

type groupSummary struct {
	Name   string         `json:"name"`
	Label  string         `json:"label,omitempty"`
	Tab    string         `json:"tab,omitempty"`
	Fields []fieldSummary `json:"fields"`
}

type adminSummary struct {
	Code   string         `json:"code"`
	Class  string         `json:"class,omitempty"`
	Label  string         `json:"label"`
	View   string         `json:"view"`
	Groups []groupSummary `json:"groups"`
}

func buildSummary(def *admin.Definition, tree *form.Tree, view string) adminSummary {
	store := def.Form()
	if view == "show" {
		store = def.Show()
	}
	summary := adminSummary{
		Code:  def.Code(),
		Class: def.Class(),
		Label: def.Label(),
		View:  view,
	}
	for _, group := range store.Groups() {
		gs := groupSummary{Name: group.Name, Label: group.Label, Tab: group.Tab}
		for _, name := range group.Fields {
			desc, ok := store.Get(name)
			if !ok {
				continue
			}
			fs := fieldSummary{
				Name:     desc.Name,
				Type:     desc.Type,
				Label:    desc.Label,
				Template: desc.Template,
				Help:     desc.Help,
			}
			if tree != nil && view == "form" {
				if child, ok := tree.Get(name); ok {
					fs.Required = child.Options.Bool(fields.OptionRequired, false)
					fs.Endpoint = child.Options.String(fields.OptionChoicesEndpoint, "")
				}
			}
			gs.Fields = append(gs.Fields, fs)
		}
		summary.Groups = append(summary.Groups, gs)
	}
	return summary
}

func renderText(summary adminSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "admin %s", summary.Code)
	if summary.Class != "" {
		fmt.Fprintf(&b, " (class %s)", summary.Class)
	}
	fmt.Fprintf(&b, " %s view\n", summary.View)
	for _, group := range summary.Groups {
		heading := group.Label
		if heading == "" {
			heading = group.Name
		}
		if group.Tab != "" {
			fmt.Fprintf(&b, "\n[%s] %s\n", group.Tab, heading)
		} else {
			fmt.Fprintf(&b, "\n%s\n", heading)
		}
		for _, field := range group.Fields {
			fmt.Fprintf(&b, "  %-24s %-18s", field.Name, field.Type)
			if field.Required {
				b.WriteString(" required")
			}
			if field.Template != "" {
				fmt.Fprintf(&b, " %s", field.Template)
			}
			if field.Endpoint != "" {
				fmt.Fprintf(&b, " choices:%s", field.Endpoint)
			}
			fmt.Fprintf(&b, "  %q\n", field.Label)
		}
	}
	return b.String()
}

func writeOut(path string, data []byte) {
	if path == "" {
		fmt.Print(string(data))
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	fmt.Printf("Summary written to %s\n", path)
}
