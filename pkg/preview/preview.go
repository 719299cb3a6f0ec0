// Package preview drives a terminal walkthrough of an admin's form fields.
// It walks the registered groups in order, prompts for each field with a
// prompt matched to the field type, and collects the answers keyed by
// property path. The prompt driver is pluggable so the walk can be tested
// without a terminal.
package preview

import (
	"context"
	"fmt"
	"net/mail"
	neturl "net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formmapper/pkg/admin"
	"github.com/goliatone/go-formmapper/pkg/fields"
	"github.com/goliatone/go-formmapper/pkg/form"
)

const (
	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02 15:04"
	timeLayout     = "15:04"
)

// Previewer walks form field descriptions and prompts for values.
type Previewer struct {
	driver PromptDriver
}

// Option configures a Previewer.
type Option func(*Previewer)

// WithDriver replaces the survey-backed prompt driver, mainly for tests.
func WithDriver(d PromptDriver) Option {
	return func(p *Previewer) {
		if d != nil {
			p.driver = d
		}
	}
}

// New builds a Previewer that prompts on the current terminal.
func New(opts ...Option) *Previewer {
	p := &Previewer{driver: &surveyDriver{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run walks the definition's form fields group by group and prompts for each
// one. The builder holds the assembled form children whose merged options
// (required, choices, and the like) steer each prompt; a nil builder falls
// back to the descriptor options alone. Hidden and disabled fields are
// skipped. The returned map holds the collected values keyed by property
// path; prompts left unanswered on optional typed fields are omitted. Run
// stops at the first prompt error, returning ErrAborted when the user
// interrupted the session.
func (p *Previewer) Run(ctx context.Context, def *admin.Definition, builder form.Builder) (map[string]any, error) {
	if def == nil {
		return nil, fmt.Errorf("preview: admin definition is required")
	}
	store := def.Form()
	values := map[string]any{}
	prompted := map[string]bool{}

	for _, group := range store.Groups() {
		if len(group.Fields) == 0 {
			continue
		}
		if err := p.driver.Info(ctx, "== "+groupHeading(group)+" =="); err != nil {
			return nil, err
		}
		for _, name := range group.Fields {
			if prompted[name] {
				continue
			}
			prompted[name] = true
			if err := p.promptInto(ctx, values, store, builder, name); err != nil {
				return nil, err
			}
		}
	}
	for _, name := range store.Names() {
		if prompted[name] {
			continue
		}
		if err := p.promptInto(ctx, values, store, builder, name); err != nil {
			return nil, err
		}
	}
	return values, nil
}

func (p *Previewer) promptInto(ctx context.Context, values map[string]any, store *admin.FieldStore, builder form.Builder, name string) error {
	desc, ok := store.Get(name)
	if !ok {
		return nil
	}
	opts := desc.Options
	if builder != nil {
		if child, ok := builder.Get(name); ok {
			opts = child.Options
		}
	}
	value, keep, err := p.promptField(ctx, desc, opts)
	if err != nil {
		return fmt.Errorf("preview: field %q: %w", name, err)
	}
	if keep {
		values[valueKey(desc)] = value
	}
	return nil
}

// promptField dispatches on the field type. The boolean reports whether the
// answer should land in the collected values.
func (p *Previewer) promptField(ctx context.Context, desc *fields.Description, opts fields.Options) (any, bool, error) {
	if desc.Type == form.TypeHidden || opts.Bool(fields.OptionDisabled, false) {
		return nil, false, nil
	}
	required := opts.Bool(fields.OptionRequired, false)

	switch desc.Type {
	case form.TypeCheckbox:
		answer, err := p.driver.Confirm(ctx, ConfirmConfig{
			Message: desc.Label,
			Help:    desc.Help,
		})
		return answer, err == nil, err

	case form.TypeChoice:
		choices := choiceList(opts[fields.OptionChoices])
		if len(choices) == 0 {
			return p.promptText(ctx, desc, required, nil)
		}
		return p.promptChoice(ctx, desc, opts, choices)

	case form.TypePassword:
		answer, err := p.driver.Password(ctx, InputConfig{
			Message:   desc.Label,
			Help:      desc.Help,
			Validator: requireValidator(required, nil),
		})
		return answer, err == nil, err

	case form.TypeTextarea:
		answer, err := p.driver.TextArea(ctx, TextAreaConfig{
			Message: desc.Label,
			Help:    desc.Help,
		})
		return answer, err == nil, err

	case form.TypeInteger:
		return p.promptParsed(ctx, desc, required, validInteger, func(s string) (any, error) {
			return strconv.Atoi(s)
		})

	case form.TypeNumber, form.TypePercent:
		return p.promptParsed(ctx, desc, required, validNumber, func(s string) (any, error) {
			return strconv.ParseFloat(s, 64)
		})

	case form.TypeDate:
		return p.promptDated(ctx, desc, required, dateLayout)
	case form.TypeDatetime:
		return p.promptDated(ctx, desc, required, datetimeLayout)
	case form.TypeTime:
		return p.promptDated(ctx, desc, required, timeLayout)

	case form.TypeCollection, form.TypeNativeCollection:
		answer, err := p.driver.Input(ctx, InputConfig{
			Message:   desc.Label,
			Help:      helpOr(desc.Help, "comma separated values"),
			Validator: requireValidator(required, nil),
		})
		if err != nil {
			return nil, false, err
		}
		items := splitList(answer)
		return items, len(items) > 0, nil

	case form.TypeEmail:
		return p.promptText(ctx, desc, required, validEmail)
	case form.TypeURL:
		return p.promptText(ctx, desc, required, validURL)

	default:
		// text, model, file, and unknown types read a plain line.
		return p.promptText(ctx, desc, required, nil)
	}
}

func (p *Previewer) promptText(ctx context.Context, desc *fields.Description, required bool, extra func(string) error) (any, bool, error) {
	answer, err := p.driver.Input(ctx, InputConfig{
		Message:   desc.Label,
		Help:      desc.Help,
		Validator: requireValidator(required, extra),
	})
	return answer, err == nil, err
}

// promptParsed reads a line validated by check and converts non-empty answers
// with parse. Empty optional answers are omitted from the collected values.
func (p *Previewer) promptParsed(ctx context.Context, desc *fields.Description, required bool, check func(string) error, parse func(string) (any, error)) (any, bool, error) {
	answer, err := p.driver.Input(ctx, InputConfig{
		Message:   desc.Label,
		Help:      desc.Help,
		Validator: requireValidator(required, check),
	})
	if err != nil {
		return nil, false, err
	}
	if strings.TrimSpace(answer) == "" {
		return nil, false, nil
	}
	value, err := parse(strings.TrimSpace(answer))
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (p *Previewer) promptDated(ctx context.Context, desc *fields.Description, required bool, layout string) (any, bool, error) {
	check := func(s string) error {
		if _, err := time.Parse(layout, s); err != nil {
			return fmt.Errorf("expected format %s", layout)
		}
		return nil
	}
	answer, err := p.driver.Input(ctx, InputConfig{
		Message:   desc.Label,
		Help:      helpOr(desc.Help, "format "+layout),
		Validator: requireValidator(required, check),
	})
	if err != nil {
		return nil, false, err
	}
	if strings.TrimSpace(answer) == "" {
		return nil, false, nil
	}
	return strings.TrimSpace(answer), true, nil
}

func (p *Previewer) promptChoice(ctx context.Context, desc *fields.Description, opts fields.Options, choices []any) (any, bool, error) {
	options := make([]string, len(choices))
	for i, choice := range choices {
		options[i] = fmt.Sprintf("%v", choice)
	}
	cfg := SelectConfig{
		Message: desc.Label,
		Options: options,
		Help:    desc.Help,
	}
	if opts.Bool(fields.OptionMultiple, false) {
		indices, err := p.driver.MultiSelect(ctx, cfg)
		if err != nil {
			return nil, false, err
		}
		picked := make([]any, 0, len(indices))
		for _, idx := range indices {
			if idx < 0 || idx >= len(choices) {
				return nil, false, fmt.Errorf("choice index %d out of range", idx)
			}
			picked = append(picked, choices[idx])
		}
		return picked, len(picked) > 0, nil
	}
	idx, err := p.driver.Select(ctx, cfg)
	if err != nil {
		return nil, false, err
	}
	if idx < 0 || idx >= len(choices) {
		return nil, false, fmt.Errorf("choice index %d out of range", idx)
	}
	return choices[idx], true, nil
}

func requireValidator(required bool, extra func(string) error) func(string) error {
	if !required && extra == nil {
		return nil
	}
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			if required {
				return fmt.Errorf("a value is required")
			}
			return nil
		}
		if extra != nil {
			return extra(s)
		}
		return nil
	}
}

func validInteger(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("expected a whole number")
	}
	return nil
}

func validNumber(s string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return fmt.Errorf("expected a number")
	}
	return nil
}

func validEmail(s string) error {
	if _, err := mail.ParseAddress(s); err != nil {
		return fmt.Errorf("expected an email address")
	}
	return nil
}

func validURL(s string) error {
	parsed, err := neturl.Parse(s)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("expected an absolute URL")
	}
	return nil
}

func choiceList(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	default:
		return nil
	}
}

func splitList(answer string) []string {
	var out []string
	for _, part := range strings.Split(answer, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func groupHeading(group admin.Group) string {
	if group.Label != "" {
		return group.Label
	}
	return group.Name
}

func valueKey(desc *fields.Description) string {
	if path := string(desc.PropertyPath); path != "" {
		return path
	}
	return desc.Name
}

func helpOr(help, fallback string) string {
	if help != "" {
		return help
	}
	return fallback
}
