package preview_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formmapper/pkg/admin"
	"github.com/goliatone/go-formmapper/pkg/fields"
	"github.com/goliatone/go-formmapper/pkg/form"
	"github.com/goliatone/go-formmapper/pkg/mapper"
	"github.com/goliatone/go-formmapper/pkg/preview"
)

// fakeDriver replays scripted answers and records every prompt it saw.
type fakeDriver struct {
	inputs    []string
	passwords []string
	confirms  []bool
	selects   []int
	multis    [][]int
	textareas []string

	inputCfgs    []preview.InputConfig
	passwordCfgs []preview.InputConfig
	confirmCfgs  []preview.ConfirmConfig
	selectCfgs   []preview.SelectConfig
	multiCfgs    []preview.SelectConfig
	textareaCfgs []preview.TextAreaConfig
	infos        []string

	err error
}

func (d *fakeDriver) Input(_ context.Context, cfg preview.InputConfig) (string, error) {
	d.inputCfgs = append(d.inputCfgs, cfg)
	if d.err != nil {
		return "", d.err
	}
	if len(d.inputs) == 0 {
		return "", fmt.Errorf("unexpected input prompt %q", cfg.Message)
	}
	out := d.inputs[0]
	d.inputs = d.inputs[1:]
	return out, nil
}

func (d *fakeDriver) Password(_ context.Context, cfg preview.InputConfig) (string, error) {
	d.passwordCfgs = append(d.passwordCfgs, cfg)
	if d.err != nil {
		return "", d.err
	}
	if len(d.passwords) == 0 {
		return "", fmt.Errorf("unexpected password prompt %q", cfg.Message)
	}
	out := d.passwords[0]
	d.passwords = d.passwords[1:]
	return out, nil
}

func (d *fakeDriver) Confirm(_ context.Context, cfg preview.ConfirmConfig) (bool, error) {
	d.confirmCfgs = append(d.confirmCfgs, cfg)
	if d.err != nil {
		return false, d.err
	}
	if len(d.confirms) == 0 {
		return false, fmt.Errorf("unexpected confirm prompt %q", cfg.Message)
	}
	out := d.confirms[0]
	d.confirms = d.confirms[1:]
	return out, nil
}

func (d *fakeDriver) Select(_ context.Context, cfg preview.SelectConfig) (int, error) {
	d.selectCfgs = append(d.selectCfgs, cfg)
	if d.err != nil {
		return 0, d.err
	}
	if len(d.selects) == 0 {
		return 0, fmt.Errorf("unexpected select prompt %q", cfg.Message)
	}
	out := d.selects[0]
	d.selects = d.selects[1:]
	return out, nil
}

func (d *fakeDriver) MultiSelect(_ context.Context, cfg preview.SelectConfig) ([]int, error) {
	d.multiCfgs = append(d.multiCfgs, cfg)
	if d.err != nil {
		return nil, d.err
	}
	if len(d.multis) == 0 {
		return nil, fmt.Errorf("unexpected multi-select prompt %q", cfg.Message)
	}
	out := d.multis[0]
	d.multis = d.multis[1:]
	return out, nil
}

func (d *fakeDriver) TextArea(_ context.Context, cfg preview.TextAreaConfig) (string, error) {
	d.textareaCfgs = append(d.textareaCfgs, cfg)
	if d.err != nil {
		return "", d.err
	}
	if len(d.textareas) == 0 {
		return "", fmt.Errorf("unexpected textarea prompt %q", cfg.Message)
	}
	out := d.textareas[0]
	d.textareas = d.textareas[1:]
	return out, nil
}

func (d *fakeDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func TestRunWalksGroupsInOrder(t *testing.T) {
	t.Parallel()

	def := admin.New("app.article")
	tree := form.NewTree()
	m := mapper.NewFormMapper(context.Background(), def, tree)
	m.With("content", mapper.GroupLabel("Content")).
		Add("title", mapper.WithRequired(true)).
		Add("published", mapper.WithFieldType(form.TypeCheckbox)).
		End().
		With("meta").
		Add("rating", mapper.WithFieldType(form.TypeNumber)).
		End()
	if err := m.Err(); err != nil {
		t.Fatalf("mapper: %v", err)
	}

	driver := &fakeDriver{
		inputs:   []string{"Hello world", "4.5"},
		confirms: []bool{true},
	}
	values, err := preview.New(preview.WithDriver(driver)).Run(context.Background(), def, tree)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := map[string]any{
		"title":     "Hello world",
		"published": true,
		"rating":    4.5,
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	wantInfos := []string{"== Content ==", "== Meta =="}
	if diff := cmp.Diff(wantInfos, driver.infos); diff != "" {
		t.Fatalf("group headers mismatch (-want +got):\n%s", diff)
	}
	if got := driver.inputCfgs[0].Message; got != "Title" {
		t.Fatalf("first prompt message: got %q", got)
	}
	if driver.inputCfgs[0].Validator == nil {
		t.Fatal("required field should carry a validator")
	}
	if err := driver.inputCfgs[0].Validator(""); err == nil {
		t.Fatal("required validator should reject the empty answer")
	}
	if err := driver.inputCfgs[0].Validator("x"); err != nil {
		t.Fatalf("required validator rejected a value: %v", err)
	}
}

func TestRunPromptMatchesFieldType(t *testing.T) {
	t.Parallel()

	def := admin.New("app.article")
	tree := form.NewTree()
	m := mapper.NewFormMapper(context.Background(), def, tree)
	m.Add("status", mapper.WithFieldType(form.TypeChoice),
		mapper.WithOption(fields.OptionChoices, []string{"draft", "published", "archived"})).
		Add("topics", mapper.WithFieldType(form.TypeChoice),
			mapper.WithOption(fields.OptionChoices, []any{"go", "web", "infra"}),
			mapper.WithOption(fields.OptionMultiple, true)).
		Add("secret", mapper.WithFieldType(form.TypePassword)).
		Add("body", mapper.WithFieldType(form.TypeTextarea)).
		Add("tags", mapper.WithFieldType(form.TypeCollection)).
		Add("published_at", mapper.WithFieldType(form.TypeDatetime)).
		Add("token", mapper.WithFieldType(form.TypeHidden))
	if err := m.Err(); err != nil {
		t.Fatalf("mapper: %v", err)
	}

	driver := &fakeDriver{
		selects:   []int{1},
		multis:    [][]int{{0, 2}},
		passwords: []string{"s3cret"},
		textareas: []string{"First line.\nSecond line."},
		inputs:    []string{"a, b ,c", "2024-06-01 12:30"},
	}
	values, err := preview.New(preview.WithDriver(driver)).Run(context.Background(), def, tree)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := map[string]any{
		"status":       "published",
		"topics":       []any{"go", "infra"},
		"secret":       "s3cret",
		"body":         "First line.\nSecond line.",
		"tags":         []string{"a", "b", "c"},
		"published_at": "2024-06-01 12:30",
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if _, ok := values["token"]; ok {
		t.Fatal("hidden field should not be prompted")
	}

	wantOptions := []string{"draft", "published", "archived"}
	if diff := cmp.Diff(wantOptions, driver.selectCfgs[0].Options); diff != "" {
		t.Fatalf("select options mismatch (-want +got):\n%s", diff)
	}
	datetime := driver.inputCfgs[1]
	if datetime.Help == "" {
		t.Fatal("datetime prompt should hint at the expected format")
	}
	if err := datetime.Validator("not a date"); err == nil {
		t.Fatal("datetime validator should reject garbage")
	}
	if err := datetime.Validator("2024-06-01 12:30"); err != nil {
		t.Fatalf("datetime validator rejected a valid answer: %v", err)
	}
}

func TestRunConvertsNumericAnswers(t *testing.T) {
	t.Parallel()

	def := admin.New("app.article")
	tree := form.NewTree()
	m := mapper.NewFormMapper(context.Background(), def, tree)
	m.Add("view_count", mapper.WithFieldType(form.TypeInteger)).
		Add("score", mapper.WithFieldType(form.TypePercent))
	if err := m.Err(); err != nil {
		t.Fatalf("mapper: %v", err)
	}

	driver := &fakeDriver{inputs: []string{"42", ""}}
	values, err := preview.New(preview.WithDriver(driver)).Run(context.Background(), def, tree)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got, ok := values["view_count"]; !ok || got != 42 {
		t.Fatalf("view_count: got %v (present %v), want 42", got, ok)
	}
	if _, ok := values["score"]; ok {
		t.Fatal("empty optional numeric answer should be omitted")
	}
	if err := driver.inputCfgs[0].Validator("abc"); err == nil {
		t.Fatal("integer validator should reject a word")
	}
	if err := driver.inputCfgs[0].Validator(""); err != nil {
		t.Fatalf("optional integer validator rejected the empty answer: %v", err)
	}
}

func TestRunValidatesTypedText(t *testing.T) {
	t.Parallel()

	def := admin.New("app.article")
	tree := form.NewTree()
	m := mapper.NewFormMapper(context.Background(), def, tree)
	m.Add("author_email", mapper.WithFieldType(form.TypeEmail)).
		Add("homepage", mapper.WithFieldType(form.TypeURL))
	if err := m.Err(); err != nil {
		t.Fatalf("mapper: %v", err)
	}

	driver := &fakeDriver{inputs: []string{"ada@example.com", "https://example.com"}}
	if _, err := preview.New(preview.WithDriver(driver)).Run(context.Background(), def, tree); err != nil {
		t.Fatalf("Run: %v", err)
	}

	email := driver.inputCfgs[0].Validator
	if err := email("not-an-address"); err == nil {
		t.Fatal("email validator should reject a bare word")
	}
	if err := email("ada@example.com"); err != nil {
		t.Fatalf("email validator rejected a valid address: %v", err)
	}
	url := driver.inputCfgs[1].Validator
	if err := url("example.com"); err == nil {
		t.Fatal("url validator should require a scheme")
	}
	if err := url("https://example.com/docs"); err != nil {
		t.Fatalf("url validator rejected a valid URL: %v", err)
	}
}

func TestRunStopsOnAbort(t *testing.T) {
	t.Parallel()

	def := admin.New("app.article")
	tree := form.NewTree()
	m := mapper.NewFormMapper(context.Background(), def, tree)
	m.Add("title")
	if err := m.Err(); err != nil {
		t.Fatalf("mapper: %v", err)
	}

	driver := &fakeDriver{err: preview.ErrAborted}
	values, err := preview.New(preview.WithDriver(driver)).Run(context.Background(), def, tree)
	if !errors.Is(err, preview.ErrAborted) {
		t.Fatalf("Run error: got %v, want ErrAborted", err)
	}
	if values != nil {
		t.Fatalf("aborted run should not return values, got %v", values)
	}
}

func TestRunSkipsDisabledFields(t *testing.T) {
	t.Parallel()

	def := admin.New("app.article")
	tree := form.NewTree()
	m := mapper.NewFormMapper(context.Background(), def, tree)
	m.Add("slug", mapper.WithOption(fields.OptionDisabled, true)).
		Add("title")
	if err := m.Err(); err != nil {
		t.Fatalf("mapper: %v", err)
	}

	driver := &fakeDriver{inputs: []string{"Hello"}}
	values, err := preview.New(preview.WithDriver(driver)).Run(context.Background(), def, tree)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, ok := values["slug"]; ok {
		t.Fatal("disabled field should not be prompted")
	}
	if got := values["title"]; got != "Hello" {
		t.Fatalf("title: got %v", got)
	}
}

func TestRunNilDefinition(t *testing.T) {
	t.Parallel()

	if _, err := preview.New(preview.WithDriver(&fakeDriver{})).Run(context.Background(), nil, nil); err == nil {
		t.Fatal("expected an error for a nil definition")
	}
}
