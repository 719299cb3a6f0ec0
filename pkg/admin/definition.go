// Package admin models the host admin definition that mappers configure: the
// screen's identity, its access checker and label strategy, and the stores of
// field descriptions for the form and show views.
package admin

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-formmapper/pkg/access"
	"github.com/goliatone/go-formmapper/pkg/label"
)

// DefaultTranslationDomain is used when an admin does not configure one.
const DefaultTranslationDomain = "messages"

// Definition is one admin screen: a code identifying it, the model class it
// manages, and the field metadata accumulated by mappers. Definitions are
// built within a single request and are not safe for concurrent mutation.
type Definition struct {
	code              string
	class             string
	uniqid            string
	label             string
	translationDomain string
	labels            label.Strategy
	checker           access.Checker
	form              *FieldStore
	show              *FieldStore
}

// Option configures a Definition.
type Option func(*Definition)

// WithClass records the model class the admin manages, such as
// "App.Entity.Article".
func WithClass(class string) Option {
	return func(d *Definition) { d.class = class }
}

// WithLabel overrides the admin's display label.
func WithLabel(lbl string) Option {
	return func(d *Definition) { d.label = lbl }
}

// WithTranslationDomain selects the message catalog for the admin's labels.
func WithTranslationDomain(domain string) Option {
	return func(d *Definition) { d.translationDomain = domain }
}

// WithLabelStrategy sets the strategy mappers use to derive field labels.
func WithLabelStrategy(s label.Strategy) Option {
	return func(d *Definition) {
		if s != nil {
			d.labels = s
		}
	}
}

// WithChecker installs the access checker consulted for guarded fields.
func WithChecker(c access.Checker) Option {
	return func(d *Definition) {
		if c != nil {
			d.checker = c
		}
	}
}

// WithUniqid pins the per-instance identifier, mainly for tests and for
// embedding admins whose field names must be reproducible.
func WithUniqid(id string) Option {
	return func(d *Definition) { d.uniqid = id }
}

// New builds a definition with the default strategy, checker, and translation
// domain. The code identifies the admin in layouts and access attributes.
func New(code string, opts ...Option) *Definition {
	d := &Definition{
		code:              code,
		translationDomain: DefaultTranslationDomain,
		labels:            label.Default(),
		checker:           access.AllowAll(),
		form:              newFieldStore(),
		show:              newFieldStore(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.uniqid == "" {
		d.uniqid = newUniqid()
	}
	if d.label == "" {
		d.label = label.Humanize(lastSegment(code))
	}
	return d
}

// Code returns the admin's identifier.
func (d *Definition) Code() string { return d.code }

// Class returns the managed model class, if configured.
func (d *Definition) Class() string { return d.class }

// Uniqid returns the per-instance identifier used to namespace embedded form
// names.
func (d *Definition) Uniqid() string { return d.uniqid }

// Label returns the admin's display label.
func (d *Definition) Label() string { return d.label }

// TranslationDomain returns the message catalog for this admin.
func (d *Definition) TranslationDomain() string { return d.translationDomain }

// LabelStrategy returns the strategy used to derive field labels.
func (d *Definition) LabelStrategy() label.Strategy { return d.labels }

// CheckAccess reports whether the current request holds the attribute. The
// empty attribute is always granted.
func (d *Definition) CheckAccess(ctx context.Context, attribute string) bool {
	if attribute == "" {
		return true
	}
	return d.checker.Granted(ctx, attribute)
}

// Form returns the store of form field descriptions.
func (d *Definition) Form() *FieldStore { return d.form }

// Show returns the store of show field descriptions.
func (d *Definition) Show() *FieldStore { return d.show }

func newUniqid() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "s" + id[:10]
}

func lastSegment(code string) string {
	if i := strings.LastIndex(code, "."); i >= 0 {
		return code[i+1:]
	}
	return code
}
