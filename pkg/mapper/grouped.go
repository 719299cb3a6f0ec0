// Package mapper provides the fluent configuration surface admins use to
// declare their form and show fields. A mapper wraps an admin definition and
// a builder; calls chain, and the first failure parks the mapper in an error
// state that Err exposes.
package mapper

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formmapper/pkg/admin"
	"github.com/goliatone/go-formmapper/pkg/fields"
)

// DefaultGroup collects fields added outside any explicit group.
const DefaultGroup = "default"

// grouped carries the state the form and show mappers share: the target admin
// and field store, the open group and tab cursors, the condition stack, and
// the sticky error.
type grouped struct {
	ctx          context.Context
	admin        *admin.Definition
	store        *admin.FieldStore
	labelContext string

	currentTab   string
	currentGroup string
	conds        []bool
	err          error
}

func newGrouped(ctx context.Context, a *admin.Definition, store *admin.FieldStore, labelContext string) grouped {
	if ctx == nil {
		ctx = context.Background()
	}
	return grouped{ctx: ctx, admin: a, store: store, labelContext: labelContext}
}

// fail records the first error; later calls keep it.
func (g *grouped) fail(err error) {
	if g.err == nil && err != nil {
		g.err = err
	}
}

func (g *grouped) failf(format string, args ...any) {
	g.fail(fmt.Errorf(format, args...))
}

// applies reports whether adds are currently live: every open condition block
// must hold.
func (g *grouped) applies() bool {
	for _, cond := range g.conds {
		if !cond {
			return false
		}
	}
	return true
}

func (g *grouped) pushCond(cond bool) { g.conds = append(g.conds, cond) }

func (g *grouped) popCond() {
	if len(g.conds) == 0 {
		g.failf("mapper: IfEnd without an open condition block")
		return
	}
	g.conds = g.conds[:len(g.conds)-1]
}

// openTab makes name the current tab. Tabs do not nest.
func (g *grouped) openTab(name string, cfg groupConfig) {
	if name == "" {
		g.failf("mapper: tab name is required")
		return
	}
	if g.currentTab != "" {
		g.failf("mapper: tab %q is still open, call End first", g.currentTab)
		return
	}
	if g.currentGroup != "" {
		g.failf("mapper: group %q is still open, call End first", g.currentGroup)
		return
	}
	tab := g.store.EnsureTab(name)
	if tab.Label == "" {
		tab.Label = cfg.label
		if tab.Label == "" {
			tab.Label = g.admin.LabelStrategy().Label(name, g.labelContext, "tab")
		}
	}
	if cfg.translationDomain != "" {
		tab.TranslationDomain = cfg.translationDomain
	}
	g.currentTab = name
}

// openGroup makes name the current group, attaching it to the open tab.
// Groups do not nest.
func (g *grouped) openGroup(name string, cfg groupConfig) {
	if name == "" {
		g.failf("mapper: group name is required")
		return
	}
	if g.currentGroup != "" {
		g.failf("mapper: group %q is still open, call End first", g.currentGroup)
		return
	}
	group := g.store.EnsureGroup(name)
	if group.Label == "" {
		group.Label = cfg.label
		if group.Label == "" && name != DefaultGroup {
			group.Label = g.admin.LabelStrategy().Label(name, g.labelContext, "group")
		}
	}
	if cfg.translationDomain != "" {
		group.TranslationDomain = cfg.translationDomain
	}
	if cfg.description != "" {
		group.Description = cfg.description
	}
	if cfg.class != "" {
		group.Class = cfg.class
	}
	if g.currentTab != "" {
		g.store.AttachGroupToTab(name, g.currentTab)
	}
	g.currentGroup = name
}

// closeInnermost ends the open group, or failing that the open tab.
func (g *grouped) closeInnermost() {
	switch {
	case g.currentGroup != "":
		g.currentGroup = ""
	case g.currentTab != "":
		g.currentTab = ""
	default:
		g.failf("mapper: End without an open group or tab")
	}
}

// targetGroup names the group receiving the next field: the open group, a
// group named after the open tab, or the default group.
func (g *grouped) targetGroup() string {
	if g.currentGroup != "" {
		return g.currentGroup
	}
	if g.currentTab != "" {
		return g.currentTab
	}
	return DefaultGroup
}

// scopeTranslationDomain returns the domain of the open group, or failing
// that the open tab. Fields without a domain of their own inherit it before
// falling back to the admin's.
func (g *grouped) scopeTranslationDomain() string {
	if g.currentGroup != "" {
		if group, ok := g.store.Group(g.currentGroup); ok && group.TranslationDomain != "" {
			return group.TranslationDomain
		}
	}
	if g.currentTab != "" {
		if tab, ok := g.store.Tab(g.currentTab); ok && tab.TranslationDomain != "" {
			return tab.TranslationDomain
		}
	}
	return ""
}

// attach records the field in the target group, creating it as needed.
func (g *grouped) attach(key string) {
	name := g.targetGroup()
	g.store.EnsureGroup(name)
	if g.currentTab != "" {
		g.store.AttachGroupToTab(name, g.currentTab)
	}
	g.store.AppendToGroup(name, key)
}

// gated reports whether the description's role keeps the field off the
// screen for the current request.
func (g *grouped) gated(desc *fields.Description) bool {
	role, ok := desc.Role()
	if !ok {
		return false
	}
	return !g.admin.CheckAccess(g.ctx, role)
}

// removeGroup drops the group and unregisters every field it held.
func (g *grouped) removeGroup(name string, removeChild func(string)) {
	for _, field := range g.store.RemoveGroup(name) {
		g.store.Remove(field)
		if removeChild != nil {
			removeChild(field)
		}
	}
	if g.currentGroup == name {
		g.currentGroup = ""
	}
}

// removeTab drops the tab, its groups, and every field they held.
func (g *grouped) removeTab(name string, removeChild func(string)) {
	for _, field := range g.store.RemoveTab(name) {
		g.store.Remove(field)
		if removeChild != nil {
			removeChild(field)
		}
	}
	if g.currentTab == name {
		g.currentTab = ""
	}
}
