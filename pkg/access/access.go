// Package access answers whether the current request may see or edit a field.
// Mappers consult a Checker before registering guarded fields; the default
// checker grants everything so access control stays opt-in.
package access

import (
	"context"
	"sort"
	"strings"
)

// Checker decides whether the current request holds an access attribute such
// as "admin.article.edit". Implementations read request identity from ctx.
type Checker interface {
	Granted(ctx context.Context, attribute string) bool
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context, attribute string) bool

// Granted implements Checker.
func (f CheckerFunc) Granted(ctx context.Context, attribute string) bool {
	return f(ctx, attribute)
}

// AllowAll grants every attribute. It is the zero-configuration default.
func AllowAll() Checker {
	return CheckerFunc(func(context.Context, string) bool { return true })
}

// DenyAll refuses every attribute. Useful in tests and lockdown modes.
func DenyAll() Checker {
	return CheckerFunc(func(context.Context, string) bool { return false })
}

// RoleChecker grants attributes from a fixed role set. Roles are dot
// separated; a trailing ".*" grants the whole subtree and a bare "*" grants
// everything, so holding "admin.article.*" satisfies "admin.article.edit".
type RoleChecker struct {
	roles map[string]struct{}
}

// NewRoleChecker builds a checker over the given roles. Empty roles are
// ignored; comparison is case-insensitive.
func NewRoleChecker(roles ...string) *RoleChecker {
	c := &RoleChecker{roles: make(map[string]struct{}, len(roles))}
	for _, role := range roles {
		role = strings.ToLower(strings.TrimSpace(role))
		if role == "" {
			continue
		}
		c.roles[role] = struct{}{}
	}
	return c
}

// Granted implements Checker.
func (c *RoleChecker) Granted(_ context.Context, attribute string) bool {
	attribute = strings.ToLower(strings.TrimSpace(attribute))
	if attribute == "" {
		return true
	}
	if _, ok := c.roles["*"]; ok {
		return true
	}
	if _, ok := c.roles[attribute]; ok {
		return true
	}
	segments := strings.Split(attribute, ".")
	for i := len(segments) - 1; i > 0; i-- {
		prefix := strings.Join(segments[:i], ".") + ".*"
		if _, ok := c.roles[prefix]; ok {
			return true
		}
	}
	return false
}

// Roles lists the checker's roles in sorted order.
func (c *RoleChecker) Roles() []string {
	out := make([]string, 0, len(c.roles))
	for role := range c.roles {
		out = append(out, role)
	}
	sort.Strings(out)
	return out
}
