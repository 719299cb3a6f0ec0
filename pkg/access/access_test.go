package access

import (
	"context"
	"testing"
)

func TestRoleCheckerGranted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		roles     []string
		attribute string
		want      bool
	}{
		{name: "exact", roles: []string{"admin.article.edit"}, attribute: "admin.article.edit", want: true},
		{name: "subtree wildcard", roles: []string{"admin.article.*"}, attribute: "admin.article.edit", want: true},
		{name: "deep subtree wildcard", roles: []string{"admin.*"}, attribute: "admin.article.comment.view", want: true},
		{name: "global wildcard", roles: []string{"*"}, attribute: "anything.at.all", want: true},
		{name: "sibling denied", roles: []string{"admin.article.*"}, attribute: "admin.user.edit", want: false},
		{name: "parent not implied", roles: []string{"admin.article.edit"}, attribute: "admin.article", want: false},
		{name: "wildcard is not a literal", roles: []string{"admin.article.edit"}, attribute: "admin.*", want: false},
		{name: "case insensitive", roles: []string{"Admin.Article.Edit"}, attribute: "admin.article.edit", want: true},
		{name: "empty attribute always granted", roles: nil, attribute: "", want: true},
		{name: "no roles", roles: nil, attribute: "admin.article.edit", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			checker := NewRoleChecker(tc.roles...)
			if got := checker.Granted(context.Background(), tc.attribute); got != tc.want {
				t.Fatalf("Granted(%q) with roles %v: got %v, want %v", tc.attribute, tc.roles, got, tc.want)
			}
		})
	}
}

func TestRoleCheckerRoles(t *testing.T) {
	t.Parallel()

	checker := NewRoleChecker("b.view", "", "  a.edit  ")
	got := checker.Roles()
	if len(got) != 2 || got[0] != "a.edit" || got[1] != "b.view" {
		t.Fatalf("Roles: got %v", got)
	}
}

func TestAllowAndDenyAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if !AllowAll().Granted(ctx, "admin.anything") {
		t.Fatal("AllowAll should grant")
	}
	if DenyAll().Granted(ctx, "admin.anything") {
		t.Fatal("DenyAll should refuse")
	}
}

func TestCheckerFunc(t *testing.T) {
	t.Parallel()

	var seen string
	checker := CheckerFunc(func(_ context.Context, attribute string) bool {
		seen = attribute
		return attribute == "admin.ok"
	})
	if !checker.Granted(context.Background(), "admin.ok") {
		t.Fatal("expected grant")
	}
	if seen != "admin.ok" {
		t.Fatalf("attribute not forwarded: %q", seen)
	}
}
