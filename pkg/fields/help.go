package fields

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	helpPolicyOnce sync.Once
	helpPolicy     *bluemonday.Policy
)

// helpMarkupPolicy permits the small HTML vocabulary admin screens use for
// field hints. Scripts, event handlers, and unknown attributes are stripped.
func helpMarkupPolicy() *bluemonday.Policy {
	helpPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").OnElements("span", "code", "a")
		helpPolicy = policy
	})
	return helpPolicy
}

// SanitizeHelp returns the help markup with disallowed HTML removed.
func SanitizeHelp(markup string) string {
	if markup == "" {
		return ""
	}
	return strings.TrimSpace(helpMarkupPolicy().Sanitize(markup))
}
