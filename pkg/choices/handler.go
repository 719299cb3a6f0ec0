package choices

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

// ListFunc supplies the full choice list a handler serves. It runs on every
// request so sources may refresh behind it.
type ListFunc func() ([]string, error)

// GuardFunc vets a request before the handler serves it. Returning an error
// rejects the request; wrap a StatusError to pick the response code.
type GuardFunc func(r *http.Request) error

// StatusError carries an HTTP status code for guard rejections.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.StatusCode())
}

func (e StatusError) Unwrap() error { return e.Err }

// StatusCode returns the carried code, or 500 when unset.
func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type handlerConfig struct {
	searchParam  string
	limitParam   string
	defaultLimit int
	maxLimit     int
	guard        GuardFunc
}

// HandlerOption adjusts how NewHandler serves a choice list.
type HandlerOption func(*handlerConfig)

// WithSearchParam renames the query parameter holding the search term.
func WithSearchParam(name string) HandlerOption {
	return func(c *handlerConfig) {
		if name != "" {
			c.searchParam = name
		}
	}
}

// WithLimitParam renames the query parameter holding the result cap.
func WithLimitParam(name string) HandlerOption {
	return func(c *handlerConfig) {
		if name != "" {
			c.limitParam = name
		}
	}
}

// WithDefaultLimit sets the cap applied when the request names none.
func WithDefaultLimit(limit int) HandlerOption {
	return func(c *handlerConfig) {
		if limit > 0 {
			c.defaultLimit = limit
		}
	}
}

// WithMaxLimit sets the ceiling a request provided limit clamps to.
func WithMaxLimit(limit int) HandlerOption {
	return func(c *handlerConfig) {
		if limit > 0 {
			c.maxLimit = limit
		}
	}
}

// WithGuard installs a request guard, typically backed by the caller's access
// checks.
func WithGuard(guard GuardFunc) HandlerOption {
	return func(c *handlerConfig) {
		c.guard = guard
	}
}

type choicesResponse struct {
	Data []Choice `json:"data"`
}

// NewHandler serves a choice list as JSON for admin UIs resolving a field's
// choices_endpoint. GET and HEAD only; the search and limit parameters filter
// the list the way Filter does.
func NewHandler(list ListFunc, opts ...HandlerOption) http.Handler {
	cfg := handlerConfig{
		searchParam:  "q",
		limitParam:   "limit",
		defaultLimit: 50,
		maxLimit:     200,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if cfg.guard != nil {
			if err := cfg.guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		if list == nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		values, err := list()
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		query := r.URL.Query().Get(cfg.searchParam)
		limit := clampLimit(parseLimit(r.URL.Query().Get(cfg.limitParam)), cfg)

		results := AsChoices(Filter(values, query, limit))
		if results == nil {
			results = []Choice{}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}

		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(choicesResponse{Data: results})
	})
}

func writeGuardError(w http.ResponseWriter, err error) {
	code := http.StatusForbidden
	var statusErr StatusError
	if errors.As(err, &statusErr) {
		code = statusErr.StatusCode()
	}
	http.Error(w, http.StatusText(code), code)
}

func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}

func clampLimit(limit int, cfg handlerConfig) int {
	if limit <= 0 {
		limit = cfg.defaultLimit
	}
	if cfg.maxLimit > 0 && limit > cfg.maxLimit {
		return cfg.maxLimit
	}
	return limit
}
