// Package choices supplies option lists for choice fields. Lists load from
// plain line based files, filter with prefix-first ranking for autocomplete
// style lookups, and can be served over HTTP for admin UIs that resolve a
// choices_endpoint option at runtime.
package choices

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Choice is a single selectable option in the shape admin UIs consume.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ReadList parses a line based choice list. Blank lines and lines starting
// with # are skipped, duplicates collapse, and the result is sorted.
func ReadList(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("choices: missing reader")
	}

	scanner := bufio.NewScanner(r)
	values := make([]string, 0, 512)
	seen := map[string]struct{}{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		values = append(values, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("choices: read list: %w", err)
	}

	sort.Strings(values)
	return values, nil
}

// Filter returns the values matching query, ranked so prefix matches come
// before substring matches. Matching is case insensitive. An empty query
// matches everything. A positive limit caps the result; zero or negative
// means no cap.
func Filter(values []string, query string, limit int) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return capped(values, limit)
	}

	q := strings.ToLower(query)
	matches := make([]rankedValue, 0, 32)
	for _, value := range values {
		lower := strings.ToLower(value)
		if !strings.Contains(lower, q) {
			continue
		}
		matches = append(matches, rankedValue{
			value:    value,
			isPrefix: strings.HasPrefix(lower, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].value < matches[j].value
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.value)
	}
	return out
}

// AsChoices wraps plain values as Choice entries, using each value as its own
// label.
func AsChoices(values []string) []Choice {
	if len(values) == 0 {
		return nil
	}
	out := make([]Choice, 0, len(values))
	for _, value := range values {
		out = append(out, Choice{Value: value, Label: value})
	}
	return out
}

type rankedValue struct {
	value    string
	isPrefix bool
}

func capped(values []string, limit int) []string {
	if limit > 0 && len(values) > limit {
		return append([]string{}, values[:limit]...)
	}
	return append([]string{}, values...)
}
