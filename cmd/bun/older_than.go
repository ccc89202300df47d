package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
)

// parseOlderThan accepts a Go duration ("90m") or a natural-language age ("3 hours", "2 days
// ago") and returns it as a duration before now.
func parseOlderThan(input string, now time.Time) (time.Duration, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return 0, fmt.Errorf("--older-than is required")
	}
	if d, err := time.ParseDuration(input); err == nil {
		if d <= 0 {
			return 0, fmt.Errorf("--older-than must be positive, got %s", d)
		}
		return d, nil
	}

	if !strings.HasSuffix(input, " ago") {
		input += " ago"
	}

	w := when.New(nil)
	w.Add(en.All...)

	r, err := w.Parse(input, now)
	if err != nil {
		return 0, fmt.Errorf("parse --older-than %q: %w", input, err)
	}
	if r == nil {
		return 0, fmt.Errorf("could not recognize --older-than %q", input)
	}

	d := now.Sub(r.Time)
	if d <= 0 {
		return 0, fmt.Errorf("--older-than %q is not in the past", input)
	}
	return d, nil
}
