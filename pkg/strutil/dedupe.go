// Package strutil holds small string-slice helpers shared across modules.
package strutil

import "strings"

// NormalizeTags trims whitespace, drops empties, and removes duplicates
// while preserving first-seen order. Link and evidence tag lists are
// free-form user input, so they get normalized once at construction instead
// of at every read.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ContainsFold reports whether list contains s, comparing case-insensitively.
func ContainsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
