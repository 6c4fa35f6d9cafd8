package rank

import (
	"strings"

	"jobscout/internal/config"
	"jobscout/internal/domain"
)

// Admits reports whether a posting passes the interest profile. Three
// conjunctive checks, all case-insensitive:
//
//  1. title contains at least one required keyword
//  2. title contains no excluded keyword
//  3. location contains at least one acceptable location keyword
//
// Pure: no I/O, no state. The same posting and profile always agree.
func Admits(p config.Profile, j domain.JobPosting) bool {
	title := strings.ToLower(j.Title)
	location := strings.ToLower(j.Location)

	if !containsAny(title, p.TitleKeywords) {
		return false
	}
	if containsAny(title, p.ExcludeKeywords) {
		return false
	}
	if !containsAny(location, p.Locations) {
		return false
	}
	return true
}

// RejectReason names the first failing check, for log lines only. Admits
// stays the source of truth.
func RejectReason(p config.Profile, j domain.JobPosting) string {
	title := strings.ToLower(j.Title)
	location := strings.ToLower(j.Location)

	switch {
	case !containsAny(title, p.TitleKeywords):
		return "no_title_keyword"
	case containsAny(title, p.ExcludeKeywords):
		return "excluded_keyword"
	case !containsAny(location, p.Locations):
		return "location"
	default:
		return ""
	}
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
