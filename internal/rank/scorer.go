package rank

import (
	"strings"

	"jobscout/internal/config"
	"jobscout/internal/domain"
)

const baseScore = 50

// Fixed-signal bonuses searched in lower-cased title+description.
var textBonuses = []struct {
	needle string
	bonus  int
}{
	{"enterprise", 10},
	{"b2b", 5},
	{"technical", 10},
	{"api", 5},
	{"sql", 5},
	{"integration", 5},
}

// Title-only seniority bonuses.
var titleBonuses = []struct {
	needle string
	bonus  int
}{
	{"senior", 10},
	{"lead", 5},
}

// Score computes the [0,100] relevance heuristic for a posting. Base 50,
// +5 per configured industry keyword present in title+description, fixed
// signal and seniority bonuses, +10 for a remote location, clamped to 100.
// Deterministic and order-independent: scoring the same posting twice with
// the same profile always yields the same value.
func Score(p config.Profile, j domain.JobPosting) int {
	title := strings.ToLower(j.Title)
	text := title + " " + strings.ToLower(j.Description)

	score := baseScore

	for _, industry := range p.Industries {
		n := strings.ToLower(strings.TrimSpace(industry))
		if n == "" {
			continue
		}
		if strings.Contains(text, n) {
			score += 5
		}
	}

	for _, b := range textBonuses {
		if strings.Contains(text, b.needle) {
			score += b.bonus
		}
	}
	for _, b := range titleBonuses {
		if strings.Contains(title, b.needle) {
			score += b.bonus
		}
	}

	if strings.Contains(strings.ToLower(j.Location), "remote") {
		score += 10
	}

	// base is 50 and every term is non-negative, so only the top needs clamping
	if score > 100 {
		score = 100
	}
	return score
}
