package source

import (
	"strings"

	"jobscout/internal/domain"
)

// Normalize turns an adapter's raw output into canonical records. It is a
// best-effort decode: records missing url, title, or company are dropped and
// counted, never turned into an error. An empty location defaults to
// "Remote" so required display fields are never blank.
func Normalize(src domain.Source, raws []RawPosting) (jobs []domain.JobPosting, skipped int) {
	for _, r := range raws {
		url := strings.TrimSpace(r.URL)
		title := cleanText(r.Title)
		company := cleanText(r.Company)

		if url == "" || title == "" || company == "" {
			skipped++
			continue
		}

		location := cleanText(r.Location)
		if location == "" {
			location = "Remote"
		}

		jobs = append(jobs, domain.JobPosting{
			URL:         url,
			Title:       title,
			Company:     company,
			Location:    location,
			Source:      src,
			Salary:      cleanText(r.Salary),
			PostedAt:    strings.TrimSpace(r.PostedAt),
			Description: strings.TrimSpace(r.Description),
		})
	}
	return jobs, skipped
}

// cleanText collapses whitespace and strips non-breaking spaces that HTML
// sources love to leave behind.
func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
