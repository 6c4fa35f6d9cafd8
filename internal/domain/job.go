package domain

// Source tags the adapter a posting came from. New adapters add a constant
// here; the store and dispatcher treat it as an opaque label.
type Source string

const (
	SourceLinkedIn Source = "linkedin"
	SourceIndeed   Source = "indeed"
	SourceEmail    Source = "email"
)

// JobPosting is the canonical record every adapter normalizes into.
// URL is the sole identity key: two postings with the same URL are the same
// posting, regardless of source or cycle.
type JobPosting struct {
	URL      string
	Title    string
	Company  string
	Location string
	Source   Source

	Salary      string // free text, may be empty
	PostedAt    string // RFC3339 or a source-supplied relative string ("3 days ago")
	Description string // may be empty

	// MatchScore is computed by rank.Score after admission. Zero until then.
	MatchScore int
}
