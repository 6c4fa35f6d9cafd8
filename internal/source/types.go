package source

import (
	"context"

	"jobscout/internal/domain"
)

// RawPosting is what an adapter extracts before normalization. Fields map
// 1:1 onto the canonical record; anything may be empty, normalization
// decides what is fatal for the record.
type RawPosting struct {
	URL         string
	Title       string
	Company     string
	Location    string
	Salary      string
	PostedAt    string
	Description string
}

// Fetcher is the per-source collaborator contract: produce zero or more raw
// postings or fail. How (HTTP, IMAP, rendering) is the adapter's business.
type Fetcher interface {
	Name() domain.Source
	Fetch(ctx context.Context) ([]RawPosting, error)
}
