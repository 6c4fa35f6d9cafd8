package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "jobs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st, err := New(db)
	require.NoError(t, err)
	return st
}

func sample(url string) domain.JobPosting {
	return domain.JobPosting{
		URL:        url,
		Title:      "Customer Success Manager",
		Company:    "Acme",
		Location:   "Remote",
		Source:     domain.SourceLinkedIn,
		Salary:     "$100k",
		PostedAt:   "2 days ago",
		MatchScore: 75,
	}
}

func TestHasBeforeAndAfterPut(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	seen, err := st.Has(ctx, "https://example.com/jobs/1")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, st.Put(ctx, sample("https://example.com/jobs/1")))

	seen, err = st.Has(ctx, "https://example.com/jobs/1")
	require.NoError(t, err)
	assert.True(t, seen)

	// a different URL is still unseen
	seen, err = st.Has(ctx, "https://example.com/jobs/2")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestPutIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first := sample("https://example.com/jobs/1")
	require.NoError(t, st.Put(ctx, first))

	// same URL with different fields: no error, stored record unchanged
	second := first
	second.Title = "Completely Different Title"
	second.MatchScore = 10
	require.NoError(t, st.Put(ctx, second))

	all, err := st.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Customer Success Manager", all[0].Title)
	assert.Equal(t, 75, all[0].MatchScore)
}

func TestAllNewestFirst(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, u := range []string{"https://a", "https://b", "https://c"} {
		require.NoError(t, st.Put(ctx, sample(u)))
	}

	all, err := st.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "https://c", all[0].URL)
	assert.Equal(t, "https://b", all[1].URL)
	assert.Equal(t, "https://a", all[2].URL)
}

func TestAllRoundTripsFields(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	j := sample("https://example.com/jobs/1")
	require.NoError(t, st.Put(ctx, j))

	all, err := st.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	got := all[0]
	assert.Equal(t, j.URL, got.URL)
	assert.Equal(t, j.Title, got.Title)
	assert.Equal(t, j.Company, got.Company)
	assert.Equal(t, j.Location, got.Location)
	assert.Equal(t, j.Source, got.Source)
	assert.Equal(t, j.Salary, got.Salary)
	assert.Equal(t, j.PostedAt, got.PostedAt)
	assert.Equal(t, j.MatchScore, got.MatchScore)
	assert.False(t, got.SeenAt.IsZero())
}

func TestAllRejectsCorruptSeenAt(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "jobs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st, err := New(db)
	require.NoError(t, err)

	_, err = db.Exec(`
INSERT INTO jobs (url, title, company, location, source, seen_at)
VALUES ('https://a', 'CSM', 'Acme', 'Remote', 'linkedin', 'not-a-timestamp');`)
	require.NoError(t, err)

	_, err = st.All(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seen_at")
}

func TestPutStoresEmptyOptionalFieldsAsNull(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	j := sample("https://example.com/jobs/1")
	j.Salary = ""
	j.PostedAt = ""
	require.NoError(t, st.Put(ctx, j))

	all, err := st.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Empty(t, all[0].Salary)
	assert.Empty(t, all[0].PostedAt)
}

func TestStats(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	stats, err := st.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)

	li := sample("https://a")
	require.NoError(t, st.Put(ctx, li))

	in := sample("https://b")
	in.Source = domain.SourceIndeed
	require.NoError(t, st.Put(ctx, in))

	in2 := sample("https://c")
	in2.Source = domain.SourceIndeed
	require.NoError(t, st.Put(ctx, in2))

	stats, err = st.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.BySource[domain.SourceLinkedIn])
	assert.Equal(t, 2, stats.BySource[domain.SourceIndeed])
}
