package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobscout/internal/config"
	"jobscout/internal/domain"
)

func testProfile() config.Profile {
	return config.Profile{
		TitleKeywords:   []string{"customer success manager", "technical account manager"},
		ExcludeKeywords: []string{"director", "junior"},
		Locations:       []string{"remote", "seattle"},
		Industries:      []string{"saas", "broadcast"},
	}
}

func TestAdmitsRequiresAllThreeChecks(t *testing.T) {
	p := testProfile()

	base := domain.JobPosting{
		URL:      "https://example.com/jobs/1",
		Title:    "Senior Customer Success Manager",
		Company:  "Acme",
		Location: "Remote - US",
	}
	assert.True(t, Admits(p, base))

	// violate exactly one condition at a time
	noKeyword := base
	noKeyword.Title = "Senior Account Executive"
	assert.False(t, Admits(p, noKeyword))
	assert.Equal(t, "no_title_keyword", RejectReason(p, noKeyword))

	excluded := base
	excluded.Title = "Director of Customer Success Manager Team"
	assert.False(t, Admits(p, excluded))
	assert.Equal(t, "excluded_keyword", RejectReason(p, excluded))

	badLocation := base
	badLocation.Location = "New York, NY"
	assert.False(t, Admits(p, badLocation))
	assert.Equal(t, "location", RejectReason(p, badLocation))
}

func TestAdmitsIsCaseInsensitive(t *testing.T) {
	p := testProfile()

	j := domain.JobPosting{
		Title:    "CUSTOMER SUCCESS MANAGER",
		Location: "REMOTE",
	}
	assert.True(t, Admits(p, j))
}

func TestAdmitsExcludedKeywordWins(t *testing.T) {
	p := testProfile()

	// title matches a required keyword AND an excluded one: rejected
	j := domain.JobPosting{
		Title:    "Director of Customer Success",
		Location: "Remote",
	}
	assert.False(t, Admits(p, j))
}

func TestRejectReasonEmptyForAdmitted(t *testing.T) {
	p := testProfile()
	j := domain.JobPosting{
		Title:    "Technical Account Manager",
		Location: "Seattle, WA",
	}
	assert.True(t, Admits(p, j))
	assert.Equal(t, "", RejectReason(p, j))
}

func TestAdmitsIgnoresBlankKeywords(t *testing.T) {
	p := config.Profile{
		TitleKeywords: []string{"", "  ", "engineer"},
		Locations:     []string{"remote"},
	}
	j := domain.JobPosting{Title: "Solutions Engineer", Location: "Remote"}
	assert.True(t, Admits(p, j))

	// a profile of only blank keywords admits nothing
	p.TitleKeywords = []string{"", "  "}
	assert.False(t, Admits(p, j))
}
