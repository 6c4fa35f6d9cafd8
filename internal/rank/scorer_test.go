package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobscout/internal/config"
	"jobscout/internal/domain"
)

func TestScoreBaseline(t *testing.T) {
	// nothing matches: base score only
	j := domain.JobPosting{Title: "Gardener", Location: "Portland"}
	assert.Equal(t, 50, Score(config.Profile{}, j))
}

func TestScoreSeniorRemote(t *testing.T) {
	p := config.Profile{}
	j := domain.JobPosting{
		Title:    "Senior Customer Success Manager",
		Location: "Remote - US",
	}
	// 50 base + 10 senior + 10 remote
	assert.Equal(t, 70, Score(p, j))
}

func TestScoreIndustryAndSignalBonuses(t *testing.T) {
	p := config.Profile{Industries: []string{"saas", "broadcast"}}
	j := domain.JobPosting{
		Title:       "Technical Account Manager",
		Location:    "Seattle",
		Description: "Enterprise SaaS platform with a public API",
	}
	// 50 base + 5 saas + 10 technical + 10 enterprise + 5 api
	assert.Equal(t, 80, Score(p, j))
}

func TestScoreIsIdempotent(t *testing.T) {
	p := config.Profile{Industries: []string{"saas", "video", "data"}}
	j := domain.JobPosting{
		Title:       "Senior Technical Account Manager",
		Location:    "Remote",
		Description: "enterprise b2b saas with sql and api integration work on video data",
	}
	first := Score(p, j)
	assert.Equal(t, first, Score(p, j))
	assert.Equal(t, first, Score(p, j))
}

func TestScoreClampedAt100(t *testing.T) {
	// pile on enough industries that the raw sum blows past 100
	p := config.Profile{Industries: []string{
		"saas", "software", "platform", "cloud", "data", "analytics",
		"security", "fintech", "infrastructure", "automation",
	}}
	j := domain.JobPosting{
		Title:       "Senior Lead Technical Account Manager",
		Location:    "Remote",
		Description: "enterprise b2b saas software platform cloud data analytics security fintech infrastructure automation sql api integration",
	}
	assert.Equal(t, 100, Score(p, j))
}

func TestScoreBounds(t *testing.T) {
	profiles := []config.Profile{
		{},
		{Industries: []string{"saas"}},
		{Industries: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}},
	}
	jobs := []domain.JobPosting{
		{},
		{Title: "x", Location: "y"},
		{Title: "senior lead technical", Location: "remote", Description: "enterprise b2b api sql integration a b c d e f g h i j k l"},
	}
	for _, p := range profiles {
		for _, j := range jobs {
			s := Score(p, j)
			assert.GreaterOrEqual(t, s, 0)
			assert.LessOrEqual(t, s, 100)
		}
	}
}

func TestScoreTitleOnlyBonusesIgnoreDescription(t *testing.T) {
	p := config.Profile{}
	j := domain.JobPosting{
		Title:       "Customer Success Manager",
		Location:    "Boston",
		Description: "senior lead role", // seniority words outside the title don't count
	}
	assert.Equal(t, 50, Score(p, j))
}
