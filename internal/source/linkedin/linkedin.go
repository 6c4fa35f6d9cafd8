package linkedin

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobscout/internal/domain"
	"jobscout/internal/source"
)

const (
	// Public guest endpoint behind the jobs search page. Returns plain HTML
	// job cards, no login or rendering needed.
	searchURL = "https://www.linkedin.com/jobs-guest/jobs/api/seeMoreJobPostings/search"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

type Config struct {
	Keywords string // search query, e.g. "Customer Success Manager"
	Location string // e.g. "United States"
}

type Scraper struct {
	cfg Config
	hc  *http.Client
}

func New(cfg Config) *Scraper {
	return &Scraper{
		cfg: cfg,
		hc:  &http.Client{Timeout: 20 * time.Second},
	}
}

func (s *Scraper) Name() domain.Source { return domain.SourceLinkedIn }

func (s *Scraper) Fetch(ctx context.Context) ([]source.RawPosting, error) {
	q := url.Values{}
	q.Set("keywords", s.cfg.Keywords)
	q.Set("location", s.cfg.Location)
	q.Set("f_WT", "2")        // remote
	q.Set("f_TPR", "r604800") // past week
	q.Set("sortBy", "DD")     // newest first
	q.Set("start", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("linkedin get search: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("linkedin search status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("linkedin parse search html: %w", err)
	}

	var out []source.RawPosting
	doc.Find("div.base-card, li div.base-search-card").Each(func(_ int, card *goquery.Selection) {
		href, ok := card.Find("a.base-card__full-link").First().Attr("href")
		if !ok {
			return
		}

		raw := source.RawPosting{
			URL:      stripTracking(href),
			Title:    card.Find("h3.base-search-card__title").First().Text(),
			Company:  card.Find("h4.base-search-card__subtitle").First().Text(),
			Location: card.Find("span.job-search-card__location").First().Text(),
			Salary:   card.Find(".job-search-card__salary-info").First().Text(),
		}

		// prefer the machine-readable datetime; fall back to the human label
		if t := card.Find("time").First(); t.Length() > 0 {
			if dt, ok := t.Attr("datetime"); ok && dt != "" {
				raw.PostedAt = dt
			} else {
				raw.PostedAt = t.Text()
			}
		}

		out = append(out, raw)
	})

	return out, nil
}

// stripTracking drops the query string so the same posting always yields the
// same URL. LinkedIn appends per-request refIds that would defeat dedup.
func stripTracking(href string) string {
	href = strings.TrimSpace(href)
	if i := strings.IndexByte(href, '?'); i >= 0 {
		href = href[:i]
	}
	return href
}
