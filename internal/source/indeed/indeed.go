package indeed

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
	baseURL   = "https://www.indeed.com"
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

type Config struct {
	Query    string // e.g. "Customer Success Manager"
	Location string // e.g. "Remote"
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

func (s *Scraper) Name() domain.Source { return domain.SourceIndeed }

func (s *Scraper) Fetch(ctx context.Context) ([]source.RawPosting, error) {
	q := url.Values{}
	q.Set("q", s.cfg.Query)
	q.Set("l", s.cfg.Location)
	q.Set("fromage", "7") // past week
	q.Set("sort", "date")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/jobs?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("indeed get search: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("indeed search status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("indeed parse search html: %w", err)
	}

	var out []source.RawPosting
	doc.Find(".job_seen_beacon").Each(func(_ int, card *goquery.Selection) {
		title := card.Find("h2.jobTitle span[title]").First().AttrOr("title", "")
		if title == "" {
			title = card.Find("h2.jobTitle").First().Text()
		}

		href := card.Find("h2.jobTitle a").First().AttrOr("href", "")

		out = append(out, source.RawPosting{
			URL:      absoluteURL(href),
			Title:    title,
			Company:  card.Find(`[data-testid="company-name"]`).First().Text(),
			Location: card.Find(`[data-testid="text-location"]`).First().Text(),
			Salary:   card.Find(`[data-testid="attribute_snippet_testid"]`).First().Text(),
			PostedAt: card.Find(`[data-testid="myJobsStateDate"], .date`).First().Text(),
		})
	})

	return out, nil
}

func absoluteURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	return baseURL + href
}
