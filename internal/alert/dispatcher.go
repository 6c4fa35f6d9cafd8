package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"jobscout/internal/domain"
)

const defaultAvatarURL = "https://cdn-icons-png.flaticon.com/512/2991/2991148.png"

// Embed colors by match score: green for excellent, orange for good,
// red-orange otherwise.
const (
	colorExcellent = 0x00ff00
	colorGood      = 0xffaa00
	colorOkay      = 0xff6600
)

// Config for the dispatcher. WebhookURL is mandatory; everything else has a
// sane default.
type Config struct {
	WebhookURL string
	Username   string
	AvatarURL  string
	// Spacing is the minimum gap between deliveries, to stay under the
	// webhook's rate limit.
	Spacing time.Duration
}

// Dispatcher posts one alert per admitted, unseen posting to a Discord-style
// webhook. It owns the pacing limiter; callers just call Deliver in a loop.
type Dispatcher struct {
	cfg     Config
	hc      *http.Client
	limiter *rate.Limiter
	now     func() time.Time
}

// New fails fast on a missing webhook URL so a misconfigured process refuses
// to start instead of dropping every alert at delivery time.
func New(cfg Config) (*Dispatcher, error) {
	if strings.TrimSpace(cfg.WebhookURL) == "" {
		return nil, errors.New("alert webhook URL is not configured")
	}
	if cfg.Username == "" {
		cfg.Username = "Job Search Bot"
	}
	if cfg.AvatarURL == "" {
		cfg.AvatarURL = defaultAvatarURL
	}
	if cfg.Spacing <= 0 {
		cfg.Spacing = time.Second
	}
	return &Dispatcher{
		cfg:     cfg,
		hc:      &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Every(cfg.Spacing), 1),
		now:     time.Now,
	}, nil
}

type webhookPayload struct {
	Username  string  `json:"username"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Content   string  `json:"content,omitempty"`
	Embeds    []embed `json:"embeds,omitempty"`
}

type embed struct {
	Title       string       `json:"title"`
	URL         string       `json:"url,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color"`
	Fields      []embedField `json:"fields,omitempty"`
	Footer      *embedFooter `json:"footer,omitempty"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type embedFooter struct {
	Text string `json:"text"`
}

// Deliver sends one alert for j. It waits on the pacing limiter first, then
// does a single POST; a non-2xx status or transport error is returned to the
// caller and never retried here.
func (d *Dispatcher) Deliver(ctx context.Context, j domain.JobPosting) error {
	if err := d.limiter.Wait(ctx); err != nil {
		return err
	}
	return d.post(ctx, webhookPayload{
		Username:  d.cfg.Username,
		AvatarURL: d.cfg.AvatarURL,
		Embeds:    []embed{d.buildEmbed(j)},
	})
}

func (d *Dispatcher) buildEmbed(j domain.JobPosting) embed {
	salary := j.Salary
	if salary == "" {
		salary = "Not specified"
	}

	posted := "Recently"
	if j.PostedAt != "" {
		posted = FormatTimeAgo(j.PostedAt, d.now())
	}

	e := embed{
		Title: "🚨 " + j.Title,
		URL:   j.URL,
		Color: colorForScore(j.MatchScore),
		Fields: []embedField{
			{Name: "🏢 Company", Value: j.Company, Inline: true},
			{Name: "📍 Location", Value: j.Location, Inline: true},
			{Name: "💰 Salary", Value: salary, Inline: true},
			{Name: "🌐 Source", Value: string(j.Source), Inline: true},
			{Name: "⏰ Posted", Value: posted, Inline: true},
			{Name: "🎯 Match Score", Value: fmt.Sprintf("%d%%", j.MatchScore), Inline: true},
		},
		Footer: &embedFooter{
			Text: "Be one of the first to apply! • " + d.now().Format("Jan 2, 2006 3:04 PM"),
		},
	}

	if j.Description != "" {
		e.Description = truncate(j.Description, 200)
	}
	return e
}

// TestMessage posts a status embed so a fresh install can verify the webhook
// before the first cycle fires.
func (d *Dispatcher) TestMessage(ctx context.Context) error {
	return d.post(ctx, webhookPayload{
		Username:  d.cfg.Username,
		AvatarURL: d.cfg.AvatarURL,
		Content:   "✅ Job search bot is active and monitoring for new postings.",
		Embeds: []embed{{
			Title: "🤖 Bot Status",
			Color: colorExcellent,
			Fields: []embedField{
				{Name: "Webhook", Value: "reachable"},
			},
		}},
	})
}

func (d *Dispatcher) post(ctx context.Context, payload webhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := d.hc.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("webhook status %d", res.StatusCode)
	}
	return nil
}

func colorForScore(score int) int {
	switch {
	case score >= 80:
		return colorExcellent
	case score >= 60:
		return colorGood
	default:
		return colorOkay
	}
}

func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit])) + "..."
}
