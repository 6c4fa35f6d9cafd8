// Package email ingests LinkedIn job-alert emails over IMAP. It is the one
// adapter that does not scrape the web: alerts land in a mailbox, the
// fetcher pulls unseen ones, parses the HTML body, and marks them seen so
// the next cycle skips them.
package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"jobscout/internal/domain"
	"jobscout/internal/source"
)

type Config struct {
	Host        string
	Port        int
	Username    string
	Password    string
	Mailbox     string
	MaxMessages int
}

type Fetcher struct {
	cfg Config
}

func New(cfg Config) *Fetcher {
	if cfg.Mailbox == "" {
		cfg.Mailbox = "INBOX"
	}
	if cfg.MaxMessages <= 0 {
		cfg.MaxMessages = 50
	}
	return &Fetcher{cfg: cfg}
}

func (f *Fetcher) Name() domain.Source { return domain.SourceEmail }

func (f *Fetcher) Fetch(ctx context.Context) ([]source.RawPosting, error) {
	if f.cfg.Host == "" || f.cfg.Username == "" || f.cfg.Password == "" {
		return nil, errors.New("imap host/username/password are required")
	}

	addr := fmt.Sprintf("%s:%d", f.cfg.Host, f.cfg.Port)
	c, err := imapclient.DialTLS(addr, &imapclient.Options{
		TLSConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
			ServerName: f.cfg.Host,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("imap dial tls: %w", err)
	}
	defer c.Close()

	// best-effort close on context cancel
	go func() {
		<-ctx.Done()
		_ = c.Close()
	}()

	if err := c.Login(f.cfg.Username, f.cfg.Password).Wait(); err != nil {
		return nil, fmt.Errorf("imap login: %w", err)
	}
	defer func() { _ = c.Logout().Wait() }()

	if _, err := c.Select(f.cfg.Mailbox, &imap.SelectOptions{ReadOnly: false}).Wait(); err != nil {
		return nil, fmt.Errorf("imap select %s: %w", f.cfg.Mailbox, err)
	}

	// Only unseen job-alert mail from the past week; older alerts carry
	// postings the store has long since seen anyway.
	criteria := &imap.SearchCriteria{
		NotFlag: []imap.Flag{imap.FlagSeen},
		Since:   time.Now().AddDate(0, 0, -7),
		Header: []imap.SearchCriteriaHeaderField{
			{Key: "From", Value: "linkedin.com"},
		},
	}
	searchData, err := c.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("imap uid search: %w", err)
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return nil, nil
	}
	if len(uids) > f.cfg.MaxMessages {
		uids = uids[len(uids)-f.cfg.MaxMessages:] // newest tail
	}

	// BODY.PEEK[] so a failed parse leaves the message unseen for next time.
	section := &imap.FetchItemBodySection{Peek: true}
	msgs, err := c.Fetch(imap.UIDSetNum(uids...), &imap.FetchOptions{
		UID:         true,
		Envelope:    true,
		BodySection: []*imap.FetchItemBodySection{section},
	}).Collect()
	if err != nil {
		return nil, fmt.Errorf("imap fetch: %w", err)
	}

	var (
		out       []source.RawPosting
		processed []imap.UID
	)
	for _, m := range msgs {
		raw := m.FindBodySection(section)
		if len(raw) == 0 {
			continue
		}
		body := htmlPart(raw)
		if body == "" {
			continue
		}
		jobs := parseJobAlert(body)
		out = append(out, jobs...)
		processed = append(processed, m.UID)
	}

	// mark parsed alerts seen so they are not re-ingested every cycle
	if len(processed) > 0 {
		if err := c.Store(imap.UIDSetNum(processed...), &imap.StoreFlags{
			Op:     imap.StoreFlagsAdd,
			Silent: true,
			Flags:  []imap.Flag{imap.FlagSeen},
		}, nil).Close(); err != nil {
			return out, fmt.Errorf("imap mark seen: %w", err)
		}
	}

	return out, nil
}
