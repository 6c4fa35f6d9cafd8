package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}

func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate trims keyword lists and checks everything the process
// refuses to start without. The webhook URL is the one hard requirement: the
// bot must never run silently with alerts going nowhere.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.Profile.TitleKeywords = trimList(out.Profile.TitleKeywords)
	out.Profile.ExcludeKeywords = trimList(out.Profile.ExcludeKeywords)
	out.Profile.Locations = trimList(out.Profile.Locations)
	out.Profile.Industries = trimList(out.Profile.Industries)

	// webhook is required up front, not discovered per record
	hook := strings.TrimSpace(out.Alert.WebhookURL)
	if hook == "" {
		res.addErr("alert.webhook_url is required (or set %s)", EnvWebhookURL)
	} else if u, err := url.Parse(hook); err != nil || u.Scheme == "" || u.Host == "" {
		res.addErr("alert.webhook_url is not a valid URL: %q", hook)
	}

	if out.Poll.IntervalMinutes <= 0 {
		res.addErr("poll.interval_minutes must be > 0")
	} else if out.Poll.IntervalMinutes < 5 {
		res.addWarn("poll.interval_minutes is very low (%d) and may trip source rate limits.", out.Poll.IntervalMinutes)
	}

	if out.Alert.SpacingSeconds < 0 {
		res.addErr("alert.spacing_seconds must be >= 0")
	}

	if len(out.Profile.TitleKeywords) == 0 {
		res.addErr("profile.title_keywords is empty; no posting could ever be admitted")
	}
	if len(out.Profile.Locations) == 0 {
		res.addErr("profile.locations is empty; no posting could ever be admitted")
	}

	if !out.Sources.LinkedIn.Enabled && !out.Sources.Indeed.Enabled && !out.Sources.Email.Enabled {
		res.addErr("no sources enabled: enable linkedin, indeed, or email")
	}

	if out.Sources.Email.Enabled {
		if strings.TrimSpace(out.Sources.Email.IMAPHost) == "" {
			res.addErr("sources.email.imap_host is required when email is enabled")
		}
		if strings.TrimSpace(out.Sources.Email.Username) == "" {
			res.addErr("sources.email.username is required when email is enabled")
		}
	}

	return out, res
}

func trimList(xs []string) []string {
	seen := map[string]bool{}
	var ys []string
	for _, x := range xs {
		x = strings.TrimSpace(x)
		if x == "" {
			continue
		}
		key := strings.ToLower(x)
		if seen[key] {
			continue
		}
		seen[key] = true
		ys = append(ys, x)
	}
	return ys
}
