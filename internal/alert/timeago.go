package alert

import (
	"fmt"
	"strings"
	"time"
)

// Layouts adapters are known to emit for absolute timestamps.
var postedAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatTimeAgo renders a posting timestamp for the alert. Sources that
// already hand us a relative string ("3 days ago") pass through untouched;
// absolute timestamps are bucketed into minutes, hours, days, or the plain
// date once they are a week old. Unparseable input also passes through.
func FormatTimeAgo(postedAt string, now time.Time) string {
	if strings.Contains(postedAt, "ago") {
		return postedAt
	}

	var (
		t   time.Time
		err error
	)
	for _, layout := range postedAtLayouts {
		if t, err = time.Parse(layout, postedAt); err == nil {
			break
		}
	}
	if err != nil {
		return postedAt
	}

	diff := now.Sub(t)
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(diff.Hours()/24))
	default:
		return t.Format("1/2/2006")
	}
}
