// Package pretty renders parsed commits into the eight presentation
// formats named in spec.md §4.I: RAW, MEDIUM, SHORT, EMAIL, FULL, FULLER,
// ONELINE, and USERFORMAT, including RFC 2047 Q-encoded headers and the
// user-format template language. Grounded on original_source/commit.c's
// pretty_print_commit family.
package pretty

import (
	"fmt"
	"time"

	"github.com/antgroup/commitgraph/commitgraph"
)

// NormalDateFormatter renders the three non-relative date styles named
// in spec.md §4.D/§4.I: Normal, RFC 2822, and ISO 8601. It implements
// commitgraph.DateFormatter.
type NormalDateFormatter struct{}

func (NormalDateFormatter) FormatDate(epoch int64, tz string, style commitgraph.DateStyle) string {
	loc := locationForTZ(tz)
	t := time.Unix(epoch, 0).In(loc)
	switch style {
	case commitgraph.DateRFC2822:
		return t.Format("Mon, 2 Jan 2006 15:04:05 ") + tz
	case commitgraph.DateISO8601:
		return t.Format("2006-01-02 15:04:05 ") + tz
	case commitgraph.DateNormal:
		return t.Format("Mon Jan 2 15:04:05 2006 ") + tz
	default:
		return t.Format("Mon Jan 2 15:04:05 2006 ") + tz
	}
}

// RelativeDateFormatter renders DateRelative ("3 days ago"-style) and
// falls back to NormalDateFormatter for the other three styles.
type RelativeDateFormatter struct {
	// Now is the reference instant relative durations are computed
	// against. The zero value means time.Now().
	Now func() time.Time
}

func (r RelativeDateFormatter) FormatDate(epoch int64, tz string, style commitgraph.DateStyle) string {
	if style != commitgraph.DateRelative {
		return NormalDateFormatter{}.FormatDate(epoch, tz, style)
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	d := now().Sub(time.Unix(epoch, 0))
	return humanizeDuration(d)
}

func humanizeDuration(d time.Duration) string {
	secs := int64(d.Seconds())
	switch {
	case secs < 0:
		return "in the future"
	case secs < 90:
		return fmt.Sprintf("%d seconds ago", secs)
	case secs < 90*60:
		return fmt.Sprintf("%d minutes ago", secs/60)
	case secs < 36*3600:
		return fmt.Sprintf("%d hours ago", secs/3600)
	case secs < 14*86400:
		return fmt.Sprintf("%d days ago", secs/86400)
	case secs < 10*7*86400:
		return fmt.Sprintf("%d weeks ago", secs/(7*86400))
	case secs < 365*86400:
		return fmt.Sprintf("%d months ago", secs/(30*86400))
	default:
		return fmt.Sprintf("%d years ago", secs/(365*86400))
	}
}

func locationForTZ(tz string) *time.Location {
	if len(tz) != 5 {
		return time.UTC
	}
	sign := 1
	switch tz[0] {
	case '-':
		sign = -1
	case '+':
	default:
		return time.UTC
	}
	var hh, mm int
	if _, err := fmt.Sscanf(tz[1:3], "%2d", &hh); err != nil {
		return time.UTC
	}
	if _, err := fmt.Sscanf(tz[3:5], "%2d", &mm); err != nil {
		return time.UTC
	}
	offset := sign * (hh*3600 + mm*60)
	return time.FixedZone(tz, offset)
}
