package delayproof

import (
	"time"

	"github.com/hofftmuz/subway-delay-certificate/lib/timezone"
)

// Seoul Metro serves the last 30 days; anything older fails the whole
// request before a network call is made. Korail only serves the last
// week: an older date silently drops Korail from the scrape and the
// response degrades to a partial success.
const maxLookbackDays = 30
const korailLookbackDays = 7

// DaysAgo returns how many calendar days back the 8-digit date lies
// from now, both taken at KST start of day. Zero for today, negative
// for future dates. Independent of time of day.
func DaysAgo(date string, now time.Time) (int, error) {
	d, err := time.ParseInLocation("20060102", date, timezone.Location)
	if err != nil {
		return 0, err
	}
	diff := timezone.StartOfDay(now).Sub(timezone.StartOfDay(d))
	return int(diff.Hours() / 24), nil
}
