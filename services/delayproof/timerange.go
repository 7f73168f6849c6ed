package delayproof

import (
	"errors"
	"fmt"
	"time"

	"github.com/hofftmuz/subway-delay-certificate/lib/scrape"
)

// Each site renders a fixed set of time-bucket columns. The last bucket
// of the service day runs past midnight and ends at 02:00 the next day.
type timeRange struct {
	startHour int
	endHour   int
	nextDay   bool
}

var seoulMetroTimeRanges = map[string]timeRange{
	"첫차~09시":  {startHour: 4, endHour: 9},
	"09시~18시": {startHour: 9, endHour: 18},
	"18시~막차":  {startHour: 18, endHour: 2, nextDay: true},
}

var korailTimeRanges = map[string]timeRange{
	"첫차~08시":  {startHour: 4, endHour: 8},
	"08시~10시": {startHour: 8, endHour: 10},
	"10시~18시": {startHour: 10, endHour: 18},
	"18시~22시": {startHour: 18, endHour: 22},
	"22시~막차":  {startHour: 22, endHour: 2, nextDay: true},
}

var ErrUnknownTimeRange = errors.New("unknown time range")

const absoluteStamp = "200601021504"

// resolveTimeRange maps a site-specific bucket label on the given
// calendar date to absolute YYYYMMDDHHmm start/end timestamps.
func resolveTimeRange(site scrape.Site, label string, date time.Time) (string, string, error) {
	ranges := seoulMetroTimeRanges
	if site == scrape.SiteKorail {
		ranges = korailTimeRanges
	}

	mapping, ok := ranges[label]
	if !ok {
		return "", "", fmt.Errorf("%w: %q (site: %s)", ErrUnknownTimeRange, label, site)
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), mapping.startHour, 0, 0, 0, date.Location())

	endDate := date
	if mapping.nextDay {
		endDate = date.AddDate(0, 0, 1)
	}
	end := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), mapping.endHour, 0, 0, 0, date.Location())

	return start.Format(absoluteStamp), end.Format(absoluteStamp), nil
}
