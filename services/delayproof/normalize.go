package delayproof

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/hofftmuz/subway-delay-certificate/lib/scrape"
)

// normalize converts raw scraped delays into canonical records. A delay
// whose time-bucket label is not in its site's vocabulary is logged and
// dropped; the rest of the batch is unaffected.
func normalize(ctx context.Context, delays []scrape.Delay, date time.Time) []DelayRecord {
	delayDate := date.Format("060102")

	records := make([]DelayRecord, 0, len(delays))
	for _, d := range delays {
		start, end, err := resolveTimeRange(d.Site, d.TimeRange, date)
		if err != nil {
			slog.WarnContext(
				ctx,
				"dropping delay with unrecognized time range",
				"site", d.Site,
				"line", d.Line,
				"time_range", d.TimeRange,
				"err", err,
			)
			continue
		}

		records = append(records, DelayRecord{
			Line:       d.Line,
			Direction:  d.Direction,
			TimeRange:  d.TimeRange,
			DelayDate:  delayDate,
			DelayStart: start,
			DelayEnd:   end,
			DelayTime:  d.DelayMinutes,
		})
	}
	return records
}

// filterByMinDelay keeps records delayed at least minDelay minutes,
// preserving order. Both sides are integer-parseable by the time they
// get here: the scraper validates DelayMinutes, Validate the threshold.
func filterByMinDelay(records []DelayRecord, minDelay int) []DelayRecord {
	filtered := make([]DelayRecord, 0, len(records))
	for _, r := range records {
		delay, err := strconv.Atoi(r.DelayTime)
		if err != nil {
			continue
		}
		if delay >= minDelay {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
