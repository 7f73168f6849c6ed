package delayproof

import (
	"context"
	"testing"
	"time"

	"github.com/hofftmuz/subway-delay-certificate/lib/scrape"
	"github.com/hofftmuz/subway-delay-certificate/lib/timezone"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	date := time.Date(2024, 7, 15, 0, 0, 0, 0, timezone.Location)

	delays := []scrape.Delay{
		{
			Site:         scrape.SiteSeoulMetro,
			Line:         "2호선",
			Direction:    "상선",
			TimeRange:    "첫차~09시",
			DelayMinutes: "40",
		},
		{
			Site:         scrape.SiteKorail,
			Line:         "경부선",
			Direction:    "하행",
			TimeRange:    "22시~막차",
			DelayMinutes: "15",
		},
	}

	records := normalize(context.Background(), delays, date)
	require.Equal(t, []DelayRecord{
		{
			Line:       "2호선",
			Direction:  "상선",
			TimeRange:  "첫차~09시",
			DelayDate:  "240715",
			DelayStart: "202407150400",
			DelayEnd:   "202407150900",
			DelayTime:  "40",
		},
		{
			Line:       "경부선",
			Direction:  "하행",
			TimeRange:  "22시~막차",
			DelayDate:  "240715",
			DelayStart: "202407152200",
			DelayEnd:   "202407160200",
			DelayTime:  "15",
		},
	}, records)
}

// a single unrecognized bucket label drops that entry only, its
// siblings pass through untouched
func TestNormalizeDropsUnknownRange(t *testing.T) {
	date := time.Date(2024, 7, 15, 0, 0, 0, 0, timezone.Location)

	delays := []scrape.Delay{
		{Site: scrape.SiteSeoulMetro, Line: "1호선", Direction: "상선", TimeRange: "09시~18시", DelayMinutes: "30"},
		{Site: scrape.SiteSeoulMetro, Line: "3호선", Direction: "하선", TimeRange: "점검중", DelayMinutes: "60"},
		{Site: scrape.SiteSeoulMetro, Line: "4호선", Direction: "상선", TimeRange: "18시~막차", DelayMinutes: "20"},
	}

	records := normalize(context.Background(), delays, date)
	require.Len(t, records, 2)
	require.Equal(t, "1호선", records[0].Line)
	require.Equal(t, "4호선", records[1].Line)
}

func TestNormalizeEmpty(t *testing.T) {
	date := time.Date(2024, 7, 15, 0, 0, 0, 0, timezone.Location)
	records := normalize(context.Background(), nil, date)
	require.Empty(t, records)
	require.NotNil(t, records)
}

func TestFilterByMinDelay(t *testing.T) {
	records := []DelayRecord{
		{Line: "1호선", DelayTime: "20"},
		{Line: "2호선", DelayTime: "30"},
		{Line: "3호선", DelayTime: "45"},
		{Line: "4호선", DelayTime: "29"},
	}

	testCases := []struct {
		name     string
		minDelay int
		lines    []string
	}{
		{name: "threshold 30 is inclusive", minDelay: 30, lines: []string{"2호선", "3호선"}},
		{name: "zero keeps everything", minDelay: 0, lines: []string{"1호선", "2호선", "3호선", "4호선"}},
		{name: "above all", minDelay: 60, lines: []string{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := filterByMinDelay(records, tc.minDelay)
			lines := make([]string, 0, len(got))
			for _, r := range got {
				lines = append(lines, r.Line)
			}
			require.Equal(t, tc.lines, lines)
		})
	}
}
