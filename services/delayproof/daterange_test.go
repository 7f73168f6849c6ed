package delayproof

import (
	"testing"
	"time"

	"github.com/hofftmuz/subway-delay-certificate/lib/timezone"

	"github.com/stretchr/testify/require"
)

func TestDaysAgo(t *testing.T) {
	now := time.Date(2024, 7, 15, 23, 45, 0, 0, timezone.Location)

	testCases := []struct {
		date   string
		expect int
	}{
		{date: "20240715", expect: 0},
		{date: "20240714", expect: 1},
		{date: "20240708", expect: 7},
		{date: "20240707", expect: 8},
		{date: "20240615", expect: 30},
		{date: "20240614", expect: 31},
		{date: "20240716", expect: -1},
	}
	for _, tc := range testCases {
		t.Run(tc.date, func(t *testing.T) {
			got, err := DaysAgo(tc.date, now)
			require.NoError(t, err)
			require.Equal(t, tc.expect, got)
		})
	}
}

// the gap is counted in calendar days, so the time of day on either
// side must not shift the result
func TestDaysAgoIgnoresTimeOfDay(t *testing.T) {
	for _, hour := range []int{0, 4, 12, 23} {
		now := time.Date(2024, 7, 15, hour, 1, 0, 0, timezone.Location)
		got, err := DaysAgo("20240714", now)
		require.NoError(t, err)
		require.Equal(t, 1, got)
	}
}

func TestDaysAgoInvalidDate(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, timezone.Location)
	_, err := DaysAgo("2024-07-15", now)
	require.Error(t, err)
}
