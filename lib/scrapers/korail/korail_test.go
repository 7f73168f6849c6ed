package korail

import (
	"errors"
	"testing"

	"github.com/hofftmuz/subway-delay-certificate/lib/scrape"

	"github.com/stretchr/testify/require"

	_ "embed"
)

//go:embed testdata/delaylist.html
var delaylistFixture []byte

func TestParseDelayList(t *testing.T) {
	delays, err := parseDelayList(delaylistFixture)
	require.NoError(t, err)

	require.Equal(t, []scrape.Delay{
		{
			Site:         scrape.SiteKorail,
			Line:         "경부선",
			Direction:    "상행",
			TimeRange:    "첫차~08시",
			DelayMinutes: "15",
			ProofURL:     "https://info.korail.com/mbs/www/neo/delay/delaylistDetail.jsp?seq=101",
		},
		{
			Site:         scrape.SiteKorail,
			Line:         "경부선",
			Direction:    "상행",
			TimeRange:    "18시~22시",
			DelayMinutes: "30",
			ProofURL:     "https://info.korail.com/mbs/www/neo/delay/delaylistDetail.jsp?seq=102",
		},
		{
			Site:         scrape.SiteKorail,
			Line:         "경부선",
			Direction:    "하행",
			TimeRange:    "10시~18시",
			DelayMinutes: "20",
			ProofURL:     "https://info.korail.com/mbs/www/neo/delay/delaylistDetail.jsp?seq=103",
		},
		{
			Site:         scrape.SiteKorail,
			Line:         "경부선",
			Direction:    "하행",
			TimeRange:    "22시~막차",
			DelayMinutes: "45",
			ProofURL:     "https://info.korail.com/mbs/www/neo/delay/delaylistDetail.jsp?seq=104",
		},
	}, delays)
}

func TestParseDelayListErrors(t *testing.T) {
	cases := []struct {
		name string
		html string
	}{
		{
			name: "table missing",
			html: `<html><body><div>시스템 점검 안내</div></body></html>`,
		},
		{
			name: "first row has no line to inherit",
			html: `<html><body><table class="table-bordered"><tbody>
				<tr><td><center>상행</center></td><td><a href="#">10분</a></td></tr>
			</tbody></table></body></html>`,
		},
		{
			name: "line cell without center text",
			html: `<html><body><table class="table-bordered"><tbody>
				<tr><td rowspan="2">경부선</td><td><center>상행</center></td><td></td></tr>
			</tbody></table></body></html>`,
		},
		{
			name: "direction missing",
			html: `<html><body><table class="table-bordered"><tbody>
				<tr><td rowspan="2"><center>경부선</center></td><td></td><td></td></tr>
			</tbody></table></body></html>`,
		},
		{
			name: "delay text without minutes",
			html: `<html><body><table class="table-bordered"><tbody>
				<tr><td rowspan="2"><center>경부선</center></td><td><center>상행</center></td>
				<td><a href="#">수분간 지연</a></td></tr>
			</tbody></table></body></html>`,
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			_, err := parseDelayList([]byte(test.html))
			var serr *scrape.Error
			require.True(t, errors.As(err, &serr), "expected *scrape.Error, got %v", err)
			require.Equal(t, scrape.KindParsing, serr.Kind)
		})
	}
}

func TestIndateParam(t *testing.T) {
	indate, err := indateParam("20251206")
	require.NoError(t, err)
	require.Equal(t, "2025-12-06", indate)

	_, err = indateParam("2025-12-06")
	require.Error(t, err)

	_, err = indateParam("20251301")
	require.Error(t, err)
}
