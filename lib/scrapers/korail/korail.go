// Package korail scrapes the Korail delay-proof listing. Unlike Seoul
// Metro the site takes the inquiry date as a plain YYYY-MM-DD string and
// only serves roughly the last week; callers are expected to keep
// requests inside that window.
package korail

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/hofftmuz/subway-delay-certificate/lib/htmlutil"
	"github.com/hofftmuz/subway-delay-certificate/lib/scrape"
	"github.com/hofftmuz/subway-delay-certificate/lib/timezone"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/korail")

const listUrl = "https://info.korail.com/mbs/www/neo/delay/delaylist.jsp"
const detailBaseUrl = "https://info.korail.com/mbs/www/neo/delay/"

var timeBuckets = []string{
	"첫차~08시",
	"08시~10시",
	"10시~18시",
	"18시~22시",
	"22시~막차",
}

var delayPattern = regexp.MustCompile(`(\d+)분`)

type Client struct {
	http *resty.Client
}

func NewClient(cfg scrape.ClientConfig) *Client {
	return &Client{
		http: scrape.NewHTTPClient(cfg, "scrapers/korail/http"),
	}
}

func (c *Client) Site() scrape.Site {
	return scrape.SiteKorail
}

func (c *Client) Scrape(ctx context.Context, date string) ([]scrape.Delay, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()
	span.SetAttributes(attribute.String("date", date))

	indate, err := indateParam(date)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "bad inquiry date")
		return nil, err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"indate": indate,
		}).
		Post(listUrl)
	if err != nil {
		return nil, scrape.Classify(scrape.SiteKorail, 0, err)
	}
	if res.StatusCode() >= 400 {
		return nil, scrape.Classify(scrape.SiteKorail, res.StatusCode(), nil)
	}

	delays, err := parseDelayList(res.Body())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse delay listing")
		return nil, err
	}

	span.SetAttributes(attribute.Int("delays", len(delays)))
	return delays, nil
}

func indateParam(date string) (string, error) {
	d, err := time.ParseInLocation("20060102", date, timezone.Location)
	if err != nil {
		return "", err
	}
	return d.Format("2006-01-02"), nil
}

func parsingError(cause error) *scrape.Error {
	return scrape.NewError(scrape.SiteKorail, scrape.KindParsing, cause)
}

func parseDelayList(html []byte) ([]scrape.Delay, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, parsingError(err)
	}

	rows := doc.Find("table.table-bordered tbody tr")
	if rows.Length() == 0 {
		return nil, parsingError(fmt.Errorf("delay table missing"))
	}

	var delays []scrape.Delay
	var perr error

	currentLine := ""

	rows.EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() == 0 {
			perr = parsingError(fmt.Errorf("row without cells"))
			return false
		}

		// line and direction text sit inside <center> tags here
		lineCell := cells.Filter("[rowspan]")
		if lineCell.Length() > 0 {
			currentLine = htmlutil.CleanText(lineCell.Find("center").Text())
			if currentLine == "" {
				perr = parsingError(fmt.Errorf("spanning cell without a line name"))
				return false
			}
		}
		if currentLine == "" {
			perr = parsingError(fmt.Errorf("no line name to inherit"))
			return false
		}

		directionIdx := 0
		if lineCell.Length() > 0 {
			directionIdx = 1
		}
		direction := htmlutil.CleanText(cells.Eq(directionIdx).Find("center").Text())
		if direction == "" {
			perr = parsingError(fmt.Errorf("direction missing for line %q", currentLine))
			return false
		}

		ok := true
		cells.Slice(directionIdx+1, cells.Length()).EachWithBreak(func(idx int, cell *goquery.Selection) bool {
			link := cell.Find("a")
			if link.Length() == 0 {
				return true
			}
			text := htmlutil.CleanText(link.Text())
			if text == "" {
				// an anchor with no text still means no delay
				return true
			}

			match := delayPattern.FindStringSubmatch(text)
			if match == nil {
				perr = parsingError(fmt.Errorf("unparsable delay cell %q", text))
				ok = false
				return false
			}
			if idx >= len(timeBuckets) {
				perr = parsingError(fmt.Errorf("row has %d delay cells, expected at most %d", idx+1, len(timeBuckets)))
				ok = false
				return false
			}

			delays = append(delays, scrape.Delay{
				Site:         scrape.SiteKorail,
				Line:         currentLine,
				Direction:    direction,
				TimeRange:    timeBuckets[idx],
				DelayMinutes: match[1],
				ProofURL:     proofUrl(link.AttrOr("href", "")),
			})
			return true
		})
		return ok
	})

	if perr != nil {
		return nil, perr
	}
	return delays, nil
}

func proofUrl(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.Contains(href, "delaylistDetail") {
		return detailBaseUrl + strings.TrimPrefix(href, "/")
	}
	return ""
}
