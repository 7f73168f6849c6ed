// Package seoulmetro scrapes the Seoul Metro simplified delay-proof
// listing (간편지연증명서). The site takes the inquiry date as an offset
// of 0-30 days back from today and renders one table row per (line,
// direction) with a cell per time bucket.
package seoulmetro

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
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

var tracer = otel.Tracer("scrapers/seoulmetro")

const listUrl = "http://www.seoulmetro.co.kr/kr/delayProofList.do?menuIdx=543"
const proofUrlFormat = "https://www.seoulmetro.co.kr/kr/delayProofPrint.do?idxid=%s"

// table columns after line and direction, in order
var timeBuckets = []string{"첫차~09시", "09시~18시", "18시~막차"}

var delayPattern = regexp.MustCompile(`(\d+)분`)
var idxidPattern = regexp.MustCompile(`idxid=(\d+)`)

type Client struct {
	http *resty.Client
}

func NewClient(cfg scrape.ClientConfig) *Client {
	return &Client{
		http: scrape.NewHTTPClient(cfg, "scrapers/seoulmetro/http"),
	}
}

func (c *Client) Site() scrape.Site {
	return scrape.SiteSeoulMetro
}

func (c *Client) Scrape(ctx context.Context, date string) ([]scrape.Delay, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()
	span.SetAttributes(attribute.String("date", date))

	offset, err := viewDateParam(date, timezone.Now())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "date outside the site's valid range")
		return nil, err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"view_date": strconv.Itoa(offset),
		}).
		Post(listUrl)
	if err != nil {
		return nil, scrape.Classify(scrape.SiteSeoulMetro, 0, err)
	}
	if res.StatusCode() >= 400 {
		return nil, scrape.Classify(scrape.SiteSeoulMetro, res.StatusCode(), nil)
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

// viewDateParam converts a YYYYMMDD date to the site's native "days
// back from today" encoding.
func viewDateParam(date string, now time.Time) (int, error) {
	d, err := time.ParseInLocation("20060102", date, timezone.Location)
	if err != nil {
		return 0, err
	}
	daysAgo := int(timezone.StartOfDay(now).Sub(timezone.StartOfDay(d)).Hours() / 24)
	if daysAgo < 0 || daysAgo > 30 {
		return 0, fmt.Errorf("date is %d days back, site only serves 0-30", daysAgo)
	}
	return daysAgo, nil
}

func parsingError(cause error) *scrape.Error {
	return scrape.NewError(scrape.SiteSeoulMetro, scrape.KindParsing, cause)
}

func parseDelayList(html []byte) ([]scrape.Delay, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, parsingError(err)
	}

	rows := doc.Find("table.tbl-type1 tbody tr")
	if rows.Length() == 0 {
		return nil, parsingError(fmt.Errorf("delay table missing"))
	}

	var delays []scrape.Delay
	var perr error

	// the line name cell spans several rows, rows after the first
	// inherit the line currently in effect
	currentLine := ""

	rows.EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td.ag-c")
		if cells.Length() == 0 {
			perr = parsingError(fmt.Errorf("row without cells"))
			return false
		}

		lineCell := cells.Filter("[rowspan]")
		if lineCell.Length() > 0 {
			currentLine = htmlutil.CleanText(lineCell.Text())
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
		direction := htmlutil.CleanText(cells.Eq(directionIdx).Text())
		if direction == "" {
			perr = parsingError(fmt.Errorf("direction missing for line %q", currentLine))
			return false
		}

		ok := true
		cells.Slice(directionIdx+1, cells.Length()).EachWithBreak(func(idx int, cell *goquery.Selection) bool {
			link := cell.Find("a")
			if link.Length() == 0 {
				// no delay in this bucket, not missing data
				return true
			}

			text := htmlutil.CleanText(link.Text())
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
				Site:         scrape.SiteSeoulMetro,
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
	match := idxidPattern.FindStringSubmatch(href)
	if match == nil {
		return ""
	}
	return fmt.Sprintf(proofUrlFormat, match[1])
}
