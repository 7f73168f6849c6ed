// Package delayproof aggregates train-delay notices from the Seoul
// Metro and Korail delay-proof pages into one uniform response
// envelope, optionally filtered by a minimum delay and annotated with a
// rendered PDF proof per entry.
package delayproof

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/hofftmuz/subway-delay-certificate/lib/scrape"
	"github.com/hofftmuz/subway-delay-certificate/lib/timezone"

	"github.com/bluele/gcache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/delayproof")

// DocumentRenderer turns a proof-page url into an encoded PDF payload.
type DocumentRenderer interface {
	RenderPDF(ctx context.Context, url string) (string, error)
}

type Options struct {
	SeoulMetro scrape.Scraper
	Korail     scrape.Scraper
	// may be nil, in which case requested documents degrade to ""
	Renderer DocumentRenderer
	// 0 disables the scrape result cache
	CacheTTL time.Duration
}

type Service struct {
	seoulMetro scrape.Scraper
	korail     scrape.Scraper
	renderer   DocumentRenderer
	cache      gcache.Cache
	cacheTTL   time.Duration
}

func NewService(opts Options) Service {
	if opts.SeoulMetro == nil || opts.Korail == nil {
		panic("both scrapers must be provided")
	}

	s := Service{
		seoulMetro: opts.SeoulMetro,
		korail:     opts.Korail,
		renderer:   opts.Renderer,
		cacheTTL:   opts.CacheTTL,
	}
	if opts.CacheTTL > 0 {
		s.cache = gcache.New(64).LRU().Build()
	}
	return s
}

// ProcessRequest runs the full pipeline for one request. It never
// returns an error: every failure maps to one of the fixed status
// codes and comes back inside the envelope.
func (s Service) ProcessRequest(ctx context.Context, input Input) Output {
	ctx, span := tracer.Start(ctx, "ProcessRequest")
	defer span.End()

	validated, err := Validate(input, timezone.Now())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rejected input")
		return s.errorOutput(ctx, err)
	}
	span.SetAttributes(
		attribute.String("inqr_date", validated.InqrDate),
		attribute.String("delay_time", validated.DelayTime),
		attribute.String("pdf_data_yn", validated.PdfDataYn),
	)

	out, err := s.process(ctx, validated)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return s.errorOutput(ctx, err)
	}
	return out
}

func (s Service) process(ctx context.Context, validated ValidatedInput) (Output, error) {
	outcome, err := s.scrapeAll(ctx, validated.InqrDate)
	if err != nil {
		return Output{}, err
	}

	date, err := time.ParseInLocation("20060102", validated.InqrDate, timezone.Location)
	if err != nil {
		// unreachable after Validate, kept as a guard
		return Output{}, &ValidationError{Status: StatusInvalidDateFormat}
	}

	records := normalize(ctx, outcome.delays, date)

	minDelay, _ := strconv.Atoi(validated.DelayTime)
	records = filterByMinDelay(records, minDelay)

	if validated.PdfDataYn == "1" {
		s.attachDocuments(ctx, records, outcome.delays)
	}

	slog.InfoContext(
		ctx,
		"request processed",
		"date", validated.InqrDate,
		"records", len(records),
		"partial", outcome.partialFailure,
	)
	return successResponse(records, outcome.partialFailure), nil
}

// scrapeOutcome is the orchestrator's verdict: whatever records the
// in-range sources produced, plus whether one source was left out due
// to its lookback window.
type scrapeOutcome struct {
	delays         []scrape.Delay
	partialFailure bool
}

type settled struct {
	delays []scrape.Delay
	err    error
}

// scrapeAll fans out to both sources and reconciles the outcome.
// Seoul Metro is authoritative: any failure of it fails the request.
// Korail is only queried inside its 7-day window; skipping it by range
// is an expected degradation, not an error, but an in-range Korail
// failure is just as fatal as a Seoul Metro one. Both calls always run
// to completion before any verdict (settle all, then inspect).
func (s Service) scrapeAll(ctx context.Context, date string) (scrapeOutcome, error) {
	ctx, span := tracer.Start(ctx, "scrapeAll")
	defer span.End()

	daysAgo, err := DaysAgo(date, timezone.Now())
	if err != nil {
		return scrapeOutcome{}, &ValidationError{Status: StatusInvalidDateFormat}
	}
	span.SetAttributes(attribute.Int("days_ago", daysAgo))

	if daysAgo > maxLookbackDays {
		slog.InfoContext(ctx, "date beyond the 30 day ceiling, rejecting", "days_ago", daysAgo)
		return scrapeOutcome{}, &ValidationError{Status: StatusInvalidDateFormat}
	}

	korailInRange := daysAgo <= korailLookbackDays

	seoulCh := make(chan settled, 1)
	go func() {
		delays, err := s.scrapeSite(ctx, s.seoulMetro, date)
		seoulCh <- settled{delays: delays, err: err}
	}()

	korailCh := make(chan settled, 1)
	if korailInRange {
		go func() {
			delays, err := s.scrapeSite(ctx, s.korail, date)
			korailCh <- settled{delays: delays, err: err}
		}()
	} else {
		slog.InfoContext(ctx, "korail outside its lookback window, skipping", "days_ago", daysAgo)
		korailCh <- settled{}
	}

	seoul := <-seoulCh
	korail := <-korailCh

	if seoul.err != nil {
		slog.ErrorContext(ctx, "seoulmetro scrape failed", "err", seoul.err)
		return scrapeOutcome{}, seoul.err
	}
	if korailInRange && korail.err != nil {
		slog.ErrorContext(ctx, "korail scrape failed", "err", korail.err)
		return scrapeOutcome{}, korail.err
	}

	outcome := scrapeOutcome{
		delays:         append(seoul.delays, korail.delays...),
		partialFailure: !korailInRange,
	}

	// no data at all while a source was skipped is indistinguishable
	// from a total failure to the caller, escalate
	if len(outcome.delays) == 0 && outcome.partialFailure {
		return scrapeOutcome{}, scrape.NewError(
			"", scrape.KindNetwork,
			errors.New("no source produced any data"),
		)
	}

	return outcome, nil
}

func (s Service) scrapeSite(ctx context.Context, sc scrape.Scraper, date string) ([]scrape.Delay, error) {
	key := fmt.Sprintf("%s|%s", sc.Site(), date)

	if s.cache != nil {
		cached, err := s.cache.Get(key)
		if err == nil {
			slog.DebugContext(ctx, "scrape cache hit", "key", key)
			return cached.([]scrape.Delay), nil
		}
	}

	delays, err := sc.Scrape(ctx, date)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		// failures are never cached
		err := s.cache.SetWithExpire(key, delays, s.cacheTTL)
		if err != nil {
			slog.WarnContext(ctx, "failed to cache scrape result", "key", key, "err", err)
		}
	}
	return delays, nil
}

func (s Service) errorOutput(ctx context.Context, err error) Output {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return ErrorOutput(verr.Status)
	}

	var serr *scrape.Error
	if errors.As(err, &serr) {
		switch serr.Kind {
		case scrape.KindTimeout:
			return ErrorOutput(StatusTimeout)
		case scrape.KindParsing:
			return ErrorOutput(StatusParsingError)
		default:
			// network, server, anything else
			return ErrorOutput(StatusNetworkError)
		}
	}

	// fail toward a retryable-looking code
	slog.ErrorContext(ctx, "unexpected error kind", "err", err)
	return ErrorOutput(StatusNetworkError)
}
