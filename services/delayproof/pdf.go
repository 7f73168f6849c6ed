package delayproof

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hofftmuz/subway-delay-certificate/lib/scrape"

	"go.opentelemetry.io/otel/attribute"
)

// attachDocuments sets PdfBase64 on every record: the rendered proof
// document when the source offered one and rendering worked, an
// explicit "" otherwise. Renders run concurrently and fail
// independently, one bad document never affects its siblings.
func (s Service) attachDocuments(ctx context.Context, records []DelayRecord, raw []scrape.Delay) {
	ctx, span := tracer.Start(ctx, "attachDocuments")
	defer span.End()
	span.SetAttributes(attribute.Int("records", len(records)))

	proofUrls := make(map[string]string, len(raw))
	for _, d := range raw {
		if d.ProofURL != "" {
			proofUrls[recordKey(d.Line, d.Direction, d.TimeRange)] = d.ProofURL
		}
	}

	wg := sync.WaitGroup{}
	for i := range records {
		url := proofUrls[recordKey(records[i].Line, records[i].Direction, records[i].TimeRange)]
		if url == "" || s.renderer == nil {
			empty := ""
			records[i].PdfBase64 = &empty
			continue
		}

		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()

			payload, err := s.renderer.RenderPDF(ctx, url)
			if err != nil {
				slog.WarnContext(
					ctx,
					"proof document render failed",
					"line", records[i].Line,
					"direction", records[i].Direction,
					"time_range", records[i].TimeRange,
					"err", err,
				)
				payload = ""
			}
			records[i].PdfBase64 = &payload
		}(i, url)
	}
	wg.Wait()
}

func recordKey(line, direction, timeRange string) string {
	return fmt.Sprintf("%s|%s|%s", line, direction, timeRange)
}
