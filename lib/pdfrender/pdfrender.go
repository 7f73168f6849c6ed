// Package pdfrender prints a proof page to PDF with headless Chrome.
// The operator sites only serve the proof as a styled HTML page, so the
// original document is reproduced by letting a real browser engine lay
// it out, images, fonts and all.
package pdfrender

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/hofftmuz/subway-delay-certificate/lib/scrape"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("pdfrender")

const defaultTimeout = 20 * time.Second

// a4 paper in inches, 10mm margins
const paperWidth = 8.27
const paperHeight = 11.69
const margin = 0.394

type Options struct {
	UserAgent string
	// budget for one document, navigation and print included
	Timeout time.Duration
}

type Renderer struct {
	userAgent string
	timeout   time.Duration
}

func New(opts Options) *Renderer {
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = scrape.DefaultUserAgent()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Renderer{
		userAgent: userAgent,
		timeout:   timeout,
	}
}

// RenderPDF navigates to the proof url and returns the printed page as
// base64-encoded PDF bytes. Every call gets its own browser so one
// wedged page cannot poison the next render.
func (r *Renderer) RenderPDF(ctx context.Context, url string) (string, error) {
	ctx, span := tracer.Start(ctx, "RenderPDF")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.UserAgent(r.userAgent),
	)...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		// let late-loading images and webfonts settle before printing
		chromedp.Sleep(2*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(margin).
				WithMarginBottom(margin).
				WithMarginLeft(margin).
				WithMarginRight(margin).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to print page")
		return "", err
	}

	span.SetAttributes(attribute.Int("pdf_bytes", len(pdf)))
	return base64.StdEncoding.EncodeToString(pdf), nil
}
