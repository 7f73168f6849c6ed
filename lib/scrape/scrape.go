package scrape

import (
	"context"
	"runtime"
	"time"

	"github.com/hofftmuz/subway-delay-certificate/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

type Site string

const (
	SiteSeoulMetro Site = "seoulmetro"
	SiteKorail     Site = "korail"
)

// Delay is one (line, direction, time bucket) cell scraped off an
// operator's delay-proof listing. DelayMinutes is a bare decimal string,
// validated by the scraper before a Delay is ever constructed. ProofURL
// points at the printable proof document when the site offered one.
type Delay struct {
	Site         Site
	Line         string
	Direction    string
	TimeRange    string
	DelayMinutes string
	ProofURL     string
}

// Scraper fetches every delay notice an operator published for the
// given calendar date (8 digit YYYYMMDD). A scrape either returns the
// full listing or fails as a whole with an *Error; there are no
// partially parsed results.
type Scraper interface {
	Site() Site
	Scrape(ctx context.Context, date string) ([]Delay, error)
}

// ClientConfig carries the outbound HTTP defaults shared by both
// operator clients. The zero value picks sane defaults.
type ClientConfig struct {
	UserAgent string
	Timeout   time.Duration
}

const DefaultTimeout = 10 * time.Second

func (c ClientConfig) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

func (c ClientConfig) userAgent() string {
	if c.UserAgent == "" {
		return DefaultUserAgent()
	}
	return c.UserAgent
}

// DefaultUserAgent mimics a desktop Chrome matching the host OS. Both
// operator sites serve a degraded page to clients they do not recognize
// as a browser.
func DefaultUserAgent() string {
	switch runtime.GOOS {
	case "windows":
		return "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	case "linux":
		return "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	default:
		return "Mozilla/5.0 (Macintosh; Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}
}

func NewHTTPClient(cfg ClientConfig, tracerName string) *resty.Client {
	client := resty.New()
	client.SetTimeout(cfg.timeout())
	client.SetHeader("user-agent", cfg.userAgent())

	telemetry.InstrumentResty(client, tracerName)

	return client
}
