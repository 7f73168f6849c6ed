package main

import (
	"flag"
	"net/http"
	"time"

	"github.com/hofftmuz/subway-delay-certificate/lib/configutil"
	"github.com/hofftmuz/subway-delay-certificate/lib/pdfrender"
	"github.com/hofftmuz/subway-delay-certificate/lib/scrape"
	"github.com/hofftmuz/subway-delay-certificate/lib/scrapers/korail"
	"github.com/hofftmuz/subway-delay-certificate/lib/scrapers/seoulmetro"
	"github.com/hofftmuz/subway-delay-certificate/lib/serviceutil"
	"github.com/hofftmuz/subway-delay-certificate/lib/telemetry"
	"github.com/hofftmuz/subway-delay-certificate/services/delayproof"
	"github.com/hofftmuz/subway-delay-certificate/services/delayproof/server"
)

type ScrapeConfig struct {
	UserAgent      string `json:"user_agent"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type PdfConfig struct {
	TimeoutSeconds int `json:"timeout_seconds"`
}

type Config struct {
	Port            int          `json:"port"`
	Scrape          ScrapeConfig `json:"scrape"`
	Pdf             PdfConfig    `json:"pdf"`
	CacheTTLSeconds int          `json:"cache_ttl_seconds"`
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	telemetry.InitSlog(*verbose)
	err := telemetry.SetupFromEnv(ctx, "delayd")
	if err != nil {
		serviceutil.Fatal("init telemetry", err)
	}
	telemetry.InstrumentPerfStats(ctx)

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8290
	}

	clientCfg := scrape.ClientConfig{
		UserAgent: cfg.Scrape.UserAgent,
		Timeout:   time.Duration(cfg.Scrape.TimeoutSeconds) * time.Second,
	}

	service := delayproof.NewService(delayproof.Options{
		SeoulMetro: seoulmetro.NewClient(clientCfg),
		Korail:     korail.NewClient(clientCfg),
		Renderer: pdfrender.New(pdfrender.Options{
			UserAgent: cfg.Scrape.UserAgent,
			Timeout:   time.Duration(cfg.Pdf.TimeoutSeconds) * time.Second,
		}),
		CacheTTL: time.Duration(cfg.CacheTTLSeconds) * time.Second,
	})

	mux := http.NewServeMux()
	mux.Handle("/", server.New(service))

	serviceutil.StartHttpServer(cfg.Port, mux)
}
