package commands

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/hofftmuz/subway-delay-certificate/lib/pdfrender"
	"github.com/hofftmuz/subway-delay-certificate/lib/scrape"
	"github.com/hofftmuz/subway-delay-certificate/lib/scrapers/korail"
	"github.com/hofftmuz/subway-delay-certificate/lib/scrapers/seoulmetro"
	"github.com/hofftmuz/subway-delay-certificate/lib/serviceutil"
	"github.com/hofftmuz/subway-delay-certificate/services/delayproof"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	queryDate     *string
	queryMinDelay *string
	queryPdf      *bool
	queryJson     *bool
	queryInput    *string
)

func init() {
	queryDate = queryCmd.Flags().String("date", "", "Date to query, YYYYMMDD. Defaults to today.")
	queryMinDelay = queryCmd.Flags().String("min-delay", "", "Minimum delay in minutes to report. Defaults to 30.")
	queryPdf = queryCmd.Flags().Bool("pdf", false, "Render proof documents and include them in the output.")
	queryJson = queryCmd.Flags().Bool("json", false, "Print the raw response envelope as JSON.")
	queryInput = queryCmd.Flags().String("input", "", "Read the full request envelope as JSON from a file, or '-' for stdin. Overrides the other flags.")
	rootCmd.AddCommand(queryCmd)
}

func readInput() (delayproof.Input, error) {
	if *queryInput != "" {
		var r io.Reader = os.Stdin
		if *queryInput != "-" {
			f, err := os.Open(*queryInput)
			if err != nil {
				return delayproof.Input{}, err
			}
			defer f.Close()
			r = f
		}

		var input delayproof.Input
		err := json.NewDecoder(r).Decode(&input)
		return input, err
	}

	input := delayproof.Input{}
	if *queryDate != "" {
		input.In.Ch2.InqrDate = queryDate
	}
	if *queryMinDelay != "" {
		input.In.Ch2.DelayTime = queryMinDelay
	}
	if *queryPdf {
		yn := "1"
		input.In.Ch2.PdfDataYn = &yn
	}
	return input, nil
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

var queryCmd = &cobra.Command{
	Use:   "query [--date <YYYYMMDD>] [--min-delay <minutes>] [--pdf] [--json] [--input <file|->]",
	Short: "Query both operator sites for delay notices on a given date.",
	Run: func(cmd *cobra.Command, args []string) {
		input, err := readInput()
		if err != nil {
			serviceutil.Fatal("failed to read request input", err)
		}

		clientCfg := scrape.ClientConfig{}

		opts := delayproof.Options{
			SeoulMetro: seoulmetro.NewClient(clientCfg),
			Korail:     korail.NewClient(clientCfg),
		}
		wantPdf := *queryPdf || (input.In.Ch2.PdfDataYn != nil && *input.In.Ch2.PdfDataYn == "1")
		if wantPdf {
			opts.Renderer = pdfrender.New(pdfrender.Options{})
		}
		service := delayproof.NewService(opts)

		t1 := time.Now()
		output := service.ProcessRequest(cmd.Context(), input)
		elapsed := time.Since(t1)

		if *queryJson {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			err := enc.Encode(output)
			if err != nil {
				serviceutil.Fatal("failed to encode output", err)
			}
			return
		}

		ch2 := output.Out.Data.Ch2

		t := newTable()
		t.AppendHeader(table.Row{"line", "direction", "time range", "start", "end", "delay (min)", "pdf"})
		for _, record := range ch2.Data.DataArray {
			pdf := ""
			if record.PdfBase64 != nil {
				if *record.PdfBase64 == "" {
					pdf = "failed"
				} else {
					pdf = "attached"
				}
			}
			t.AppendRow(table.Row{
				record.Line,
				record.Direction,
				record.TimeRange,
				record.DelayStart,
				record.DelayEnd,
				record.DelayTime,
				pdf,
			})
		}
		t.Render()

		cmd.Printf("%s: %s (%.2fs)\n", ch2.Code, ch2.Msg, elapsed.Seconds())
	},
}
