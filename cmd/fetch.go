package cmd

import (
	"log"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/szuwgh/edgarsent/pkg/fetch"
	"github.com/szuwgh/edgarsent/pkg/metrics"
)

func init() {
	f := fetchCmd.Flags()
	f.IntSlice("years", nil, "years to fetch")
	f.IntSlice("quarters", nil, "quarters to fetch")
	f.StringSlice("forms", nil, "form types to fetch")
	f.String("user-agent", "", "User-Agent sent to the archive, e.g. \"name email\"")
	f.Bool("compress", false, "store documents snappy-framed")
	flagKeys[fetchCmd] = map[string]string{
		"years":      "fetch.years",
		"quarters":   "fetch.quarters",
		"forms":      "fetch.forms",
		"user-agent": "fetch.user_agent",
		"compress":   "fetch.compress",
	}
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "download filings from the EDGAR archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFetch()
	},
}

func runFetch() error {
	c := cfg
	fc := c.Fetch
	if len(fc.Years) == 0 {
		return errors.New("fetch: no years configured")
	}
	if fc.UserAgent == "" {
		return errors.New("fetch: the archive requires a user agent")
	}

	ctx, stop := signalContext()
	defer stop()
	m := metrics.New()
	m.Serve(ctx, c.Metrics.Addr)

	f := fetch.New(fetch.Options{
		BaseURL:   fc.BaseURL,
		Path:      fc.Path,
		Forms:     fc.Forms,
		CIKs:      fc.CIKs,
		Rate:      fc.Rate,
		UserAgent: fc.UserAgent,
		Compress:  fc.Compress,
	}, &http.Client{Timeout: 2 * time.Minute}, m)
	s, err := f.Run(ctx, fc.Years, fc.Quarters)
	log.Printf("matched %d, fetched %d, skipped %d, failed %d", s.Matched, s.Fetched, s.Skipped, s.Failed)
	return err
}
