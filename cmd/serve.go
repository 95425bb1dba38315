package cmd

import (
	"github.com/spf13/cobra"
	"github.com/szuwgh/edgarsent/pkg/analysis"
	"github.com/szuwgh/edgarsent/pkg/lexicon"
	"github.com/szuwgh/edgarsent/pkg/metrics"
	"github.com/szuwgh/edgarsent/web"
)

func init() {
	serveCmd.Flags().StringP("addr", "a", "", "listen address")
	flagKeys[serveCmd] = map[string]string{"addr": "serve.addr"}
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "score documents over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	c := cfg
	lex, index, err := lexicon.Load(c.LexiconOptions())
	if err != nil {
		return err
	}
	a, err := analysis.NewAnalyzer(lex, index, c.AnalysisOptions())
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()
	return web.New(a, metrics.New()).Run(ctx, c.Serve.Addr)
}
