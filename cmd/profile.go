package cmd

import (
	"log"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/szuwgh/edgarsent/pkg/engine"
	"github.com/szuwgh/edgarsent/pkg/metrics"
)

func init() {
	f := profileCmd.Flags()
	f.StringP("pattern", "p", "", "glob of the documents to profile")
	f.StringP("output", "o", "", "output directory")
	flagKeys[profileCmd] = map[string]string{
		"pattern": "corpus.pattern",
		"output":  "output.dir",
	}
	rootCmd.AddCommand(profileCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "write per-document lexicon category percentages",
	RunE: func(cmd *cobra.Command, args []string) error {
		return profile()
	},
}

func profile() error {
	c := cfg
	a, paths, err := prepare(c)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()
	m := metrics.New()
	m.Serve(ctx, c.Metrics.Addr)

	meta := engine.NewRunMeta("profile", time.Now())
	meta.SetIndex(c.LexiconOptions().Source, c.LexiconOptions().Dimension, a.Index())

	d := engine.NewDriver(c.EngineOptions(), m)
	rows, s, err := d.Profile(ctx, a, paths)
	if err != nil {
		return err
	}
	meta.SetSummary(s)
	dir, err := engine.PublishProfiles(filepath.Join(c.Output.Dir, "profile"), meta, rows, c.Output.Precision)
	if err != nil {
		return errors.Wrap(err, "publish profiles")
	}
	log.Printf("considered %d, profiled %d, failed %d in %v", s.Considered, s.Scored, s.Failed, s.Elapsed)
	log.Println("results:", dir)
	return nil
}
