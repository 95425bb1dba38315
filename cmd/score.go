package cmd

import (
	"log"
	"path/filepath"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/szuwgh/edgarsent/core/config"
	"github.com/szuwgh/edgarsent/pkg/analysis"
	"github.com/szuwgh/edgarsent/pkg/engine"
	"github.com/szuwgh/edgarsent/pkg/fileutil"
	"github.com/szuwgh/edgarsent/pkg/lexicon"
	"github.com/szuwgh/edgarsent/pkg/metrics"
)

func init() {
	f := scoreCmd.Flags()
	f.StringP("pattern", "p", "", "glob of the documents to score")
	f.StringP("source", "s", "", "lexicon source: lm or harvard")
	f.StringP("dimension", "d", "", "lexicon dimension to score")
	f.StringP("output", "o", "", "output directory")
	flagKeys[scoreCmd] = map[string]string{
		"pattern":   "corpus.pattern",
		"source":    "lexicon.source",
		"dimension": "lexicon.dimension",
		"output":    "output.dir",
	}
	rootCmd.AddCommand(scoreCmd)
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "score a corpus with tf-idf and term weight",
	RunE: func(cmd *cobra.Command, args []string) error {
		return score()
	},
}

// prepare loads the lexicon and lists the corpus. Every configuration error
// surfaces here, before any worker starts.
func prepare(c *config.Config) (*analysis.Analyzer, []string, error) {
	lex, index, err := lexicon.Load(c.LexiconOptions())
	if err != nil {
		return nil, nil, err
	}
	log.Printf("lexicon: %d words, %d %s terms from %s", lex.Len(), index.Len(), c.Lexicon.Dimension, c.Lexicon.Source)
	a, err := analysis.NewAnalyzer(lex, index, c.AnalysisOptions())
	if err != nil {
		return nil, nil, err
	}
	paths, err := fileutil.Glob(c.Corpus.Pattern)
	if err != nil {
		return nil, nil, err
	}
	if len(paths) == 0 {
		return nil, nil, errors.Errorf("no documents match %q", c.Corpus.Pattern)
	}
	return a, paths, nil
}

func score() error {
	runtime.GOMAXPROCS(runtime.NumCPU())
	c := cfg
	a, paths, err := prepare(c)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()
	m := metrics.New()
	m.Serve(ctx, c.Metrics.Addr)

	meta := engine.NewRunMeta("score", time.Now())
	meta.SetIndex(c.LexiconOptions().Source, c.LexiconOptions().Dimension, a.Index())

	d := engine.NewDriver(c.EngineOptions(), m)
	log.Printf("score %d documents with %d workers", len(paths), d.Workers())
	corpus, s, err := d.Score(ctx, a, paths)
	if err != nil {
		return err
	}
	scores := engine.Aggregate(corpus)
	meta.SetSummary(s)

	dir, err := engine.PublishScores(filepath.Join(c.Output.Dir, meta.Source), meta, corpus, scores, c.Output.Precision)
	if err != nil {
		return errors.Wrap(err, "publish scores")
	}
	log.Printf("considered %d, scored %d, failed %d (%d metadata warnings) in %v",
		s.Considered, s.Scored, s.Failed, s.Warnings, s.Elapsed)
	log.Println("results:", dir)
	return nil
}
