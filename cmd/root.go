package cmd

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/natefinch/lumberjack"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/szuwgh/edgarsent/core/config"
)

var (
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "edgarsent",
	Short: "lexicon sentiment scoring of EDGAR filings",
	Long: `edgarsent scores a corpus of EDGAR filings against a sentiment lexicon
and publishes per-document tf-idf and term-weight scores.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		for flag, key := range flagKeys[cmd] {
			if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
				return err
			}
		}
		var err error
		cfg, err = config.Unmarshal(v)
		if err != nil {
			return err
		}
		setupLog(cfg.Log)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./edgarsent.yaml or $HOME/edgarsent.yaml)")
	pf.Int("workers", 0, "worker goroutines (0 = number of CPUs)")
	pf.String("metrics-addr", "", "expose prometheus metrics on this address")
	pf.String("log-file", "", "also write the log to this rotating file")
}

func initConfig() {
	var err error
	v, err = config.New(cfgFile)
	if err != nil {
		log.Fatalln(err)
	}
	pf := rootCmd.PersistentFlags()
	v.BindPFlag("workers", pf.Lookup("workers"))
	v.BindPFlag("metrics.addr", pf.Lookup("metrics-addr"))
	v.BindPFlag("log.file", pf.Lookup("log-file"))
}

// flagKeys maps the local flags of a command to config keys. They are bound
// once the config exists, right before the command runs.
var flagKeys = map[*cobra.Command]map[string]string{}

func setupLog(c config.LogConfig) {
	log.SetFlags(log.Lshortfile | log.LstdFlags)
	if c.File == "" {
		log.SetOutput(os.Stderr)
		return
	}
	log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   c.File,
		MaxSize:    c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAgeDays,
	}))
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
