// Package config binds edgarsent.yaml, EDGARSENT_* environment variables and
// command flags into one Config.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/szuwgh/edgarsent/pkg/analysis"
	"github.com/szuwgh/edgarsent/pkg/engine"
	"github.com/szuwgh/edgarsent/pkg/lexicon"
)

const (
	EnvPrefix  = "EDGARSENT"
	ConfigName = "edgarsent"
)

type LexiconConfig struct {
	MasterDictionary string `mapstructure:"master_dictionary"`
	WordList         string `mapstructure:"word_list"`
	Source           string `mapstructure:"source"`
	Dimension        string `mapstructure:"dimension"`
}

type CorpusConfig struct {
	Pattern       string `mapstructure:"pattern"`
	MmapThreshold int64  `mapstructure:"mmap_threshold"`
}

type AnalysisConfig struct {
	Tokenizer   string   `mapstructure:"tokenizer"`
	NoiseTokens []string `mapstructure:"noise_tokens"`
}

type OutputConfig struct {
	Dir       string `mapstructure:"dir"`
	Precision int    `mapstructure:"precision"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type FetchConfig struct {
	BaseURL   string   `mapstructure:"base_url"`
	Path      string   `mapstructure:"path"`
	Years     []int    `mapstructure:"years"`
	Quarters  []int    `mapstructure:"quarters"`
	Forms     []string `mapstructure:"forms"`
	CIKs      []int    `mapstructure:"ciks"`
	Rate      float64  `mapstructure:"rate"`
	UserAgent string   `mapstructure:"user_agent"`
	Compress  bool     `mapstructure:"compress"`
}

type Config struct {
	Lexicon  LexiconConfig  `mapstructure:"lexicon"`
	Corpus   CorpusConfig   `mapstructure:"corpus"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Workers  int            `mapstructure:"workers"`
	Output   OutputConfig   `mapstructure:"output"`
	Progress struct {
		Every int `mapstructure:"every"`
	} `mapstructure:"progress"`
	Metrics struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"metrics"`
	Log   LogConfig   `mapstructure:"log"`
	Fetch FetchConfig `mapstructure:"fetch"`
	Serve struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"serve"`
}

// SetDefaults registers every key with its default so that environment
// variables can override keys absent from the file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("lexicon.master_dictionary", "./LoughranMcDonald_MasterDictionary_2014.csv")
	v.SetDefault("lexicon.word_list", "./Harvard IV_Negative Word List_Inf.txt")
	v.SetDefault("lexicon.source", string(lexicon.SourceLM))
	v.SetDefault("lexicon.dimension", string(lexicon.Negative))
	v.SetDefault("corpus.pattern", "./data/*/*/*.txt")
	v.SetDefault("corpus.mmap_threshold", engine.DefaultMmapThreshold)
	v.SetDefault("analysis.tokenizer", "word")
	v.SetDefault("analysis.noise_tokens", analysis.DefaultNoiseTokens)
	v.SetDefault("workers", 0)
	v.SetDefault("output.dir", "./result")
	v.SetDefault("output.precision", engine.DefaultPrecision)
	v.SetDefault("progress.every", engine.DefaultProgressEvery)
	v.SetDefault("metrics.addr", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("fetch.base_url", "https://www.sec.gov/Archives")
	v.SetDefault("fetch.path", "./data")
	v.SetDefault("fetch.years", []int{})
	v.SetDefault("fetch.quarters", []int{1, 2, 3, 4})
	v.SetDefault("fetch.forms", []string{"10-K", "10-Q"})
	v.SetDefault("fetch.ciks", []int{})
	v.SetDefault("fetch.rate", 1.0)
	v.SetDefault("fetch.user_agent", "")
	v.SetDefault("fetch.compress", false)
	v.SetDefault("serve.addr", ":9400")
}

// New returns a viper instance with defaults and environment binding. file may
// be empty, in which case edgarsent.yaml is looked up in the working directory
// and the home directory.
func New(file string) (*viper.Viper, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		path, err := homedir.Expand(file)
		if err != nil {
			return nil, errors.Wrap(err, "expand config path")
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
		return v, nil
	}

	v.SetConfigName(ConfigName)
	v.AddConfigPath(".")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "read config")
		}
	}
	return v, nil
}

// Unmarshal decodes v and expands every path.
func Unmarshal(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	for _, p := range []*string{
		&c.Lexicon.MasterDictionary,
		&c.Lexicon.WordList,
		&c.Corpus.Pattern,
		&c.Output.Dir,
		&c.Log.File,
		&c.Fetch.Path,
	} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return nil, errors.Wrapf(err, "expand %s", *p)
		}
		*p = expanded
	}
	return &c, nil
}

func (c *Config) LexiconOptions() lexicon.Options {
	return lexicon.Options{
		MasterDictionary: c.Lexicon.MasterDictionary,
		WordList:         c.Lexicon.WordList,
		Source:           lexicon.Source(strings.ToLower(c.Lexicon.Source)),
		Dimension:        lexicon.Dimension(strings.ToLower(c.Lexicon.Dimension)),
	}
}

func (c *Config) AnalysisOptions() analysis.Options {
	return analysis.Options{
		Tokenizer:   c.Analysis.Tokenizer,
		NoiseTokens: c.Analysis.NoiseTokens,
	}
}

func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		Workers:       c.Workers,
		MmapThreshold: c.Corpus.MmapThreshold,
		ProgressEvery: c.Progress.Every,
	}
}
