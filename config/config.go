package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/maastricht-university/oralargs/chunking"
	"github.com/maastricht-university/oralargs/reference"
)

// EnvPrefix prefixes environment overrides, e.g. ORALARGS_YEARS_START.
const EnvPrefix = "ORALARGS"

type Service struct {
	URL string `mapstructure:"url" yaml:"url"`
}
type Services struct {
	Corpus Service `mapstructure:"corpus" yaml:"corpus"`
	Cases  Service `mapstructure:"cases" yaml:"cases"`
}
type Pipeline struct {
	Name      string `mapstructure:"name" yaml:"name"`
	Version   string `mapstructure:"version" yaml:"version"`
	LogLvl    string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Years is the half-open range of term years to process.
type Years struct {
	Start int `mapstructure:"start" yaml:"start"`
	End   int `mapstructure:"end" yaml:"end"`
}
type Chunking struct {
	MinNumUtts             int     `mapstructure:"min_num_utts" yaml:"min_num_utts"`
	MinTokAdv              int     `mapstructure:"min_tok_adv" yaml:"min_tok_adv"`
	ExcludeBackchannel     bool    `mapstructure:"exclude_backchannel" yaml:"exclude_backchannel"`
	SingleDash             bool    `mapstructure:"single_dash" yaml:"single_dash"`
	AdvocateMatchThreshold float64 `mapstructure:"advocate_match_threshold" yaml:"advocate_match_threshold"`
}
type Filter struct {
	MinNumChunksPerJust int  `mapstructure:"min_num_chunks_per_just" yaml:"min_num_chunks_per_just"`
	ExcludeAdvFirstUtt  bool `mapstructure:"exclude_adv_first_utt" yaml:"exclude_adv_first_utt"`
	IncludeFemIssue     bool `mapstructure:"include_fem_issue" yaml:"include_fem_issue"`
}
type Paths struct {
	Corpus      string `mapstructure:"corpus" yaml:"corpus"`
	Cases       string `mapstructure:"cases" yaml:"cases"`
	Docket      string `mapstructure:"docket" yaml:"docket"`
	Ideology    string `mapstructure:"ideology" yaml:"ideology"`
	NameGender  string `mapstructure:"name_gender" yaml:"name_gender"`
	Backchannel string `mapstructure:"backchannel" yaml:"backchannel"`
	Chunks      string `mapstructure:"chunks" yaml:"chunks"`
	Boundaries  string `mapstructure:"boundaries" yaml:"boundaries"`
	Store       string `mapstructure:"store" yaml:"store"`
	FinalTable  string `mapstructure:"final_table" yaml:"final_table"`
	Outputs     string `mapstructure:"outputs" yaml:"outputs"`
}
type Root struct {
	Pipeline Pipeline `mapstructure:"pipeline" yaml:"pipeline"`
	Years    Years    `mapstructure:"years" yaml:"years"`
	Chunking Chunking `mapstructure:"chunking" yaml:"chunking"`
	Filter   Filter   `mapstructure:"filter" yaml:"filter"`
	Services Services `mapstructure:"services" yaml:"services"`
	Paths    Paths    `mapstructure:"paths" yaml:"paths"`
}

var defaults = map[string]any{
	"pipeline.name":       "oralargs",
	"pipeline.version":    "0.1.0",
	"pipeline.log_level":  "info",
	"pipeline.log_format": "text",

	"years.start": 2019,
	"years.end":   2020,

	"chunking.min_num_utts":             chunking.DefaultMinNumUtts,
	"chunking.min_tok_adv":              chunking.DefaultMinTokAdv,
	"chunking.exclude_backchannel":      false,
	"chunking.single_dash":              true,
	"chunking.advocate_match_threshold": 0.0,

	"filter.min_num_chunks_per_just": 10,
	"filter.exclude_adv_first_utt":   false,
	"filter.include_fem_issue":       false,

	"services.corpus.url": "https://zissou.infosci.cornell.edu/convokit/datasets/supreme-corpus",
	"services.cases.url":  "https://zissou.infosci.cornell.edu/convokit/datasets/supreme-corpus/cases.jsonl",

	"paths.corpus":      "data/corpus",
	"paths.cases":       "data/cases.jsonl",
	"paths.docket":      "data/SCDB_2021_01_caseCentered_Docket.csv",
	"paths.ideology":    "data/justice_ideology.json",
	"paths.name_gender": "data/name_gender.csv",
	"paths.backchannel": "data/backchannel.txt",
	"paths.chunks":      "data/chunks",
	"paths.boundaries":  "",
	"paths.store":       "",
	"paths.final_table": "data/final_df.csv",
	"paths.outputs":     "data/outputs",
}

func newViper() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path when given. Otherwise it looks for config.yaml under
// config/<CONFIG_ENV>/, src/shared/ and the working directory, and falls
// back to the built-in defaults when none exists. Environment variables
// override file values either way.
func Load(path string) (*Root, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		env := os.Getenv("CONFIG_ENV")
		if env == "" {
			env = "dev"
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join("config", env))
		v.AddConfigPath(filepath.Join("src", "shared"))
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every incoherent setting at once.
func (c *Root) Validate() error {
	var errs []error
	if c.Years.End <= c.Years.Start {
		errs = append(errs, fmt.Errorf("years.end %d must be after years.start %d", c.Years.End, c.Years.Start))
	}
	if c.Chunking.MinNumUtts <= 0 {
		errs = append(errs, fmt.Errorf("chunking.min_num_utts %d must be positive", c.Chunking.MinNumUtts))
	}
	if c.Chunking.MinTokAdv < 0 {
		errs = append(errs, fmt.Errorf("chunking.min_tok_adv %d must not be negative", c.Chunking.MinTokAdv))
	}
	if t := c.Chunking.AdvocateMatchThreshold; t < 0 || t > 1 {
		errs = append(errs, fmt.Errorf("chunking.advocate_match_threshold %.2f is out of range [0, 1]", t))
	}
	if c.Filter.MinNumChunksPerJust < 0 {
		errs = append(errs, fmt.Errorf("filter.min_num_chunks_per_just %d must not be negative", c.Filter.MinNumChunksPerJust))
	}
	if c.Paths.Chunks == "" {
		errs = append(errs, errors.New("paths.chunks is required"))
	}
	return errors.Join(errs...)
}

// ChunkOptions maps the chunking section onto extractor options.
func (c *Root) ChunkOptions() chunking.Options {
	return chunking.Options{
		MinNumUtts:         c.Chunking.MinNumUtts,
		MinTokAdv:          c.Chunking.MinTokAdv,
		ExcludeBackchannel: c.Chunking.ExcludeBackchannel,
		SingleDash:         c.Chunking.SingleDash,
	}
}

// Sources names the reference tables to load.
func (c *Root) Sources() reference.Sources {
	return reference.Sources{
		Cases:                  c.Paths.Cases,
		Docket:                 c.Paths.Docket,
		Ideology:               c.Paths.Ideology,
		NameGender:             c.Paths.NameGender,
		Backchannel:            c.Paths.Backchannel,
		AdvocateMatchThreshold: c.Chunking.AdvocateMatchThreshold,
	}
}

// Dump writes the effective configuration as YAML.
func (c *Root) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
