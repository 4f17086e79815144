// Package cmd wires the oralargs command line.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/maastricht-university/oralargs/config"
	"github.com/maastricht-university/oralargs/logging"
	"github.com/maastricht-university/oralargs/reference"
	"github.com/maastricht-university/oralargs/store/sqlite"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "oralargs",
	Short: "Chunk oral-argument transcripts into advocate/justice exchanges",
	Long: `oralargs splits oral-argument transcripts into two-party exchanges
between one advocate and one justice, annotates each exchange with
interruption, disfluency, gender, ideology and experience features, and
builds the final analysis table from the emitted chunks.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: config/$CONFIG_ENV/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override pipeline.log_level")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger every sub-command
// shares.
func setup(cmd *cobra.Command) (*config.Root, *logrus.Logger, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		conf.Pipeline.LogLvl = logLevel
	}
	log, err := logging.New(conf.Pipeline.LogLvl, conf.Pipeline.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	return conf, log, nil
}

func loadTables(ctx context.Context, conf *config.Root, log logrus.FieldLogger) (*reference.Tables, error) {
	tables, err := reference.LoadAll(ctx, conf.Sources())
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"cases":   tables.Cases.Len(),
		"dockets": tables.Dockets.Len(),
	}).Debug("reference tables loaded")
	return tables, nil
}

func openStore(path string, log logrus.FieldLogger) (*sqlite.Store, error) {
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, err
	}
	log.WithField("path", store.Path()).Debug("chunk store opened")
	return store, nil
}
