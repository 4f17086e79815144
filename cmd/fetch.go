package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/maastricht-university/oralargs/clients"
	"github.com/maastricht-university/oralargs/corpus"
)

var keepArchives bool

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the per-year corpora and the case metadata",
	Args:  cobra.NoArgs,
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&keepArchives, "keep-archives", false, "keep downloaded zip files after extraction")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	conf, log, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	h := clients.NewHTTP().Throttle(time.Second)

	if conf.Services.Cases.URL != "" && conf.Paths.Cases != "" {
		n, err := h.Download(ctx, conf.Services.Cases.URL, conf.Paths.Cases)
		if err != nil {
			return err
		}
		log.WithField("bytes", n).WithField("path", conf.Paths.Cases).Info("case metadata downloaded")
	}

	base := strings.TrimSuffix(conf.Services.Corpus.URL, "/")
	for year := conf.Years.Start; year < conf.Years.End; year++ {
		if _, err := os.Stat(filepath.Join(corpus.YearDir(conf.Paths.Corpus, year), corpus.UtterancesFile)); err == nil {
			log.WithField("year", year).Info("corpus present, skipped")
			continue
		}
		name := fmt.Sprintf("supreme-%d.zip", year)
		archive := filepath.Join(conf.Paths.Corpus, name)
		n, err := h.Download(ctx, base+"/"+name, archive)
		if err != nil {
			return err
		}
		if err := corpus.Extract(archive, conf.Paths.Corpus); err != nil {
			return err
		}
		if !keepArchives {
			os.Remove(archive)
		}
		log.WithField("year", year).WithField("bytes", n).Info("corpus downloaded")
	}
	return nil
}
