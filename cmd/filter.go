package cmd

import (
	"github.com/spf13/cobra"

	"github.com/maastricht-university/oralargs/analysis"
	"github.com/maastricht-university/oralargs/chunking"
	"github.com/maastricht-university/oralargs/reference"
)

var fromStore bool

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Build the final analysis table from emitted chunks",
	Long: `Reads the chunk records (from paths.chunks, or from paths.store with
--from-store), drops records before years.start, joins justice gender and
ideology alignment, keeps justices with more than
filter.min_num_chunks_per_just chunks and writes paths.final_table.`,
	Args: cobra.NoArgs,
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().BoolVar(&fromStore, "from-store", false, "read chunks from the SQLite store instead of chunk files")
	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, _ []string) error {
	conf, log, err := setup(cmd)
	if err != nil {
		return err
	}
	sel := analysis.SelectOptions{
		StartYear:          conf.Years.Start,
		ExcludeAdvFirstUtt: conf.Filter.ExcludeAdvFirstUtt,
	}

	var (
		records []chunking.Record
		st      analysis.SelectStats
	)
	if fromStore {
		store, err := openStore(conf.Paths.Store, log)
		if err != nil {
			return err
		}
		defer store.Close()
		all, err := store.All(cmd.Context())
		if err != nil {
			return err
		}
		records, st, err = analysis.Select(all, sel)
		if err != nil {
			return err
		}
	} else {
		records, st, err = analysis.LoadChunks(conf.Paths.Chunks, sel)
		if err != nil {
			return err
		}
	}
	log.WithField("num_exclude_adv_first_utt", st.AdvFirstUtt).WithField("chunks", st.RecordsKept).Info("chunks loaded")

	rows, fst := analysis.JoinFilter(records, reference.JusticeGender(), analysis.FilterOptions{
		MinNumChunksPerJust: conf.Filter.MinNumChunksPerJust,
		IncludeFemIssue:     conf.Filter.IncludeFemIssue,
	}, log)
	if err := analysis.SaveCSV(conf.Paths.FinalTable, rows); err != nil {
		return err
	}
	cmd.Printf("%d rows from %d justices -> %s\n", fst.Output, len(fst.ValidJustices), conf.Paths.FinalTable)
	return nil
}
