package cmd

import (
	"github.com/spf13/cobra"

	"github.com/maastricht-university/oralargs/orchestrator"
)

var chunkCmd = &cobra.Command{
	Use:   "chunk",
	Short: "Chunk every case of the configured years",
	Long: `Loads the reference tables and the per-year corpora, detects exchange
boundaries case by case in argument-date order, and writes one
<case>.jsonl file of chunk records per case to paths.chunks. When
paths.store is set the records are saved to that SQLite database too.`,
	Args: cobra.NoArgs,
	RunE: runChunk,
}

func init() {
	rootCmd.AddCommand(chunkCmd)
}

func runChunk(cmd *cobra.Command, _ []string) error {
	conf, log, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	tables, err := loadTables(ctx, conf, log)
	if err != nil {
		return err
	}

	var opts []orchestrator.Option
	if conf.Paths.Store != "" {
		store, err := openStore(conf.Paths.Store, log)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, orchestrator.WithStore(store))
	}

	m, err := orchestrator.NewPipeline(conf, tables, log, opts...).Run(ctx)
	if err != nil {
		return err
	}
	cmd.Printf("run %s: %d cases, %d chunks\n", m.RunID, m.Stats.CasesProcessed, m.Stats.ChunksEmitted)
	return nil
}
