package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maastricht-university/oralargs/corpus"
	"github.com/maastricht-university/oralargs/orchestrator"
	"github.com/maastricht-university/oralargs/transcript"
)

var boundariesCmd = &cobra.Command{
	Use:   "boundaries <case-id>",
	Short: "Print the exchange boundaries of one case",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoundaries,
}

func init() {
	rootCmd.AddCommand(boundariesCmd)
}

func runBoundaries(cmd *cobra.Command, args []string) error {
	conf, log, err := setup(cmd)
	if err != nil {
		return err
	}
	caseID := args[0]
	year, err := transcript.CaseYear(caseID)
	if err != nil {
		return err
	}

	tables, err := loadTables(cmd.Context(), conf, log)
	if err != nil {
		return err
	}
	c, err := corpus.Load(corpus.YearDir(conf.Paths.Corpus, year))
	if err != nil {
		return err
	}
	if len(c.CaseUtterances(caseID)) == 0 {
		return fmt.Errorf("case %s not in the %d corpus", caseID, year)
	}

	ids, err := orchestrator.NewPipeline(conf, tables, log).Boundaries(c, caseID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		cmd.Println(id)
	}
	return nil
}
