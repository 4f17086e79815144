package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var chunksCmd = &cobra.Command{
	Use:   "chunks <case-id>",
	Short: "List the stored chunks of one case",
	Long: `Reads the chunk records of one case back from paths.store and prints
one line per chunk: first and last utterance IDs, justice and advocate.`,
	Args: cobra.ExactArgs(1),
	RunE: runChunks,
}

func init() {
	rootCmd.AddCommand(chunksCmd)
}

func runChunks(cmd *cobra.Command, args []string) error {
	conf, log, err := setup(cmd)
	if err != nil {
		return err
	}
	if conf.Paths.Store == "" {
		return errors.New("paths.store is not set")
	}

	store, err := openStore(conf.Paths.Store, log)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Case(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no stored chunks for case %s", args[0])
	}
	for _, r := range records {
		cmd.Printf("%s\t%s\t%s\t%s\n", r.UttIDFirst, r.UttIDLast, r.JusticeName, r.AdvocateName)
	}
	return nil
}
