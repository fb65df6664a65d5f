package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/replybot/internal/adapters/driven/corpus/csvfile"
	"github.com/custodia-labs/replybot/internal/core/domain"
	"github.com/custodia-labs/replybot/internal/core/ports/driving"
	"github.com/custodia-labs/replybot/internal/core/services"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the training corpus",
	Long: `Inspect the training corpus or import a CSV file into the local store.

After an import, run 'replybot settings set corpus.source sqlite' to train
from the stored records.`,
}

var corpusImportCmd = &cobra.Command{
	Use:   "import [csv]",
	Short: "Import a CSV corpus into the local store",
	Long: `Read a query,response CSV file and replace the records in the local
SQLite store with its contents. The import is all-or-nothing.

Without an argument the configured corpus path is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCorpusImport,
}

var corpusStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the configured corpus",
	RunE:  runCorpusStats,
}

func init() {
	corpusStatsCmd.Flags().Bool("json", false, "print the summary as JSON")
	corpusCmd.AddCommand(corpusImportCmd)
	corpusCmd.AddCommand(corpusStatsCmd)
	rootCmd.AddCommand(corpusCmd)
}

func runCorpusImport(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		settings, err := currentSettings()
		if err != nil {
			return err
		}
		path = settings.Corpus.Path
	}
	if path == "" {
		return errors.New("no corpus path given")
	}

	set, err := csvfile.New(path).Load(cmd.Context())
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	n, err := services.NewCorpusService(nil, store.CorpusStore()).Import(cmd.Context(), set)
	if err != nil {
		return err
	}

	cmd.Printf("Imported %d records from %s into %s\n", n, path, store.Path())
	return nil
}

func runCorpusStats(cmd *cobra.Command, _ []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("getting json flag: %w", err)
	}

	corpus, err := newCorpusService()
	if err != nil {
		return err
	}
	return printCorpusStats(cmd, corpus, asJSON)
}

// printCorpusStats writes record and label counts from corpus.
func printCorpusStats(cmd *cobra.Command, corpus driving.CorpusService, asJSON bool) error {
	stats, err := corpus.Stats(cmd.Context())
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	cmd.Printf("Records: %d\n", stats.Records)
	cmd.Printf("Labels:  %d\n", len(stats.Labels))
	for _, lc := range stats.Labels {
		cmd.Printf("  %-24s %d\n", lc.Label, lc.Count)
	}
	printLastImport(cmd)
	return nil
}

// printLastImport reports the most recent import when the store is in use.
func printLastImport(cmd *cobra.Command) {
	if corpusStore == nil {
		return
	}
	last, err := corpusStore.LastImport(cmd.Context())
	if errors.Is(err, domain.ErrNotFound) {
		return
	}
	if err != nil {
		cmd.Printf("Last import: unavailable (%v)\n", err)
		return
	}
	cmd.Printf("Last import: %d records at %s\n", last.Records, last.ImportedAt.Format(time.RFC3339))
}
