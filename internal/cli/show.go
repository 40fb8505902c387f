package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"morphseg/config"
	"morphseg/internal/adapter/sink"
	"morphseg/internal/adapter/store"
	"morphseg/internal/domain"
	"morphseg/internal/logger"
)

var (
	showSet   string
	showJSON  bool
	showLimit int
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the last stored segmentation run",
	Long: `Print the summary and records of the run stored by the last segment
command in .morphseg/runs.db.

Examples:
  morphseg show                       # Final records
  morphseg show --set suffix -n 20    # First 20 suffix model records
  morphseg show --json`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVar(&showSet, "set", string(domain.SetFinal), "record set: prefix, suffix or final")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output as JSON")
	showCmd.Flags().IntVarP(&showLimit, "limit", "n", 0, "maximum records to print (0 = all)")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	rootDir := GetRootDir()
	log := logger.WithComponent("cli")

	dbPath := config.StoreDBPath(rootDir)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("no stored run. Run 'morphseg segment' first")
	}

	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open run store: %w", err)
	}
	defer st.Close()

	summary, err := st.GetSummary()
	if errors.Is(err, store.ErrNoRun) {
		return fmt.Errorf("no stored run. Run 'morphseg segment' first")
	}
	if err != nil {
		return fmt.Errorf("failed to read summary: %w", err)
	}

	migration, err := st.CheckMigration(cfg)
	if err != nil {
		return fmt.Errorf("failed to check migration: %w", err)
	}
	if migration.NeedsRebuild {
		log.Warn("stored run does not match current configuration", "reason", migration.Reason)
	}

	records, err := st.ListRecords(domain.RecordSet(showSet))
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}
	if showLimit > 0 && len(records) > showLimit {
		records = records[:showLimit]
	}

	out := cmd.OutOrStdout()
	if showJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Summary domain.Summary              `json:"summary"`
			Set     string                      `json:"set"`
			Records []domain.SegmentationRecord `json:"records"`
		}{summary, showSet, records})
	}

	fmt.Fprintf(out, "words=%d prefix_splits=%d suffix_splits=%d winner=%s\n",
		summary.Words, summary.PrefixSplits, summary.SuffixSplits, summary.Winner)
	for _, r := range records {
		fmt.Fprintln(out, sink.FormatRecord(r))
	}
	return nil
}
