package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"morphseg/config"
	"morphseg/internal/adapter/sink"
	"morphseg/internal/adapter/store"
	"morphseg/internal/logger"
	"morphseg/internal/metrics"
	"morphseg/internal/usecase"
)

var (
	segmentThreshold int
	segmentWorkers   int
	segmentOut       string
	segmentTie       string
	segmentNoStore   bool
	segmentJSON      bool
	segmentMetrics   string
)

var segmentCmd = &cobra.Command{
	Use:   "segment [path...]",
	Short: "Segment a corpus with both tries and pick the better model",
	Long: `Read a word list, build the forward and reversed tries, score every word
against both and write one record per word for each model plus the records of
the winning model. Paths may be files or directories; directories are walked
with the corpus include/exclude patterns. Without a path, brown_nouns.txt in
the root directory is read.

The run is also stored in .morphseg/runs.db for the show command.

Examples:
  morphseg segment                        # Segment ./brown_nouns.txt
  morphseg segment words.txt -t 5 -o out  # Lower threshold, write into ./out
  morphseg segment corpus/ --json         # Print the summary as JSON`,
	RunE: runSegment,
}

func init() {
	rootCmd.AddCommand(segmentCmd)
	segmentCmd.Flags().IntVarP(&segmentThreshold, "threshold", "t", 0, "minimum branching at a split node (default from config)")
	segmentCmd.Flags().IntVarP(&segmentWorkers, "workers", "w", 0, "scoring goroutines (default from config, 0 = one per CPU)")
	segmentCmd.Flags().StringVarP(&segmentOut, "out", "o", "", "output directory (default from config)")
	segmentCmd.Flags().StringVar(&segmentTie, "tie-policy", "", "split preferred on equal scores: later or earlier")
	segmentCmd.Flags().BoolVar(&segmentNoStore, "no-store", false, "do not persist the run")
	segmentCmd.Flags().BoolVar(&segmentJSON, "json", false, "print the summary as JSON")
	segmentCmd.Flags().StringVar(&segmentMetrics, "metrics-file", "", "write Prometheus metrics of the run to this file")
}

// applySegmentFlags overrides config values with flags the user set.
func applySegmentFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("threshold") {
		cfg.Segment.BranchThreshold = segmentThreshold
	}
	if flags.Changed("workers") {
		cfg.Segment.Workers = segmentWorkers
	}
	if flags.Changed("tie-policy") {
		cfg.Segment.TiePolicy = segmentTie
	}
	if flags.Changed("out") {
		cfg.Output.Dir = segmentOut
	}
	if flags.Changed("metrics-file") {
		cfg.Output.MetricsFile = segmentMetrics
	}
	if segmentNoStore {
		cfg.Output.Store = false
	}
	return cfg.Validate()
}

func runSegment(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	rootDir := GetRootDir()
	log := logger.WithComponent("cli")

	if err := applySegmentFlags(cmd, cfg); err != nil {
		return err
	}

	reader, err := newCorpusReader(cfg, args)
	if err != nil {
		return err
	}
	words, err := reader.Words()
	if err != nil {
		return fmt.Errorf("failed to read corpus: %w", err)
	}

	opts, err := usecase.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	segmentUC := usecase.NewSegmentUseCase(opts)
	var runMetrics *metrics.Metrics
	if cfg.Output.MetricsFile != "" {
		runMetrics = metrics.New()
		segmentUC.WithMetrics(runMetrics)
	}

	start := time.Now()
	segmentUC.Build(words)

	var progress usecase.ProgressFunc
	if !segmentJSON && len(words) > 0 {
		bar := newProgressBar(len(words), "[cyan]Scoring[reset]")
		progress = func(n int) { bar.Add(n) }
	}

	result, err := segmentUC.Run(cmd.Context(), words, progress)
	if err != nil {
		return fmt.Errorf("segmentation failed: %w", err)
	}

	outDir := resolvePath(cfg.Output.Dir)
	sinks := sink.Multi{sink.NewFileSink(outDir, sink.FileNames{
		Prefix:  cfg.Output.PrefixFile,
		Suffix:  cfg.Output.SuffixFile,
		Final:   cfg.Output.FinalFile,
		Summary: cfg.Output.SummaryFile,
	})}

	if cfg.Output.Store {
		st, err := openRunStore(rootDir, cfg)
		if err != nil {
			return err
		}
		defer st.Close()
		sinks = append(sinks, st)
	}

	hash := store.ComputeConfigHash(cfg)
	if err := usecase.Publish(sinks, result, hash); err != nil {
		return err
	}

	if runMetrics != nil {
		path := resolvePath(cfg.Output.MetricsFile)
		if err := runMetrics.WriteTextfile(path); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		log.Debug("wrote metrics", "path", path)
	}

	summary := result.Summary()
	summary.ConfigHash = hash
	log.Info("segmentation complete", "elapsed", formatDuration(time.Since(start)), "out", outDir)

	out := cmd.OutOrStdout()
	if segmentJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	// prefix_out and suffix_out count accepted splits, not records.
	fmt.Fprintf(out, "written prefix_out=%d suffix_out=%d winner=%s\n",
		summary.PrefixSplits, summary.SuffixSplits, summary.Winner)
	fmt.Fprintf(out, "  prefix score sum: %s\n", sink.FormatScore(summary.PrefixScoreSum))
	fmt.Fprintf(out, "  suffix score sum: %s\n", sink.FormatScore(summary.SuffixScoreSum))
	return nil
}

// openRunStore opens the run database and empties it for a new run.
func openRunStore(rootDir string, cfg *config.Config) (*store.BoltStore, error) {
	log := logger.WithComponent("cli")

	if err := config.EnsureDataDir(rootDir); err != nil {
		return nil, fmt.Errorf("failed to create .morphseg directory: %w", err)
	}
	st, err := store.NewBoltStore(config.StoreDBPath(rootDir))
	if err != nil {
		return nil, fmt.Errorf("failed to open run store: %w", err)
	}

	migration, err := st.CheckMigration(cfg)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to check migration: %w", err)
	}
	if migration.NeedsMigration || migration.NeedsRebuild {
		log.Info("updating run store", "reason", migration.Reason)
	}

	if err := st.Clear(); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to clear previous run: %w", err)
	}
	if err := st.Migrate(cfg); err != nil {
		st.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return st, nil
}
