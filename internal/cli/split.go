package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"morphseg/internal/adapter/analyzer"
	"morphseg/internal/adapter/sink"
	"morphseg/internal/domain"
	"morphseg/internal/usecase"
)

var (
	splitCorpus    []string
	splitHeuristic bool
	splitJSON      bool
)

var splitCmd = &cobra.Command{
	Use:   "split word...",
	Short: "Show both models' decision for individual words",
	Long: `Build both tries from a corpus and print the record each model produces
for the given words. The words do not need to appear in the corpus.

Examples:
  morphseg split -c words.txt walking talked
  morphseg split -c words.txt --heuristic studies`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)
	splitCmd.Flags().StringSliceVarP(&splitCorpus, "corpus", "c", nil, "corpus files or directories (default brown_nouns.txt)")
	splitCmd.Flags().BoolVar(&splitHeuristic, "heuristic", false, "also show the common-suffix heuristic")
	splitCmd.Flags().BoolVar(&splitJSON, "json", false, "output as JSON")
}

type splitOutput struct {
	Word      string                    `json:"word"`
	Prefix    domain.SegmentationRecord `json:"prefix"`
	Suffix    domain.SegmentationRecord `json:"suffix"`
	Heuristic *heuristicOutput          `json:"heuristic,omitempty"`
}

type heuristicOutput struct {
	Stem   string `json:"stem"`
	Suffix string `json:"suffix"`
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	reader, err := newCorpusReader(cfg, splitCorpus)
	if err != nil {
		return err
	}
	tokenizer, err := newTokenizer(cfg)
	if err != nil {
		return err
	}
	opts, err := usecase.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}

	words, err := reader.Words()
	if err != nil {
		return fmt.Errorf("failed to read corpus: %w", err)
	}
	segmentUC := usecase.NewSegmentUseCase(opts)
	segmentUC.Build(words)

	outputs := make([]splitOutput, 0, len(args))
	for _, arg := range args {
		word := tokenizer.Normalize(arg)
		out := splitOutput{
			Word:   word,
			Prefix: segmentUC.Model(domain.ModelPrefix).Segment(word),
			Suffix: segmentUC.Model(domain.ModelSuffix).Segment(word),
		}
		if splitHeuristic {
			if stem, suffix, ok := analyzer.CommonSuffixStrip(word); ok {
				out.Heuristic = &heuristicOutput{Stem: stem, Suffix: suffix}
			}
		}
		outputs = append(outputs, out)
	}

	w := cmd.OutOrStdout()
	if splitJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(outputs)
	}

	for _, out := range outputs {
		fmt.Fprintln(w, out.Word)
		fmt.Fprintf(w, "  prefix:    %s\n", sink.FormatRecord(out.Prefix))
		fmt.Fprintf(w, "  suffix:    %s\n", sink.FormatRecord(out.Suffix))
		if splitHeuristic {
			if out.Heuristic != nil {
				fmt.Fprintf(w, "  heuristic: %s+%s\n", out.Heuristic.Stem, out.Heuristic.Suffix)
			} else {
				fmt.Fprintln(w, "  heuristic: no common suffix")
			}
		}
	}
	return nil
}
