package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"morphseg/internal/adapter/segmenter"
	"morphseg/internal/adapter/sink"
	"morphseg/internal/domain"
	"morphseg/internal/usecase"
)

var (
	inspectCorpus  []string
	inspectPrefix  string
	inspectReverse bool
	inspectLimit   int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print branching statistics of a trie node",
	Long: `Build a trie from a corpus and print the pass count, branching and child
counts of the node reached by a path. With --reverse the reversed trie is used
and the path is read as a word ending, so "es" inspects words ending in "es".

Examples:
  morphseg inspect -c words.txt -p ca
  morphseg inspect -c words.txt -p s --reverse`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringSliceVarP(&inspectCorpus, "corpus", "c", nil, "corpus files or directories (default brown_nouns.txt)")
	inspectCmd.Flags().StringVarP(&inspectPrefix, "prefix", "p", "", "path from the root (empty = root)")
	inspectCmd.Flags().BoolVar(&inspectReverse, "reverse", false, "inspect the reversed trie")
	inspectCmd.Flags().IntVarP(&inspectLimit, "limit", "n", 20, "maximum children to list (0 = all)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	reader, err := newCorpusReader(cfg, inspectCorpus)
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

	kind := domain.ModelPrefix
	path := tokenizer.Normalize(inspectPrefix)
	if inspectReverse {
		kind = domain.ModelSuffix
		path = segmenter.Reverse(path)
	}
	model := segmentUC.Model(kind)
	t := model.Trie()

	node, ok := t.Lookup(path)
	if !ok {
		return fmt.Errorf("path %q not found in %s trie", inspectPrefix, kind)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "node %q (%s trie, %d words, %d nodes)\n", inspectPrefix, kind, t.Len(), t.Size())
	fmt.Fprintf(out, "  pass count: %d\n", node.Count())
	fmt.Fprintf(out, "  branching:  %d (threshold %d)\n", node.Branching(), model.Scorer().Threshold())
	score, ok := model.Scorer().ScoreNode(node)
	if ok {
		fmt.Fprintf(out, "  score:      %s\n", sink.FormatScore(score))
	}
	fmt.Fprintf(out, "  qualifies:  %t\n", ok)

	children := node.Children()
	if len(children) == 0 {
		return nil
	}
	fmt.Fprintln(out, "  children:")
	for i, c := range children {
		if inspectLimit > 0 && i >= inspectLimit {
			fmt.Fprintf(out, "    ... %d more\n", len(children)-i)
			break
		}
		fmt.Fprintf(out, "    %q %d\n", c.Rune, c.Count)
	}
	return nil
}
