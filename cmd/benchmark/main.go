package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"morphseg/config"
	"morphseg/internal/adapter/analyzer"
	"morphseg/internal/adapter/fs"
	"morphseg/internal/adapter/memstore"
	"morphseg/internal/logger"
	"morphseg/internal/usecase"
)

func main() {
	corpusPath := flag.String("corpus", "brown_nouns.txt", "Corpus file or directory")
	dir := flag.String("dir", ".", "Directory holding morphseg.yaml")
	workerList := flag.String("workers", "1,2,4,8", "Comma-separated worker counts to time")
	cacheSize := flag.Int("cache", -1, "Decision cache size (-1 = from config)")
	rounds := flag.Int("rounds", 3, "Scoring rounds per worker count")
	flag.Parse()

	logger.Setup("warn", "text", os.Stderr)

	cfg, err := config.LoadFromDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *cacheSize >= 0 {
		cfg.Segment.CacheSize = *cacheSize
	}

	workers, err := parseWorkers(*workerList)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -workers: %v\n", err)
		os.Exit(1)
	}

	mode, _ := analyzer.ParseMode(cfg.Corpus.Mode)
	tokenizer := analyzer.NewTokenizer(mode, cfg.Corpus.Lowercase, cfg.Corpus.SkipBlank)
	reader := fs.NewCorpusReader([]string{*corpusPath}, fs.NewWalker(cfg.Corpus.Includes, cfg.Corpus.Excludes), tokenizer)

	start := time.Now()
	words, err := reader.Words()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading corpus: %v\n", err)
		os.Exit(1)
	}
	readTime := time.Since(start)

	opts, err := usecase.OptionsFromConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("SEGMENTATION BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Corpus:     %s (%d words, read in %v)\n", *corpusPath, len(words), readTime)
	fmt.Printf("Threshold:  %d  Min stem: %d  Tie: %s  Cache: %d\n",
		opts.BranchThreshold, opts.MinStemLength, opts.TiePolicy, opts.CacheSize)
	fmt.Println()

	var baseline *usecase.SegmentResult
	for _, w := range workers {
		opts.Workers = w
		segmentUC := usecase.NewSegmentUseCase(opts)

		buildStart := time.Now()
		segmentUC.Build(words)
		buildTime := time.Since(buildStart)

		var best time.Duration
		var result *usecase.SegmentResult
		for r := 0; r < *rounds; r++ {
			runStart := time.Now()
			result, err = segmentUC.Run(context.Background(), words, nil)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Scoring error: %v\n", err)
				os.Exit(1)
			}
			if elapsed := time.Since(runStart); r == 0 || elapsed < best {
				best = elapsed
			}
		}

		sink := memstore.NewMemoryStore()
		publishStart := time.Now()
		if err := usecase.Publish(sink, result, ""); err != nil {
			fmt.Fprintf(os.Stderr, "Publish error: %v\n", err)
			os.Exit(1)
		}
		publishTime := time.Since(publishStart)

		consistent := "ok"
		if baseline == nil {
			baseline = result
		} else if result.PrefixTally != baseline.PrefixTally || result.SuffixTally != baseline.SuffixTally {
			consistent = "MISMATCH"
		}

		rate := float64(len(words)) / best.Seconds()
		fmt.Printf("workers=%-3d build=%-12v score=%-12v publish=%-10v %.0f words/s  %s\n",
			w, buildTime, best, publishTime, rate, consistent)
	}

	if baseline != nil {
		summary := baseline.Summary()
		fmt.Println(strings.Repeat("-", 70))
		fmt.Printf("prefix splits: %d  suffix splits: %d  winner: %s\n",
			summary.PrefixSplits, summary.SuffixSplits, summary.Winner)
	}
}

func parseWorkers(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("bad worker count %q", part)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no worker counts given")
	}
	return out, nil
}
