package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"morphseg/config"
	"morphseg/internal/adapter/analyzer"
	"morphseg/internal/adapter/fs"
)

// DefaultCorpusFile is read when no corpus path is given.
const DefaultCorpusFile = "brown_nouns.txt"

// resolvePath makes p absolute against the root directory.
func resolvePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GetRootDir(), p)
}

func newTokenizer(cfg *config.Config) (*analyzer.Tokenizer, error) {
	mode, ok := analyzer.ParseMode(cfg.Corpus.Mode)
	if !ok {
		return nil, fmt.Errorf("%w: unknown corpus mode %q", config.ErrInvalidConfig, cfg.Corpus.Mode)
	}
	return analyzer.NewTokenizer(mode, cfg.Corpus.Lowercase, cfg.Corpus.SkipBlank), nil
}

// newCorpusReader reads paths, falling back to the default corpus file.
func newCorpusReader(cfg *config.Config, paths []string) (*fs.CorpusReader, error) {
	tokenizer, err := newTokenizer(cfg)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		paths = []string{DefaultCorpusFile}
	}
	resolved := make([]string, len(paths))
	for i, p := range paths {
		resolved[i] = resolvePath(p)
	}
	walker := fs.NewWalker(cfg.Corpus.Includes, cfg.Corpus.Excludes)
	return fs.NewCorpusReader(resolved, walker, tokenizer), nil
}

func newProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", m, s)
}
