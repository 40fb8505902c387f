package fs

import (
	"fmt"
	"log/slog"
	"os"

	"morphseg/internal/adapter/analyzer"
	"morphseg/internal/port"
)

// CorpusReader reads words from files and directories. Directories are
// expanded with the walker; plain files are read as given.
type CorpusReader struct {
	paths     []string
	walker    port.FileWalker
	tokenizer *analyzer.Tokenizer
	logger    *slog.Logger
}

func NewCorpusReader(paths []string, walker port.FileWalker, tokenizer *analyzer.Tokenizer) *CorpusReader {
	return &CorpusReader{
		paths:     paths,
		walker:    walker,
		tokenizer: tokenizer,
		logger:    slog.Default().With("component", "corpus-reader"),
	}
}

// Words reads every corpus file in order and returns the words they contain.
func (r *CorpusReader) Words() ([]string, error) {
	files, err := r.Files()
	if err != nil {
		return nil, err
	}

	var words []string
	for _, path := range files {
		content, err := ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read corpus file %s: %w", path, err)
		}
		tokens := r.tokenizer.Tokenize(content)
		r.logger.Debug("read corpus file", "path", path, "words", len(tokens))
		words = append(words, tokens...)
	}
	return words, nil
}

// Files resolves the configured paths to the list of files to read.
func (r *CorpusReader) Files() ([]string, error) {
	var files []string
	for _, p := range r.paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("corpus path does not exist: %w", err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		found, err := r.walker.Walk(p)
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", p, err)
		}
		for _, f := range found {
			files = append(files, f.Path)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no corpus files found in %v", r.paths)
	}
	return files, nil
}

// StaticSource serves a fixed word list.
type StaticSource []string

func (s StaticSource) Words() ([]string, error) {
	return []string(s), nil
}
