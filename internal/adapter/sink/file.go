package sink

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	"morphseg/internal/domain"
)

// FileNames names the files written by a FileSink.
type FileNames struct {
	Prefix  string
	Suffix  string
	Final   string
	Summary string
}

// DefaultFileNames returns the standard output file names.
func DefaultFileNames() FileNames {
	return FileNames{
		Prefix:  "prefix_out.txt",
		Suffix:  "suffix_out.txt",
		Final:   "trie_output.txt",
		Summary: "summary.yaml",
	}
}

// FileSink writes one text file per model, the final file and a YAML summary
// into a directory. An empty name skips that file.
type FileSink struct {
	dir    string
	names  FileNames
	logger *slog.Logger
}

func NewFileSink(dir string, names FileNames) *FileSink {
	return &FileSink{
		dir:    dir,
		names:  names,
		logger: slog.Default().With("component", "file-sink"),
	}
}

// Path returns where name is written.
func (s *FileSink) Path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *FileSink) WriteModel(model domain.Model, records []domain.SegmentationRecord) error {
	name := s.names.Prefix
	if model == domain.ModelSuffix {
		name = s.names.Suffix
	}
	return s.writeRecords(name, records)
}

func (s *FileSink) WriteFinal(records []domain.SegmentationRecord) error {
	return s.writeRecords(s.names.Final, records)
}

func (s *FileSink) WriteSummary(summary domain.Summary) error {
	if s.names.Summary == "" {
		return nil
	}
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := s.Path(s.names.Summary)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	s.logger.Debug("wrote summary", "path", path)
	return nil
}

func (s *FileSink) writeRecords(name string, records []domain.SegmentationRecord) error {
	if name == "" {
		return nil
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := s.Path(name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	for _, r := range records {
		w.WriteString(FormatRecord(r))
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	s.logger.Debug("wrote records", "path", path, "records", len(records))
	return nil
}
