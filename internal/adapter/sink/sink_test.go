package sink

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
	"morphseg/internal/domain"
)

func TestFormatRecord(t *testing.T) {
	tests := []struct {
		rec  domain.SegmentationRecord
		want string
	}{
		{
			domain.SegmentationRecord{Word: "cats", Stem: "ca", Affix: "ts", Score: 0.8, Support: 5},
			"cats=ca+ts  # score=0.8 support=5",
		},
		{
			domain.SegmentationRecord{Word: "cars", Stem: "car", Affix: "s", Score: 4.0 / 3.0, Support: 3},
			"cars=car+s  # score=1.33333 support=3",
		},
		{
			domain.SegmentationRecord{Word: "walks", Stem: "walk", Affix: "s", Score: 2, Support: 10},
			"walks=walk+s  # score=2 support=10",
		},
		{
			domain.NoSplitRecord("car"),
			"car=car+  # nosplit",
		},
		{
			domain.NoSplitRecord(""),
			"=+  # nosplit",
		},
	}

	for _, tt := range tests {
		if got := FormatRecord(tt.rec); got != tt.want {
			t.Errorf("FormatRecord(%+v) = %q, want %q", tt.rec, got, tt.want)
		}
	}
}

func TestFormatScore(t *testing.T) {
	tests := map[float64]string{
		0:          "0",
		0.5:        "0.5",
		14.2857143: "14.2857",
		1234567:    "1.23457e+06",
	}
	for in, want := range tests {
		if got := FormatScore(in); got != want {
			t.Errorf("FormatScore(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFileSink_WritesFiles(t *testing.T) {
	tmpDir := t.TempDir()
	s := NewFileSink(filepath.Join(tmpDir, "out"), DefaultFileNames())

	prefix := []domain.SegmentationRecord{
		{Word: "cats", Stem: "ca", Affix: "ts", Score: 0.8, Support: 5},
		domain.NoSplitRecord("car"),
	}
	suffix := []domain.SegmentationRecord{
		{Word: "cats", Stem: "cat", Affix: "s", Score: 1, Support: 2},
		domain.NoSplitRecord("car"),
	}

	if err := s.WriteModel(domain.ModelPrefix, prefix); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.WriteModel(domain.ModelSuffix, suffix); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.WriteFinal(prefix); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	summary := domain.Summary{Words: 2, PrefixSplits: 1, SuffixSplits: 1, PrefixScoreSum: 0.8, SuffixScoreSum: 1, Winner: domain.ModelSuffix}
	if err := s.WriteSummary(summary); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(s.Path("prefix_out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	want := "cats=ca+ts  # score=0.8 support=5\ncar=car+  # nosplit\n"
	if string(data) != want {
		t.Errorf("expected prefix file %q, got %q", want, string(data))
	}

	data, err = os.ReadFile(s.Path("suffix_out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "cats=cat+s  # score=1 support=2\n") {
		t.Errorf("unexpected suffix file: %q", string(data))
	}

	final, err := os.ReadFile(s.Path("trie_output.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(final) != want {
		t.Errorf("expected final file to match prefix records, got %q", string(final))
	}

	data, err = os.ReadFile(s.Path("summary.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var got domain.Summary
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("failed to parse summary: %v", err)
	}
	if got.Winner != domain.ModelSuffix || got.PrefixSplits != 1 || got.Words != 2 {
		t.Errorf("unexpected summary: %+v", got)
	}
}

func TestFileSink_EmptyNameSkips(t *testing.T) {
	tmpDir := t.TempDir()
	s := NewFileSink(tmpDir, FileNames{Final: "final.txt"})

	if err := s.WriteModel(domain.ModelPrefix, []domain.SegmentationRecord{domain.NoSplitRecord("a")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.WriteSummary(domain.Summary{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no files, got %d", len(entries))
	}
}

type recordingSink struct {
	calls []string
	err   error
}

func (r *recordingSink) WriteModel(model domain.Model, _ []domain.SegmentationRecord) error {
	r.calls = append(r.calls, "model:"+string(model))
	return r.err
}

func (r *recordingSink) WriteFinal(_ []domain.SegmentationRecord) error {
	r.calls = append(r.calls, "final")
	return r.err
}

func (r *recordingSink) WriteSummary(_ domain.Summary) error {
	r.calls = append(r.calls, "summary")
	return r.err
}

func TestMulti(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	m := Multi{a, b}

	if err := m.WriteModel(domain.ModelPrefix, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.WriteSummary(domain.Summary{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.calls) != 2 || len(b.calls) != 2 {
		t.Errorf("expected both sinks to see 2 calls, got %v and %v", a.calls, b.calls)
	}

	boom := errors.New("boom")
	failing := &recordingSink{err: boom}
	after := &recordingSink{}
	if err := (Multi{failing, after}).WriteFinal(nil); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
	if len(after.calls) != 0 {
		t.Errorf("expected sinks after a failure to be skipped, got %v", after.calls)
	}
}
