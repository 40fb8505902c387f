package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"morphseg/config"
	"morphseg/internal/adapter/store"
	"morphseg/internal/domain"
)

// runCLI executes the root command and returns what it wrote to stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// writeCatCorpus writes the cat corpus as the default corpus file of a new
// root directory whose config lowers the threshold to 2.
func writeCatCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	corpus := "cat\ncats\ncar\ncars\ncard\n"
	if err := os.WriteFile(filepath.Join(dir, DefaultCorpusFile), []byte(corpus), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := "segment:\n  branch_threshold: 2\n"
	if err := os.WriteFile(filepath.Join(dir, "morphseg.yaml"), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestSegmentCommand(t *testing.T) {
	dir := t.TempDir()
	corpus := "cat\ncats\ncar\ncars\ncard\n"
	if err := os.WriteFile(filepath.Join(dir, DefaultCorpusFile), []byte(corpus), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "segment", "-d", dir, "-t", "2", "-w", "2", "--metrics-file", "run.prom")
	if err != nil {
		t.Fatalf("segment failed: %v", err)
	}
	if first, _, _ := strings.Cut(out, "\n"); first != "written prefix_out=4 suffix_out=2 winner=prefix" {
		t.Errorf("unexpected summary line: %q", first)
	}

	data, err := os.ReadFile(filepath.Join(dir, "prefix_out.txt"))
	if err != nil {
		t.Fatalf("expected prefix_out.txt: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	if lines[0] != "cat=ca+t  # score=0.8 support=5" {
		t.Errorf("unexpected first line: %q", lines[0])
	}
	if lines[2] != "car=car+  # nosplit" {
		t.Errorf("unexpected third line: %q", lines[2])
	}

	final, err := os.ReadFile(filepath.Join(dir, "trie_output.txt"))
	if err != nil {
		t.Fatalf("expected trie_output.txt: %v", err)
	}
	if string(final) != string(data) {
		t.Error("expected final output to equal the prefix model output")
	}

	prom, err := os.ReadFile(filepath.Join(dir, "run.prom"))
	if err != nil {
		t.Fatalf("expected metrics file: %v", err)
	}
	if !strings.Contains(string(prom), `morphseg_splits_total{model="prefix"} 4`) {
		t.Errorf("unexpected metrics file:\n%s", prom)
	}

	st, err := store.NewBoltStore(config.StoreDBPath(dir))
	if err != nil {
		t.Fatalf("expected run store: %v", err)
	}
	summary, err := st.GetSummary()
	st.Close()
	if err != nil {
		t.Fatalf("expected stored summary: %v", err)
	}
	if summary.Winner != domain.ModelPrefix || summary.PrefixSplits != 4 || summary.SuffixSplits != 2 {
		t.Errorf("unexpected stored summary: %+v", summary)
	}

	out, err = runCLI(t, "show", "-d", dir, "--set", "suffix", "-n", "2")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	want := "words=5 prefix_splits=4 suffix_splits=2 winner=prefix\n" +
		"cat=cat+  # nosplit\n" +
		"cats=cat+s  # score=1 support=2\n"
	if out != want {
		t.Errorf("unexpected show output:\n%s", out)
	}
}

func TestSegmentCommand_MissingCorpus(t *testing.T) {
	dir := t.TempDir()
	if _, err := runCLI(t, "segment", "-d", dir, "--no-store"); err == nil {
		t.Error("expected error when the default corpus is missing")
	}
}

func TestShowCommand_NoRun(t *testing.T) {
	if _, err := runCLI(t, "show", "-d", t.TempDir()); err == nil {
		t.Error("expected error without a stored run")
	}
}

func TestSplitCommand(t *testing.T) {
	dir := writeCatCorpus(t)

	out, err := runCLI(t, "split", "-d", dir, "-c", DefaultCorpusFile, "cats", "--heuristic", "--json")
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}

	var got []splitOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("expected JSON output: %v\n%s", err, out)
	}
	if len(got) != 1 || got[0].Word != "cats" {
		t.Fatalf("unexpected output: %+v", got)
	}

	prefix := got[0].Prefix
	if prefix.Stem != "ca" || prefix.Affix != "ts" || math.Abs(prefix.Score-0.8) > 1e-9 || prefix.Support != 5 {
		t.Errorf("unexpected prefix record: %+v", prefix)
	}
	suffix := got[0].Suffix
	if suffix.Stem != "cat" || suffix.Affix != "s" || math.Abs(suffix.Score-1) > 1e-9 || suffix.Support != 2 {
		t.Errorf("unexpected suffix record: %+v", suffix)
	}
	if h := got[0].Heuristic; h == nil || h.Stem != "cat" || h.Suffix != "s" {
		t.Errorf("unexpected heuristic: %+v", h)
	}
}

func TestInspectCommand(t *testing.T) {
	dir := writeCatCorpus(t)

	out, err := runCLI(t, "inspect", "-d", dir, "-c", DefaultCorpusFile, "-p", "ca")
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	for _, want := range []string{
		"  pass count: 5\n",
		"  branching:  2 (threshold 2)\n",
		"  score:      0.8\n",
		"  qualifies:  true\n",
		"    't' 2\n",
		"    'r' 3\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	// the corpus flag keeps its value between runs; it names the default
	// file so both runs read the same corpus
	out, err = runCLI(t, "inspect", "-d", dir, "-p", "s", "--reverse")
	if err != nil {
		t.Fatalf("inspect --reverse failed: %v", err)
	}
	for _, want := range []string{
		"(suffix trie, 5 words",
		"  pass count: 2\n",
		"  branching:  2 (threshold 2)\n",
		"  score:      1\n",
		"  qualifies:  true\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	out, err = runCLI(t, "inspect", "-d", dir, "-p", "cat", "--reverse=false")
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if !strings.Contains(out, "  qualifies:  false\n") || strings.Contains(out, "score:") {
		t.Errorf("expected a non-qualifying node without score:\n%s", out)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[time.Duration]string{
		500 * time.Millisecond: "<1s",
		42 * time.Second:       "42s",
		125 * time.Second:      "2m5s",
	}
	for in, want := range tests {
		if got := formatDuration(in); got != want {
			t.Errorf("formatDuration(%v) = %q, want %q", in, got, want)
		}
	}
}
