package segmenter

import (
	"math"
	"testing"
	"unicode/utf8"

	"morphseg/internal/adapter/cache"
	"morphseg/internal/adapter/trie"
	"morphseg/internal/domain"
)

var catCorpus = []string{"cat", "cats", "car", "cars", "card"}

func newModel(kind domain.Model, threshold int, words []string) *Model {
	m := NewModel(kind, trie.NewScorer(threshold, trie.PreferLater), DefaultMinStemLength, nil)
	m.AddAll(words)
	return m
}

func checkInvariants(t *testing.T, r domain.SegmentationRecord) {
	t.Helper()
	if !r.IsSplit() {
		if r.Stem != r.Word || r.Score != 0 || r.Support != 0 {
			t.Errorf("no-split record %+v must keep the word whole with zero score and support", r)
		}
		return
	}
	if r.Stem+r.Affix != r.Word {
		t.Errorf("record %+v: stem+affix does not rebuild the word", r)
	}
	if utf8.RuneCountInString(r.Stem) < DefaultMinStemLength {
		t.Errorf("record %+v: stem shorter than %d", r, DefaultMinStemLength)
	}
}

func TestPrefixModel_CatCorpus(t *testing.T) {
	m := newModel(domain.ModelPrefix, 2, catCorpus)

	tests := []struct {
		word  string
		stem  string
		affix string
		score float64
	}{
		{"cat", "ca", "t", 0.8},
		{"cats", "ca", "ts", 0.8},
		// best cut is after "car", which leaves no affix
		{"car", "car", "", 0},
		{"cars", "car", "s", 4.0 / 3.0},
		{"card", "car", "d", 4.0 / 3.0},
	}
	for _, tt := range tests {
		got := m.Segment(tt.word)
		checkInvariants(t, got)
		if got.Stem != tt.stem || got.Affix != tt.affix {
			t.Errorf("Segment(%q) = %s+%s, want %s+%s", tt.word, got.Stem, got.Affix, tt.stem, tt.affix)
		}
		if math.Abs(got.Score-tt.score) > 1e-9 {
			t.Errorf("Segment(%q).Score = %f, want %f", tt.word, got.Score, tt.score)
		}
	}
}

func TestSuffixModel_CatCorpus(t *testing.T) {
	m := newModel(domain.ModelSuffix, 2, catCorpus)

	tests := []struct {
		word    string
		stem    string
		affix   string
		support int
	}{
		{"cat", "cat", "", 0},
		{"cats", "cat", "s", 2},
		{"car", "car", "", 0},
		{"cars", "car", "s", 2},
		{"card", "card", "", 0},
	}
	for _, tt := range tests {
		got := m.Segment(tt.word)
		checkInvariants(t, got)
		if got.Stem != tt.stem || got.Affix != tt.affix {
			t.Errorf("Segment(%q) = %s+%s, want %s+%s", tt.word, got.Stem, got.Affix, tt.stem, tt.affix)
		}
		if got.Support != tt.support {
			t.Errorf("Segment(%q).Support = %d, want %d", tt.word, got.Support, tt.support)
		}
	}
}

func TestPrefixModel_RunCorpus(t *testing.T) {
	words := []string{"run", "running", "runner"}
	prefix := newModel(domain.ModelPrefix, 2, words)

	// "runn" is the first node with two continuations ("ing", "er").
	if got := prefix.Segment("running"); got.Stem != "runn" || got.Affix != "ing" {
		t.Errorf("expected runn+ing, got %s+%s", got.Stem, got.Affix)
	}
	if got := prefix.Segment("runner"); got.Stem != "runn" || got.Affix != "er" {
		t.Errorf("expected runn+er, got %s+%s", got.Stem, got.Affix)
	}
	if got := prefix.Segment("run"); got.IsSplit() {
		t.Errorf("expected no split for \"run\", got %+v", got)
	}

	suffix := newModel(domain.ModelSuffix, 2, words)
	for _, w := range words {
		got := suffix.Segment(w)
		checkInvariants(t, got)
		if got.IsSplit() {
			t.Errorf("suffix model: expected no split for %q, got %+v", w, got)
		}
	}
}

func TestModel_InvariantsOnMixedCorpus(t *testing.T) {
	words := []string{
		"walk", "walks", "walked", "walking", "talk", "talks", "talked",
		"talking", "unwalk", "a", "", "ab", "played", "plays", "playing",
		"jumped", "jumps", "jumping", "über", "übers",
	}
	for _, kind := range domain.Models {
		m := newModel(kind, 2, words)
		for _, w := range words {
			checkInvariants(t, m.Segment(w))
		}
	}
}

func TestModel_MinStemLength(t *testing.T) {
	// "ab"/"ac" branch right after "a"; a one-rune stem is rejected by
	// default and accepted when the minimum is lowered.
	words := []string{"ab", "ac"}
	strict := newModel(domain.ModelPrefix, 2, words)
	if got := strict.Segment("ab"); got.IsSplit() {
		t.Errorf("expected one-rune stem to be rejected, got %+v", got)
	}

	loose := NewModel(domain.ModelPrefix, trie.NewScorer(2, trie.PreferLater), 1, nil)
	loose.AddAll(words)
	if got := loose.Segment("ab"); got.Stem != "a" || got.Affix != "b" {
		t.Errorf("expected a+b, got %s+%s", got.Stem, got.Affix)
	}
}

func TestModel_CacheInvalidatedByAdd(t *testing.T) {
	dc := cache.NewDecisionCache(8)
	m := NewModel(domain.ModelPrefix, trie.NewScorer(2, trie.PreferLater), DefaultMinStemLength, dc)
	m.AddAll([]string{"cat", "cats"})

	if got := m.Segment("cats"); got.IsSplit() {
		t.Fatalf("expected no split before \"car\" words are added, got %+v", got)
	}
	if dc.Size() != 1 {
		t.Errorf("expected 1 cached record, got %d", dc.Size())
	}

	m.Add("car")
	if dc.Size() != 0 {
		t.Errorf("expected cache to be cleared by Add, got size %d", dc.Size())
	}
	if got := m.Segment("cats"); got.Stem != "ca" || got.Affix != "ts" {
		t.Errorf("expected ca+ts after adding \"car\", got %s+%s", got.Stem, got.Affix)
	}
}

func TestAssemble(t *testing.T) {
	tests := []struct {
		name  string
		kind  domain.Model
		word  string
		cand  domain.SplitCandidate
		stem  string
		affix string
	}{
		{"no candidate", domain.ModelPrefix, "cats", domain.NoCandidate(), "cats", ""},
		{"prefix split", domain.ModelPrefix, "cats", domain.SplitCandidate{Index: 2, Score: 1, Support: 3}, "cat", "s"},
		{"prefix cut at end", domain.ModelPrefix, "cats", domain.SplitCandidate{Index: 3, Score: 1, Support: 1}, "cats", ""},
		{"prefix short stem", domain.ModelPrefix, "cats", domain.SplitCandidate{Index: 0, Score: 1, Support: 5}, "cats", ""},
		{"suffix split", domain.ModelSuffix, "walked", domain.SplitCandidate{Index: 1, Score: 2, Support: 4}, "walk", "ed"},
		{"suffix whole word", domain.ModelSuffix, "cats", domain.SplitCandidate{Index: 3, Score: 1, Support: 1}, "cats", ""},
		{"suffix short stem", domain.ModelSuffix, "cats", domain.SplitCandidate{Index: 2, Score: 1, Support: 1}, "cats", ""},
		{"index past end", domain.ModelPrefix, "ab", domain.SplitCandidate{Index: 5, Score: 1, Support: 1}, "ab", ""},
		{"multibyte suffix", domain.ModelSuffix, "ઘરો", domain.SplitCandidate{Index: 0, Score: 1, Support: 2}, "ઘર", "ો"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Assemble(tt.kind, tt.word, tt.cand, DefaultMinStemLength)
			if got.Stem != tt.stem || got.Affix != tt.affix {
				t.Errorf("expected %s+%s, got %s+%s", tt.stem, tt.affix, got.Stem, got.Affix)
			}
			checkInvariants(t, got)
			if got.IsSplit() && (got.Score != tt.cand.Score || got.Support != tt.cand.Support) {
				t.Errorf("expected score/support to carry over, got %+v", got)
			}
		})
	}
}

func TestReverse(t *testing.T) {
	tests := map[string]string{
		"":      "",
		"a":     "a",
		"cats":  "stac",
		"übers": "srebü",
	}
	for in, want := range tests {
		if got := Reverse(in); got != want {
			t.Errorf("Reverse(%q) = %q, want %q", in, got, want)
		}
	}
}
