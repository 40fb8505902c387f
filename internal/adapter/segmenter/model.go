package segmenter

import (
	"morphseg/internal/adapter/cache"
	"morphseg/internal/adapter/trie"
	"morphseg/internal/domain"
)

// DefaultMinStemLength is the shortest stem a split may leave.
const DefaultMinStemLength = 2

// Model is one trie-backed segmentation model. The prefix model indexes
// words as written; the suffix model indexes them reversed.
type Model struct {
	kind       domain.Model
	trie       *trie.Trie
	scorer     *trie.Scorer
	minStemLen int
	cache      *cache.DecisionCache
}

// NewModel creates an empty model. dc may be nil.
func NewModel(kind domain.Model, scorer *trie.Scorer, minStemLen int, dc *cache.DecisionCache) *Model {
	if minStemLen < 1 {
		minStemLen = 1
	}
	return &Model{
		kind:       kind,
		trie:       trie.New(),
		scorer:     scorer,
		minStemLen: minStemLen,
		cache:      dc,
	}
}

// Kind returns which model this is.
func (m *Model) Kind() domain.Model {
	return m.kind
}

// Trie returns the model's trie.
func (m *Model) Trie() *trie.Trie {
	return m.trie
}

// Add inserts word in the model's orientation.
func (m *Model) Add(word string) {
	m.trie.Insert(m.orient(word))
	if m.cache != nil {
		m.cache.Invalidate()
	}
}

// AddAll inserts every word.
func (m *Model) AddAll(words []string) {
	for _, w := range words {
		m.trie.Insert(m.orient(w))
	}
	if m.cache != nil {
		m.cache.Invalidate()
	}
}

// Scorer returns the scorer shared by the model.
func (m *Model) Scorer() *trie.Scorer {
	return m.scorer
}

// Candidate scores word against the trie without applying any filter.
// The index refers to the oriented word.
func (m *Model) Candidate(word string) domain.SplitCandidate {
	return m.scorer.BestSplit(m.trie, m.orient(word))
}

// Segment returns the record for word.
func (m *Model) Segment(word string) domain.SegmentationRecord {
	if m.cache != nil {
		if rec, ok := m.cache.Get(word); ok {
			return rec
		}
	}
	rec := Assemble(m.kind, word, m.Candidate(word), m.minStemLen)
	if m.cache != nil {
		m.cache.Put(word, rec)
	}
	return rec
}

func (m *Model) orient(word string) string {
	if m.kind == domain.ModelSuffix {
		return Reverse(word)
	}
	return word
}

// CacheStats returns the decision cache's hit and miss counts, or zeros
// when the model has no cache.
func (m *Model) CacheStats() (hits, misses uint64) {
	if m.cache == nil {
		return 0, 0
	}
	return m.cache.Stats()
}
