package domain

// Model identifies one of the two segmentation models.
type Model string

const (
	// ModelPrefix mines a trie built over words as written.
	ModelPrefix Model = "prefix"
	// ModelSuffix mines a trie built over reversed words.
	ModelSuffix Model = "suffix"
)

// Models lists the models in their default precedence order.
var Models = []Model{ModelPrefix, ModelSuffix}

// Valid reports whether m names a known model.
func (m Model) Valid() bool {
	return m == ModelPrefix || m == ModelSuffix
}

// RecordSet names a stored group of records.
type RecordSet string

const (
	SetPrefix RecordSet = "prefix"
	SetSuffix RecordSet = "suffix"
	SetFinal  RecordSet = "final"
)

// SetFor returns the record set holding a model's records.
func SetFor(m Model) RecordSet {
	if m == ModelSuffix {
		return SetSuffix
	}
	return SetPrefix
}

// NoSplit is the candidate index used when no branch point qualified.
const NoSplit = -1

type SplitCandidate struct {
	Index   int
	Score   float64
	Support int
}

// Found reports whether the candidate points at a branch point.
func (c SplitCandidate) Found() bool {
	return c.Index != NoSplit
}

// NoCandidate returns the empty candidate.
func NoCandidate() SplitCandidate {
	return SplitCandidate{Index: NoSplit}
}

type SegmentationRecord struct {
	Word    string  `json:"word" yaml:"word"`
	Stem    string  `json:"stem" yaml:"stem"`
	Affix   string  `json:"affix,omitempty" yaml:"affix,omitempty"`
	Score   float64 `json:"score" yaml:"score"`
	Support int     `json:"support" yaml:"support"`
}

// NoSplitRecord returns the record for a word left whole.
func NoSplitRecord(word string) SegmentationRecord {
	return SegmentationRecord{Word: word, Stem: word}
}

// IsSplit reports whether the record carries an affix.
func (r SegmentationRecord) IsSplit() bool {
	return r.Affix != ""
}

type CorpusTally struct {
	SplitCount int     `json:"split_count" yaml:"split_count"`
	ScoreSum   float64 `json:"score_sum" yaml:"score_sum"`
}

// Add counts r if it is a split.
func (t *CorpusTally) Add(r SegmentationRecord) {
	if !r.IsSplit() {
		return
	}
	t.SplitCount++
	t.ScoreSum += r.Score
}

// Summary describes one segmentation run.
type Summary struct {
	Words          int     `json:"words" yaml:"words"`
	PrefixSplits   int     `json:"prefix_splits" yaml:"prefix_splits"`
	SuffixSplits   int     `json:"suffix_splits" yaml:"suffix_splits"`
	PrefixScoreSum float64 `json:"prefix_score_sum" yaml:"prefix_score_sum"`
	SuffixScoreSum float64 `json:"suffix_score_sum" yaml:"suffix_score_sum"`
	Winner         Model   `json:"winner" yaml:"winner"`
	ConfigHash     string  `json:"config_hash,omitempty" yaml:"config_hash,omitempty"`
}

// Tally returns the tally recorded for m.
func (s Summary) Tally(m Model) CorpusTally {
	if m == ModelSuffix {
		return CorpusTally{SplitCount: s.SuffixSplits, ScoreSum: s.SuffixScoreSum}
	}
	return CorpusTally{SplitCount: s.PrefixSplits, ScoreSum: s.PrefixScoreSum}
}
