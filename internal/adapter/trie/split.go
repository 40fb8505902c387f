package trie

import (
	"fmt"
	"math"

	"morphseg/internal/domain"
)

// DefaultBranchThreshold is the minimum branching a node needs to host a split.
const DefaultBranchThreshold = 15

// Epsilon is the tolerance under which two scores count as tied.
const Epsilon = 1e-9

// TiePolicy decides which of two near-equal split points wins.
type TiePolicy int

const (
	// PreferLater keeps the deeper split (longer stem).
	PreferLater TiePolicy = iota
	// PreferEarlier keeps the first split found (shorter stem).
	PreferEarlier
)

func (p TiePolicy) String() string {
	if p == PreferEarlier {
		return "earlier"
	}
	return "later"
}

// ParseTiePolicy parses "later" or "earlier".
func ParseTiePolicy(s string) (TiePolicy, error) {
	switch s {
	case "", "later":
		return PreferLater, nil
	case "earlier":
		return PreferEarlier, nil
	default:
		return PreferLater, fmt.Errorf("unknown tie policy: %q", s)
	}
}

// Scorer finds the most confident branch point of a word in a trie.
type Scorer struct {
	threshold int
	policy    TiePolicy
}

// NewScorer creates a scorer. Thresholds below 1 are raised to 1.
func NewScorer(threshold int, policy TiePolicy) *Scorer {
	if threshold < 1 {
		threshold = 1
	}
	return &Scorer{threshold: threshold, policy: policy}
}

// Threshold returns the minimum branching used by the scorer.
func (s *Scorer) Threshold() int {
	return s.threshold
}

// BestSplit walks word down t and returns the best cut point. Index is the
// rune index of the last stem rune, or domain.NoSplit.
func (s *Scorer) BestSplit(t *Trie, word string) domain.SplitCandidate {
	best := domain.NoCandidate()
	n := t.root
	i := 0
	for _, r := range word {
		c, ok := n.children[r]
		if !ok {
			break
		}
		n = c
		if score, ok := s.ScoreNode(n); ok && s.better(score, i, best) {
			best = domain.SplitCandidate{Index: i, Score: score, Support: n.count}
		}
		i++
	}
	return best
}

// ScoreNode returns frac*branching for n, where frac is the share of words
// through n that do not follow its dominant child. The flag is false when n
// cannot host a split.
func (s *Scorer) ScoreNode(n *Node) (float64, bool) {
	branching := len(n.children)
	if branching < s.threshold {
		return 0, false
	}
	if n.count <= 0 {
		return 0, false
	}
	frac := 1.0 - float64(n.MaxChildCount())/float64(n.count)
	return frac * float64(branching), true
}

func (s *Scorer) better(score float64, i int, best domain.SplitCandidate) bool {
	if score > best.Score+Epsilon {
		return true
	}
	if math.Abs(score-best.Score) >= Epsilon {
		return false
	}
	if s.policy == PreferEarlier {
		return !best.Found()
	}
	return i > best.Index
}
