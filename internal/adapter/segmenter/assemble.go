package segmenter

import (
	"unicode/utf8"

	"morphseg/internal/domain"
)

// Assemble turns a candidate into a record for word. For the suffix model
// c.Index points into the reversed word. Splits that leave a stem shorter
// than minStemLen runes, or no affix, fall back to the no-split record.
func Assemble(kind domain.Model, word string, c domain.SplitCandidate, minStemLen int) domain.SegmentationRecord {
	if !c.Found() {
		return domain.NoSplitRecord(word)
	}

	runes := []rune(word)
	cut := c.Index + 1
	if cut > len(runes) {
		return domain.NoSplitRecord(word)
	}

	var stem, affix string
	if kind == domain.ModelSuffix {
		stem = string(runes[:len(runes)-cut])
		affix = string(runes[len(runes)-cut:])
	} else {
		stem = string(runes[:cut])
		affix = string(runes[cut:])
	}

	if utf8.RuneCountInString(stem) < minStemLen || affix == "" {
		return domain.NoSplitRecord(word)
	}

	return domain.SegmentationRecord{
		Word:    word,
		Stem:    stem,
		Affix:   affix,
		Score:   c.Score,
		Support: c.Support,
	}
}

// Reverse returns s with its runes in reverse order.
func Reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
