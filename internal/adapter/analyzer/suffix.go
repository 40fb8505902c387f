package analyzer

import "strings"

// suffixRule strips suffix from words longer than minLen bytes and appends
// replacement to the remaining stem.
type suffixRule struct {
	suffix      string
	replacement string
	minLen      int
}

// Rules are tried in order; the first match wins.
var commonSuffixes = []suffixRule{
	{"ies", "y", 3},
	{"es", "", 2},
	{"s", "", 1},
	{"ing", "", 3},
	{"tion", "", 3},
}

// CommonSuffixStrip recognises a small fixed set of English inflectional
// endings without looking at any corpus statistics.
func CommonSuffixStrip(word string) (stem, suffix string, ok bool) {
	for _, rule := range commonSuffixes {
		if len(word) > rule.minLen && strings.HasSuffix(word, rule.suffix) {
			return word[:len(word)-len(rule.suffix)] + rule.replacement, rule.suffix, true
		}
	}
	return word, "", false
}
