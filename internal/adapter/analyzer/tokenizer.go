package analyzer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mode selects how raw corpus text is cut into words.
type Mode string

const (
	// ModeLines treats every line as one word.
	ModeLines Mode = "lines"
	// ModeFields splits text on anything that is not a letter or digit.
	ModeFields Mode = "fields"
)

// ParseMode parses a corpus mode name.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case "", ModeLines:
		return ModeLines, true
	case ModeFields:
		return ModeFields, true
	}
	return ModeLines, false
}

// Tokenizer turns raw corpus text into words.
type Tokenizer struct {
	mode      Mode
	lower     cases.Caser
	lowercase bool
	skipBlank bool
}

// NewTokenizer creates a new Tokenizer.
func NewTokenizer(mode Mode, lowercase, skipBlank bool) *Tokenizer {
	return &Tokenizer{
		mode:      mode,
		lower:     cases.Lower(language.Und),
		lowercase: lowercase,
		skipBlank: skipBlank,
	}
}

// Tokenize splits text into words. In line mode a trailing newline does not
// produce an extra empty word.
func (t *Tokenizer) Tokenize(text string) []string {
	var words []string
	if t.mode == ModeFields {
		words = splitWords(text)
	} else {
		words = splitLines(text)
	}

	out := make([]string, 0, len(words))
	for _, w := range words {
		if t.skipBlank && strings.TrimSpace(w) == "" {
			continue
		}
		out = append(out, t.Normalize(w))
	}
	return out
}

// Normalize applies case folding when enabled.
func (t *Tokenizer) Normalize(word string) string {
	if !t.lowercase {
		return word
	}
	// cases.Caser is stateful; String resets it before use.
	return t.lower.String(word)
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// splitWords splits text into words using unicode letter/digit boundaries.
func splitWords(text string) []string {
	var words []string
	var current strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) {
			current.WriteRune(r)
		} else {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}
