package sink

import (
	"strconv"
	"strings"

	"morphseg/internal/domain"
)

// FormatRecord renders one record as an output line (without newline):
//
//	word=stem+affix  # score=<score> support=<support>
//	word=word+  # nosplit
func FormatRecord(r domain.SegmentationRecord) string {
	var b strings.Builder
	b.WriteString(r.Word)
	b.WriteByte('=')
	if !r.IsSplit() {
		b.WriteString(r.Word)
		b.WriteString("+  # nosplit")
		return b.String()
	}
	b.WriteString(r.Stem)
	b.WriteByte('+')
	b.WriteString(r.Affix)
	b.WriteString("  # score=")
	b.WriteString(FormatScore(r.Score))
	b.WriteString(" support=")
	b.WriteString(strconv.Itoa(r.Support))
	return b.String()
}

// FormatScore prints a score with six significant digits, dropping
// trailing zeros.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'g', 6, 64)
}
