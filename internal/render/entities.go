package render

import (
	"sort"
	"strings"
	"unicode/utf16"

	"post2embed/internal/domain"
)

// ResolveEntities rewrites text by splicing each span's replacement markup
// over its [Start, End) range. Spans from the per-kind upstream lists are
// stable-sorted by start offset; the text between consecutive spans is
// carried over untouched.
//
// Offsets are UTF-16 code units, so the text is encoded once and sliced in
// that space. Out-of-range offsets are clamped the way the upstream data
// format tolerates them; overlapping spans are not detected, the later span
// simply continues from its own end offset.
func ResolveEntities(text string, spans []domain.EntitySpan) string {
	if len(spans) == 0 {
		return text
	}

	sorted := make([]domain.EntitySpan, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	units := utf16.Encode([]rune(text))

	var sb strings.Builder
	cursor := 0
	for _, span := range sorted {
		sb.WriteString(sliceUnits(units, cursor, span.Start))
		sb.WriteString(span.Replacement)
		cursor = span.End
	}
	sb.WriteString(sliceUnits(units, cursor, len(units)))

	return sb.String()
}

// sliceUnits returns units[a:b] as a string with Python-style slice
// clamping: indices outside the buffer or an empty/inverted range yield "".
func sliceUnits(units []uint16, a, b int) string {
	if a < 0 {
		a = 0
	}
	if b > len(units) {
		b = len(units)
	}
	if a >= b {
		return ""
	}
	return string(utf16.Decode(units[a:b]))
}
