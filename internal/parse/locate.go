package parse

import (
	"strings"

	"enumrange/internal/source"
)

// tableSpans recovers declaration spans from the raw file bytes: the span of
// the [enum] header and, in declaration order, the span of every
// [[enum.variant]] table header. TOML decoding does not report positions for
// successfully decoded keys, so diagnostics anchor on these header lines.
func tableSpans(file *source.File) (enum source.Span, variants []source.Span) {
	content := file.Content
	lineStart := uint32(0)
	enum = source.At(file.ID, 0, 0)

	flush := func(start, end uint32) {
		line := string(content[start:end])
		stripped := strings.Map(func(r rune) rune {
			if r == ' ' || r == '\t' {
				return -1
			}
			return r
		}, line)
		switch stripped {
		case "[enum]":
			enum = source.At(file.ID, start, end)
		case "[[enum.variant]]":
			variants = append(variants, source.At(file.ID, start, end))
		}
	}

	for i := uint32(0); i < uint32(len(content)); i++ {
		if content[i] == '\n' {
			flush(lineStart, i)
			lineStart = i + 1
		}
	}
	if lineStart < uint32(len(content)) {
		flush(lineStart, uint32(len(content)))
	}
	return enum, variants
}

// variantSpan picks the span for the i-th declared variant, falling back to
// the enum header when the header scan found fewer tables than the decoder.
func variantSpan(enum source.Span, variants []source.Span, i int) source.Span {
	if i >= 0 && i < len(variants) {
		return variants[i]
	}
	return enum
}
