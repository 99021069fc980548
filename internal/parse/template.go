package parse

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"
)

// SegmentKind classifies one piece of a name-format template.
type SegmentKind uint8

const (
	// SegLiteral is verbatim template text.
	SegLiteral SegmentKind = iota
	// SegValue substitutes the absolute discriminator value.
	SegValue
	// SegIndex substitutes the zero-based offset from the range start.
	SegIndex
)

// Segment is one literal run or substitution token of a template.
type Segment struct {
	Kind SegmentKind
	Text string // literal text, empty for tokens
}

// Template is a parsed name-format template. Rendering is a pure function
// of (value, index), so expanding the same spec twice yields byte-identical
// names.
type Template struct {
	raw      string
	segments []Segment
}

const (
	tokenValue = "value"
	tokenIndex = "index"
)

// UnknownTokenError reports a {token} the template grammar does not define.
type UnknownTokenError struct {
	Token string
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("unknown format token {%s}, supported tokens are {%s} and {%s}", e.Token, tokenValue, tokenIndex)
}

// UnterminatedTokenError reports a '{' without a closing '}'.
type UnterminatedTokenError struct{}

func (e *UnterminatedTokenError) Error() string {
	return "unterminated substitution token, expected '}'"
}

// ParseTemplate scans raw into literal runs and substitution tokens.
func ParseTemplate(raw string) (Template, error) {
	t := Template{raw: raw}
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, Segment{Kind: SegLiteral, Text: lit.String()})
			lit.Reset()
		}
	}

	rest := raw
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			lit.WriteString(rest)
			break
		}
		lit.WriteString(rest[:open])
		rest = rest[open+1:]

		closing := strings.IndexByte(rest, '}')
		if closing < 0 {
			return Template{}, &UnterminatedTokenError{}
		}
		name := rest[:closing]
		rest = rest[closing+1:]

		flush()
		switch name {
		case tokenValue:
			t.segments = append(t.segments, Segment{Kind: SegValue})
		case tokenIndex:
			t.segments = append(t.segments, Segment{Kind: SegIndex})
		default:
			return Template{}, &UnknownTokenError{Token: name}
		}
	}
	flush()
	return t, nil
}

// Render substitutes value and index into the template.
func (t Template) Render(value, index uint64) string {
	var b strings.Builder
	b.Grow(len(t.raw) + 8)
	for _, seg := range t.segments {
		switch seg.Kind {
		case SegLiteral:
			b.WriteString(seg.Text)
		case SegValue:
			b.WriteString(strconv.FormatUint(value, 10))
		case SegIndex:
			b.WriteString(strconv.FormatUint(index, 10))
		}
	}
	return b.String()
}

// HasValue reports whether the template references {value}.
func (t Template) HasValue() bool {
	return t.hasKind(SegValue)
}

// HasIndex reports whether the template references {index}.
func (t Template) HasIndex() bool {
	return t.hasKind(SegIndex)
}

func (t Template) hasKind(kind SegmentKind) bool {
	for _, seg := range t.segments {
		if seg.Kind == kind {
			return true
		}
	}
	return false
}

func (t Template) String() string {
	return t.raw
}

// ProducesIdentifier reports whether every substitution of the template
// yields a valid Go identifier. Substituted digits only affect validity at
// the very first position, so probing a single rendering is sufficient.
func (t Template) ProducesIdentifier() bool {
	return token.IsIdentifier(t.Render(0, 0))
}
