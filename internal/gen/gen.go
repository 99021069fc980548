// Package gen renders the expanded enum back into Go source: one type
// declaration, one const block with every concrete variant, and one method
// per synthesized classifier. Output is deterministic and gofmt-clean.
package gen

import (
	"fmt"
	"go/format"
	"path/filepath"
	"strings"

	"enumrange/internal/diag"
	"enumrange/internal/enumspec"
	"enumrange/internal/expand"
)

// Options configures emission of one declaration.
type Options struct {
	Reporter diag.Reporter
	SpecPath string // declaration file path, recorded in the header
}

// Source renders the generated Go file. It returns false when the rendered
// source does not survive go/format, which indicates a bug in the emitter
// rather than in the declaration.
func Source(spec *enumspec.EnumSpec, result *expand.Result, opts Options) ([]byte, bool) {
	e := &emitter{spec: spec, result: result, specPath: opts.SpecPath}
	raw := e.render()

	formatted, err := format.Source(raw)
	if err != nil {
		diag.ReportError(opts.Reporter, diag.EmitFormatError, spec.Span,
			fmt.Sprintf("generated source for enum %q failed formatting: %s", spec.Name, err)).Emit()
		return raw, false
	}
	return formatted, true
}

// OutputPath decides where the generated file goes: the declaration's
// explicit output field when present, otherwise <snake(Name)>_enum.go, both
// relative to the declaration file's directory.
func OutputPath(spec *enumspec.EnumSpec, specPath string) string {
	dir := filepath.Dir(specPath)
	name := spec.Output
	if name == "" {
		name = snakeCase(spec.Name) + "_enum.go"
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

type emitter struct {
	spec     *enumspec.EnumSpec
	result   *expand.Result
	specPath string
	buf      strings.Builder
}

func (e *emitter) render() []byte {
	e.printf("// Code generated by enumrange from %s. DO NOT EDIT.\n\n", filepath.Base(e.specPath))
	e.printf("package %s\n\n", e.spec.Package)

	e.doc("", e.spec.Doc)
	e.printf("type %s %s\n\n", e.spec.Name, e.spec.Repr.GoType())

	e.printf("const (\n")
	for i := range e.result.Variants {
		v := &e.result.Variants[i]
		e.doc("\t", v.Doc)
		e.printf("\t%s %s = %d\n", v.Name, e.spec.Name, v.Value)
	}
	e.printf(")\n")

	for i := range e.result.Classifiers {
		e.classifier(&e.result.Classifiers[i])
	}
	return []byte(e.buf.String())
}

func (e *emitter) classifier(c *enumspec.ClassifierSpec) {
	e.printf("\n// %s reports whether the discriminator of v lies in %s.\n", c.Name, describeIntervals(c.Intervals))
	e.printf("func (v %s) %s() bool {\n", e.spec.Name, c.Name)
	e.printf("\treturn %s\n", membershipExpr(c.Intervals))
	e.printf("}\n")
}

// membershipExpr renders the closed-interval union test. Intervals arrive
// sorted and disjoint from the synthesizer.
func membershipExpr(intervals []enumspec.Interval) string {
	terms := make([]string, 0, len(intervals))
	wrap := len(intervals) > 1
	for _, iv := range intervals {
		var term string
		switch {
		case iv.Start == iv.End:
			term = fmt.Sprintf("v == %d", iv.Start)
		case wrap:
			term = fmt.Sprintf("(v >= %d && v <= %d)", iv.Start, iv.End)
		default:
			term = fmt.Sprintf("v >= %d && v <= %d", iv.Start, iv.End)
		}
		terms = append(terms, term)
	}
	return strings.Join(terms, " || ")
}

func describeIntervals(intervals []enumspec.Interval) string {
	parts := make([]string, 0, len(intervals))
	for _, iv := range intervals {
		parts = append(parts, fmt.Sprintf("[%d, %d]", iv.Start, iv.End))
	}
	return strings.Join(parts, " or ")
}

// doc writes a (possibly multi-line) doc comment with the given indent.
func (e *emitter) doc(indent, text string) {
	if text == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if line == "" {
			e.printf("%s//\n", indent)
			continue
		}
		e.printf("%s// %s\n", indent, line)
	}
}

func (e *emitter) printf(format string, args ...any) {
	fmt.Fprintf(&e.buf, format, args...)
}

// snakeCase converts an exported-style identifier to snake case for the
// default output file name (PayloadType -> payload_type).
func snakeCase(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	runes := []rune(name)
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			boundary := i > 0 &&
				(runes[i-1] < 'A' || runes[i-1] > 'Z' ||
					(i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'))
			if boundary {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
