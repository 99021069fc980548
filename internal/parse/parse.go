// Package parse reads an enum declaration file (*.enum.toml) into the
// pipeline's intermediate representation. It is the first stage of the
// expansion pipeline and the only one that touches the declaration syntax;
// everything it rejects is a malformed annotation of one kind or another.
package parse

import (
	"errors"
	"fmt"
	"go/token"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
	"golang.org/x/text/unicode/norm"

	"enumrange/internal/diag"
	"enumrange/internal/enumspec"
	"enumrange/internal/source"
)

// Options configures parsing of one declaration file.
type Options struct {
	Reporter diag.Reporter
}

// nameList accepts a TOML string or array of strings, so a single classifier
// can be declared without array brackets.
type nameList []string

func (l *nameList) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case string:
		*l = nameList{x}
		return nil
	case []any:
		out := make(nameList, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("range_check entries must be strings, got %T", item)
			}
			out = append(out, s)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("range_check must be a string or an array of strings, got %T", v)
	}
}

type declVariant struct {
	Name       string   `toml:"name"`
	Doc        string   `toml:"doc"`
	Value      *int64   `toml:"value"`
	Start      *int64   `toml:"start"`
	End        *int64   `toml:"end"`
	Format     *string  `toml:"format"`
	RangeCheck nameList `toml:"range_check"`
}

type declEnum struct {
	Name     string        `toml:"name"`
	Repr     string        `toml:"repr"`
	Package  string        `toml:"package"`
	Doc      string        `toml:"doc"`
	Output   string        `toml:"output"`
	Variants []declVariant `toml:"variant"`
}

type declFile struct {
	Enum declEnum `toml:"enum"`
}

// File parses one declaration file from the FileSet into an EnumSpec.
// Problems are reported through opts.Reporter; the returned spec is nil only
// when the file could not be decoded at all. Callers must treat any
// error-severity diagnostic as fatal to this declaration.
func File(fileSet *source.FileSet, fileID source.FileID, opts Options) *enumspec.EnumSpec {
	file := fileSet.Get(fileID)
	enumSpan, varSpans := tableSpans(file)

	var decl declFile
	meta, err := toml.Decode(string(file.Content), &decl)
	if err != nil {
		diag.ReportError(opts.Reporter, diag.AnnDecodeError, decodeErrorSpan(file, err),
			"failed to decode declaration: "+err.Error()).Emit()
		return nil
	}

	for _, key := range meta.Undecoded() {
		diag.ReportWarning(opts.Reporter, diag.AnnUnknownKey, enumSpan,
			fmt.Sprintf("unknown declaration key %q", key.String())).Emit()
	}

	p := &parser{
		reporter: opts.Reporter,
		enumSpan: enumSpan,
		varSpans: varSpans,
	}
	return p.lower(&decl.Enum)
}

// decodeErrorSpan narrows a TOML decode error to the offending bytes when
// the library provides a position.
func decodeErrorSpan(file *source.File, err error) source.Span {
	var perr toml.ParseError
	if errors.As(err, &perr) && perr.Position.Start > 0 {
		start := uint32(perr.Position.Start)
		end := start + uint32(perr.Position.Len)
		if end > uint32(len(file.Content)) {
			end = uint32(len(file.Content))
		}
		if start <= end {
			return source.At(file.ID, start, end)
		}
	}
	return source.At(file.ID, 0, 0)
}

type parser struct {
	reporter diag.Reporter
	enumSpan source.Span
	varSpans []source.Span
}

func (p *parser) errorf(code diag.Code, span source.Span, format string, args ...any) {
	diag.ReportError(p.reporter, code, span, fmt.Sprintf(format, args...)).Emit()
}

func (p *parser) lower(decl *declEnum) *enumspec.EnumSpec {
	spec := &enumspec.EnumSpec{
		Doc:    decl.Doc,
		Output: decl.Output,
		Span:   p.enumSpan,
	}

	spec.Name = norm.NFC.String(decl.Name)
	switch {
	case spec.Name == "":
		p.errorf(diag.AnnMissingEnumName, p.enumSpan, "enum declaration requires a name")
	case !token.IsIdentifier(spec.Name):
		p.errorf(diag.AnnInvalidEnumName, p.enumSpan, "enum name %q is not a valid identifier", spec.Name)
	}

	spec.Repr = enumspec.ParseRepr(decl.Repr)
	if spec.Repr == enumspec.ReprInvalid {
		if decl.Repr == "" {
			p.errorf(diag.AnnUnknownRepr, p.enumSpan, "enum declaration requires a repr (uint8, uint16, uint32 or uint64)")
		} else {
			p.errorf(diag.AnnUnknownRepr, p.enumSpan, "unknown repr %q, expected uint8, uint16, uint32 or uint64", decl.Repr)
		}
	}

	spec.Package = norm.NFC.String(decl.Package)
	switch {
	case spec.Package == "":
		p.errorf(diag.AnnInvalidPackage, p.enumSpan, "enum declaration requires a package name")
	case !token.IsIdentifier(spec.Package):
		p.errorf(diag.AnnInvalidPackage, p.enumSpan, "package name %q is not a valid identifier", spec.Package)
	}

	if len(decl.Variants) == 0 {
		p.errorf(diag.AnnNoVariants, p.enumSpan, "enum %q declares no variants", spec.Name)
		return spec
	}

	spec.Variants = make([]enumspec.VariantSpec, 0, len(decl.Variants))
	for i := range decl.Variants {
		span := variantSpan(p.enumSpan, p.varSpans, i)
		if v, ok := p.lowerVariant(&decl.Variants[i], span); ok {
			spec.Variants = append(spec.Variants, v)
		}
	}
	return spec
}

func (p *parser) lowerVariant(decl *declVariant, span source.Span) (enumspec.VariantSpec, bool) {
	v := enumspec.VariantSpec{
		Name: norm.NFC.String(decl.Name),
		Doc:  decl.Doc,
		Span: span,
	}

	ok := true
	switch {
	case v.Name == "":
		p.errorf(diag.AnnMissingVariantName, span, "variant requires a name")
		ok = false
	case !token.IsIdentifier(v.Name):
		p.errorf(diag.AnnInvalidVariantName, span, "variant name %q is not a valid identifier", v.Name)
		ok = false
	}

	ranged := decl.Start != nil || decl.End != nil || decl.Format != nil || len(decl.RangeCheck) > 0
	switch {
	case decl.Value != nil && ranged:
		p.errorf(diag.AnnVariantKindConflict, span,
			"variant %q declares both an explicit value and range metadata", v.Name)
		return v, false
	case decl.Value == nil && !ranged:
		p.errorf(diag.AnnVariantKindMissing, span,
			"variant %q declares neither a value nor a range", v.Name)
		return v, false
	case decl.Value != nil:
		v.Kind = enumspec.VariantFixed
		value, numOK := p.lowerBound(span, v.Name, "value", decl.Value)
		v.Value = value
		return v, ok && numOK
	}

	v.Kind = enumspec.VariantRanged
	if decl.Start == nil {
		p.errorf(diag.AnnMissingRangeField, span, "ranged variant %q requires a start bound", v.Name)
		ok = false
	} else {
		start, numOK := p.lowerBound(span, v.Name, "start", decl.Start)
		v.Start = start
		ok = ok && numOK
	}
	if decl.End == nil {
		p.errorf(diag.AnnMissingRangeField, span, "ranged variant %q requires an end bound", v.Name)
		ok = false
	} else {
		end, numOK := p.lowerBound(span, v.Name, "end", decl.End)
		v.End = end
		ok = ok && numOK
	}

	if decl.Format == nil {
		p.errorf(diag.AnnMissingRangeField, span, "ranged variant %q requires a name format", v.Name)
		ok = false
	} else {
		v.Format = *decl.Format
		tmpl, err := ParseTemplate(v.Format)
		switch {
		case err != nil:
			p.errorf(diag.AnnUnknownFormatToken, span, "invalid format %q for variant %q: %s", v.Format, v.Name, err)
			ok = false
		case !tmpl.ProducesIdentifier():
			p.errorf(diag.AnnFormatNotIdentifier, span,
				"format %q for variant %q does not produce a valid identifier", v.Format, v.Name)
			ok = false
		}
	}

	for _, name := range decl.RangeCheck {
		normalized := norm.NFC.String(name)
		if !token.IsIdentifier(normalized) {
			p.errorf(diag.AnnInvalidClassifierName, span,
				"range_check %q on variant %q is not a valid identifier", name, v.Name)
			ok = false
			continue
		}
		v.RangeCheck = append(v.RangeCheck, normalized)
	}

	return v, ok
}

// lowerBound converts a declared integer to a discriminator, rejecting
// negatives. Width checks belong to the validator, not here.
func (p *parser) lowerBound(span source.Span, variant, field string, value *int64) (uint64, bool) {
	conv, err := safecast.Conv[uint64](*value)
	if err != nil {
		p.errorf(diag.AnnBadNumber, span, "%s of variant %q must be non-negative, got %d", field, variant, *value)
		return 0, false
	}
	return conv, true
}
