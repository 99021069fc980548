// Package expand turns a validated enum declaration into the concrete
// variant list and the classifier functions derived from it. Expansion is a
// pure function of the declaration: running it twice yields byte-identical
// names and discriminators.
package expand

import (
	"fmt"

	"fortio.org/safecast"

	"enumrange/internal/diag"
	"enumrange/internal/enumspec"
	"enumrange/internal/parse"
)

// maxExpanded bounds the total number of concrete variants one declaration
// may produce. Registry-style ranges are a few thousand entries; anything
// past this limit is a declaration mistake, not a use case.
const maxExpanded = 1 << 20

// Options configures expansion of one declaration.
type Options struct {
	Reporter diag.Reporter
}

// Result carries the expansion artifacts consumed by the emitter.
type Result struct {
	Variants    []enumspec.ExpandedVariant
	Classifiers []enumspec.ClassifierSpec
}

// Enum expands every ranged variant of spec over its closed range, keeping
// fixed variants in their declared positions, and synthesizes the classifier
// set. It returns false when expansion produced error diagnostics.
func Enum(spec *enumspec.EnumSpec, opts Options) (*Result, bool) {
	total := uint64(0)
	for i := range spec.Variants {
		total += spec.Variants[i].Count()
	}
	if total > maxExpanded {
		diag.ReportError(opts.Reporter, diag.ValRangeTooLarge, spec.Span,
			fmt.Sprintf("enum %q expands to %d variants, the limit is %d", spec.Name, total, maxExpanded)).Emit()
		return nil, false
	}
	capacity, err := safecast.Conv[int](total)
	if err != nil {
		panic(fmt.Errorf("expansion count overflow: %w", err))
	}

	ok := true
	result := &Result{Variants: make([]enumspec.ExpandedVariant, 0, capacity)}
	firstByName := make(map[string]*enumspec.VariantSpec, capacity)

	appendVariant := func(name string, value uint64, origin *enumspec.VariantSpec) {
		if prev, dup := firstByName[name]; dup {
			diag.ReportError(opts.Reporter, diag.ValDuplicateVariantName, origin.Span,
				fmt.Sprintf("variant name %q generated by %q collides with a name from %q", name, origin.Name, prev.Name)).
				WithNote(prev.Span, fmt.Sprintf("%q declared here", prev.Name)).
				Emit()
			ok = false
			return
		}
		firstByName[name] = origin
		result.Variants = append(result.Variants, enumspec.ExpandedVariant{
			Name:   name,
			Value:  value,
			Doc:    origin.Doc,
			Origin: origin,
		})
	}

	for i := range spec.Variants {
		variant := &spec.Variants[i]
		if variant.Kind == enumspec.VariantFixed {
			appendVariant(variant.Name, variant.Value, variant)
			continue
		}

		tmpl, err := parse.ParseTemplate(variant.Format)
		if err != nil {
			// The parser already rejected bad templates; reaching this
			// means the spec was built by hand with an invalid format.
			diag.ReportError(opts.Reporter, diag.AnnUnknownFormatToken, variant.Span,
				fmt.Sprintf("invalid format %q for variant %q: %s", variant.Format, variant.Name, err)).Emit()
			ok = false
			continue
		}

		for value := variant.Start; ; value++ {
			appendVariant(tmpl.Render(value, value-variant.Start), value, variant)
			if value == variant.End {
				break
			}
		}
	}

	result.Classifiers = Classifiers(spec)
	return result, ok
}
