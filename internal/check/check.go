// Package check validates a parsed enum declaration before expansion: range
// bounds must be ordered, every discriminator must fit the backing
// representation, and no two variants may claim the same discriminator.
// Declarations are small, so the overlap check is a straightforward pairwise
// pass over all variants.
package check

import (
	"fmt"

	"enumrange/internal/diag"
	"enumrange/internal/enumspec"
)

// Options configures validation of one declaration.
type Options struct {
	Reporter diag.Reporter
}

// Enum validates spec and reports every problem it finds. It returns true
// when the declaration is clean. The spec itself is never modified.
func Enum(spec *enumspec.EnumSpec, opts Options) bool {
	v := &validator{reporter: opts.Reporter, spec: spec, clean: true}
	v.checkBounds()
	v.checkOverlaps()
	return v.clean
}

type validator struct {
	reporter diag.Reporter
	spec     *enumspec.EnumSpec
	clean    bool
}

func (v *validator) errorf(code diag.Code, variant *enumspec.VariantSpec, format string, args ...any) *diag.ReportBuilder {
	v.clean = false
	return diag.ReportError(v.reporter, code, variant.Span, fmt.Sprintf(format, args...))
}

// checkBounds verifies per-variant invariants: start <= end and every
// discriminator representable in the backing width.
func (v *validator) checkBounds() {
	maxValue := v.spec.Repr.Max()

	for i := range v.spec.Variants {
		variant := &v.spec.Variants[i]
		switch variant.Kind {
		case enumspec.VariantFixed:
			if variant.Value > maxValue {
				v.errorf(diag.ValDiscriminatorOutOfBounds, variant,
					"discriminator %d of variant %q exceeds %s maximum %d",
					variant.Value, variant.Name, v.spec.Repr, maxValue).Emit()
			}
		case enumspec.VariantRanged:
			if variant.Start > variant.End {
				v.errorf(diag.ValInvalidRange, variant,
					"range of variant %q has start %d greater than end %d",
					variant.Name, variant.Start, variant.End).Emit()
				continue
			}
			if variant.End > maxValue {
				v.errorf(diag.ValDiscriminatorOutOfBounds, variant,
					"range [%d, %d] of variant %q exceeds %s maximum %d",
					variant.Start, variant.End, variant.Name, v.spec.Repr, maxValue).Emit()
			}
		}
	}
}

// checkOverlaps reports every pair of variants claiming a common
// discriminator. The report carries the first colliding discriminator and
// names both contributors; there is no precedence between them.
func (v *validator) checkOverlaps() {
	variants := v.spec.Variants
	for i := range variants {
		for j := i + 1; j < len(variants); j++ {
			a, b := &variants[i], &variants[j]
			value, ok := firstCommon(a, b)
			if !ok {
				continue
			}
			v.errorf(diag.ValOverlappingRanges, a,
				"%s and %s both claim discriminator %d",
				describe(a), describe(b), value).
				WithNote(b.Span, fmt.Sprintf("%s declared here", describe(b))).
				Emit()
		}
	}
}

// firstCommon returns the smallest discriminator claimed by both variants.
// Invalid ranges (start > end) never intersect anything; they are already
// reported by checkBounds.
func firstCommon(a, b *enumspec.VariantSpec) (uint64, bool) {
	aLo, aHi, ok := bounds(a)
	if !ok {
		return 0, false
	}
	bLo, bHi, ok := bounds(b)
	if !ok {
		return 0, false
	}
	lo := max(aLo, bLo)
	hi := min(aHi, bHi)
	if lo > hi {
		return 0, false
	}
	return lo, true
}

func bounds(v *enumspec.VariantSpec) (lo, hi uint64, ok bool) {
	if v.Kind == enumspec.VariantFixed {
		return v.Value, v.Value, true
	}
	if v.Start > v.End {
		return 0, 0, false
	}
	return v.Start, v.End, true
}

func describe(v *enumspec.VariantSpec) string {
	if v.Kind == enumspec.VariantFixed {
		return fmt.Sprintf("variant %q", v.Name)
	}
	return fmt.Sprintf("range %q [%d, %d]", v.Name, v.Start, v.End)
}
