// Package enumspec holds the intermediate representation shared by the
// expansion pipeline: the parsed enum declaration, its variants and the
// artifacts produced from them. All values are immutable once built; each
// declaration file gets its own EnumSpec and nothing is shared between
// invocations.
package enumspec

import (
	"math"

	"enumrange/internal/source"
)

// Repr is the backing integer representation of an enum.
type Repr uint8

const (
	ReprInvalid Repr = iota
	ReprUint8
	ReprUint16
	ReprUint32
	ReprUint64
)

// ParseRepr maps a declaration's repr string onto a Repr.
func ParseRepr(s string) Repr {
	switch s {
	case "uint8":
		return ReprUint8
	case "uint16":
		return ReprUint16
	case "uint32":
		return ReprUint32
	case "uint64":
		return ReprUint64
	}
	return ReprInvalid
}

// GoType returns the Go type name for the emitted declaration.
func (r Repr) GoType() string {
	switch r {
	case ReprUint8:
		return "uint8"
	case ReprUint16:
		return "uint16"
	case ReprUint32:
		return "uint32"
	case ReprUint64:
		return "uint64"
	}
	return "invalid"
}

// BitSize returns the representation width in bits.
func (r Repr) BitSize() int {
	switch r {
	case ReprUint8:
		return 8
	case ReprUint16:
		return 16
	case ReprUint32:
		return 32
	case ReprUint64:
		return 64
	}
	return 0
}

// Max returns the largest discriminator the representation can hold.
func (r Repr) Max() uint64 {
	switch r {
	case ReprUint8:
		return math.MaxUint8
	case ReprUint16:
		return math.MaxUint16
	case ReprUint32:
		return math.MaxUint32
	case ReprUint64:
		return math.MaxUint64
	}
	return 0
}

func (r Repr) String() string {
	return r.GoType()
}

// VariantKind discriminates fixed and ranged variants.
type VariantKind uint8

const (
	// VariantFixed is a variant with an explicit discriminator value.
	VariantFixed VariantKind = iota
	// VariantRanged is a template variant expanded over [Start, End].
	VariantRanged
)

// VariantSpec is one entry of the declared enum. For VariantFixed only
// Name/Value/Doc are meaningful; for VariantRanged the range fields apply
// and Value is unset.
type VariantSpec struct {
	Kind VariantKind
	Name string
	Doc  string
	Span source.Span // охватывает [[enum.variant]] таблицу в декларации

	// Fixed.
	Value uint64

	// Ranged. Both bounds are inclusive.
	Start      uint64
	End        uint64
	Format     string   // template with {value} / {index} tokens
	RangeCheck []string // classifier function names, may be empty
}

// Count returns how many concrete variants this spec contributes.
// Only valid after range validation (Start <= End).
func (v *VariantSpec) Count() uint64 {
	if v.Kind == VariantFixed {
		return 1
	}
	return v.End - v.Start + 1
}

// Contains reports whether the discriminator falls inside a ranged spec.
func (v *VariantSpec) Contains(value uint64) bool {
	if v.Kind != VariantRanged {
		return v.Value == value
	}
	return value >= v.Start && value <= v.End
}

// EnumSpec is the parsed declaration of one enum.
type EnumSpec struct {
	Name     string
	Repr     Repr
	Package  string
	Doc      string
	Output   string // optional override for the generated file name
	Span     source.Span
	Variants []VariantSpec
}

// ExpandedVariant is one concrete variant of the final enum. Origin points
// back at the VariantSpec it came from; for pass-through fixed variants it
// is the fixed spec itself.
type ExpandedVariant struct {
	Name   string
	Value  uint64
	Doc    string
	Origin *VariantSpec
}

// Interval is one closed discriminator range recognised by a classifier.
type Interval struct {
	Start uint64
	End   uint64
}

// Contains reports closed-interval membership.
func (iv Interval) Contains(value uint64) bool {
	return value >= iv.Start && value <= iv.End
}

// ClassifierSpec is a synthesized membership function: true iff the
// discriminator lies in any of the (sorted, disjoint) intervals.
type ClassifierSpec struct {
	Name      string
	Intervals []Interval
}

// Contains reports whether the discriminator falls into any interval.
func (c *ClassifierSpec) Contains(value uint64) bool {
	for _, iv := range c.Intervals {
		if iv.Contains(value) {
			return true
		}
	}
	return false
}
