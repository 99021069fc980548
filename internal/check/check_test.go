package check

import (
	"testing"

	"enumrange/internal/diag"
	"enumrange/internal/enumspec"
)

func fixed(name string, value uint64) enumspec.VariantSpec {
	return enumspec.VariantSpec{
		Kind:  enumspec.VariantFixed,
		Name:  name,
		Value: value,
	}
}

func ranged(name string, start, end uint64) enumspec.VariantSpec {
	return enumspec.VariantSpec{
		Kind:   enumspec.VariantRanged,
		Name:   name,
		Start:  start,
		End:    end,
		Format: name + "{value}",
	}
}

func validate(t *testing.T, spec *enumspec.EnumSpec) (bool, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(100)
	ok := Enum(spec, Options{Reporter: diag.BagReporter{Bag: bag}})
	return ok, bag
}

func codesOf(bag *diag.Bag) []diag.Code {
	items := bag.Items()
	codes := make([]diag.Code, 0, len(items))
	for _, d := range items {
		codes = append(codes, d.Code)
	}
	return codes
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestEnum_CleanDeclaration(t *testing.T) {
	spec := &enumspec.EnumSpec{
		Name: "PayloadType",
		Repr: enumspec.ReprUint8,
		Variants: []enumspec.VariantSpec{
			fixed("Control", 0),
			fixed("Data", 1),
			ranged("Unassigned", 7, 250),
			ranged("Experimental", 251, 254),
		},
	}
	ok, bag := validate(t, spec)
	if !ok || bag.HasErrors() {
		t.Fatalf("expected clean, got %v", bag.Items())
	}
}

func TestEnum_Bounds(t *testing.T) {
	tests := []struct {
		name     string
		repr     enumspec.Repr
		variants []enumspec.VariantSpec
		code     diag.Code
	}{
		{
			name:     "fixed value exceeds uint8",
			repr:     enumspec.ReprUint8,
			variants: []enumspec.VariantSpec{fixed("A", 256)},
			code:     diag.ValDiscriminatorOutOfBounds,
		},
		{
			name:     "range end exceeds uint8",
			repr:     enumspec.ReprUint8,
			variants: []enumspec.VariantSpec{ranged("A", 300, 310)},
			code:     diag.ValDiscriminatorOutOfBounds,
		},
		{
			name:     "start greater than end",
			repr:     enumspec.ReprUint16,
			variants: []enumspec.VariantSpec{ranged("A", 10, 5)},
			code:     diag.ValInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := &enumspec.EnumSpec{Name: "E", Repr: tt.repr, Variants: tt.variants}
			ok, bag := validate(t, spec)
			if ok {
				t.Fatal("expected validation failure")
			}
			if !hasCode(bag, tt.code) {
				t.Errorf("missing %s, got %v", tt.code.ID(), codesOf(bag))
			}
		})
	}
}

func TestEnum_BoundaryValuesAccepted(t *testing.T) {
	tests := []struct {
		name string
		repr enumspec.Repr
		v    enumspec.VariantSpec
	}{
		{"uint8 max fixed", enumspec.ReprUint8, fixed("A", 255)},
		{"uint8 max range end", enumspec.ReprUint8, ranged("A", 250, 255)},
		{"uint16 max fixed", enumspec.ReprUint16, fixed("A", 65535)},
		{"single value range", enumspec.ReprUint8, ranged("A", 9, 9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := &enumspec.EnumSpec{Name: "E", Repr: tt.repr, Variants: []enumspec.VariantSpec{tt.v}}
			ok, bag := validate(t, spec)
			if !ok {
				t.Fatalf("expected clean, got %v", bag.Items())
			}
		})
	}
}

func TestEnum_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		variants []enumspec.VariantSpec
		overlap  bool
	}{
		{
			name:     "overlapping ranges",
			variants: []enumspec.VariantSpec{ranged("A", 0, 10), ranged("B", 5, 15)},
			overlap:  true,
		},
		{
			name:     "fixed value inside range",
			variants: []enumspec.VariantSpec{fixed("A", 7), ranged("B", 0, 10)},
			overlap:  true,
		},
		{
			name:     "duplicate fixed values",
			variants: []enumspec.VariantSpec{fixed("A", 3), fixed("B", 3)},
			overlap:  true,
		},
		{
			name:     "ranges touching at one value",
			variants: []enumspec.VariantSpec{ranged("A", 0, 10), ranged("B", 10, 20)},
			overlap:  true,
		},
		{
			name:     "adjacent ranges",
			variants: []enumspec.VariantSpec{ranged("A", 0, 10), ranged("B", 11, 20)},
			overlap:  false,
		},
		{
			name:     "fixed value just outside range",
			variants: []enumspec.VariantSpec{ranged("A", 5, 10), fixed("B", 4), fixed("C", 11)},
			overlap:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := &enumspec.EnumSpec{Name: "E", Repr: enumspec.ReprUint16, Variants: tt.variants}
			ok, bag := validate(t, spec)
			if tt.overlap {
				if ok {
					t.Fatal("expected overlap diagnostics")
				}
				if !hasCode(bag, diag.ValOverlappingRanges) {
					t.Errorf("missing ValOverlappingRanges, got %v", codesOf(bag))
				}
			} else if !ok {
				t.Fatalf("expected clean, got %v", bag.Items())
			}
		})
	}
}

func TestEnum_InvalidRangeDoesNotCascade(t *testing.T) {
	// A backwards range is reported once; it must not also count as
	// overlapping everything its bounds happen to touch.
	spec := &enumspec.EnumSpec{
		Name: "E",
		Repr: enumspec.ReprUint16,
		Variants: []enumspec.VariantSpec{
			ranged("Broken", 20, 10),
			ranged("Fine", 12, 18),
		},
	}
	ok, bag := validate(t, spec)
	if ok {
		t.Fatal("expected validation failure")
	}
	if hasCode(bag, diag.ValOverlappingRanges) {
		t.Errorf("invalid range must not produce overlap reports: %v", codesOf(bag))
	}
}

func TestEnum_ReportsEveryOverlappingPair(t *testing.T) {
	spec := &enumspec.EnumSpec{
		Name: "E",
		Repr: enumspec.ReprUint16,
		Variants: []enumspec.VariantSpec{
			ranged("A", 0, 100),
			ranged("B", 10, 20),
			ranged("C", 30, 40),
		},
	}
	_, bag := validate(t, spec)
	count := 0
	for _, d := range bag.Items() {
		if d.Code == diag.ValOverlappingRanges {
			count++
		}
	}
	if count != 2 {
		t.Errorf("overlap reports = %d, want 2 (A/B and A/C)", count)
	}
}
