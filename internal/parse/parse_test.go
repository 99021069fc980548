package parse

import (
	"testing"

	"enumrange/internal/diag"
	"enumrange/internal/enumspec"
	"enumrange/internal/source"
)

func parseDecl(t *testing.T, src string) (*enumspec.EnumSpec, *diag.Bag) {
	t.Helper()
	fileSet := source.NewFileSet()
	fileID := fileSet.AddVirtual("test.enum.toml", []byte(src))
	bag := diag.NewBag(100)
	spec := File(fileSet, fileID, Options{Reporter: diag.BagReporter{Bag: bag}})
	return spec, bag
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestFile_ValidDeclaration(t *testing.T) {
	spec, bag := parseDecl(t, `
[enum]
name = "PayloadType"
repr = "uint8"
package = "frames"
doc = "PayloadType identifies the payload of a frame."

[[enum.variant]]
name = "Control"
value = 0
doc = "Control frames carry no payload."

[[enum.variant]]
name = "Unassigned"
start = 7
end = 250
format = "Unassigned{value}"
range_check = "IsUnassigned"
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if spec == nil {
		t.Fatal("expected a spec")
	}
	if spec.Name != "PayloadType" {
		t.Errorf("Name = %q, want %q", spec.Name, "PayloadType")
	}
	if spec.Repr != enumspec.ReprUint8 {
		t.Errorf("Repr = %v, want ReprUint8", spec.Repr)
	}
	if spec.Package != "frames" {
		t.Errorf("Package = %q, want %q", spec.Package, "frames")
	}
	if len(spec.Variants) != 2 {
		t.Fatalf("len(Variants) = %d, want 2", len(spec.Variants))
	}

	fixed := spec.Variants[0]
	if fixed.Kind != enumspec.VariantFixed || fixed.Value != 0 {
		t.Errorf("variant 0: Kind=%v Value=%d, want fixed 0", fixed.Kind, fixed.Value)
	}
	if fixed.Doc == "" {
		t.Error("variant 0: doc was dropped")
	}

	ranged := spec.Variants[1]
	if ranged.Kind != enumspec.VariantRanged {
		t.Fatalf("variant 1: Kind=%v, want ranged", ranged.Kind)
	}
	if ranged.Start != 7 || ranged.End != 250 {
		t.Errorf("variant 1: range [%d, %d], want [7, 250]", ranged.Start, ranged.End)
	}
	if ranged.Format != "Unassigned{value}" {
		t.Errorf("variant 1: Format = %q", ranged.Format)
	}
	if len(ranged.RangeCheck) != 1 || ranged.RangeCheck[0] != "IsUnassigned" {
		t.Errorf("variant 1: RangeCheck = %v, want [IsUnassigned]", ranged.RangeCheck)
	}
}

func TestFile_RangeCheckList(t *testing.T) {
	spec, bag := parseDecl(t, `
[enum]
name = "Code"
repr = "uint16"
package = "p"

[[enum.variant]]
name = "Informational"
start = 100
end = 199
format = "Informational{index}"
range_check = ["IsInformational", "IsStandard"]
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	got := spec.Variants[0].RangeCheck
	if len(got) != 2 || got[0] != "IsInformational" || got[1] != "IsStandard" {
		t.Errorf("RangeCheck = %v", got)
	}
}

func TestFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{
			name: "missing enum name",
			src: `
[enum]
repr = "uint8"
package = "p"

[[enum.variant]]
name = "A"
value = 0
`,
			code: diag.AnnMissingEnumName,
		},
		{
			name: "invalid enum name",
			src: `
[enum]
name = "Payload Type"
repr = "uint8"
package = "p"

[[enum.variant]]
name = "A"
value = 0
`,
			code: diag.AnnInvalidEnumName,
		},
		{
			name: "unknown repr",
			src: `
[enum]
name = "E"
repr = "int3"
package = "p"

[[enum.variant]]
name = "A"
value = 0
`,
			code: diag.AnnUnknownRepr,
		},
		{
			name: "missing repr",
			src: `
[enum]
name = "E"
package = "p"

[[enum.variant]]
name = "A"
value = 0
`,
			code: diag.AnnUnknownRepr,
		},
		{
			name: "invalid package",
			src: `
[enum]
name = "E"
repr = "uint8"
package = "my pkg"

[[enum.variant]]
name = "A"
value = 0
`,
			code: diag.AnnInvalidPackage,
		},
		{
			name: "no variants",
			src: `
[enum]
name = "E"
repr = "uint8"
package = "p"
`,
			code: diag.AnnNoVariants,
		},
		{
			name: "variant without name",
			src: `
[enum]
name = "E"
repr = "uint8"
package = "p"

[[enum.variant]]
value = 0
`,
			code: diag.AnnMissingVariantName,
		},
		{
			name: "value and range on one variant",
			src: `
[enum]
name = "E"
repr = "uint8"
package = "p"

[[enum.variant]]
name = "A"
value = 0
start = 1
end = 2
format = "A{value}"
`,
			code: diag.AnnVariantKindConflict,
		},
		{
			name: "neither value nor range",
			src: `
[enum]
name = "E"
repr = "uint8"
package = "p"

[[enum.variant]]
name = "A"
`,
			code: diag.AnnVariantKindMissing,
		},
		{
			name: "ranged variant without end",
			src: `
[enum]
name = "E"
repr = "uint8"
package = "p"

[[enum.variant]]
name = "A"
start = 1
format = "A{value}"
`,
			code: diag.AnnMissingRangeField,
		},
		{
			name: "ranged variant without format",
			src: `
[enum]
name = "E"
repr = "uint8"
package = "p"

[[enum.variant]]
name = "A"
start = 1
end = 2
`,
			code: diag.AnnMissingRangeField,
		},
		{
			name: "negative value",
			src: `
[enum]
name = "E"
repr = "uint8"
package = "p"

[[enum.variant]]
name = "A"
value = -1
`,
			code: diag.AnnBadNumber,
		},
		{
			name: "negative start",
			src: `
[enum]
name = "E"
repr = "uint8"
package = "p"

[[enum.variant]]
name = "A"
start = -5
end = 2
format = "A{value}"
`,
			code: diag.AnnBadNumber,
		},
		{
			name: "unknown format token",
			src: `
[enum]
name = "E"
repr = "uint8"
package = "p"

[[enum.variant]]
name = "A"
start = 1
end = 2
format = "A{offset}"
`,
			code: diag.AnnUnknownFormatToken,
		},
		{
			name: "format not an identifier",
			src: `
[enum]
name = "E"
repr = "uint8"
package = "p"

[[enum.variant]]
name = "A"
start = 1
end = 2
format = "{value}A"
`,
			code: diag.AnnFormatNotIdentifier,
		},
		{
			name: "classifier name not an identifier",
			src: `
[enum]
name = "E"
repr = "uint8"
package = "p"

[[enum.variant]]
name = "A"
start = 1
end = 2
format = "A{value}"
range_check = "is valid"
`,
			code: diag.AnnInvalidClassifierName,
		},
		{
			name: "broken toml",
			src:  `[enum`,
			code: diag.AnnDecodeError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := parseDecl(t, tt.src)
			if !bag.HasErrors() {
				t.Fatal("expected errors")
			}
			if !hasCode(bag, tt.code) {
				t.Errorf("missing code %s in %v", tt.code.ID(), bag.Items())
			}
		})
	}
}

func TestFile_UnknownKeyWarning(t *testing.T) {
	_, bag := parseDecl(t, `
[enum]
name = "E"
repr = "uint8"
package = "p"
colour = "red"

[[enum.variant]]
name = "A"
value = 0
`)
	if bag.HasErrors() {
		t.Fatalf("unknown keys must not be fatal: %v", bag.Items())
	}
	if !hasCode(bag, diag.AnnUnknownKey) {
		t.Errorf("expected AnnUnknownKey warning, got %v", bag.Items())
	}
}

func TestFile_NormalizesIdentifiers(t *testing.T) {
	// NFD "é" (e + combining accent) must match its NFC form.
	spec, bag := parseDecl(t, "\n[enum]\nname = \"Café\"\nrepr = \"uint8\"\npackage = \"p\"\n\n[[enum.variant]]\nname = \"A\"\nvalue = 0\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if spec.Name != "Café" {
		t.Errorf("Name = %q, want NFC-normalized %q", spec.Name, "Café")
	}
}
