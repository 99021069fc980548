package diag

import (
	"fmt"
)

// Code identifies a diagnostic kind. Codes are banded by pipeline stage so
// the stable string form (ANN1001 etc.) survives reordering within a band.
type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Annotation parsing (1000-1999)
	AnnInfo                  Code = 1000
	AnnMissingEnumName       Code = 1001
	AnnInvalidEnumName       Code = 1002
	AnnUnknownRepr           Code = 1003
	AnnInvalidPackage        Code = 1004
	AnnMissingVariantName    Code = 1005
	AnnInvalidVariantName    Code = 1006
	AnnVariantKindConflict   Code = 1007 // both value and range fields present
	AnnVariantKindMissing    Code = 1008 // neither value nor range fields present
	AnnMissingRangeField     Code = 1009 // start/end/format missing on a ranged variant
	AnnBadNumber             Code = 1010
	AnnUnknownFormatToken    Code = 1011
	AnnFormatNotIdentifier   Code = 1012
	AnnInvalidClassifierName Code = 1013
	AnnDecodeError           Code = 1014 // TOML syntax or type error
	AnnNoVariants            Code = 1015
	AnnUnknownKey            Code = 1016

	// Range validation (2000-2999)
	ValInfo                     Code = 2000
	ValInvalidRange             Code = 2001 // start > end
	ValOverlappingRanges        Code = 2002
	ValDiscriminatorOutOfBounds Code = 2003
	ValDuplicateVariantName     Code = 2004
	ValRangeTooLarge            Code = 2005

	// Ошибки I/O (4000-4999)
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002

	// Emission (6000-6999)
	EmitInfo        Code = 6000
	EmitFormatError Code = 6001 // generated source failed go/format
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	AnnInfo:                     "Annotation information",
	AnnMissingEnumName:          "Missing enum name",
	AnnInvalidEnumName:          "Invalid enum name",
	AnnUnknownRepr:              "Unknown backing representation",
	AnnInvalidPackage:           "Invalid package name",
	AnnMissingVariantName:       "Missing variant name",
	AnnInvalidVariantName:       "Invalid variant name",
	AnnVariantKindConflict:      "Variant declares both a value and a range",
	AnnVariantKindMissing:       "Variant declares neither a value nor a range",
	AnnMissingRangeField:        "Missing required range field",
	AnnBadNumber:                "Bad number",
	AnnUnknownFormatToken:       "Unknown format token",
	AnnFormatNotIdentifier:      "Format does not produce a valid identifier",
	AnnInvalidClassifierName:    "Invalid range_check name",
	AnnDecodeError:              "Malformed declaration file",
	AnnNoVariants:               "Enum has no variants",
	AnnUnknownKey:               "Unknown declaration key",
	ValInfo:                     "Validation information",
	ValInvalidRange:             "Invalid range",
	ValOverlappingRanges:        "Overlapping ranges",
	ValDiscriminatorOutOfBounds: "Discriminator out of bounds",
	ValDuplicateVariantName:     "Duplicate variant name",
	ValRangeTooLarge:            "Range expansion too large",
	IOLoadFileError:             "I/O load file error",
	IOWriteFileError:            "I/O write file error",
	EmitInfo:                    "Emission information",
	EmitFormatError:             "Generated source failed formatting",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("ANN%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("VAL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("EMT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
