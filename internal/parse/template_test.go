package parse

import (
	"errors"
	"testing"
)

func TestParseTemplate_Render(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		value    uint64
		index    uint64
		expected string
	}{
		{
			name:     "value token",
			raw:      "Unassigned{value}",
			value:    42,
			index:    35,
			expected: "Unassigned42",
		},
		{
			name:     "index token",
			raw:      "Experimental{index}",
			value:    251,
			index:    0,
			expected: "Experimental0",
		},
		{
			name:     "both tokens",
			raw:      "Experimental{index}_{value}",
			value:    251,
			index:    0,
			expected: "Experimental0_251",
		},
		{
			name:     "no tokens",
			raw:      "Reserved",
			value:    7,
			index:    3,
			expected: "Reserved",
		},
		{
			name:     "token at start",
			raw:      "{value}Suffix",
			value:    9,
			index:    0,
			expected: "9Suffix",
		},
		{
			name:     "repeated token",
			raw:      "V{value}_{value}",
			value:    3,
			index:    1,
			expected: "V3_3",
		},
		{
			name:     "empty template",
			raw:      "",
			value:    1,
			index:    1,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := ParseTemplate(tt.raw)
			if err != nil {
				t.Fatalf("ParseTemplate(%q) failed: %v", tt.raw, err)
			}
			got := tmpl.Render(tt.value, tt.index)
			if got != tt.expected {
				t.Errorf("Render(%d, %d) = %q, want %q", tt.value, tt.index, got, tt.expected)
			}
		})
	}
}

func TestParseTemplate_Errors(t *testing.T) {
	t.Run("unknown token", func(t *testing.T) {
		_, err := ParseTemplate("Name{offset}")
		var unknownErr *UnknownTokenError
		if !errors.As(err, &unknownErr) {
			t.Fatalf("expected UnknownTokenError, got %v", err)
		}
		if unknownErr.Token != "offset" {
			t.Errorf("Token = %q, want %q", unknownErr.Token, "offset")
		}
	})

	t.Run("unterminated token", func(t *testing.T) {
		_, err := ParseTemplate("Name{value")
		var untermErr *UnterminatedTokenError
		if !errors.As(err, &untermErr) {
			t.Fatalf("expected UnterminatedTokenError, got %v", err)
		}
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := ParseTemplate("Name{}")
		var unknownErr *UnknownTokenError
		if !errors.As(err, &unknownErr) {
			t.Fatalf("expected UnknownTokenError, got %v", err)
		}
	})
}

func TestTemplate_TokenQueries(t *testing.T) {
	tests := []struct {
		raw      string
		hasValue bool
		hasIndex bool
	}{
		{"Unassigned{value}", true, false},
		{"Experimental{index}", false, true},
		{"Both{index}_{value}", true, true},
		{"Neither", false, false},
	}

	for _, tt := range tests {
		tmpl, err := ParseTemplate(tt.raw)
		if err != nil {
			t.Fatalf("ParseTemplate(%q) failed: %v", tt.raw, err)
		}
		if got := tmpl.HasValue(); got != tt.hasValue {
			t.Errorf("HasValue(%q) = %v, want %v", tt.raw, got, tt.hasValue)
		}
		if got := tmpl.HasIndex(); got != tt.hasIndex {
			t.Errorf("HasIndex(%q) = %v, want %v", tt.raw, got, tt.hasIndex)
		}
	}
}

func TestTemplate_ProducesIdentifier(t *testing.T) {
	tests := []struct {
		raw      string
		expected bool
	}{
		{"Unassigned{value}", true},
		{"_reserved{index}", true},
		{"{value}Tail", false},  // substituted digit lands at position 0
		{"Has Space{value}", false},
		{"Dash-{value}", false},
		{"", false},
	}

	for _, tt := range tests {
		tmpl, err := ParseTemplate(tt.raw)
		if err != nil {
			t.Fatalf("ParseTemplate(%q) failed: %v", tt.raw, err)
		}
		if got := tmpl.ProducesIdentifier(); got != tt.expected {
			t.Errorf("ProducesIdentifier(%q) = %v, want %v", tt.raw, got, tt.expected)
		}
	}
}

func TestTemplate_RenderDeterminism(t *testing.T) {
	tmpl, err := ParseTemplate("Slot{value}_{index}")
	if err != nil {
		t.Fatalf("ParseTemplate failed: %v", err)
	}
	first := tmpl.Render(100, 50)
	for n := 0; n < 10; n++ {
		if got := tmpl.Render(100, 50); got != first {
			t.Fatalf("Render not deterministic: %q vs %q", got, first)
		}
	}
}
