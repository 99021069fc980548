package diag

import (
	"strings"
	"testing"

	"enumrange/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSetWithBase(".")
	id := fs.AddVirtual("payload.enum.toml", []byte("[enum]\nname = \"E\"\n"))

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     ValInvalidRange,
			Message:  "range has start 10 greater than end 5",
			Primary:  source.Span{File: id, Start: 7, End: 11},
		},
		{
			Severity: SevWarning,
			Code:     AnnUnknownKey,
			Message:  "unknown declaration key \"colour\"",
			Primary:  source.Span{File: id, Start: 0, End: 6},
		},
	}

	got := FormatShortDiagnostics(diags, fs, false)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), got)
	}

	// Entries are sorted by position, so the warning on line 1 comes first.
	if !strings.HasPrefix(lines[0], "warning ANN1016 payload.enum.toml:1:1") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "error VAL2001 payload.enum.toml:2:1") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestFormatShortDiagnostics_Notes(t *testing.T) {
	fs := source.NewFileSetWithBase(".")
	id := fs.AddVirtual("d.enum.toml", []byte("a\nb\n"))

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     ValOverlappingRanges,
			Message:  "ranges collide",
			Primary:  source.Span{File: id, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: id, Start: 2, End: 3}, Msg: "second declared here"},
			},
		},
	}

	without := FormatShortDiagnostics(diags, fs, false)
	if strings.Contains(without, "note") {
		t.Errorf("notes leaked into plain output:\n%s", without)
	}

	with := FormatShortDiagnostics(diags, fs, true)
	if !strings.Contains(with, "note VAL2002 d.enum.toml:2:1 second declared here") {
		t.Errorf("missing note line:\n%s", with)
	}
}

func TestFormatShortDiagnostics_Empty(t *testing.T) {
	fs := source.NewFileSet()
	if got := FormatShortDiagnostics(nil, fs, false); got != "" {
		t.Errorf("got %q, want empty", got)
	}
	if got := FormatShortDiagnostics([]Diagnostic{{Code: ValInfo}}, nil, false); got != "" {
		t.Errorf("nil fileset must render nothing, got %q", got)
	}
}

func TestSanitizeMessage(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"plain", "plain"},
		{"multi\nline", "multi line"},
		{"crlf\r\nline", "crlf line"},
		{"  padded  ", "padded"},
	}
	for _, tt := range tests {
		if got := sanitizeMessage(tt.in); got != tt.expected {
			t.Errorf("sanitizeMessage(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}
