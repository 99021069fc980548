package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"enumrange/internal/diag"
	"enumrange/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPrinter(opts)
	for _, d := range bag.Items() {
		p.diagnostic(w, fs, d)
	}
}

type printer struct {
	opts     PrettyOpts
	errColor *color.Color
	wrnColor *color.Color
	infColor *color.Color
	gutter   *color.Color
}

func newPrinter(opts PrettyOpts) *printer {
	p := &printer{
		opts:     opts,
		errColor: color.New(color.FgRed, color.Bold),
		wrnColor: color.New(color.FgYellow, color.Bold),
		infColor: color.New(color.FgCyan),
		gutter:   color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.errColor, p.wrnColor, p.infColor, p.gutter} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *printer) severity(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return p.errColor.Sprint("error")
	case diag.SevWarning:
		return p.wrnColor.Sprint("warning")
	default:
		return p.infColor.Sprint("info")
	}
}

func (p *printer) diagnostic(w io.Writer, fs *source.FileSet, d diag.Diagnostic) {
	p.header(w, fs, d.Primary, p.severity(d.Severity), d.Code.ID(), d.Message)
	p.context(w, fs, d.Primary)

	if p.opts.ShowNotes {
		for _, note := range d.Notes {
			p.header(w, fs, note.Span, p.infColor.Sprint("note"), d.Code.ID(), note.Msg)
			p.context(w, fs, note.Span)
		}
	}
}

func (p *printer) header(w io.Writer, fs *source.FileSet, span source.Span, sev, code, msg string) {
	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	path := file.FormatPath(pathModeName(p.opts.PathMode), fs.BaseDir())
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sev, code, msg)
}

// context prints the primary source line with a caret underline, plus
// opts.Context surrounding lines.
func (p *printer) context(w io.Writer, fs *source.FileSet, span source.Span) {
	if span.Empty() && span.Start == 0 {
		// Нет привязки к тексту (например, ошибки I/O).
		return
	}
	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)

	ctx := uint32(0)
	if p.opts.Context > 0 {
		ctx = uint32(p.opts.Context)
	}
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := start.Line + ctx

	for lineNum := first; lineNum <= last; lineNum++ {
		line := file.GetLine(lineNum)
		if line == "" && lineNum != start.Line {
			continue
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%5d |", lineNum), line)
		if lineNum == start.Line {
			fmt.Fprintf(w, "%s %s\n", p.gutter.Sprint("      |"), underline(start.Col, span.Len(), line))
		}
	}
}

// underline renders "^~~~" starting at col (1-based), clamped to the line.
func underline(col, length uint32, line string) string {
	if col == 0 {
		col = 1
	}
	var b strings.Builder
	for i := uint32(1); i < col; i++ {
		b.WriteByte(' ')
	}
	b.WriteByte('^')
	// The caret occupies column col, so the tail may only cover the
	// remaining columns up to the end of the line.
	maxTail := uint32(0)
	if avail := uint32(len(line)); avail > col {
		maxTail = avail - col
	}
	tail := uint32(0)
	if length > 1 {
		tail = length - 1
	}
	if tail > maxTail {
		tail = maxTail
	}
	for i := uint32(0); i < tail; i++ {
		b.WriteByte('~')
	}
	return b.String()
}

func pathModeName(mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}
