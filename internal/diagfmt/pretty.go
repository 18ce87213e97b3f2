package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"axoproject/internal/diag"
	"axoproject/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, dim *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgMagenta, color.Bold),
		dim:    color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes diagnostics in a human-readable form:
//
//	error[PRJ2001]: couldn't read Cargo.toml
//	  --> Cargo.toml:3:11
//	   |
//	 3 | version = = 1
//	   |           ^ expected value
//	  = help: ...
//	  caused by: ...
//
// Items are printed in bag order; call bag.Sort() first for a stable order.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	pr := &prettyPrinter{w: w, opts: opts, pal: newPalette(opts.Color)}
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		pr.diagnostic(d, "")
	}
}

// PrettyOne writes a single diagnostic.
func PrettyOne(w io.Writer, d diag.Diagnostic, opts PrettyOpts) {
	pr := &prettyPrinter{w: w, opts: opts, pal: newPalette(opts.Color)}
	pr.diagnostic(d, "")
}

type prettyPrinter struct {
	w    io.Writer
	opts PrettyOpts
	pal  palette
}

func (p *prettyPrinter) diagnostic(d diag.Diagnostic, indent string) {
	sev := p.pal.severity(d.Severity)
	lines := strings.Split(d.Message, "\n")
	fmt.Fprintf(p.w, "%s%s%s: %s\n", indent,
		sev.Sprint(d.Severity.Label()),
		p.pal.code.Sprintf("[%s]", d.Code.ID()),
		lines[0])
	for _, l := range lines[1:] {
		fmt.Fprintf(p.w, "%s  %s\n", indent, l)
	}

	if d.Source != nil && d.Source.File != nil {
		p.snippet(d.Source, indent)
	}
	if d.Help != "" {
		p.help(d.Help, indent)
	}
	for c := d.Cause; c != nil; c = c.Cause {
		clines := strings.Split(c.Message, "\n")
		fmt.Fprintf(p.w, "%s  %s %s\n", indent, p.pal.dim.Sprint("caused by:"), clines[0])
		for _, l := range clines[1:] {
			fmt.Fprintf(p.w, "%s             %s\n", indent, l)
		}
		if c.Source != nil && c.Source.File != nil {
			p.snippet(c.Source, indent+"  ")
		}
		if c.Help != "" {
			p.help(c.Help, indent+"  ")
		}
	}
	if len(d.Related) > 0 {
		fmt.Fprintf(p.w, "%s  %s\n", indent, p.pal.dim.Sprint("related:"))
		for _, r := range d.Related {
			p.diagnostic(r, indent+"    ")
		}
	}
}

func (p *prettyPrinter) snippet(sn *diag.Snippet, indent string) {
	f := sn.File
	span := sn.Span.Clamp(f.Size())
	start, end := f.Resolve(span)

	first := start.Line
	if ctx := uint32(p.opts.Context); first > ctx {
		first -= ctx
	} else {
		first = 1
	}
	last := start.Line + uint32(p.opts.Context)
	if total := uint32(len(f.LineIdx)) + 1; last > total {
		last = total
	}
	gw := len(fmt.Sprint(last))
	pad := strings.Repeat(" ", gw)

	fmt.Fprintf(p.w, "%s%s--> %s:%d:%d\n", indent, pad, p.opts.PathMode.format(f, p.opts.BaseDir), start.Line, start.Col)
	fmt.Fprintf(p.w, "%s%s %s\n", indent, pad, p.pal.gutter.Sprint("|"))
	for n := first; n <= last; n++ {
		text := f.GetLine(n)
		fmt.Fprintf(p.w, "%s%s %s %s\n", indent, p.pal.gutter.Sprintf("%*d", gw, n), p.pal.gutter.Sprint("|"), text)
		if n != start.Line {
			continue
		}
		col, width := caretPosition(text, start, end, span.Empty())
		marker := strings.Repeat("^", width)
		if sn.Label != "" {
			marker += " " + sn.Label
		}
		fmt.Fprintf(p.w, "%s%s %s %s%s\n", indent, pad, p.pal.gutter.Sprint("|"),
			strings.Repeat(" ", col), p.pal.caret.Sprint(marker))
	}
}

// caretPosition converts byte columns on one line into display columns.
// A span running past the line is cut at the line end.
func caretPosition(line string, start, end source.LineCol, empty bool) (col, width int) {
	from := int(start.Col) - 1
	if from > len(line) {
		from = len(line)
	}
	to := len(line)
	if end.Line == start.Line {
		to = min(int(end.Col)-1, len(line))
	}
	if to < from {
		to = from
	}
	col = runewidth.StringWidth(line[:from])
	width = runewidth.StringWidth(line[from:to])
	if width == 0 || empty {
		width = 1
	}
	return col, width
}

func (p *prettyPrinter) help(text, indent string) {
	style := lipgloss.NewStyle().PaddingLeft(len(indent) + 2)
	if p.opts.Width > 0 {
		style = style.Width(p.opts.Width)
	}
	block := style.Render("= help: " + text)
	for _, l := range strings.Split(block, "\n") {
		fmt.Fprintln(p.w, strings.TrimRight(l, " "))
	}
}
