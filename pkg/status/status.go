package status

import (
	"fmt"
	"io"

	"github.com/mattn/go-isatty"
	"github.com/morikuni/aec"
	"github.com/reqwire/reqwire/pkg/lint"
)

// Printer renders lint diagnostics, coloring severities when the
// destination is a terminal.
type Printer struct {
	Output io.Writer
	Color  bool
}

func NewPrinter(w io.Writer) *Printer {
	p := &Printer{Output: w}

	if f, ok := w.(interface{ Fd() uintptr }); ok {
		p.Color = isatty.IsTerminal(f.Fd())
	}

	return p
}

func (p *Printer) severity(s lint.Severity) string {
	if !p.Color {
		return s.String()
	}

	switch s {
	case lint.Error:
		return aec.RedF.Apply(s.String())
	default:
		return aec.YellowF.Apply(s.String())
	}
}

func (p *Printer) Diagnostic(path string, d lint.Diagnostic) {
	fmt.Fprintf(p.Output, "%s:%d: %s: %s (%s)\n", path, d.Line, p.severity(d.Severity), d.Message, d.Code)
}

func (p *Printer) Summary(path string, diags []lint.Diagnostic) {
	var errs, warns int

	for _, d := range diags {
		if d.Severity == lint.Error {
			errs++
		} else {
			warns++
		}
	}

	if errs == 0 && warns == 0 {
		fmt.Fprintf(p.Output, "%s: ok\n", path)
		return
	}

	fmt.Fprintf(p.Output, "%s: %d error(s), %d warning(s)\n", path, errs, warns)
}
