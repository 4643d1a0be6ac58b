package lint

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/reqwire/reqwire/pkg/manifest"
	"github.com/reqwire/reqwire/pkg/pyver"
)

type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}

	return "warning"
}

const (
	CodeDirective = "directive"
	CodeName      = "name"
	CodeVersion   = "version"
	CodeDuplicate = "duplicate"
	CodeUnpinned  = "unpinned"
)

type Diagnostic struct {
	Line     int
	Severity Severity
	Code     string
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d: %s: %s (%s)", d.Line, d.Severity, d.Message, d.Code)
}

// Checker verifies the well-formedness of a manifest: every directive
// parses, version tokens are valid, and no package appears twice.
type Checker struct {
	// Strict additionally flags directives that leave the version
	// floating instead of pinning it exactly.
	Strict bool
}

func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == Error {
			return true
		}
	}

	return false
}

// CheckReader lints raw manifest text, reporting every problem it
// finds rather than stopping at the first malformed line.
func (c *Checker) CheckReader(r io.Reader) ([]Diagnostic, error) {
	var (
		diags []Diagnostic
		seen  = map[string]int{}
		ln    int
	)

	sc := bufio.NewScanner(r)

	for sc.Scan() {
		ln++

		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		dep, err := manifest.ParseLine(text)
		if err != nil {
			diags = append(diags, parseDiagnostic(ln, err))
			continue
		}

		diags = append(diags, c.checkDep(dep, ln, seen)...)
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	return diags, nil
}

func (c *Checker) Check(m *manifest.Manifest) []Diagnostic {
	var diags []Diagnostic

	seen := map[string]int{}

	for _, dep := range m.Dependencies() {
		diags = append(diags, c.checkDep(dep, dep.Line, seen)...)
	}

	return diags
}

func (c *Checker) checkDep(dep *manifest.Dependency, ln int, seen map[string]int) []Diagnostic {
	var diags []Diagnostic

	if _, err := pyver.ParseVersion(dep.Version); err != nil {
		diags = append(diags, Diagnostic{
			Line:     ln,
			Severity: Error,
			Code:     CodeVersion,
			Message:  fmt.Sprintf("invalid version token %q for %s", dep.Version, dep.Name),
		})
	}

	norm := manifest.NormalizeName(dep.Name)

	if dep.Name != norm {
		diags = append(diags, Diagnostic{
			Line:     ln,
			Severity: Warning,
			Code:     CodeName,
			Message:  fmt.Sprintf("name %s is not normalized, expected %s", dep.Name, norm),
		})
	}

	if first, ok := seen[norm]; ok {
		diags = append(diags, Diagnostic{
			Line:     ln,
			Severity: Error,
			Code:     CodeDuplicate,
			Message:  fmt.Sprintf("duplicate package %s, first declared on line %d", dep.Name, first),
		})
	} else {
		seen[norm] = ln
	}

	if c.Strict && dep.Comparator != pyver.OpEq {
		diags = append(diags, Diagnostic{
			Line:     ln,
			Severity: Warning,
			Code:     CodeUnpinned,
			Message:  fmt.Sprintf("%s is not pinned to an exact version", dep.Name),
		})
	}

	return diags
}

func parseDiagnostic(ln int, err error) Diagnostic {
	code := CodeDirective

	if errors.Is(err, manifest.ErrBadName) {
		code = CodeName
	}

	return Diagnostic{
		Line:     ln,
		Severity: Error,
		Code:     code,
		Message:  err.Error(),
	}
}
