package manifest

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/reqwire/reqwire/pkg/pyver"
)

var (
	ErrNoComparator = errors.New("no version comparator in directive")
	ErrBadName      = errors.New("invalid package name")
	ErrNoVersion    = errors.New("missing version after comparator")
	ErrTrailing     = errors.New("unexpected text after version")
)

var nameRe = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// ParseLine splits one directive into its dependency parts. The
// version token is taken syntactically, validity is the linter's job.
func ParseLine(text string) (*Dependency, error) {
	s := strings.TrimSpace(text)

	idx := -1
	var op pyver.Comparator

	for _, cand := range pyver.Comparators {
		pos := strings.Index(s, string(cand))
		if pos >= 0 && (idx == -1 || pos < idx) {
			idx = pos
			op = cand
		}
	}

	if idx == -1 {
		return nil, ErrNoComparator
	}

	name := s[:idx]
	if !nameRe.MatchString(name) {
		return nil, errors.Wrapf(ErrBadName, "%q", name)
	}

	rest := s[idx+len(op):]

	version := rest
	var trailing string

	if cut := strings.IndexAny(rest, " \t#"); cut >= 0 {
		version = rest[:cut]
		trailing = strings.TrimSpace(rest[cut:])
	}

	if version == "" {
		return nil, ErrNoVersion
	}

	dep := &Dependency{
		Name:       name,
		Comparator: op,
		Version:    version,
	}

	if trailing != "" {
		if trailing[0] != '#' {
			return nil, errors.Wrapf(ErrTrailing, "%q", trailing)
		}

		dep.Comment = strings.TrimSpace(trailing[1:])
	}

	return dep, nil
}

func Load(r io.Reader) (*Manifest, error) {
	var (
		m   Manifest
		cur *Section
		gap bool
		ln  int
	)

	br := bufio.NewReader(r)

	for {
		line, err := br.ReadString('\n')

		if line != "" {
			ln++

			text := strings.TrimRight(line, "\r\n")

			switch {
			case strings.TrimSpace(text) == "":
				gap = true
			case strings.HasPrefix(strings.TrimSpace(text), "#"):
				if cur == nil || gap || len(cur.Deps) > 0 {
					cur = &Section{}
					m.Sections = append(m.Sections, cur)
					gap = false
				}

				cur.Header = append(cur.Header, strings.TrimSpace(text))
			default:
				dep, perr := ParseLine(text)
				if perr != nil {
					return nil, errors.Wrapf(perr, "line %d", ln)
				}

				dep.Line = ln

				if cur == nil || (gap && len(cur.Deps) > 0) {
					cur = &Section{}
					m.Sections = append(m.Sections, cur)
				}

				gap = false
				cur.Deps = append(cur.Deps, dep)
			}
		}

		if err != nil {
			if err == io.EOF {
				break
			}

			return nil, err
		}
	}

	return &m, nil
}
