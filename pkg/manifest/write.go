package manifest

import (
	"fmt"
	"io"
	"strings"
)

// Save renders the manifest in canonical form: sections separated by
// one blank line, trailing comments aligned per section.
func (m *Manifest) Save(w io.Writer) error {
	for i, sec := range m.Sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		if err := sec.save(w); err != nil {
			return err
		}
	}

	return nil
}

func (s *Section) save(w io.Writer) error {
	for _, h := range s.Header {
		if _, err := fmt.Fprintln(w, h); err != nil {
			return err
		}
	}

	width := 0

	for _, dep := range s.Deps {
		if dep.Comment == "" {
			continue
		}

		if l := len(dep.String()); l > width {
			width = l
		}
	}

	for _, dep := range s.Deps {
		line := dep.String()

		if dep.Comment != "" {
			pad := width - len(line) + 2
			line += strings.Repeat(" ", pad) + "# " + dep.Comment
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}
