package manifest

import (
	"regexp"
	"strings"

	"github.com/reqwire/reqwire/pkg/pyver"
)

// Dependency is one directive line: a package name, a version
// comparator, a version floor, and an optional trailing comment.
type Dependency struct {
	Name       string
	Comparator pyver.Comparator
	Version    string
	Comment    string

	// Line is the 1-based line the directive was read from, 0 for
	// entries built in memory.
	Line int
}

func (d *Dependency) String() string {
	return d.Name + string(d.Comparator) + d.Version
}

func (d *Dependency) Requirement() pyver.Requirement {
	return pyver.Requirement{Op: d.Comparator, Version: d.Version}
}

// Section groups the dependencies that follow a run of comment lines.
type Section struct {
	Header []string
	Deps   []*Dependency
}

type Manifest struct {
	Sections []*Section
}

var separators = regexp.MustCompile(`[-_.]+`)

// NormalizeName maps a package name to the form indexes compare by:
// lowercased, with runs of '-', '_' and '.' collapsed to a single '-'.
func NormalizeName(name string) string {
	return separators.ReplaceAllString(strings.ToLower(name), "-")
}

func (m *Manifest) Dependencies() []*Dependency {
	var deps []*Dependency

	for _, sec := range m.Sections {
		deps = append(deps, sec.Deps...)
	}

	return deps
}

func (m *Manifest) Lookup(name string) (*Dependency, bool) {
	norm := NormalizeName(name)

	for _, sec := range m.Sections {
		for _, dep := range sec.Deps {
			if NormalizeName(dep.Name) == norm {
				return dep, true
			}
		}
	}

	return nil, false
}

// Add replaces the existing entry for the dependency's name, or
// appends it to the section whose header mentions section. With no
// match the last populated section is used, creating one if the
// manifest is empty.
func (m *Manifest) Add(dep *Dependency, section string) {
	if cur, ok := m.Lookup(dep.Name); ok {
		cur.Name = dep.Name
		cur.Comparator = dep.Comparator
		cur.Version = dep.Version

		if dep.Comment != "" {
			cur.Comment = dep.Comment
		}

		return
	}

	target := m.findSection(section)
	if target == nil {
		target = &Section{}
		m.Sections = append(m.Sections, target)
	}

	target.Deps = append(target.Deps, dep)
}

func (m *Manifest) findSection(section string) *Section {
	if section != "" {
		needle := strings.ToLower(section)

		for _, sec := range m.Sections {
			for _, h := range sec.Header {
				if strings.Contains(strings.ToLower(h), needle) {
					return sec
				}
			}
		}
	}

	for i := len(m.Sections) - 1; i >= 0; i-- {
		if len(m.Sections[i].Deps) > 0 {
			return m.Sections[i]
		}
	}

	if len(m.Sections) > 0 {
		return m.Sections[len(m.Sections)-1]
	}

	return nil
}

func (m *Manifest) Remove(name string) bool {
	norm := NormalizeName(name)

	for _, sec := range m.Sections {
		for i, dep := range sec.Deps {
			if NormalizeName(dep.Name) == norm {
				sec.Deps = append(sec.Deps[:i], sec.Deps[i+1:]...)
				return true
			}
		}
	}

	return false
}
