package data

// ProjectInfo mirrors the JSON document a package index serves for
// one project.
type ProjectInfo struct {
	Info struct {
		Name    string `json:"name"`
		Version string `json:"version"`
		Summary string `json:"summary"`
	} `json:"info"`

	Releases map[string][]*ReleaseFile `json:"releases"`
}

type ReleaseFile struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	URL      string `json:"url"`
}

// ReleaseSize is the size of the largest artifact published for the
// given version, 0 when the release has no files.
func (p *ProjectInfo) ReleaseSize(version string) int64 {
	var max int64

	for _, f := range p.Releases[version] {
		if f.Size > max {
			max = f.Size
		}
	}

	return max
}
