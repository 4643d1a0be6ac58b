package data

import "time"

type LockEntry struct {
	Name       string `json:"name"`
	Comparator string `json:"comparator"`

	RequestedVersion string `json:"requested_version"`
	ResolvedVersion  string `json:"resolved_version"`
}

type LockFile struct {
	CreatedAt time.Time    `json:"created_at"`
	Resolved  []*LockEntry `json:"resolved"`
}

func (l *LockFile) Lookup(name string) (*LockEntry, bool) {
	for _, ent := range l.Resolved {
		if ent.Name == name {
			return ent, true
		}
	}

	return nil, false
}
