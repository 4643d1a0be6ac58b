package pyver

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
)

var ErrBadVersion = errors.New("invalid version token")

// ParseVersion accepts semver-like tokens, including the two and one
// segment forms ("1.0", "2") that package indexes commonly publish.
func ParseVersion(s string) (*semver.Version, error) {
	if s == "" {
		return nil, errors.Wrap(ErrBadVersion, "empty version")
	}

	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, errors.Wrapf(ErrBadVersion, "%s", s)
	}

	return v, nil
}

// releaseSegments reports how many numeric segments the token spells
// out before any prerelease or build suffix.
func releaseSegments(s string) int {
	if i := strings.IndexAny(s, "-+"); i >= 0 {
		s = s[:i]
	}

	return strings.Count(s, ".") + 1
}
