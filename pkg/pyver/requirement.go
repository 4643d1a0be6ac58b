package pyver

import (
	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
)

type Comparator string

const (
	OpEq     Comparator = "=="
	OpNe     Comparator = "!="
	OpGte    Comparator = ">="
	OpLte    Comparator = "<="
	OpCompat Comparator = "~="
	OpGt     Comparator = ">"
	OpLt     Comparator = "<"
)

// Comparators lists every known comparator, the two character ones
// first so scanners can try them in order.
var Comparators = []Comparator{OpEq, OpNe, OpGte, OpLte, OpCompat, OpGt, OpLt}

var ErrBadComparator = errors.New("invalid version comparator")

func ParseComparator(s string) (Comparator, error) {
	for _, op := range Comparators {
		if s == string(op) {
			return op, nil
		}
	}

	return "", errors.Wrapf(ErrBadComparator, "%s", s)
}

type Requirement struct {
	Op      Comparator
	Version string
}

func (r Requirement) String() string {
	return string(r.Op) + r.Version
}

func (r Requirement) Match(v *semver.Version) (bool, error) {
	base, err := ParseVersion(r.Version)
	if err != nil {
		return false, err
	}

	switch r.Op {
	case OpEq:
		return v.Equal(base), nil
	case OpNe:
		return !v.Equal(base), nil
	case OpGte:
		return v.Compare(base) >= 0, nil
	case OpLte:
		return v.Compare(base) <= 0, nil
	case OpGt:
		return v.Compare(base) > 0, nil
	case OpLt:
		return v.Compare(base) < 0, nil
	case OpCompat:
		upper, err := compatUpper(r.Version, base)
		if err != nil {
			return false, err
		}

		return v.Compare(base) >= 0 && v.LessThan(upper), nil
	}

	return false, errors.Wrapf(ErrBadComparator, "%s", r.Op)
}

func (r Requirement) MatchString(s string) (bool, error) {
	v, err := ParseVersion(s)
	if err != nil {
		return false, err
	}

	return r.Match(v)
}

// compatUpper computes the exclusive upper bound of a compatible
// release clause: ~=1.4.2 allows up to 1.5.0, ~=1.4 up to 2.0.0.
func compatUpper(raw string, base *semver.Version) (*semver.Version, error) {
	switch releaseSegments(raw) {
	case 1:
		return nil, errors.Wrapf(ErrBadVersion, "~=%s needs at least two release segments", raw)
	case 2:
		return semver.New(base.Major()+1, 0, 0, "", ""), nil
	default:
		return semver.New(base.Major(), base.Minor()+1, 0, "", ""), nil
	}
}
