package ops

import (
	"bytes"
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/reqwire/reqwire/pkg/sumfile"
)

type SumVerify struct {
	common
}

// Verify rehashes the given files and returns the names of those
// whose sums are missing or no longer match.
func (s *SumVerify) Verify(ctx context.Context, sumPath string, files []string) ([]string, error) {
	f, err := os.Open(sumPath)
	if err != nil {
		return nil, errors.Wrapf(err, "opening sum file %s", sumPath)
	}

	var sf sumfile.Sumfile

	err = sf.Load(f)
	f.Close()

	if err != nil {
		return nil, track(err)
	}

	var bad []string

	for _, file := range files {
		_, want, ok := sf.Lookup(file)
		if !ok {
			s.L().Warn("no recorded sum", "file", file)
			bad = append(bad, file)
			continue
		}

		got, err := sumfile.HashFile(file)
		if err != nil {
			return nil, track(err)
		}

		if !bytes.Equal(want, got) {
			s.L().Warn("sum mismatch", "file", file)
			bad = append(bad, file)
		}
	}

	return bad, nil
}
