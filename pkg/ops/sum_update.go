package ops

import (
	"bytes"
	"context"
	"os"

	"github.com/reqwire/reqwire/pkg/fileutils"
	"github.com/reqwire/reqwire/pkg/sumfile"
)

type SumUpdate struct {
	common
}

// Update records fresh integrity hashes for the given files in the
// sum file, leaving entries for other files untouched.
func (s *SumUpdate) Update(ctx context.Context, sumPath string, files []string) error {
	var sf sumfile.Sumfile

	if f, err := os.Open(sumPath); err == nil {
		err = sf.Load(f)
		f.Close()

		if err != nil {
			return track(err)
		}
	}

	for _, file := range files {
		h, err := sumfile.HashFile(file)
		if err != nil {
			return track(err)
		}

		ref := sf.Add(file, sumfile.Algo, h)

		s.L().Debug("recorded sum", "file", file, "sum", ref)
	}

	var buf bytes.Buffer

	err := sf.Save(&buf)
	if err != nil {
		return track(err)
	}

	return fileutils.WriteFileAtomic(sumPath, buf.Bytes(), 0644)
}
