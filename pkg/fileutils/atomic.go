package fileutils

import (
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

// WriteFileAtomic writes data to a temp file in the target directory
// and renames it into place, so readers never observe a partial
// manifest or lock file.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-")
	if err != nil {
		return err
	}

	tmp := f.Name()

	defer func() {
		if tmp != "" {
			os.Remove(tmp)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}

	if err := f.Chmod(mode); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	hclog.L().Debug("atomic write", "path", path, "bytes", len(data))

	if err := os.Rename(tmp, path); err != nil {
		return err
	}

	tmp = ""

	return nil
}
