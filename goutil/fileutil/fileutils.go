package fileutil

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// FileExists reports whether path names a regular file (or a symlink to one)
// on fs. Directories don't count.
func FileExists(fs afero.Fs, path string) (bool, error) {
	fileinfo, err := fs.Stat(path)
	if err == nil {
		return !fileinfo.IsDir(), nil
	}

	// No such file was found:
	if os.IsNotExist(err) {
		return false, nil
	}

	// Some other error:
	return false, errors.WithStack(err)
}

// HasLoosePermissions reports whether the file at path can be read or written
// by its group or by others.
func HasLoosePermissions(fs afero.Fs, path string) (bool, error) {
	fileinfo, err := fs.Stat(path)
	if err != nil {
		return false, errors.WithStack(err)
	}
	return fileinfo.Mode().Perm()&0o066 != 0, nil
}
