// Package fileutil holds file permission constants and guarded writes for
// emitted documents.
package fileutil

import (
	"fmt"
	"os"
)

// OwnerReadWrite is the file permission mode for emitted documents, which may
// contain sensitive API details (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// DirMode is the permission mode for created output directories.
const DirMode os.FileMode = 0o755

// RejectSymlink returns an error if path exists and is a symbolic link.
// A path that does not exist yet is safe to write.
func RejectSymlink(path string) error {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("fileutil: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("fileutil: refusing to write to symlink: %s", path)
	}
	return nil
}

// WriteFile writes data to path after refusing symlinks, then forces mode
// even when the file already existed with looser permissions.
func WriteFile(path string, data []byte, mode os.FileMode) error {
	if err := RejectSymlink(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return err
	}
	return os.Chmod(path, mode)
}
