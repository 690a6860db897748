// Package fileutil holds the file copy and write helpers behind backups,
// restores, and patched-file output. Every helper stages data in a temporary
// file in the destination directory and renames it into place, so a reader
// never sees a partially written file. A destination that is a symlink is
// written through: the link stays and the file it points to is replaced.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteFileAtomic replaces path with data. An existing file keeps its
// permission bits; a new file gets perm.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	return replaceWith(path, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// CopyAtomic copies src over dst, verifying the staged copy against the
// SHA-256 of what was read. dst takes the permission bits and modification
// time of src.
func CopyAtomic(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	var sum []byte
	stage := func(w io.Writer) error {
		h := sha256.New()
		n, err := io.Copy(io.MultiWriter(w, h), in)
		if err != nil {
			return err
		}
		if n != info.Size() {
			return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", info.Size(), n)
		}
		sum = h.Sum(nil)
		return nil
	}
	verify := func(tmpPath string) error {
		staged, err := fileSHA256(tmpPath)
		if err != nil {
			return err
		}
		if !bytes.Equal(staged, sum) {
			return fmt.Errorf("copy hash mismatch: %s changed while copying", src)
		}
		return os.Chtimes(tmpPath, info.ModTime(), info.ModTime())
	}
	return replaceWith(dst, info.Mode().Perm(), stage, verify)
}

// replaceWith stages content from write in a temp file beside path, runs the
// optional checks against it, and renames it over path. The temp file is
// removed on any failure.
func replaceWith(path string, perm os.FileMode, write func(io.Writer) error, checks ...func(tmpPath string) error) (err error) {
	if path, err = ResolveTarget(path); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err = write(tmp); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	for _, check := range checks {
		if err = check(tmpPath); err != nil {
			return err
		}
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func fileSHA256(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

// ResolveTarget returns the file a write to path lands on. Symlinks are
// followed; a path that does not exist yet is returned unchanged. A dangling
// symlink is an error so it is never silently replaced by a regular file.
func ResolveTarget(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	if info, lerr := os.Lstat(path); lerr == nil && info.Mode()&os.ModeSymlink != 0 {
		return "", fmt.Errorf("resolve %s: dangling symlink", path)
	}
	return path, nil
}
