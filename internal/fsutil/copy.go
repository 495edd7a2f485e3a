// Package fsutil provides filesystem copy helpers with the
// overwrite-or-skip semantics used by the pruning pipeline.
package fsutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// CopyFile copies a regular file, preserving its mode. Parent directories
// of dst are created as needed.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return fmt.Errorf("creating directory %s: %w", filepath.Dir(dst), err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()

		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}

	return nil
}

// CopyTree recursively copies a directory. dst must not already exist.
func CopyTree(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		target := filepath.Join(dst, rel)

		if info.IsDir() {
			if err := os.MkdirAll(target, info.Mode().Perm()|0o700); err != nil {
				return fmt.Errorf("creating directory %s: %w", target, err)
			}

			return nil
		}

		return CopyFile(path, target)
	})
}

// SafeCopy copies a file or directory with overwrite protection.
//
// Under overwrite, an existing destination directory is removed and
// recreated and an existing destination file replaced. Otherwise an
// existing destination is left untouched with a warning. A missing
// source is a warning, not an error; the caller's run continues.
func SafeCopy(logger *slog.Logger, src, dst string, overwrite bool) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		logger.Warn("source missing, skipping copy", slog.String("path", src))

		return nil
	}

	if !overwrite {
		if _, err := os.Stat(dst); err == nil {
			logger.Warn("destination exists, skipping copy", slog.String("path", dst))

			return nil
		}
	}

	if srcInfo.IsDir() {
		if overwrite {
			if err := os.RemoveAll(dst); err != nil {
				return fmt.Errorf("removing %s: %w", dst, err)
			}
		}

		return CopyTree(src, dst)
	}

	return CopyFile(src, dst)
}
