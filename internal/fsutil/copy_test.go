package fsutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCopyFile_CreatesParents(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "a.log")
	require.NoError(t, os.WriteFile(src, []byte("data\n"), 0o644))

	dst := filepath.Join(dir, "nested", "deep", "a.log")
	require.NoError(t, CopyFile(src, dst))

	out, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "data\n", string(out))
}

func TestCopyTree_Recursive(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "top.txt"), []byte("top"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "sub", "inner.txt"), []byte("inner"), 0o644))

	dst := filepath.Join(dir, "dst")
	require.NoError(t, CopyTree(src, dst))

	out, err := os.ReadFile(filepath.Join(dst, "sub", "inner.txt"))
	require.NoError(t, err)
	assert.Equal(t, "inner", string(out))
}

func TestSafeCopy_SkipsExistingWithoutOverwrite(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "src.log")
	dst := filepath.Join(dir, "dst.log")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("old"), 0o644))

	require.NoError(t, SafeCopy(discardLogger(), src, dst, false))

	out, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "old", string(out))
}

func TestSafeCopy_OverwriteReplacesFile(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "src.log")
	dst := filepath.Join(dir, "dst.log")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("old"), 0o644))

	require.NoError(t, SafeCopy(discardLogger(), src, dst, true))

	out, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(out))
}

func TestSafeCopy_OverwriteRecreatesDirectory(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "keep.txt"), []byte("keep"), 0o644))

	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.MkdirAll(dst, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dst, "stale.txt"), []byte("stale"), 0o644))

	require.NoError(t, SafeCopy(discardLogger(), src, dst, true))

	// Stale content is gone; the destination mirrors the source.
	_, err := os.Stat(filepath.Join(dst, "stale.txt"))
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(filepath.Join(dst, "keep.txt"))
	assert.NoError(t, err)
}

func TestSafeCopy_MissingSourceIsWarning(t *testing.T) {
	dir := t.TempDir()

	err := SafeCopy(discardLogger(), filepath.Join(dir, "absent"), filepath.Join(dir, "dst"), false)
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "dst"))
	assert.True(t, os.IsNotExist(statErr))
}
