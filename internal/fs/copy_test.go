package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyTreeRecursive(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("aaa"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(src, "sub", "deeper"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "sub", "deeper", "b.txt"), []byte("bb"), 0o600))

	dst := filepath.Join(t.TempDir(), "copy")
	require.NoError(t, copyTree(context.Background(), src, dst))

	got, err := os.ReadFile(filepath.Join(dst, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "aaa", string(got))

	got, err = os.ReadFile(filepath.Join(dst, "sub", "deeper", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "bb", string(got))

	info, err := os.Stat(filepath.Join(dst, "sub", "deeper", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestCopyTreeSingleFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "only.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	dst := t.TempDir()
	require.NoError(t, copyTree(context.Background(), src, dst))

	got, err := os.ReadFile(filepath.Join(dst, "only.txt"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))
}

func TestCopyTreeMissingSource(t *testing.T) {
	err := copyTree(context.Background(), filepath.Join(t.TempDir(), "nope"), t.TempDir())
	assert.Error(t, err)
}

func TestCopyTreeCancelled(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("aaa"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := copyTree(ctx, src, filepath.Join(t.TempDir(), "copy"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTreeSize(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), []byte("12345"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b"), []byte("123"), 0o644))

	total, err := treeSize(dir)
	require.NoError(t, err)
	assert.Equal(t, int64(8), total)
}
