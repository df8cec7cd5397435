package fs

import (
	"context"
	iofs "io/fs"
	"os"
)

// OSFS is the concrete implementation of FS backed by the local OS
// filesystem. Copy and rename go through retry wrappers that absorb
// transient errors.
type OSFS struct{}

func New() *OSFS {
	return &OSFS{}
}

func (o *OSFS) Stat(path string) (FileInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}

	return FileInfo{
		Path:  path,
		Size:  st.Size(),
		MTime: st.ModTime(),
		IsDir: st.IsDir(),
	}, nil
}

func (o *OSFS) ReadDir(path string) ([]iofs.DirEntry, error) {
	return os.ReadDir(path)
}

func (o *OSFS) MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

func (o *OSFS) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

func (o *OSFS) CopyTree(ctx context.Context, src, dst string) error {
	return copyTree(ctx, src, dst)
}

func (o *OSFS) Rename(ctx context.Context, oldPath, newPath string) error {
	return retry(ctx, "rename", func() error {
		return os.Rename(oldPath, newPath)
	})
}

func (o *OSFS) TreeSize(path string) (int64, error) {
	return treeSize(path)
}
