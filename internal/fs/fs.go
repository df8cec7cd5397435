// Package fs defines the filesystem abstraction used by the snapshot store.
// It provides the FS interface and the FileInfo type shared across the system.
package fs

import (
	"context"
	iofs "io/fs"
	"time"
)

type FileInfo struct {
	Path  string
	Size  int64
	MTime time.Time
	IsDir bool
}

type FS interface {
	Stat(path string) (FileInfo, error)
	ReadDir(path string) ([]iofs.DirEntry, error)
	CopyTree(ctx context.Context, src, dst string) error
	Rename(ctx context.Context, oldPath, newPath string) error
	MkdirAll(path string) error
	RemoveAll(path string) error
	TreeSize(path string) (int64, error)
}
