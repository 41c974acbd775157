// Package vfs is the file system seam between the editor and the disk.
//
// The engine loads and stores the edited file through VFS. OSFS is the
// real thing; MemFS keeps everything in memory for tests and can be told
// to fail writes.
package vfs

import (
	"io/fs"
	"time"
)

// VFS is the set of file operations the editor performs. Saves are
// written to a sibling temp file and renamed over the target, so Rename
// must replace an existing file.
type VFS interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	Stat(path string) (FileInfo, error)
	Rename(oldPath, newPath string) error
	Remove(path string) error
}

// FileInfo describes a file or directory.
type FileInfo struct {
	path    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

// NewFileInfo creates a FileInfo.
func NewFileInfo(path string, size int64, mode fs.FileMode, modTime time.Time) FileInfo {
	return FileInfo{path: path, size: size, mode: mode, modTime: modTime}
}

func (fi FileInfo) Path() string       { return fi.path }
func (fi FileInfo) Size() int64        { return fi.size }
func (fi FileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi FileInfo) ModTime() time.Time { return fi.modTime }
func (fi FileInfo) IsDir() bool        { return fi.mode.IsDir() }
