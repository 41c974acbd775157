package vfs

import (
	"io/fs"
	"os"
)

// OSFS is the operating system's file system.
type OSFS struct{}

var _ VFS = (*OSFS)(nil)

// NewOSFS returns the OS file system.
func NewOSFS() *OSFS {
	return &OSFS{}
}

func (*OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (*OSFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (*OSFS) Stat(path string) (FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}
	return NewFileInfo(path, info.Size(), info.Mode(), info.ModTime()), nil
}

func (*OSFS) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

func (*OSFS) Remove(path string) error {
	return os.Remove(path)
}
