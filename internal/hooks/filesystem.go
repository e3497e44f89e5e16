package hooks

import (
	"io/fs"
	"os"
)

//go:generate mockgen -source=filesystem.go -destination=mock_filesystem.go -package=hooks

// FileSystem abstracts the file access PostToolUse needs.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
}

type osFileSystem struct{}

// NewOSFileSystem returns a FileSystem backed by the os package.
func NewOSFileSystem() FileSystem {
	return osFileSystem{}
}

func (osFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (osFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (osFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}
