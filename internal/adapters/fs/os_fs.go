package fs

import (
	"os"
	"path/filepath"
)

// OSFileSystem resolves relative paths against root.
type OSFileSystem struct {
	root string
}

func NewOSFileSystem(root string) *OSFileSystem {
	return &OSFileSystem{root: root}
}

func (fs *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(fs.resolve(path))
}

func (fs *OSFileSystem) FileExists(path string) bool {
	info, err := os.Stat(fs.resolve(path))
	return err == nil && !info.IsDir()
}

func (fs *OSFileSystem) resolve(path string) string {
	if filepath.IsAbs(path) || fs.root == "" {
		return path
	}
	return filepath.Join(fs.root, path)
}
