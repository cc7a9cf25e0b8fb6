package fs

import (
	iofs "io/fs"
	"path"
	"strings"
)

// IOFileSystem adapts any io/fs.FS, such as an embed.FS or fstest.MapFS.
type IOFileSystem struct {
	fsys iofs.FS
}

func NewIOFileSystem(fsys iofs.FS) *IOFileSystem {
	return &IOFileSystem{fsys: fsys}
}

func (fs *IOFileSystem) ReadFile(name string) ([]byte, error) {
	return iofs.ReadFile(fs.fsys, clean(name))
}

func (fs *IOFileSystem) FileExists(name string) bool {
	info, err := iofs.Stat(fs.fsys, clean(name))
	return err == nil && !info.IsDir()
}

func clean(name string) string {
	name = path.Clean(strings.ReplaceAll(name, "\\", "/"))
	return strings.TrimPrefix(name, "/")
}
