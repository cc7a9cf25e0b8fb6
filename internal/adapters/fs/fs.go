package fs

type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	FileExists(path string) bool
}
