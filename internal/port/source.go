package port

// WordSource produces the corpus as an ordered list of words.
type WordSource interface {
	Words() ([]string, error)
}

// FileWalker lists corpus files under a root.
type FileWalker interface {
	Walk(root string) ([]FileInfo, error)
}

type FileInfo struct {
	Path    string
	ModTime int64
	Size    int64
}
