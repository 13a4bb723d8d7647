package source

import (
	"os"
	"sync"
)

// FileSet keeps the content of documentation sources so that consumers can
// print source snippets next to diagnostics. Safe for concurrent use.
type FileSet struct {
	mu    sync.RWMutex
	files map[string]*File // path -> file
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{files: make(map[string]*File)}
}

// Add stores content under path, replacing any previous version.
func (fileSet *FileSet) Add(path string, content []byte) *File {
	content, _ = removeBOM(content)
	content, _ = normalizeCRLF(content)
	f := &File{
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
	}
	fileSet.mu.Lock()
	fileSet.files[f.Path] = f
	fileSet.mu.Unlock()
	return f
}

// Load reads a file from disk and calls Add.
func (fileSet *FileSet) Load(path string) (*File, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return fileSet.Add(path, content), nil
}

// Get returns the file stored under path.
func (fileSet *FileSet) Get(path string) (*File, bool) {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	f, ok := fileSet.files[normalizePath(path)]
	return f, ok
}

// Line returns the 1-based line of the file stored under path.
func (fileSet *FileSet) Line(path string, line int) (string, bool) {
	f, ok := fileSet.Get(path)
	if !ok {
		return "", false
	}
	return f.Line(line)
}

// Line возвращает строку с заданным номером (1-based).
func (f *File) Line(lineNum int) (string, bool) {
	if lineNum <= 0 {
		return "", false
	}
	var start, end int
	switch {
	case lineNum == 1:
		start = 0
	case lineNum-2 < len(f.LineIdx):
		start = f.LineIdx[lineNum-2] + 1
	default:
		return "", false
	}
	if lineNum-1 < len(f.LineIdx) {
		end = f.LineIdx[lineNum-1]
	} else {
		end = len(f.Content)
	}
	if start > len(f.Content) {
		return "", false
	}
	return string(f.Content[start:end]), true
}
