package source

import (
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	lineIdx []uint32
}

// FileSet manages the files a compilation unit was built from and resolves
// spans back to line/column positions for diagnostics.
type FileSet struct {
	files []File
	index map[string]FileID
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0, 4),
		index: make(map[string]FileID),
	}
}

// Add stores a file and returns its FileID. A path that was added before
// gets a fresh ID; the index always points at the latest version.
func (fs *FileSet) Add(path string, content []byte) FileID {
	lenFiles, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file count overflow: %w", err))
	}
	id := FileID(lenFiles)
	normalized := filepath.ToSlash(path)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    normalized,
		Content: content,
		lineIdx: buildLineIndex(content),
	})
	fs.index[normalized] = id
	return id
}

// Load reads a file from disk and adds it to the set.
func (fs *FileSet) Load(path string) (FileID, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- path is provided by the caller
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	return fs.Add(path, content), nil
}

// Get returns the file for an ID, or nil when the ID is out of range.
func (fs *FileSet) Get(id FileID) *File {
	if id == NoFile || int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

// Find returns the latest file added under path.
func (fs *FileSet) Find(path string) (*File, bool) {
	id, ok := fs.index[filepath.ToSlash(path)]
	if !ok {
		return nil, false
	}
	return &fs.files[id], true
}

// Len returns the number of files in the set.
func (fs *FileSet) Len() int {
	return len(fs.files)
}

// Position resolves the start of a span to a path plus line/column.
// Invalid spans resolve to an empty path.
func (fs *FileSet) Position(sp Span) (string, LineCol) {
	f := fs.Get(sp.File)
	if f == nil {
		return "", LineCol{}
	}
	return f.Path, toLineCol(f.lineIdx, sp.Start)
}

func buildLineIndex(content []byte) []uint32 {
	var out []uint32
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) // #nosec G115 -- i < len(content) <= max uint32 file size
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	// Binary search for the last newline before off.
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] <= off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	line := hi
	if line < 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	start := lineIdx[line] + 1
	return LineCol{Line: uint32(line) + 2, Col: off - start + 1} // #nosec G115 -- line bounded by file size
}
