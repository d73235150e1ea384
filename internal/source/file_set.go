package source

import (
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet owns every loaded file and assigns stable FileIDs.
// It is populated once by the enumeration phase, then shared read-only
// across rule/check workers for the rest of the run.
type FileSet struct {
	files   []File
	index   map[string]FileID
	baseDir string
}

// NewFileSet creates an empty FileSet with the current working directory
// as its base for relative-path formatting.
func NewFileSet() *FileSet {
	return &FileSet{index: make(map[string]FileID)}
}

// NewFileSetWithBase creates an empty FileSet rooted at baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{index: make(map[string]FileID), baseDir: baseDir}
}

// BaseDir returns the configured base directory, defaulting to the CWD.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fs.baseDir
}

// Add registers already-normalized content under path and returns its FileID.
// A file added twice under the same path gets a fresh FileID; the index is
// updated to point at the latest one, matching the fix-and-rerun workflow.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("source: file count overflow: %w", err))
	}
	id := FileID(n)
	norm := normalizePath(path)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    norm,
		Content: content,
		LineIdx: buildLineIndex(content),
		Flags:   flags,
	})
	fs.index[norm] = id
	return id
}

// Load reads path from disk, normalizes BOM/CRLF, and adds it.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path comes from the configured walk, not untrusted input
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)
	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags), nil
}

// AddVirtual adds in-memory content (tests, stdin, LSP didOpen buffers).
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Get returns the file for id. Callers must not mutate the returned File's
// slices; they are shared across workers once the enumeration phase ends.
func (fs *FileSet) Get(id FileID) *File {
	return &fs.files[id]
}

// GetByPath looks up the most recently added file for a normalized path.
func (fs *FileSet) GetByPath(path string) (*File, bool) {
	if id, ok := fs.index[normalizePath(path)]; ok {
		return &fs.files[id], true
	}
	return nil, false
}

// Len reports how many files are registered.
func (fs *FileSet) Len() int { return len(fs.files) }

// Resolve converts a span's endpoints into line/column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &fs.files[span.File]
	return toLineCol(f.Content, f.LineIdx, span.Start), toLineCol(f.Content, f.LineIdx, span.End)
}

// LineCol converts a byte offset within f into a 1-based (line, column)
// pair, the conversion a Diagnostic's Location needs without requiring
// callers to go through a FileSet.
func (f *File) LineCol(off uint32) LineCol {
	return toLineCol(f.Content, f.LineIdx, off)
}

// GetLine returns the 1-based line (without its terminator), or "" if out of range.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	var start, end uint32
	lenIdx := uint32(len(f.LineIdx))
	lenContent := uint32(len(f.Content))

	switch {
	case lineNum == 1:
		start = 0
	case (lineNum - 2) < lenIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}

	if (lineNum - 1) < lenIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}

	if start >= lenContent {
		return ""
	}
	if end > lenContent {
		end = lenContent
	}
	return string(f.Content[start:end])
}

// FormatPath renders f.Path per mode: "absolute", "relative", "basename", or "auto".
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
		return f.Path
	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
		return f.Path
	case "basename":
		return BaseName(f.Path)
	case "auto":
		if len(f.Path) < 40 {
			return f.Path
		}
		return BaseName(f.Path)
	default:
		return f.Path
	}
}
