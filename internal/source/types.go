// Package source manages loaded PHP source files and maps byte spans to
// human-readable line/column positions.
package source

// FileID uniquely identifies a loaded file within a FileSet.
type FileID uint32

// FileFlags records metadata discovered while normalizing a file's bytes.
type FileFlags uint8

const (
	// FileVirtual marks a file that was not read from disk (stdin, tests).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File holds the normalized bytes of one source file plus its line index.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offsets of '\n', ascending
	Flags   FileFlags
}

// LineCol is a 1-based human-readable position.
type LineCol struct {
	Line uint32
	Col  uint32 // rune-based column, not byte-based
}
