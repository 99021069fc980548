package source

type (
	// FileID uniquely identifies a declaration file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a loaded file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (tests, stdin).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures content and metadata for a single declaration file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
