package ports

import "time"

// FileInfo describes one path inside the sync directory.
type FileInfo struct {
	Exists  bool
	IsDir   bool
	ModTime time.Time
}

// Entry is a file or directory found while walking the sync directory.
type Entry struct {
	Path  string
	IsDir bool
}

// SyncDirectory is the tree of page files. All paths are slash-separated and
// relative to the sync root; "." is the root itself. Hidden files and
// directories are never listed.
type SyncDirectory interface {
	Stat(rel string) (FileInfo, error)
	ReadFile(rel string) (string, error)

	// WriteFile replaces the whole file, creating parent directories.
	WriteFile(rel, content string) error

	// Remove deletes a file or an empty directory.
	Remove(rel string) error

	// Files lists every file below rel in lexical order.
	Files(rel string) ([]string, error)

	// Tree lists files and directories below rel deepest first, ending with
	// rel itself. Directories holding hidden entries are left out since they
	// can never be emptied.
	Tree(rel string) ([]Entry, error)
}
