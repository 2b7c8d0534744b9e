package packagetypes

// Entry is a single file inside of a package archive.
type Entry struct {
	// Path inside the archive, always slash separated and relative.
	Path string
	Data []byte
}

// Files maps archive paths to file contents.
type Files map[string][]byte
