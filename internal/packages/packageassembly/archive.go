package packageassembly

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"contentpackage.run/internal/packages/packagetypes"
)

// writeArchive writes entries into a staging file next to outputPath and
// renames it into place once the archive is complete and verified.
// The staging file never outlives the call.
func writeArchive(outputPath string, entries []packagetypes.Entry, modified time.Time) (err error) {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &packagetypes.IOError{Op: "create directory", Path: dir, Err: err}
	}

	staging, err := os.CreateTemp(dir, "."+filepath.Base(outputPath)+"-*.tmp")
	if err != nil {
		return &packagetypes.IOError{Op: "create", Path: dir, Err: err}
	}
	stagingPath := staging.Name()
	closed := false
	defer func() {
		if !closed {
			_ = staging.Close()
		}
		if err != nil {
			_ = os.Remove(stagingPath)
		}
	}()

	zw := zip.NewWriter(staging)
	for _, e := range entries {
		if err := writeEntry(zw, e, modified); err != nil {
			_ = zw.Close()
			return &packagetypes.IOError{Op: "write entry " + e.Path, Path: stagingPath, Err: err}
		}
	}
	if err := zw.Close(); err != nil {
		return &packagetypes.IOError{Op: "finalize", Path: stagingPath, Err: err}
	}
	if err := staging.Sync(); err != nil {
		return &packagetypes.IOError{Op: "sync", Path: stagingPath, Err: err}
	}
	closed = true
	if err := staging.Close(); err != nil {
		return &packagetypes.IOError{Op: "close", Path: stagingPath, Err: err}
	}

	if err := verifyArchive(stagingPath, len(entries)); err != nil {
		return err
	}

	if err := os.Rename(stagingPath, outputPath); err != nil {
		return &packagetypes.IOError{Op: "rename", Path: outputPath, Err: err}
	}
	return nil
}

func writeEntry(zw *zip.Writer, e packagetypes.Entry, modified time.Time) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     e.Path,
		Method:   zip.Deflate,
		Modified: modified.UTC(),
	})
	if err != nil {
		return err
	}
	_, err = w.Write(e.Data)
	return err
}

// verifyArchive re-reads the central directory of the written archive.
func verifyArchive(path string, expected int) (err error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return &packagetypes.IOError{Op: "verify", Path: path, Err: err}
	}
	defer func() {
		if cErr := r.Close(); err == nil && cErr != nil {
			err = &packagetypes.IOError{Op: "close", Path: path, Err: cErr}
		}
	}()

	if len(r.File) != expected {
		return &packagetypes.IOError{
			Op: "verify", Path: path,
			Err: fmt.Errorf("central directory lists %d entries, expected %d", len(r.File), expected),
		}
	}
	return nil
}

// ReadArchive returns all entries of a package archive.
func ReadArchive(path string) (files packagetypes.Files, order []string, err error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, &packagetypes.IOError{Op: "open", Path: path, Err: err}
	}
	defer func() {
		if cErr := r.Close(); err == nil && cErr != nil {
			err = &packagetypes.IOError{Op: "close", Path: path, Err: cErr}
		}
	}()

	files = packagetypes.Files{}
	for _, f := range r.File {
		data, err := readZipFile(f)
		if err != nil {
			return nil, nil, &packagetypes.IOError{Op: "read entry " + f.Name, Path: path, Err: err}
		}
		files[f.Name] = data
		order = append(order, f.Name)
	}
	return files, order, nil
}

func readZipFile(f *zip.File) (data []byte, err error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if cErr := rc.Close(); err == nil {
			err = cErr
		}
	}()

	return io.ReadAll(rc)
}
