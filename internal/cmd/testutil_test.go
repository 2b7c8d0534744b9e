package cmd

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testClock = fixedClock{t: time.Date(2023, 10, 2, 12, 0, 0, 0, time.UTC)}

// copyDir copies the testdata directory src into a fresh directory.
func copyDir(t *testing.T, src string) string {
	t.Helper()

	root := filepath.Join("testdata", src)
	dst := t.TempDir()

	require.NoError(t, filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o600)
	}))
	return dst
}

// copyFile copies the testdata file src into a fresh directory.
func copyFile(t *testing.T, src string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", src))
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), filepath.Base(src))
	require.NoError(t, os.WriteFile(dst, data, 0o600))
	return dst
}
