package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader_RenderLines(t *testing.T) {
	t.Parallel()

	h := NewHeader(WithClock{Clock: testClock})

	for name, tc := range map[string]struct {
		Lines    []string
		Data     HeaderData
		Expected []string
	}{
		"plain": {
			Lines:    []string{"Generated file", "do not edit"},
			Expected: []string{"Generated file", "do not edit"},
		},
		"fields and sprig": {
			Lines:    []string{"{{ .File }} of {{ .Role | upper }}", `{{ .Now | date "2006-01-02" }}`},
			Data:     HeaderData{File: "app.conf", Role: "aem-author"},
			Expected: []string{"app.conf of AEM-AUTHOR", "2023-10-02"},
		},
		"multi line expansion": {
			Lines:    []string{`{{ list "a" "b" | join "\n" }}`},
			Expected: []string{"a", "b"},
		},
	} {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out, err := h.RenderLines(tc.Lines, tc.Data)
			require.NoError(t, err)
			assert.Equal(t, tc.Expected, out)
		})
	}
}

func TestHeader_RenderLines_Errors(t *testing.T) {
	t.Parallel()

	h := NewHeader()

	_, err := h.RenderLines([]string{"{{ .File "}, HeaderData{})
	require.ErrorContains(t, err, "parsing header line 1")

	_, err = h.RenderLines([]string{"ok", "{{ .Missing }}"}, HeaderData{})
	require.ErrorContains(t, err, "rendering header line 2")
}

func TestHeader_ApplyExtract(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "app.conf")
	require.NoError(t, os.WriteFile(file, []byte("Listen 80\n"), 0o600))

	h := NewHeader(WithClock{Clock: testClock})
	lines := []string{"Managed file {{ .File }}"}

	require.NoError(t, h.Apply(file, lines, HeaderData{}))
	// applying again replaces the header
	require.NoError(t, h.Apply(file, lines, HeaderData{}))

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "# BEGIN GENERATED HEADER\n# Managed file app.conf\n# END GENERATED HEADER\nListen 80\n", string(data))

	extracted, err := h.Extract(file)
	require.NoError(t, err)
	assert.Equal(t, []string{"Managed file app.conf"}, extracted)
}

func TestHeader_UnsupportedFile(t *testing.T) {
	t.Parallel()

	h := NewHeader()

	require.ErrorIs(t, h.Apply("archive.zip", []string{"x"}, HeaderData{}), ErrUnsupportedFile)

	_, err := h.Extract("archive.zip")
	require.ErrorIs(t, err, ErrUnsupportedFile)
}
