package cmd

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_RenderContent(t *testing.T) {
	t.Parallel()

	tree := NewTree()
	src := filepath.Join("testdata", "content.json")

	for name, tc := range map[string]struct {
		Options []RenderContentOption
		Header  string
	}{
		"nodes only": {
			Header: "jcr:root [cq:Page]",
		},
		"root path": {
			Options: []RenderContentOption{WithRootPath("/content/test")},
			Header:  "/content/test [cq:Page]",
		},
	} {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out, err := tree.RenderContent(context.Background(), src, tc.Options...)
			require.NoError(t, err)

			lines := strings.Split(strings.TrimSpace(out), "\n")
			require.Len(t, lines, 3)
			assert.Equal(t, tc.Header, lines[0])
			assert.Regexp(t, `^└── jcr:content \[cq:PageContent\]$`, lines[1])
			assert.Regexp(t, `^\s+└── par \[nt:unstructured\]$`, lines[2])
			assert.NotContains(t, out, "@")
		})
	}
}

func TestTree_RenderContent_Properties(t *testing.T) {
	t.Parallel()

	out, err := NewTree().RenderContent(context.Background(),
		filepath.Join("testdata", "content.json"), WithShowProperties(true))
	require.NoError(t, err)

	assert.Contains(t, out, "@jcr:title {String} = Test Page")
	assert.Contains(t, out, "@hideInNav {Boolean} = true")
	assert.Contains(t, out, "@cq:tags {String} = [")
}

func TestTree_RenderContent_Errors(t *testing.T) {
	t.Parallel()

	_, err := NewTree().RenderContent(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorContains(t, err, "missing.json")
}
