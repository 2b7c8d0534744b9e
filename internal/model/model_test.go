package model

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentpackage.run/internal/packages/packagetypes"
)

const testModel = `nodes: node1
roles:
- role: aem-author
  config:
    cloudManager:
      target: [a, b]
  files:
  - path: packages/content.json
    aemContentPackageProperties:
      packageGroup: myGroup
      packageName: myName
      packageRootPath: /content/test
  - path: config/unrelated.txt
- role: aem-publish
  config:
    cloudManager.target: a
- role: aem-dispatcher
  config:
    cloudManager:
      target: ""
  files:
  - path: dispatcher/content.yaml
    aemContentPackageProperties:
      packageName: dispatcher
- role: no-config
`

func writeModel(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, File), []byte(content), 0o600))
	return dir
}

func TestContentPackagesForNode(t *testing.T) {
	t.Parallel()

	dir := writeModel(t, testModel)
	files, err := NewReader().ContentPackagesForNode(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, filepath.Join(dir, "packages", "content.json"), files[0].Path)
	assert.Equal(t, "aem-author", files[0].Role)
	assert.Equal(t, "myName", files[0].Options["packageName"])
	assert.Equal(t, filepath.Join(dir, "dispatcher", "content.yaml"), files[1].Path)
	assert.Equal(t, "aem-dispatcher", files[1].Role)
}

func TestHasRole(t *testing.T) {
	t.Parallel()

	dir := writeModel(t, testModel)
	r := NewReader()

	ok, err := r.HasRole(dir, "aem-publish")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.HasRole(dir, "aem-other")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCloudManagerTargets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		model    string
		expected []string
	}{
		{
			name:     "merged and deduplicated",
			model:    testModel,
			expected: []string{"a", "b"},
		},
		{
			name: "list, single, blank and new",
			model: `roles:
- role: r1
  config: {cloudManager: {target: [a, b]}}
- role: r2
  config: {cloudManager: {target: a}}
- role: r3
  config: {cloudManager: {target: ""}}
- role: r4
  config: {cloudManager: {target: c}}
`,
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "no roles",
			model:    "nodes: x\n",
			expected: []string{},
		},
	}
	for i := range tests {
		test := tests[i]

		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			targets, err := NewReader().CloudManagerTargets(writeModel(t, test.model))
			require.NoError(t, err)
			assert.Equal(t, test.expected, targets)
		})
	}
}

func TestCloudManagerTargetsInvalid(t *testing.T) {
	t.Parallel()

	dir := writeModel(t, `roles:
- role: r1
  config: {cloudManager: {target: {env: dev}}}
`)
	_, err := NewReader().CloudManagerTargets(dir)

	var dErr *packagetypes.DecodeError
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, packagetypes.DecodeReasonInvalidModel, dErr.Reason)
	assert.Equal(t, "roles[0].config.cloudManager.target", dErr.Path)
}

func TestMissingModel(t *testing.T) {
	t.Parallel()

	_, err := NewReader().CloudManagerTargets(t.TempDir())
	require.ErrorIs(t, err, fs.ErrNotExist)

	var ioErr *packagetypes.IOError
	require.ErrorAs(t, err, &ioErr)
}

func TestGetDeep(t *testing.T) {
	t.Parallel()

	m := map[string]any{
		"a.b": 1,
		"a":   map[string]any{"b": 2, "c": map[string]any{"d": 3}},
		"x":   map[string]any{"y.z": 4},
	}

	tests := map[string]any{"a.b": 1, "a.c.d": 3, "x.y.z": 4}
	for key, expected := range tests {
		v, ok := GetDeep(m, key)
		assert.True(t, ok, key)
		assert.Equal(t, expected, v, key)
	}

	_, ok := GetDeep(m, "a.missing")
	assert.False(t, ok)
}
