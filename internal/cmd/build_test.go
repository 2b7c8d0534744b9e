package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentpackage.run/internal/metrics"
	"contentpackage.run/internal/packages/packageassembly"
	"contentpackage.run/internal/packages/packagetypes"
	"contentpackage.run/internal/packages/vaultmeta"
)

func TestBuild_BuildPackage(t *testing.T) {
	t.Parallel()

	input := copyFile(t, "content.json")
	outDir := t.TempDir()
	metricsFile := filepath.Join(t.TempDir(), "build.prom")
	recorder := metrics.NewRecorder()

	b := NewBuild(
		WithClock{Clock: testClock},
		WithRecorder{Recorder: recorder},
		WithCreatedBy("ci"),
	)

	res, err := b.BuildPackage(context.Background(), input,
		WithOptionsFile(filepath.Join("testdata", "options.yaml")),
		WithOutputDir(outDir),
		WithMetricsFile(metricsFile),
	)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outDir, "myName.zip"), res.Path)
	assert.Equal(t, packageassembly.StateDone, res.State)
	assert.NoFileExists(t, input)

	files, _, err := packageassembly.ReadArchive(res.Path)
	require.NoError(t, err)
	props, err := vaultmeta.ParseProperties(files[packagetypes.PropertiesXMLPath])
	require.NoError(t, err)
	assert.Equal(t, "ci", props["createdBy"])
	assert.Equal(t, "merge", props["acHandling"])

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `content_package_builds_total{outcome="success",reason=""} 1`)
}

func TestBuild_BuildPackage_MissingOptionsFile(t *testing.T) {
	t.Parallel()

	_, err := NewBuild().BuildPackage(context.Background(), "content.json")
	require.ErrorIs(t, err, ErrInvalidArgs)
}

func TestBuild_BuildPackage_Failure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"title": "no type"}`), 0o600))
	metricsFile := filepath.Join(dir, "build.prom")

	res, err := NewBuild().BuildPackage(context.Background(), input,
		WithOptionsFile(filepath.Join("testdata", "options.yaml")),
		WithMetricsFile(metricsFile),
	)
	require.Error(t, err)

	var decodeErr *packagetypes.DecodeError
	assert.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, packageassembly.StateFailed, res.State)
	assert.FileExists(t, input)

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `content_package_builds_total{outcome="failure",reason="decode"} 1`)
}
