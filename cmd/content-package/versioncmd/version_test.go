package versioncmd

import (
	"bytes"
	"runtime"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentpackage.run/internal/version"
)

func TestCobraVersion(t *testing.T) {
	t.Parallel()

	for name, tc := range map[string]struct {
		Args        []string
		Contains    []string
		NotContains []string
	}{
		"default": {
			Contains:    []string{"version ", runtime.Version()},
			NotContains: []string{"build ", "mod "},
		},
		"embedded": {
			Args:     []string{"--embedded"},
			Contains: []string{"version ", "mod "},
		},
		"short": {
			Args:        []string{"--short"},
			NotContains: []string{"version ", runtime.Version()},
		},
	} {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cmd := NewCmd()
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}
			cmd.SetOut(stdout)
			cmd.SetErr(stderr)
			cmd.SetArgs(tc.Args)

			require.NoError(t, cmd.Execute())
			require.Empty(t, stderr.String())
			for _, s := range tc.Contains {
				assert.Contains(t, stdout.String(), s)
			}
			for _, s := range tc.NotContains {
				assert.NotContains(t, stdout.String(), s)
			}
		})
	}
}

func TestCobraVersion_RejectsArgs(t *testing.T) {
	t.Parallel()

	cmd := NewCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"extra"})

	require.Error(t, cmd.Execute())
}

func TestLines(t *testing.T) {
	t.Parallel()

	info := version.Info{
		Version: "v1.2.3",
		BuildInfo: &debug.BuildInfo{
			GoVersion: "go1.23.0",
			Path:      "contentpackage.run/cmd/content-package",
			Main:      debug.Module{Path: "contentpackage.run", Version: "(devel)"},
			Deps:      []*debug.Module{{Path: "github.com/spf13/cobra", Version: "v1.7.0"}},
			Settings:  []debug.BuildSetting{{Key: "CGO_ENABLED", Value: "0"}},
		},
	}

	assert.Equal(t, []string{"version v1.2.3", "go go1.23.0"}, Lines(info, false))
	assert.Equal(t, strings.Join([]string{
		"version v1.2.3",
		"go go1.23.0",
		"path contentpackage.run/cmd/content-package",
		"mod contentpackage.run (devel)",
		"dep github.com/spf13/cobra v1.7.0",
		"build CGO_ENABLED 0",
	}, "\n"), strings.Join(Lines(info, true), "\n"))

	assert.Equal(t, []string{"version v1.2.3"}, Lines(version.Info{Version: "v1.2.3"}, false))
}
