package treecmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	internalcmd "contentpackage.run/internal/cmd"
)

func TestTree_Success(t *testing.T) {
	t.Parallel()

	for name, tc := range map[string]struct {
		Args     []string
		Contains []string
		Excludes []string
	}{
		"nodes": {
			Args:     []string{filepath.Join("testdata", "content.yaml")},
			Contains: []string{"jcr:root [cq:Page]", "jcr:content [cq:PageContent]"},
			Excludes: []string{"@jcr:title"},
		},
		"root path and properties": {
			Args:     []string{"--root-path", "/content/sample", "-p", filepath.Join("testdata", "content.yaml")},
			Contains: []string{"/content/sample [cq:Page]", "@jcr:title {String} = Sample"},
		},
	} {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			factory := &rendererFactoryMock{}
			factory.On("Renderer").Return(internalcmd.NewTree())

			cmd := NewCmd(factory)
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
			for _, s := range tc.Excludes {
				assert.NotContains(t, stdout.String(), s)
			}
		})
	}
}

func TestTree_InvalidArgs(t *testing.T) {
	t.Parallel()

	for name, args := range map[string][]string{
		"no args":        {},
		"empty path":     {""},
		"missing source": {"invisible_chicken.json"},
	} {
		args := args

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			factory := &rendererFactoryMock{}
			factory.On("Renderer").Return(internalcmd.NewTree())

			cmd := NewCmd(factory)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(args)

			require.Error(t, cmd.Execute())
		})
	}
}

type rendererFactoryMock struct {
	mock.Mock
}

func (m *rendererFactoryMock) Renderer() Renderer {
	args := m.Called()

	return args.Get(0).(Renderer)
}
