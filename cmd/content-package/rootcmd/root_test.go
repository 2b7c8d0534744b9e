package rootcmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvideRootCmd(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	params := Params{
		Streams: IOStreams{
			In:     &bytes.Buffer{},
			Out:    out,
			ErrOut: &bytes.Buffer{},
		},
		Args: []string{"--help"},
		SubCommands: []*cobra.Command{
			{Use: "build input", Short: "build a package", Run: func(*cobra.Command, []string) {}},
			{Use: "model", Short: "query the model", Run: func(*cobra.Command, []string) {}},
			{Use: "version", Short: "print the version", Run: func(*cobra.Command, []string) {}},
		},
	}

	cmd := ProvideRootCmd(params)

	assert.Same(t, params.Streams.In, cmd.InOrStdin())
	assert.Same(t, params.Streams.Out, cmd.OutOrStdout())
	assert.Same(t, params.Streams.ErrOut, cmd.ErrOrStderr())
	require.Len(t, cmd.Commands(), 3)

	groups := map[string]string{}
	for _, c := range cmd.Commands() {
		groups[c.Name()] = c.GroupID
	}
	assert.Equal(t, map[string]string{
		"build":   GroupPackaging,
		"model":   GroupNode,
		"version": "",
	}, groups)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Packaging Commands:")
	assert.Contains(t, out.String(), "Node Commands:")
}
