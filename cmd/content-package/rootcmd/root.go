package rootcmd

import (
	"flag"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/dig"

	"contentpackage.run/internal/version"
)

type Params struct {
	dig.In

	Streams     IOStreams
	Args        []string
	SubCommands []*cobra.Command `group:"rootSubCommands"`
}

type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// Command groups shown in the help output.
const (
	GroupPackaging = "packaging"
	GroupNode      = "node"
)

// commandGroups sorts subcommands by name, unlisted ones stay ungrouped.
var commandGroups = map[string]string{
	"build":   GroupPackaging,
	"inspect": GroupPackaging,
	"tree":    GroupPackaging,
	"node":    GroupNode,
	"model":   GroupNode,
	"header":  GroupNode,
}

func ProvideRootCmd(params Params) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content-package",
		Short: "assemble FileVault content packages from content descriptions",
		Long: "content-package turns JSON or YAML content descriptions into FileVault content package zips " +
			"and post-processes the files a node model flags for packaging.\n\n" +
			"Settings are read from content-package.yaml (or the file named by CONTENT_PACKAGE_CONFIG) " +
			"and CONTENT_PACKAGE_* environment variables.",
		Version:      version.Get().Short(),
		SilenceUsage: true,
	}
	cmd.SetIn(params.Streams.In)
	cmd.SetOut(params.Streams.Out)
	cmd.SetErr(params.Streams.ErrOut)
	cmd.SetArgs(params.Args)
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	cmd.AddGroup(
		&cobra.Group{ID: GroupPackaging, Title: "Packaging Commands:"},
		&cobra.Group{ID: GroupNode, Title: "Node Commands:"},
	)
	for _, sub := range params.SubCommands {
		sub.GroupID = commandGroups[sub.Name()]
		cmd.AddCommand(sub)
	}

	return cmd
}
