package treecmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	internalcmd "contentpackage.run/internal/cmd"
)

type RendererFactory interface {
	Renderer() Renderer
}

type Renderer interface {
	RenderContent(ctx context.Context, srcPath string, opts ...internalcmd.RenderContentOption) (string, error)
}

func NewCmd(rendererFactory RendererFactory) *cobra.Command {
	const (
		cmdUse   = "tree input_path [--root-path path] [--properties]"
		cmdShort = "outputs a tree view of a content description"
		cmdLong  = "outputs the nodes of a JSON or YAML content description with their primary types, " +
			"optionally including typed properties"
	)

	var opts options

	cmd := &cobra.Command{
		Args:  cobra.ExactArgs(1),
		Use:   cmdUse,
		Short: cmdShort,
		Long:  cmdLong,
	}
	opts.AddFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if args[0] == "" {
			return fmt.Errorf("%w: input path empty", internalcmd.ErrInvalidArgs)
		}

		out, err := rendererFactory.Renderer().RenderContent(
			cmd.Context(), args[0],
			internalcmd.WithRootPath(opts.RootPath),
			internalcmd.WithShowProperties(opts.Properties),
		)
		if err != nil {
			return fmt.Errorf("rendering content: %w", err)
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), out)

		return err
	}

	return cmd
}

type options struct {
	RootPath   string
	Properties bool
}

func (o *options) AddFlags(flags *pflag.FlagSet) {
	flags.StringVar(
		&o.RootPath,
		"root-path",
		o.RootPath,
		"repository path shown for the root node",
	)
	flags.BoolVarP(
		&o.Properties,
		"properties",
		"p",
		o.Properties,
		"include node properties",
	)
}
