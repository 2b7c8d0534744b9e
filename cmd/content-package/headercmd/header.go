package headercmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"contentpackage.run/internal/cli"
	internalcmd "contentpackage.run/internal/cmd"
)

type HeaderFactory interface {
	Header() Header
}

type Header interface {
	Apply(file string, lines []string, data internalcmd.HeaderData) error
	Extract(file string) ([]string, error)
}

func NewCmd(factory HeaderFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "header",
		Short: "manage comment headers of generated text files",
	}

	cmd.AddCommand(
		newApplyCmd(factory),
		newExtractCmd(factory),
	)

	return cmd
}

func newApplyCmd(factory HeaderFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply --line line... file",
		Short: "write the header lines into the file, replacing an existing header",
		Long: "renders every --line as a template with sprig functions and the fields " +
			".File, .Node, .Role and .Now, then writes them as a comment header in the file's format.",
		Args: cobra.ExactArgs(1),
	}

	var opts applyOptions

	opts.AddFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(opts.Lines) == 0 {
			return fmt.Errorf("%w: at least one --line is required", internalcmd.ErrInvalidArgs)
		}

		if err := factory.Header().Apply(args[0], opts.Lines, internalcmd.HeaderData{
			Node: opts.Node,
			Role: opts.Role,
		}); err != nil {
			return fmt.Errorf("applying header: %w", err)
		}

		return nil
	}

	return cmd
}

type applyOptions struct {
	Lines []string
	Node  string
	Role  string
}

func (o *applyOptions) AddFlags(flags *pflag.FlagSet) {
	flags.StringArrayVarP(
		&o.Lines,
		"line",
		"l",
		o.Lines,
		"Header line template. May be specified multiple times.",
	)
	flags.StringVar(&o.Node, "node", o.Node, "Value of .Node in line templates.")
	flags.StringVar(&o.Role, "role", o.Role, "Value of .Role in line templates.")
}

func newExtractCmd(factory HeaderFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "extract file",
		Short: "print the header lines of the file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := factory.Header().Extract(args[0])
			if err != nil {
				return fmt.Errorf("extracting header: %w", err)
			}

			printer := cli.NewPrinter(
				cli.WithOut{Out: cmd.OutOrStdout()},
				cli.WithErr{Err: cmd.ErrOrStderr()},
			)

			return printer.PrintLines(lines...)
		},
	}
}
