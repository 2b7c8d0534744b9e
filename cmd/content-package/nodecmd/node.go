package nodecmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"contentpackage.run/internal/cli"
	internalcmd "contentpackage.run/internal/cmd"
)

type ProcessorFactory interface {
	Processor() Processor
}

type Processor interface {
	ProcessNode(
		ctx context.Context, nodeDir string, opts ...internalcmd.ProcessNodeOption,
	) ([]internalcmd.NodeFileResult, error)
}

// Defaults seed flag values, e.g. from the settings file.
type Defaults struct {
	OutputDir   string
	MetricsFile string
	HeaderLines []string
}

func NewCmd(factory ProcessorFactory, defaults Defaults) *cobra.Command {
	const (
		nodeUse   = "node node_dir [--header-line line]... [--output-dir dir] [--metrics-file file]"
		nodeShort = "package all files the node model flags as content packages"
		nodeLong  = "reads model.yaml of the node directory and runs every file carrying " +
			"aemContentPackageProperties through the post-processing pipeline: " +
			"content descriptions become content packages, other files get the rendered header lines."
	)

	cmd := &cobra.Command{
		Use:   nodeUse,
		Short: nodeShort,
		Long:  nodeLong,
		Args:  cobra.ExactArgs(1),
	}

	opts := options{
		OutputDir:   defaults.OutputDir,
		MetricsFile: defaults.MetricsFile,
		HeaderLines: defaults.HeaderLines,
	}

	opts.AddFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if args[0] == "" {
			return fmt.Errorf("%w: node directory empty", internalcmd.ErrInvalidArgs)
		}

		results, err := factory.Processor().ProcessNode(
			cmd.Context(), args[0],
			internalcmd.WithOutputDir(opts.OutputDir),
			internalcmd.WithHeaderLines(opts.HeaderLines),
			internalcmd.WithMetricsFile(opts.MetricsFile),
		)
		if err != nil {
			return fmt.Errorf("processing node: %w", err)
		}

		printer := cli.NewPrinter(
			cli.WithOut{Out: cmd.OutOrStdout()},
			cli.WithErr{Err: cmd.ErrOrStderr()},
		)

		return printer.PrintTable(internalcmd.NodeResultsTable(results))
	}

	return cmd
}

type options struct {
	OutputDir   string
	MetricsFile string
	HeaderLines []string
}

func (o *options) AddFlags(flags *pflag.FlagSet) {
	flags.StringArrayVar(
		&o.HeaderLines,
		"header-line",
		o.HeaderLines,
		"Header line template applied to non-package files. May be specified multiple times.",
	)
	flags.StringVarP(
		&o.OutputDir,
		"output-dir",
		"o",
		o.OutputDir,
		"Directory to write archives to. Defaults to the directory of each input.",
	)
	flags.StringVar(
		&o.MetricsFile,
		"metrics-file",
		o.MetricsFile,
		"Write build metrics in Prometheus textfile format to this path.",
	)
}
