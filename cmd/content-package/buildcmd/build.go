package buildcmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	internalcmd "contentpackage.run/internal/cmd"
	"contentpackage.run/internal/packages/packageassembly"
)

type BuilderFactory interface {
	Builder() Builder
}

type Builder interface {
	BuildPackage(
		ctx context.Context, input string, opts ...internalcmd.BuildPackageOption,
	) (packageassembly.Result, error)
}

// Defaults seed flag values, e.g. from the settings file.
type Defaults struct {
	OutputDir   string
	MetricsFile string
}

func NewCmd(builderFactory BuilderFactory, defaults Defaults) *cobra.Command {
	const (
		buildUse   = "build input_path --options options_file [--output-dir dir] [--metrics-file file]"
		buildShort = "package a content description into a FileVault content package"
		buildLong  = "converts a JSON or YAML content description into a content package zip named after the package. " +
			"The input file is deleted after the archive was written."
	)

	cmd := &cobra.Command{
		Use:   buildUse,
		Short: buildShort,
		Long:  buildLong,
		Args:  cobra.ExactArgs(1),
	}

	opts := options{
		OutputDir:   defaults.OutputDir,
		MetricsFile: defaults.MetricsFile,
	}

	opts.AddFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		src := args[0]
		if src == "" {
			return fmt.Errorf("%w: input path empty", internalcmd.ErrInvalidArgs)
		}
		if opts.OptionsFile == "" {
			return fmt.Errorf("%w: --options is required", internalcmd.ErrInvalidArgs)
		}

		res, err := builderFactory.Builder().BuildPackage(
			cmd.Context(), src,
			internalcmd.WithOptionsFile(opts.OptionsFile),
			internalcmd.WithOutputDir(opts.OutputDir),
			internalcmd.WithMetricsFile(opts.MetricsFile),
		)
		if err != nil {
			return fmt.Errorf("building content package: %w", err)
		}
		if res.RemoveErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", res.RemoveErr)
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Path)

		return err
	}

	return cmd
}

type options struct {
	OptionsFile string
	OutputDir   string
	MetricsFile string
}

func (o *options) AddFlags(flags *pflag.FlagSet) {
	flags.StringVar(
		&o.OptionsFile,
		"options",
		o.OptionsFile,
		"YAML, JSON or TOML file holding the package options.",
	)
	flags.StringVarP(
		&o.OutputDir,
		"output-dir",
		"o",
		o.OutputDir,
		"Directory to write the archive to. Defaults to the directory of the input.",
	)
	flags.StringVar(
		&o.MetricsFile,
		"metrics-file",
		o.MetricsFile,
		"Write build metrics in Prometheus textfile format to this path.",
	)
}
