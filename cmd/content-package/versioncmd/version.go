package versioncmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"contentpackage.run/internal/cli"
	"contentpackage.run/internal/version"
)

func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "print the content-package version and build info",
		Args:  cobra.NoArgs,
	}

	var opts options
	opts.AddFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		printer := cli.NewPrinter(
			cli.WithOut{Out: cmd.OutOrStdout()},
			cli.WithErr{Err: cmd.ErrOrStderr()},
		)

		info := version.Get()
		if opts.Short {
			return printer.PrintLines(info.Short())
		}
		return printer.PrintLines(Lines(info, opts.Embedded)...)
	}

	return cmd
}

// Lines renders build info as "key value" lines. Embedded adds the module
// path, all dependencies and the build settings.
func Lines(info version.Info, embedded bool) []string {
	lines := []string{"version " + info.Short()}
	if info.BuildInfo == nil {
		return lines
	}
	lines = append(lines, "go "+info.GoVersion)

	if !embedded {
		return lines
	}
	lines = append(lines, "path "+info.Path, fmt.Sprintf("mod %s %s", info.Main.Path, info.Main.Version))
	for _, dep := range info.Deps {
		lines = append(lines, fmt.Sprintf("dep %s %s", dep.Path, dep.Version))
	}
	for _, s := range info.Settings {
		lines = append(lines, fmt.Sprintf("build %s %s", s.Key, s.Value))
	}
	return lines
}

type options struct {
	Embedded bool
	Short    bool
}

func (o *options) AddFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&o.Embedded, "embedded", o.Embedded, "also print module, dependency and build settings")
	flags.BoolVar(&o.Short, "short", o.Short, "print the version number only")
}
