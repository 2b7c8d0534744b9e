package inspectcmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"contentpackage.run/internal/cli"
	internalcmd "contentpackage.run/internal/cmd"
)

type InspectorFactory interface {
	Inspector() Inspector
}

type Inspector interface {
	Package(ctx context.Context, path string) (*internalcmd.PackageInfo, error)
}

func NewCmd(factory InspectorFactory) *cobra.Command {
	const (
		cmdUse   = "inspect package_path [--entries]"
		cmdShort = "print properties and filters of a content package"
	)

	cmd := &cobra.Command{
		Use:   cmdUse,
		Short: cmdShort,
		Args:  cobra.ExactArgs(1),
	}

	var opts options

	opts.AddFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		info, err := factory.Inspector().Package(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("inspecting package: %w", err)
		}

		printer := cli.NewPrinter(
			cli.WithOut{Out: cmd.OutOrStdout()},
			cli.WithErr{Err: cmd.ErrOrStderr()},
		)

		tables := []internalcmd.Table{info.PropertiesTable(), info.FiltersTable()}
		if opts.Entries {
			tables = append(tables, info.EntriesTable())
		}
		for _, t := range tables {
			if err := printer.PrintTable(t); err != nil {
				return err
			}
		}

		return nil
	}

	return cmd
}

type options struct {
	Entries bool
}

func (o *options) AddFlags(flags *pflag.FlagSet) {
	flags.BoolVar(
		&o.Entries,
		"entries",
		o.Entries,
		"also list archive entries with their sizes",
	)
}
