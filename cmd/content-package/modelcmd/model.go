package modelcmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"contentpackage.run/internal/cli"
	internalcmd "contentpackage.run/internal/cmd"
	"contentpackage.run/internal/model"
)

type Reader interface {
	ContentPackagesForNode(nodeDir string) ([]model.ContentPackageFile, error)
	HasRole(nodeDir, roleName string) (bool, error)
	CloudManagerTargets(nodeDir string) ([]string, error)
}

func NewCmd(reader Reader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "query the model.yaml of a node directory",
	}

	cmd.AddCommand(
		newPackagesCmd(reader),
		newHasRoleCmd(reader),
		newCloudTargetsCmd(reader),
	)

	return cmd
}

func newPackagesCmd(reader Reader) *cobra.Command {
	return &cobra.Command{
		Use:   "packages node_dir",
		Short: "list files flagged for content packaging",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := reader.ContentPackagesForNode(args[0])
			if err != nil {
				return fmt.Errorf("reading model: %w", err)
			}

			return printer(cmd).PrintTable(internalcmd.ModelPackagesTable(files))
		},
	}
}

func newHasRoleCmd(reader Reader) *cobra.Command {
	return &cobra.Command{
		Use:   "has-role node_dir role",
		Short: "print whether the node has the given role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := reader.HasRole(args[0], args[1])
			if err != nil {
				return fmt.Errorf("reading model: %w", err)
			}

			return printer(cmd).PrintLines(strconv.FormatBool(ok))
		},
	}
}

func newCloudTargetsCmd(reader Reader) *cobra.Command {
	return &cobra.Command{
		Use:   "cloud-targets node_dir",
		Short: "print the merged cloudManager.target values of all roles, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := reader.CloudManagerTargets(args[0])
			if err != nil {
				return fmt.Errorf("reading model: %w", err)
			}

			return printer(cmd).PrintLines(targets...)
		},
	}
}

func printer(cmd *cobra.Command) *cli.Printer {
	return cli.NewPrinter(
		cli.WithOut{Out: cmd.OutOrStdout()},
		cli.WithErr{Err: cmd.ErrOrStderr()},
	)
}
