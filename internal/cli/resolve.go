package cli

import (
	"fmt"

	"github.com/bookpm/bookpm/internal/registry"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <plugin>",
	Short: "Print the newest version of a plugin compatible with the engine",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	reg, err := buildRegistry(cmd)
	if err != nil {
		return err
	}

	version, ok, err := reg.Resolve(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !ok {
		return &registry.NoSatisfactoryVersionError{Plugin: args[0]}
	}

	fmt.Fprintln(cmd.OutOrStdout(), version)
	return nil
}
