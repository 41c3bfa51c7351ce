package cli

import (
	"github.com/bookpm/bookpm/internal/book"
	"github.com/spf13/cobra"
)

var (
	installVersion string
	installBook    string
)

var installCmd = &cobra.Command{
	Use:   "install <plugin>",
	Short: "Install a plugin into a book",
	Long: `Install a plugin from npm into the book's node_modules.
Without --version, the newest version compatible with the configured engine version is chosen.`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVar(&installVersion, "version", "", "Install this exact version instead of resolving one")
	installCmd.Flags().StringVar(&installBook, "book", ".", "Book directory")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	b, err := book.Open(installBook, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	reg, err := buildRegistry(cmd)
	if err != nil {
		return err
	}
	return reg.Install(cmd.Context(), b, args[0], installVersion)
}
