package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/bookpm/bookpm/internal/book"
	"github.com/bookpm/bookpm/internal/registry"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	listBook string
	listAt   string
	listJSON bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed plugins",
	Long: `List the plugins installed in a book, followed by the bundled defaults it does not override.
With --at, list only the plugins installed under that directory.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listBook, "book", ".", "Book directory")
	listCmd.Flags().StringVar(&listAt, "at", "", "List plugins installed under this directory only")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	reg, err := buildRegistry(cmd)
	if err != nil {
		return err
	}

	var plugins []registry.InstalledPlugin
	if listAt != "" {
		plugins, err = reg.ListInstalledAt(listAt)
	} else {
		var b *book.Book
		b, err = book.Open(listBook, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		plugins, err = reg.ListForProject(cmd.Context(), b)
	}
	if err != nil {
		return err
	}

	if listJSON {
		return printListJSON(cmd, plugins)
	}
	if len(plugins) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No plugins installed.")
		return nil
	}
	return printListTable(cmd, plugins)
}

func printListTable(cmd *cobra.Command, plugins []registry.InstalledPlugin) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tPATH")
	for _, p := range plugins {
		version := p.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, version, p.Path)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	noun := "plugins"
	if len(plugins) == 1 {
		noun = "plugin"
	}
	_, err := p.Fprintf(cmd.OutOrStdout(), "\n%d %s\n", len(plugins), noun)
	return err
}

func printListJSON(cmd *cobra.Command, plugins []registry.InstalledPlugin) error {
	if plugins == nil {
		plugins = []registry.InstalledPlugin{}
	}
	data, err := json.MarshalIndent(plugins, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
