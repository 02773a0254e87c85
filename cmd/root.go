package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mangadex",
	Short: "Browse, search and monitor manga on MangaDex.",
	Long: `Browse, search and monitor manga on MangaDex.

Provide a configuration file using one of the following methods:
1. Use the --config <path> or -c <path> flag.
2. Place a config.yaml file in the default user configuration directory (e.g., ~/.config/mangadex/).
3. Place a config.yaml file a folder inside your home directory (e.g., ~/.mangadex/).
4. Place a config.yaml file in the directory of the binary.

Without a config file the defaults apply: English chapters, no R18+ titles.`,
}

func init() {
	initRootFlags()
	initListingFlags()
	initSearchFlags()
	initPagesFlags()

	settingsCmd.AddCommand(settingsSetCmd)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(popularCmd)
	rootCmd.AddCommand(latestCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(detailsCmd)
	rootCmd.AddCommand(chaptersCmd)
	rootCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(filtersCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(monitorCmd)
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
