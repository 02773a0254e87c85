package cmd

import (
	"fmt"

	"mangadex/internal/buildinfo"

	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version info",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println("Version:", buildinfo.Version)
		fmt.Println("Commit:", buildinfo.Commit)
		fmt.Println("Build date:", buildinfo.Date)
		fmt.Println("User agent:", buildinfo.UserAgent())
	},
}
