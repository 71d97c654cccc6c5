package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/tubesiphon/tubesiphon/internal/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tubesiphon v%s %s/%s\n", version.Version, runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
