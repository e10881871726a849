package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vinylshift/core/deps"
	"vinylshift/logger"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the external tools are installed",
	Long:  `Check looks up every external binary this program shells out to and reports what is missing.`,
	Run: func(cmd *cobra.Command, args []string) {
		bins := append(requiredTools(), cfg.YtdlpPath)
		if err := deps.NewChecker(bins...).Report(); err != nil {
			logger.Sync()
			os.Exit(1)
		}
		fmt.Println("All dependencies present.")
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
