package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vinylshift/config"
	"vinylshift/logger"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "vinylshift",
	Short: "Shift audio pitch and speed together, turntable style.",
	Long: `vinylshift resamples audio so that pitch and playback speed change by
the same ratio, exactly like spinning a record faster or slower. Run it
without arguments for an interactive session, or use the shift command
directly.`,
	Run: func(cmd *cobra.Command, args []string) {
		runInteractiveShift()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		cfg = config.Load()
		logger.Init(logger.Config{
			Level:      logger.LogLevel(cfg.LogLevel),
			OutputPath: cfg.LogPath,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAgeDays,
			Compress:   cfg.LogCompress,
		})
	})
}

// exitErr prints the error for the user, flushes the log and exits.
func exitErr(err error) {
	fmt.Fprintln(os.Stderr, err)
	logger.Sync()
	os.Exit(1)
}
