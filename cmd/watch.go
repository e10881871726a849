package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"vinylshift/core/deps"
	"vinylshift/core/pipeline"
	"vinylshift/core/watch"
)

var (
	watchDir           string
	watchSemitonesFlag float64
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Pitch-shift every audio file dropped into a directory",
	Long: `Watch keeps running and applies a fixed pitch adjustment to every
supported audio file that appears in the directory. Already shifted files
(the _vinyl suffix) are skipped. Stop with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := watchDir
		if dir == "" && len(args) > 0 {
			dir = args[0]
		}
		if dir == "" {
			dir = cfg.WatchDir
		}
		if dir == "" {
			exitErr(errors.New("no watch directory: pass one or set WATCH_DIR"))
		}
		dir = unescapePath(dir)

		semitones := watchSemitonesFlag
		if !cmd.Flags().Changed("semitones") {
			semitones = cfg.WatchSemitones
		}
		if semitones == 0 {
			exitErr(errors.New("watch mode needs a non-zero adjustment: pass --semitones or set WATCH_SEMITONES"))
		}

		if err := deps.NewChecker(requiredTools()...).CheckAll(); err != nil {
			exitErr(err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Watching %s, shifting drops by %+.2f semitones. Ctrl-C to stop.\n", dir, semitones)

		w := watch.NewWatcher(dir, semitones, pipeline.New(cfg.FFmpegPath))
		if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			exitErr(err)
		}
		fmt.Println("Watch stopped.")
	},
}

func init() {
	watchCmd.Flags().StringVarP(&watchDir, "dir", "d", "", "directory to watch")
	watchCmd.Flags().Float64VarP(&watchSemitonesFlag, "semitones", "s", 0, "pitch adjustment applied to every drop")
	rootCmd.AddCommand(watchCmd)
}
