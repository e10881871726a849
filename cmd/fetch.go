package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"vinylshift/core/deps"
	"vinylshift/core/fetch"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Download a track as a 320 kbps MP3",
	Long: `Fetch downloads the best audio stream of the given URL with yt-dlp and
extracts it as a 320 kbps MP3 into the download directory. The result is
ready to be run through shift.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// yt-dlp needs ffmpeg for the MP3 extraction step.
		if err := deps.NewChecker(cfg.YtdlpPath, cfg.FFmpegPath).CheckAll(); err != nil {
			exitErr(err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		path, err := fetch.NewFetcher(cfg.YtdlpPath, cfg.DownloadDir).Fetch(ctx, args[0])
		if err != nil {
			exitErr(err)
		}
		fmt.Printf("Saved: %s\n", path)
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
