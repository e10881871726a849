package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"vinylshift/core/deps"
	"vinylshift/core/pipeline"
	"vinylshift/core/pitch"
)

var (
	shiftInput     string
	shiftSemitones float64
)

var shiftCmd = &cobra.Command{
	Use:   "shift [file]",
	Short: "Pitch-shift one audio file",
	Long: `Shift resamples the file so pitch and speed change together by
2^(semitones/12). The output keeps the original sample rate and lands next
to the input as <name>_vinyl<+n.nn><ext>. Missing arguments are asked for
interactively.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := shiftInput
		if input == "" && len(args) > 0 {
			input = args[0]
		}

		in := bufio.NewReader(os.Stdin)
		if input == "" {
			path, err := promptForPath(in, os.Stdout)
			if err != nil {
				exitErr(fmt.Errorf("no input file: %w", err))
			}
			input = path
		} else {
			input = unescapePath(input)
		}

		semitones := shiftSemitones
		if !cmd.Flags().Changed("semitones") {
			adj, err := promptForSemitones(in, os.Stdout)
			if err != nil {
				exitErr(fmt.Errorf("no pitch adjustment: %w", err))
			}
			semitones = adj.Semitones()
		}

		runShift(input, semitones)
	},
}

func init() {
	shiftCmd.Flags().StringVarP(&shiftInput, "input", "i", "", "audio file to process")
	shiftCmd.Flags().Float64VarP(&shiftSemitones, "semitones", "s", 0, "pitch adjustment in semitones, -12 to +12")
	rootCmd.AddCommand(shiftCmd)
}

// runInteractiveShift is the bare-invocation flow: prompt for everything.
func runInteractiveShift() {
	fmt.Println("vinylshift: pitch and speed change together, like a turntable.")

	in := bufio.NewReader(os.Stdin)
	input, err := promptForPath(in, os.Stdout)
	if err != nil {
		exitErr(fmt.Errorf("no input file: %w", err))
	}
	adj, err := promptForSemitones(in, os.Stdout)
	if err != nil {
		exitErr(fmt.Errorf("no pitch adjustment: %w", err))
	}

	runShift(input, adj.Semitones())
}

// runShift checks the toolchain, runs the pipeline and reports the result.
// Prompting is done by then, so an interrupt from here on cancels cleanly.
func runShift(input string, semitones float64) {
	if err := deps.NewChecker(requiredTools()...).CheckAll(); err != nil {
		exitErr(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Shifting %s by %+.2f semitones (rate ratio %.3fx)\n",
		input, semitones, pitch.Ratio(semitones))

	progress := make(chan float64, 64)
	consumed := make(chan struct{})
	go func() {
		defer close(consumed)
		reported := false
		for percent := range progress {
			reported = true
			fmt.Printf("\rTranscoding: %5.1f%%", percent)
		}
		if reported {
			fmt.Println()
		}
	}()

	res, err := pipeline.New(cfg.FFmpegPath).Run(ctx, input, semitones, progress)
	close(progress)
	<-consumed
	if err != nil {
		exitErr(err)
	}

	switch {
	case res.NoChange:
		fmt.Println("No adjustment requested; file left untouched.")
	case res.Warning != "":
		fmt.Printf("Warning: %s\n", res.Warning)
		fmt.Printf("Saved lossless fallback: %s\n", res.DeliverablePath)
	default:
		fmt.Printf("Saved: %s\n", res.DeliverablePath)
	}
}

// requiredTools lists the binaries the pipeline shells out to.
func requiredTools() []string {
	return []string{
		cfg.FFmpegPath,
		strings.Replace(cfg.FFmpegPath, "ffmpeg", "ffprobe", 1),
	}
}
