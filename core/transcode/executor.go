package transcode

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/google/uuid"

	"vinylshift/logger"
)

// Job describes one WAV-to-MP3 conversion.
type Job struct {
	ID               uuid.UUID
	SourcePath       string
	DestinationPath  string
	Bitrate          string
	Channels         int
	ExpectedDuration float64 // seconds of audio expected in the source
}

// NewJob creates a job with the fixed delivery settings: 320 kbps CBR,
// stereo downmix.
func NewJob(sourcePath, destinationPath string, expectedDuration float64) Job {
	return Job{
		ID:               uuid.New(),
		SourcePath:       sourcePath,
		DestinationPath:  destinationPath,
		Bitrate:          "320k",
		Channels:         2,
		ExpectedDuration: expectedDuration,
	}
}

// Executor runs MP3 transcodes through ffmpeg.
type Executor struct {
	ffmpegPath string
}

// NewExecutor creates an executor using the given ffmpeg binary.
func NewExecutor(ffmpegPath string) *Executor {
	return &Executor{ffmpegPath: ffmpegPath}
}

// Run executes the job. Percentages are delivered on progress (when non-nil)
// without ever blocking the transcode; a slow consumer just misses updates.
// Success is judged solely by the process exit status, never by progress
// reaching 100.
func (e *Executor) Run(ctx context.Context, job Job, progress chan<- float64) error {
	args := []string{
		"-i", job.SourcePath,
		"-codec:a", "libmp3lame",
		"-b:a", job.Bitrate,
		"-ac", strconv.Itoa(job.Channels),
		"-threads", "0",
		"-progress", "pipe:1",
		"-y",
		job.DestinationPath,
	}

	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open ffmpeg progress pipe: %w", err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg for %s: %w", job.SourcePath, err)
	}

	logger.Info("mp3 transcode started",
		logger.String("jobId", job.ID.String()),
		logger.String("source", job.SourcePath),
		logger.String("destination", job.DestinationPath),
		logger.String("bitrate", job.Bitrate))

	parser := newProgressParser(job.ExpectedDuration)
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		percent, ok := parser.ParseLine(scanner.Text())
		if !ok {
			continue
		}
		send(progress, percent)
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg transcode failed for %s: %w\nFFmpeg Error: %s", job.SourcePath, err, stderr.String())
	}

	send(progress, 100)
	logger.Info("mp3 transcode finished",
		logger.String("jobId", job.ID.String()),
		logger.String("destination", job.DestinationPath))
	return nil
}

func send(progress chan<- float64, percent float64) {
	if progress == nil {
		return
	}
	select {
	case progress <- percent:
	default:
	}
}
