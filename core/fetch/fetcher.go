package fetch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"vinylshift/logger"
)

// Fetcher downloads remote media with yt-dlp and extracts the audio as a
// 320 kbps MP3 into the download directory.
type Fetcher struct {
	ytdlpPath   string
	downloadDir string
}

// NewFetcher creates a fetcher using the given yt-dlp binary.
func NewFetcher(ytdlpPath, downloadDir string) *Fetcher {
	return &Fetcher{ytdlpPath: ytdlpPath, downloadDir: downloadDir}
}

// Fetch downloads the best audio stream for url and returns the path of the
// extracted MP3 file.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := os.MkdirAll(f.downloadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create download directory %s: %w", f.downloadDir, err)
	}

	args := []string{
		"-f", "bestaudio/best",
		"--no-playlist",
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", "320K",
		"-o", filepath.Join(f.downloadDir, "%(title)s.%(ext)s"),
		"--no-simulate",
		"--print", "after_move:filepath",
		"--no-warnings",
		url,
	}

	logger.Info("fetching audio",
		logger.String("url", url),
		logger.String("downloadDir", f.downloadDir))

	cmd := exec.CommandContext(ctx, f.ytdlpPath, args...)
	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("yt-dlp failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	path := strings.TrimSpace(lines[len(lines)-1])
	if path == "" {
		return "", fmt.Errorf("yt-dlp reported no output file for %s", url)
	}

	logger.Info("fetch complete", logger.String("file", path))
	return path, nil
}
