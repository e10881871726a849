package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// stubYtdlp writes an executable that records its arguments and prints the
// given stdout before exiting with the given code.
func stubYtdlp(t *testing.T, dir, stdout, stderrMsg string, exitCode int) (bin, argsFile string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub executable requires a POSIX shell")
	}

	argsFile = filepath.Join(dir, "args.txt")
	script := fmt.Sprintf("#!/bin/sh\nprintf '%%s\\n' \"$@\" > %q\n", argsFile)
	if stdout != "" {
		script += fmt.Sprintf("echo %q\n", stdout)
	}
	if stderrMsg != "" {
		script += fmt.Sprintf("echo %q >&2\n", stderrMsg)
	}
	script += fmt.Sprintf("exit %d\n", exitCode)

	bin = filepath.Join(dir, "yt-dlp")
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatalf("writing stub yt-dlp: %v", err)
	}
	return bin, argsFile
}

func TestFetchReturnsPrintedPath(t *testing.T) {
	dir := t.TempDir()
	downloads := filepath.Join(dir, "downloads")
	wantFile := filepath.Join(downloads, "My Song.mp3")
	bin, argsFile := stubYtdlp(t, dir, wantFile, "", 0)

	got, err := NewFetcher(bin, downloads).Fetch(context.Background(), "https://example.com/watch?v=abc")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got != wantFile {
		t.Errorf("Fetch() = %q, want %q", got, wantFile)
	}

	if _, err := os.Stat(downloads); err != nil {
		t.Errorf("download directory not created: %v", err)
	}

	raw, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("reading recorded args: %v", err)
	}
	args := string(raw)
	for _, want := range []string{
		"-f\nbestaudio/best",
		"--no-playlist",
		"--audio-format\nmp3",
		"--audio-quality\n320K",
		"--no-simulate",
		"--print\nafter_move:filepath",
		"https://example.com/watch?v=abc",
	} {
		if !strings.Contains(args, want) {
			t.Errorf("yt-dlp args missing %q:\n%s", want, args)
		}
	}
}

func TestFetchFailureCarriesStderr(t *testing.T) {
	dir := t.TempDir()
	bin, _ := stubYtdlp(t, dir, "", "ERROR: unsupported URL", 1)

	_, err := NewFetcher(bin, filepath.Join(dir, "downloads")).Fetch(context.Background(), "https://bad")
	if err == nil {
		t.Fatal("Fetch() succeeded, want error on non-zero exit")
	}
	if !strings.Contains(err.Error(), "unsupported URL") {
		t.Errorf("error does not carry stderr: %v", err)
	}
}

func TestFetchEmptyOutput(t *testing.T) {
	dir := t.TempDir()
	bin, _ := stubYtdlp(t, dir, "", "", 0)

	_, err := NewFetcher(bin, filepath.Join(dir, "downloads")).Fetch(context.Background(), "https://example.com")
	if err == nil {
		t.Fatal("Fetch() succeeded with no printed path, want error")
	}
}
