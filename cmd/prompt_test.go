package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vinylshift/config"
)

func TestUnescapePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "/music/song.wav", "/music/song.wav"},
		{"trailing newline", "/music/song.wav\n", "/music/song.wav"},
		{"double quoted", `"/music/my song.wav"`, "/music/my song.wav"},
		{"single quoted", "'/music/my song.wav'", "/music/my song.wav"},
		{"escaped spaces", `/music/my\ song.wav`, "/music/my song.wav"},
		{"escaped parens", `/music/take\ \(live\).flac`, "/music/take (live).flac"},
		{"escaped brackets", `/music/\[remix\].mp3`, "/music/[remix].mp3"},
		{"escaped comma and ampersand", `/music/a\,b\&c.wav`, "/music/a,b&c.wav"},
		{"escaped semicolon", `/music/a\;b.wav`, "/music/a;b.wav"},
		{"escaped quotes", `/music/a\"b\'c.wav`, `/music/a"b'c.wav`},
		{"empty", "   \n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unescapePath(tt.in); got != tt.want {
				t.Errorf("unescapePath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnescapePathExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}
	if got := unescapePath("~/Music/a.wav"); got != filepath.Join(home, "Music/a.wav") {
		t.Errorf("unescapePath(~/Music/a.wav) = %q", got)
	}
	if got := unescapePath("~"); got != home {
		t.Errorf("unescapePath(~) = %q, want %q", got, home)
	}
}

func TestPromptForPathRetriesUntilValid(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "song.wav")
	if err := os.WriteFile(valid, []byte("data"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	unsupported := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(unsupported, []byte("text"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	input := strings.Join([]string{
		filepath.Join(dir, "missing.wav"),
		unsupported,
		dir,
		valid,
	}, "\n") + "\n"

	var out bytes.Buffer
	got, err := promptForPath(bufio.NewReader(strings.NewReader(input)), &out)
	if err != nil {
		t.Fatalf("promptForPath() error = %v", err)
	}
	if got != valid {
		t.Errorf("promptForPath() = %q, want %q", got, valid)
	}
	for _, wantMsg := range []string{"File not found", "Unsupported file type", "is a directory"} {
		if !strings.Contains(out.String(), wantMsg) {
			t.Errorf("prompt output missing %q:\n%s", wantMsg, out.String())
		}
	}
}

func TestPromptForPathEOF(t *testing.T) {
	var out bytes.Buffer
	if _, err := promptForPath(bufio.NewReader(strings.NewReader("")), &out); err == nil {
		t.Error("promptForPath() on EOF should fail")
	}
}

func TestPromptForPathLastLineWithoutNewline(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "song.flac")
	if err := os.WriteFile(valid, []byte("data"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	var out bytes.Buffer
	got, err := promptForPath(bufio.NewReader(strings.NewReader(valid)), &out)
	if err != nil {
		t.Fatalf("promptForPath() error = %v", err)
	}
	if got != valid {
		t.Errorf("promptForPath() = %q, want %q", got, valid)
	}
}

func TestPromptForSemitones(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"first try", "1.5\n", 1.5},
		{"negative", "-2\n", -2},
		{"retries past garbage", "abc\n13\n-12.5\n\n0.25\n", 0.25},
		{"boundary", "12\n", 12},
		{"no trailing newline", "-5", -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			adj, err := promptForSemitones(bufio.NewReader(strings.NewReader(tt.input)), &out)
			if err != nil {
				t.Fatalf("promptForSemitones() error = %v", err)
			}
			if adj.Semitones() != tt.want {
				t.Errorf("promptForSemitones() = %v, want %v", adj.Semitones(), tt.want)
			}
		})
	}
}

func TestPromptForSemitonesEOF(t *testing.T) {
	var out bytes.Buffer
	if _, err := promptForSemitones(bufio.NewReader(strings.NewReader("nope\n")), &out); err == nil {
		t.Error("promptForSemitones() should fail when input ends without a valid value")
	}
	if !strings.Contains(out.String(), "Not a number") {
		t.Errorf("prompt output missing parse complaint:\n%s", out.String())
	}
}

func TestRequiredToolsDerivesFFprobe(t *testing.T) {
	tests := []struct {
		ffmpeg string
		want   []string
	}{
		{"ffmpeg", []string{"ffmpeg", "ffprobe"}},
		{"/usr/local/bin/ffmpeg", []string{"/usr/local/bin/ffmpeg", "/usr/local/bin/ffprobe"}},
	}

	for _, tt := range tests {
		cfgBackup := cfg
		cfg = &config.Config{FFmpegPath: tt.ffmpeg}
		got := requiredTools()
		cfg = cfgBackup

		if fmt.Sprint(got) != fmt.Sprint(tt.want) {
			t.Errorf("requiredTools() with %q = %v, want %v", tt.ffmpeg, got, tt.want)
		}
	}
}
