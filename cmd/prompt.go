package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"vinylshift/core/audio"
	"vinylshift/core/pitch"
)

// unescapePath cleans a path the way terminals deliver it on drag and
// drop: surrounding quotes stripped, shell escapes undone, ~ expanded.
func unescapePath(raw string) string {
	path := strings.TrimSpace(raw)
	if len(path) >= 2 {
		if (strings.HasPrefix(path, `"`) && strings.HasSuffix(path, `"`)) ||
			(strings.HasPrefix(path, "'") && strings.HasSuffix(path, "'")) {
			path = path[1 : len(path)-1]
		}
	}

	path = strings.NewReplacer(
		`\ `, " ",
		`\(`, "(",
		`\)`, ")",
		`\[`, "[",
		`\]`, "]",
		`\,`, ",",
		`\&`, "&",
		`\;`, ";",
		`\"`, `"`,
		`\'`, "'",
		`\⧸`, "⧸",
	).Replace(path)

	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	} else if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return path
}

// promptForPath asks until it gets an existing, supported audio file.
func promptForPath(in *bufio.Reader, out io.Writer) (string, error) {
	for {
		fmt.Fprint(out, "Audio file (drag and drop works): ")
		line, readErr := in.ReadString('\n')

		path := unescapePath(line)
		if path != "" {
			fi, err := os.Stat(path)
			switch {
			case err != nil:
				fmt.Fprintf(out, "File not found: %s\n", path)
			case fi.IsDir():
				fmt.Fprintf(out, "%s is a directory\n", path)
			case !audio.IsSupportedFile(path):
				fmt.Fprintf(out, "Unsupported file type %q. Supported: %s\n",
					filepath.Ext(path), strings.Join(audio.SupportedExtensions(), " "))
			default:
				return path, nil
			}
		}

		if readErr != nil {
			return "", readErr
		}
	}
}

// promptForSemitones asks until it gets a number inside the valid range.
func promptForSemitones(in *bufio.Reader, out io.Writer) (pitch.Adjustment, error) {
	for {
		fmt.Fprint(out, "Semitones to shift, -12 to +12 (e.g. 1.5 or -2): ")
		line, readErr := in.ReadString('\n')

		if text := strings.TrimSpace(line); text != "" {
			value, err := strconv.ParseFloat(text, 64)
			if err != nil {
				fmt.Fprintf(out, "Not a number: %s\n", text)
			} else if adj, err := pitch.NewAdjustment(value); err != nil {
				fmt.Fprintln(out, err)
			} else {
				return adj, nil
			}
		}

		if readErr != nil {
			return pitch.Adjustment{}, readErr
		}
	}
}
