package transcode

import (
	"fmt"
	"strings"
)

// progressParser turns ffmpeg -progress output into a running completion
// percentage. It holds the last percentage it reported so that out-of-order
// or repeated timestamps can never move the number backwards.
type progressParser struct {
	expectedDuration float64
	lastPercent      float64
}

func newProgressParser(expectedDuration float64) *progressParser {
	return &progressParser{expectedDuration: expectedDuration}
}

// ParseLine consumes one progress line. It reports the current percentage
// and whether this line carried a usable out_time_ms value. Lines other
// than out_time_ms, malformed values and an unknown expected duration all
// leave the percentage where it was.
func (p *progressParser) ParseLine(line string) (float64, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "out_time_ms=") {
		return p.lastPercent, false
	}

	var micros int64
	if _, err := fmt.Sscanf(line, "out_time_ms=%d", &micros); err != nil {
		return p.lastPercent, false
	}
	if p.expectedDuration <= 0 {
		return p.lastPercent, false
	}

	elapsed := float64(micros) / 1e6
	percent := elapsed / p.expectedDuration * 100
	if percent > 100 {
		percent = 100
	}
	if percent > p.lastPercent {
		p.lastPercent = percent
	}
	return p.lastPercent, true
}
