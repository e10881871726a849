package pitch

import "math"

// Ratio converts a semitone delta to the linear playback-rate ratio of a
// vinyl-style shift. Ratio(0) == 1, Ratio(12) == 2, Ratio(-12) == 0.5.
func Ratio(semitones float64) float64 {
	return math.Pow(2, semitones/12)
}
