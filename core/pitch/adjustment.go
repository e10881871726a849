package pitch

import (
	"fmt"
	"math"
)

// MaxSemitones bounds the accepted adjustment to one octave either way.
const MaxSemitones = 12.0

// Adjustment is a vinyl-style pitch/speed change in semitones. Immutable
// once constructed; the zero value is the no-op adjustment.
type Adjustment struct {
	semitones float64
}

// NewAdjustment validates the semitone range and builds an Adjustment.
func NewAdjustment(semitones float64) (Adjustment, error) {
	if math.IsNaN(semitones) || math.Abs(semitones) > MaxSemitones {
		return Adjustment{}, fmt.Errorf("pitch adjustment %+.2f semitones out of range (max ±%.0f)", semitones, MaxSemitones)
	}
	return Adjustment{semitones: semitones}, nil
}

// Semitones returns the signed semitone delta.
func (a Adjustment) Semitones() float64 {
	return a.semitones
}

// Ratio returns the playback-rate ratio for this adjustment.
func (a Adjustment) Ratio() float64 {
	return Ratio(a.semitones)
}

// IsZero reports whether the adjustment is a no-op.
func (a Adjustment) IsZero() bool {
	return a.semitones == 0
}

// TargetRate returns the rate the audio must be resampled to so that
// playback at sourceRate comes out shifted by Ratio(). Higher pitch means
// a lower target rate: fewer samples played back at the original rate.
func (a Adjustment) TargetRate(sourceRate int) int {
	return int(math.Round(float64(sourceRate) / a.Ratio()))
}

// String formats the adjustment as a signed two-decimal value, e.g. "+1.50".
func (a Adjustment) String() string {
	return fmt.Sprintf("%+.2f", a.semitones)
}
