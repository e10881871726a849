package pitch

import (
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/resample"
)

// resampleChannel converts a single channel between sample rates with a
// Kaiser windowed-sinc polyphase filter. Each call builds a fresh engine so
// filter state never leaks between channels.
func resampleChannel(samples []float64, sourceRate, targetRate int, quality resample.Quality) ([]float64, error) {
	r, err := resample.NewForRates(float64(sourceRate), float64(targetRate), resample.WithQuality(quality))
	if err != nil {
		return nil, fmt.Errorf("failed to create resampler for %d -> %d Hz: %w", sourceRate, targetRate, err)
	}
	return r.Process(samples), nil
}
