package pitch

import (
	"context"
	"fmt"
	"sync"

	"github.com/cwbudde/algo-dsp/dsp/resample"

	"vinylshift/core/audio"
	"vinylshift/logger"
)

// ChannelProcessor applies an Adjustment to a whole buffer by resampling
// every channel independently and reassembling the result in the original
// channel order.
type ChannelProcessor struct {
	quality resample.Quality
}

// NewChannelProcessor returns a processor using the highest filter quality.
func NewChannelProcessor() *ChannelProcessor {
	return &ChannelProcessor{quality: resample.QualityBest}
}

// Process resamples buf per channel at the adjustment's target rate. The
// input buffer is never mutated; a zero adjustment returns it untouched
// with no resampling pass. The returned buffer keeps the source sample
// rate so playback realizes the pitch/speed change.
func (p *ChannelProcessor) Process(ctx context.Context, buf *audio.Buffer, adj Adjustment) (*audio.Buffer, error) {
	if adj.IsZero() {
		return buf, nil
	}

	sourceRate := buf.SampleRate
	targetRate := adj.TargetRate(sourceRate)

	logger.Debug("resampling channels",
		logger.Int("channels", buf.NumChannels()),
		logger.Int("sourceRate", sourceRate),
		logger.Int("targetRate", targetRate),
		logger.Float64("ratio", adj.Ratio()))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// All channels share the same rate pair, so each independently produces
	// the same output length and can run on its own goroutine.
	shifted := make([][]float64, buf.NumChannels())
	errs := make([]error, buf.NumChannels())

	var wg sync.WaitGroup
	for ch, samples := range buf.Channels {
		wg.Add(1)
		go func(ch int, samples []float64) {
			defer wg.Done()
			shifted[ch], errs[ch] = resampleChannel(samples, sourceRate, targetRate, p.quality)
		}(ch, samples)
	}
	wg.Wait()

	for ch, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", ch, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The engine is deterministic for a fixed rate pair, but guard the
	// equal-length invariant against tail rounding anyway.
	minFrames := len(shifted[0])
	for _, ch := range shifted[1:] {
		if len(ch) < minFrames {
			minFrames = len(ch)
		}
	}
	for ch := range shifted {
		shifted[ch] = shifted[ch][:minFrames]
	}

	return audio.NewBuffer(shifted, sourceRate)
}
