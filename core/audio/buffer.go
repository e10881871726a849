package audio

import "fmt"

// Buffer holds decoded audio as planar float64 channels. All channels have
// the same length at every stage; channel order is preserved end to end.
// SampleRate is the rate the data is meant to be played back at, which for
// a vinyl shift stays the original file's rate even after resampling.
type Buffer struct {
	Channels   [][]float64
	SampleRate int
}

// NewBuffer validates channel shape and wraps the data. The slices are not
// copied; the buffer takes ownership.
func NewBuffer(channels [][]float64, sampleRate int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("buffer has no channels")
	}
	frames := len(channels[0])
	for i, ch := range channels[1:] {
		if len(ch) != frames {
			return nil, fmt.Errorf("channel %d has %d frames, channel 0 has %d", i+1, len(ch), frames)
		}
	}
	return &Buffer{Channels: channels, SampleRate: sampleRate}, nil
}

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int {
	return len(b.Channels)
}

// NumFrames returns the per-channel sample count.
func (b *Buffer) NumFrames() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Duration returns the playback length in seconds at the buffer's rate.
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(b.NumFrames()) / float64(b.SampleRate)
}

// Interleaved flattens the planar channels into frame-major order
// (L0 R0 L1 R1 ...), the layout PCM writers expect.
func (b *Buffer) Interleaved() []float64 {
	frames := b.NumFrames()
	chans := b.NumChannels()
	out := make([]float64, frames*chans)
	for ch, data := range b.Channels {
		for i, s := range data {
			out[i*chans+ch] = s
		}
	}
	return out
}

// FromInterleaved splits frame-major samples back into planar channels.
// Trailing samples that do not fill a whole frame are dropped.
func FromInterleaved(data []float64, channels, sampleRate int) (*Buffer, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count %d", channels)
	}
	frames := len(data) / channels
	planar := make([][]float64, channels)
	for ch := range planar {
		planar[ch] = make([]float64, frames)
		for i := 0; i < frames; i++ {
			planar[ch][i] = data[i*channels+ch]
		}
	}
	return NewBuffer(planar, sampleRate)
}
