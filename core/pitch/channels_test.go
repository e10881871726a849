package pitch

import (
	"context"
	"math"
	"testing"

	"github.com/cwbudde/algo-dsp/dsp/resample"

	"vinylshift/core/audio"
)

func sineBuffer(t *testing.T, channels, frames, rate int) *audio.Buffer {
	t.Helper()
	data := make([][]float64, channels)
	for ch := range data {
		data[ch] = make([]float64, frames)
		freq := 220.0 * float64(ch+1)
		for i := range data[ch] {
			data[ch][i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
		}
	}
	buf, err := audio.NewBuffer(data, rate)
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}
	return buf
}

func fastProcessor() *ChannelProcessor {
	return &ChannelProcessor{quality: resample.QualityFast}
}

func TestProcessZeroAdjustmentIsIdentity(t *testing.T) {
	buf := sineBuffer(t, 2, 4410, 44100)
	adj, _ := NewAdjustment(0)

	out, err := NewChannelProcessor().Process(context.Background(), buf, adj)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if out != buf {
		t.Fatal("zero adjustment should return the input buffer untouched")
	}
	for ch := range buf.Channels {
		for i := range buf.Channels[ch] {
			if out.Channels[ch][i] != buf.Channels[ch][i] {
				t.Fatalf("channel %d sample %d changed on zero adjustment", ch, i)
			}
		}
	}
}

func TestProcessOctaveUpHalvesLength(t *testing.T) {
	// 2.0 seconds of mono 44100 Hz; +12 semitones should leave ~44100 frames.
	buf := sineBuffer(t, 1, 88200, 44100)
	adj, _ := NewAdjustment(12)

	out, err := fastProcessor().Process(context.Background(), buf, adj)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if diff := out.NumFrames() - 44100; diff < -4 || diff > 4 {
		t.Errorf("NumFrames() = %d, want 44100 within a few samples", out.NumFrames())
	}
	if out.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want original 44100", out.SampleRate)
	}
}

func TestProcessOctaveDownDoublesLength(t *testing.T) {
	buf := sineBuffer(t, 1, 44100, 44100)
	adj, _ := NewAdjustment(-12)

	out, err := fastProcessor().Process(context.Background(), buf, adj)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if diff := out.NumFrames() - 88200; diff < -4 || diff > 4 {
		t.Errorf("NumFrames() = %d, want 88200 within a few samples", out.NumFrames())
	}
}

func TestProcessDurationScalesWithRatio(t *testing.T) {
	tests := []struct {
		name      string
		semitones float64
	}{
		{"one semitone up", 1},
		{"five semitones down", -5},
		{"fifty cents up", 0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := sineBuffer(t, 1, 44100, 44100)
			adj, err := NewAdjustment(tc.semitones)
			if err != nil {
				t.Fatalf("NewAdjustment() error = %v", err)
			}

			out, err := fastProcessor().Process(context.Background(), buf, adj)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}

			want := float64(buf.NumFrames()) / adj.Ratio()
			if diff := math.Abs(float64(out.NumFrames()) - want); diff > 4 {
				t.Errorf("NumFrames() = %d, want %.0f within a few samples", out.NumFrames(), want)
			}
		})
	}
}

func TestProcessPreservesChannelShape(t *testing.T) {
	buf := sineBuffer(t, 3, 22050, 44100)
	original := make([][]float64, len(buf.Channels))
	for ch := range buf.Channels {
		original[ch] = append([]float64(nil), buf.Channels[ch]...)
	}

	adj, _ := NewAdjustment(7)
	out, err := fastProcessor().Process(context.Background(), buf, adj)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if out.NumChannels() != 3 {
		t.Fatalf("NumChannels() = %d, want 3", out.NumChannels())
	}
	for ch := 1; ch < out.NumChannels(); ch++ {
		if len(out.Channels[ch]) != len(out.Channels[0]) {
			t.Errorf("channel %d length %d differs from channel 0 length %d",
				ch, len(out.Channels[ch]), len(out.Channels[0]))
		}
	}

	// Input must not be mutated.
	for ch := range buf.Channels {
		for i := range buf.Channels[ch] {
			if buf.Channels[ch][i] != original[ch][i] {
				t.Fatalf("input channel %d mutated at sample %d", ch, i)
			}
		}
	}
}

func TestProcessCancelledContext(t *testing.T) {
	buf := sineBuffer(t, 1, 4410, 44100)
	adj, _ := NewAdjustment(3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := fastProcessor().Process(ctx, buf, adj); err == nil {
		t.Fatal("Process() with cancelled context should fail")
	}
}
