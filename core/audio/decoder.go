package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os/exec"
	"path/filepath"
	"strings"

	"vinylshift/logger"
)

// Decoder turns an input file into a Buffer at its native sample rate and
// channel layout.
type Decoder interface {
	Decode(ctx context.Context, path string) (*Buffer, error)
}

// FFmpegDecoder reads WAV files natively and pipes everything else through
// ffmpeg as raw float64 PCM, preserving the original rate and channels.
type FFmpegDecoder struct {
	ffmpegPath string
	prober     *FormatProber
}

// NewFFmpegDecoder creates a decoder sharing the given prober.
func NewFFmpegDecoder(ffmpegPath string, prober *FormatProber) *FFmpegDecoder {
	return &FFmpegDecoder{ffmpegPath: ffmpegPath, prober: prober}
}

// Decode loads the whole file into a planar buffer.
func (d *FFmpegDecoder) Decode(ctx context.Context, path string) (*Buffer, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		buf, err := readWAV(path)
		if err == nil {
			return buf, nil
		}
		logger.Debug("native wav decode failed, falling back to ffmpeg",
			logger.String("file", path),
			logger.ErrorField(err))
	}
	return d.decodePipe(ctx, path)
}

// decodePipe streams raw f64le PCM out of ffmpeg. The probe supplies the
// rate and channel count needed to deinterleave the stream.
func (d *FFmpegDecoder) decodePipe(ctx context.Context, path string) (*Buffer, error) {
	info := d.prober.Probe(ctx, path)
	if info.SampleRate <= 0 || info.Channels <= 0 {
		return nil, fmt.Errorf("cannot determine sample rate and channel count for %s", path)
	}

	args := []string{
		"-i", path,
		"-f", "f64le",
		"-acodec", "pcm_f64le",
		"-loglevel", "error",
		"pipe:1",
	}

	cmd := exec.CommandContext(ctx, d.ffmpegPath, args...)
	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg decode failed for %s: %w\nFFmpeg Error: %s", path, err, stderr.String())
	}

	raw := out.Bytes()
	if len(raw) < 8 {
		return nil, fmt.Errorf("ffmpeg produced no audio data for %s", path)
	}

	samples := make([]float64, len(raw)/8)
	for i := range samples {
		samples[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}

	logger.Debug("decoded audio via ffmpeg",
		logger.String("file", path),
		logger.Int("sampleRate", info.SampleRate),
		logger.Int("channels", info.Channels),
		logger.Int("frames", len(samples)/info.Channels))

	return FromInterleaved(samples, info.Channels, info.SampleRate)
}
