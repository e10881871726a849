package audio

import (
	"fmt"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	maxInt16 = 1<<15 - 1
	maxInt24 = 1<<23 - 1
	maxInt32 = 1<<31 - 1
)

func scaleForBitDepth(bitDepth int) float64 {
	switch bitDepth {
	case 16:
		return maxInt16
	case 24:
		return maxInt24
	case 32:
		return maxInt32
	}
	return 0
}

// readWAV decodes an integer PCM WAV file into planar float64 channels.
// Float and exotic WAV variants are rejected here and handled by the
// ffmpeg fallback instead.
func readWAV(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("not a valid wav file: %s", path)
	}

	pcm, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read wav data from %s: %w", path, err)
	}
	if pcm.Format == nil || len(pcm.Data) == 0 {
		return nil, fmt.Errorf("wav file %s contains no samples", path)
	}

	bitDepth := pcm.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(decoder.BitDepth)
	}
	scale := scaleForBitDepth(bitDepth)
	if scale == 0 {
		return nil, fmt.Errorf("unsupported wav bit depth %d in %s", bitDepth, path)
	}

	floats := make([]float64, len(pcm.Data))
	for i, v := range pcm.Data {
		floats[i] = float64(v) / scale
	}
	return FromInterleaved(floats, pcm.Format.NumChannels, pcm.Format.SampleRate)
}

// writeWAV encodes the buffer as integer PCM WAV at the given bit depth.
// The caller is responsible for atomicity; this writes path directly.
func writeWAV(path string, buf *Buffer, bitDepth int) error {
	scale := scaleForBitDepth(bitDepth)
	if scale == 0 {
		return fmt.Errorf("unsupported wav bit depth %d", bitDepth)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	interleaved := buf.Interleaved()
	data := make([]int, len(interleaved))
	for i, s := range interleaved {
		data[i] = int(math.Round(clampSample(s) * scale))
	}

	enc := wav.NewEncoder(f, buf.SampleRate, bitDepth, buf.NumChannels(), 1)
	pcm := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: buf.NumChannels(),
			SampleRate:  buf.SampleRate,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(pcm); err != nil {
		f.Close()
		return fmt.Errorf("failed to write wav data to %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to finalize wav file %s: %w", path, err)
	}
	return f.Close()
}

func clampSample(s float64) float64 {
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return s
}
