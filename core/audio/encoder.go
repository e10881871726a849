package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// Encoder writes a buffer to disk losslessly in a given container/subtype.
type Encoder interface {
	Encode(ctx context.Context, buf *Buffer, path string, container Container, subtype Subtype) error
}

// FileEncoder writes integer PCM WAV natively and delegates FLAC, AIFF, AU
// and float WAV output to ffmpeg over a raw PCM pipe. Output appears
// atomically: data lands under a temp name in the target directory and is
// renamed into place only after a clean finish.
type FileEncoder struct {
	ffmpegPath string
}

// NewFileEncoder creates an encoder using the given ffmpeg binary.
func NewFileEncoder(ffmpegPath string) *FileEncoder {
	return &FileEncoder{ffmpegPath: ffmpegPath}
}

// Encode writes buf to path in the requested format.
func (e *FileEncoder) Encode(ctx context.Context, buf *Buffer, path string, container Container, subtype Subtype) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".vinylshift-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if container == ContainerWAV && subtype.BitDepth() > 0 {
		err = writeWAV(tmpPath, buf, subtype.BitDepth())
	} else {
		err = e.encodeFFmpeg(ctx, buf, tmpPath, container, subtype)
	}
	if err != nil {
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move output into place at %s: %w", path, err)
	}
	return nil
}

// encodeFFmpeg feeds raw f64le PCM into ffmpeg's stdin and lets it write
// the requested container.
func (e *FileEncoder) encodeFFmpeg(ctx context.Context, buf *Buffer, outPath string, container Container, subtype Subtype) error {
	muxer, codecArgs, err := ffmpegEncodeArgs(container, subtype)
	if err != nil {
		return err
	}

	args := []string{
		"-f", "f64le",
		"-ar", strconv.Itoa(buf.SampleRate),
		"-ac", strconv.Itoa(buf.NumChannels()),
		"-i", "pipe:0",
	}
	args = append(args, codecArgs...)
	args = append(args, "-f", muxer, "-loglevel", "error", "-y", outPath)

	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)
	cmd.Stdin = bytes.NewReader(rawF64LE(buf))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg encode failed for %s: %w\nFFmpeg Error: %s", outPath, err, stderr.String())
	}
	return nil
}

// ffmpegEncodeArgs maps a lossless target onto ffmpeg muxer and codec flags.
func ffmpegEncodeArgs(container Container, subtype Subtype) (string, []string, error) {
	switch container {
	case ContainerFLAC:
		switch subtype {
		case SubtypePCM16:
			return "flac", []string{"-c:a", "flac", "-sample_fmt", "s16"}, nil
		case SubtypePCM24:
			return "flac", []string{"-c:a", "flac", "-sample_fmt", "s32", "-bits_per_raw_sample", "24"}, nil
		case SubtypePCM32:
			return "flac", []string{"-c:a", "flac", "-sample_fmt", "s32"}, nil
		}
		return "flac", []string{"-c:a", "flac", "-sample_fmt", "s32", "-bits_per_raw_sample", "24"}, nil
	case ContainerAIFF:
		codec, err := bigEndianPCMCodec(subtype)
		if err != nil {
			return "", nil, fmt.Errorf("aiff output: %w", err)
		}
		return "aiff", []string{"-c:a", codec}, nil
	case ContainerAU:
		codec, err := bigEndianPCMCodec(subtype)
		if err != nil {
			return "", nil, fmt.Errorf("au output: %w", err)
		}
		return "au", []string{"-c:a", codec}, nil
	case ContainerWAV:
		switch subtype {
		case SubtypeFloat32:
			return "wav", []string{"-c:a", "pcm_f32le"}, nil
		case SubtypePCM16:
			return "wav", []string{"-c:a", "pcm_s16le"}, nil
		case SubtypePCM24:
			return "wav", []string{"-c:a", "pcm_s24le"}, nil
		case SubtypePCM32:
			return "wav", []string{"-c:a", "pcm_s32le"}, nil
		}
	}
	return "", nil, fmt.Errorf("no lossless encoder for container %q subtype %q", container, subtype)
}

func bigEndianPCMCodec(subtype Subtype) (string, error) {
	switch subtype {
	case SubtypePCM16:
		return "pcm_s16be", nil
	case SubtypePCM24:
		return "pcm_s24be", nil
	case SubtypePCM32:
		return "pcm_s32be", nil
	case SubtypeFloat32:
		return "pcm_f32be", nil
	}
	return "", fmt.Errorf("unsupported subtype %q", subtype)
}

// rawF64LE serializes the buffer as interleaved little-endian float64 PCM.
func rawF64LE(buf *Buffer) []byte {
	interleaved := buf.Interleaved()
	raw := make([]byte, len(interleaved)*8)
	for i, s := range interleaved {
		binary.LittleEndian.PutUint64(raw[i*8:], math.Float64bits(s))
	}
	return raw
}
