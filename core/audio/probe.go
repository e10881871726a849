package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"vinylshift/logger"
)

// FormatInfo describes what ffprobe reported about an input file. Any field
// may stay at its unknown zero value; the planner treats that as a
// first-class state rather than an error.
type FormatInfo struct {
	Container  Container
	Codec      string
	Subtype    Subtype
	SampleRate int
	Channels   int
	Duration   float64
}

// Known reports whether both container and subtype were determined.
func (i FormatInfo) Known() bool {
	return i.Container != ContainerUnknown && i.Container != "" &&
		i.Subtype != SubtypeUnknown && i.Subtype != ""
}

// FormatProber inspects audio files with ffprobe.
type FormatProber struct {
	ffmpegPath string
}

// NewFormatProber creates a prober. The ffprobe binary is assumed to sit
// next to the configured ffmpeg binary.
func NewFormatProber(ffmpegPath string) *FormatProber {
	return &FormatProber{ffmpegPath: ffmpegPath}
}

func (p *FormatProber) ffprobePath() string {
	return strings.Replace(p.ffmpegPath, "ffmpeg", "ffprobe", 1)
}

// Probe gathers stream and container details for inputFile. It never fails
// the caller: on any ffprobe problem the affected fields stay unknown and a
// warning is logged, so downstream planning can treat the file as
// undetermined.
func (p *FormatProber) Probe(ctx context.Context, inputFile string) FormatInfo {
	info := FormatInfo{Container: ContainerUnknown, Subtype: SubtypeUnknown}

	if err := p.probeStream(ctx, inputFile, &info); err != nil {
		logger.Warn("could not probe audio stream",
			logger.String("file", inputFile),
			logger.ErrorField(err))
	}
	if err := p.probeFormat(ctx, inputFile, &info); err != nil {
		logger.Warn("could not probe container format",
			logger.String("file", inputFile),
			logger.ErrorField(err))
	}

	return info
}

// probeStream fills codec, subtype, sample rate and channel count from the
// first audio stream.
func (p *FormatProber) probeStream(ctx context.Context, inputFile string, info *FormatInfo) error {
	args := []string{
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=codec_name,sample_fmt,sample_rate,channels,bits_per_raw_sample",
		"-of", "json",
		inputFile,
	}

	cmd := exec.CommandContext(ctx, p.ffprobePath(), args...)
	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffprobe execution failed for %s: %w\nFFprobe Error: %s", inputFile, err, stderr.String())
	}

	var probeData struct {
		Streams []struct {
			CodecName        string `json:"codec_name"`
			SampleFmt        string `json:"sample_fmt"`
			SampleRate       string `json:"sample_rate"`
			Channels         int    `json:"channels"`
			BitsPerRawSample string `json:"bits_per_raw_sample"`
		} `json:"streams"`
	}
	if err := json.Unmarshal(out.Bytes(), &probeData); err != nil {
		return fmt.Errorf("failed to unmarshal ffprobe output: %w", err)
	}
	if len(probeData.Streams) == 0 {
		return fmt.Errorf("no audio streams found in %s", inputFile)
	}

	stream := probeData.Streams[0]
	info.Codec = stream.CodecName
	info.Channels = stream.Channels
	if rate, err := strconv.Atoi(stream.SampleRate); err == nil {
		info.SampleRate = rate
	}
	info.Subtype = subtypeForStream(stream.CodecName, stream.SampleFmt, stream.BitsPerRawSample)
	return nil
}

// probeFormat fills container family and duration.
func (p *FormatProber) probeFormat(ctx context.Context, inputFile string, info *FormatInfo) error {
	args := []string{
		"-v", "error",
		"-show_entries", "format=format_name,duration",
		"-of", "json",
		inputFile,
	}

	cmd := exec.CommandContext(ctx, p.ffprobePath(), args...)
	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffprobe execution failed for %s: %w\nFFprobe Error: %s", inputFile, err, stderr.String())
	}

	var probeData struct {
		Format struct {
			FormatName string `json:"format_name"`
			Duration   string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(out.Bytes(), &probeData); err != nil {
		return fmt.Errorf("failed to unmarshal ffprobe output for %s: %w\nFFprobe Output: %s", inputFile, err, out.String())
	}

	info.Container = containerForFormatName(probeData.Format.FormatName)
	if probeData.Format.Duration != "" {
		if duration, err := strconv.ParseFloat(probeData.Format.Duration, 64); err == nil {
			info.Duration = duration
		}
	}
	return nil
}

// subtypeForStream derives the sample encoding from ffprobe stream fields.
func subtypeForStream(codec, sampleFmt, bitsPerRaw string) Subtype {
	switch codec {
	case "pcm_s16le", "pcm_s16be":
		return SubtypePCM16
	case "pcm_s24le", "pcm_s24be":
		return SubtypePCM24
	case "pcm_s32le", "pcm_s32be":
		return SubtypePCM32
	case "pcm_f32le", "pcm_f32be":
		return SubtypeFloat32
	case "flac":
		switch bitsPerRaw {
		case "16":
			return SubtypePCM16
		case "24":
			return SubtypePCM24
		case "32":
			return SubtypePCM32
		}
		if sampleFmt == "s16" {
			return SubtypePCM16
		}
		return SubtypeUnknown
	}
	return SubtypeUnknown
}

// containerForFormatName maps ffprobe's format_name (a comma list for some
// demuxers) to a container family.
func containerForFormatName(name string) Container {
	switch {
	case name == "":
		return ContainerUnknown
	case strings.Contains(name, "wav"):
		return ContainerWAV
	case strings.Contains(name, "flac"):
		return ContainerFLAC
	case strings.Contains(name, "aiff"):
		return ContainerAIFF
	case strings.Contains(name, "au"):
		return ContainerAU
	case strings.Contains(name, "mp3"):
		return ContainerMP3
	case strings.Contains(name, "m4a"), strings.Contains(name, "mp4"), strings.Contains(name, "mov"):
		return ContainerM4A
	case strings.Contains(name, "ogg"), strings.Contains(name, "opus"):
		return ContainerOGG
	}
	return ContainerUnknown
}
