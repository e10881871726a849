package audio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputSpec fixes where and how the shifted audio will be written. It is
// decided once per invocation, before any audio is written, and never
// mutated afterwards. Subtype describes the lossless write: the final file
// on direct paths, the WAV intermediate on transcode paths.
type OutputSpec struct {
	TargetPath             string
	Container              Container
	Subtype                Subtype
	RequiresLossyTranscode bool
	IntermediatePath       string // set only when RequiresLossyTranscode
}

// Codec families that force the lossless-compressed fallback whatever the
// container says.
var lossyFallbackCodecs = map[string]bool{
	"aac":    true,
	"alac":   true,
	"opus":   true,
	"vorbis": true,
}

// PlanOutput decides the output container, subtype and transcode need from
// the input path and its probed format. Pure and deterministic; rules are
// evaluated in order:
//
//  1. MP3 family keeps MP3 for universal compatibility, via a 16-bit WAV
//     intermediate and a lossy transcode.
//  2. Other lossy families, and inputs whose format could not be
//     determined, go to FLAC at 24-bit.
//  3. Everything else keeps its own container and subtype.
func PlanOutput(inputPath string, info FormatInfo, semitones float64) OutputSpec {
	ext := strings.ToLower(filepath.Ext(inputPath))
	base := vinylBaseName(inputPath, semitones)

	switch {
	case ext == ".mp3" || info.Codec == "mp3":
		return OutputSpec{
			TargetPath:             base + ".mp3",
			Container:              ContainerMP3,
			Subtype:                SubtypePCM16,
			RequiresLossyTranscode: true,
			IntermediatePath:       base + ".wav",
		}
	case ext == ".m4a" || ext == ".opus" || ext == ".ogg" ||
		lossyFallbackCodecs[info.Codec] || !info.Known():
		return OutputSpec{
			TargetPath: base + ".flac",
			Container:  ContainerFLAC,
			Subtype:    SubtypePCM24,
		}
	default:
		return OutputSpec{
			TargetPath: base + ext,
			Container:  containerForExtension(ext),
			Subtype:    info.Subtype,
		}
	}
}

// vinylBaseName inserts the signed two-decimal semitone suffix after the
// original stem: "track.mp3" at +1.5 becomes "<dir>/track_vinyl+1.50".
func vinylBaseName(inputPath string, semitones float64) string {
	dir := filepath.Dir(inputPath)
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(dir, fmt.Sprintf("%s_vinyl%+.2f", stem, semitones))
}
