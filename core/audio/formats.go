package audio

import (
	"path/filepath"
	"sort"
	"strings"
)

// Container identifies the file format wrapper of an input or output.
type Container string

const (
	ContainerWAV     Container = "wav"
	ContainerFLAC    Container = "flac"
	ContainerAIFF    Container = "aiff"
	ContainerAU      Container = "au"
	ContainerMP3     Container = "mp3"
	ContainerM4A     Container = "m4a"
	ContainerOGG     Container = "ogg"
	ContainerOpus    Container = "opus"
	ContainerUnknown Container = "unknown"
)

// Subtype identifies the sample encoding inside a container.
type Subtype string

const (
	SubtypePCM16   Subtype = "pcm_16"
	SubtypePCM24   Subtype = "pcm_24"
	SubtypePCM32   Subtype = "pcm_32"
	SubtypeFloat32 Subtype = "float_32"
	SubtypeUnknown Subtype = "unknown"
)

// BitDepth returns bits per sample for integer PCM subtypes, 0 otherwise.
func (s Subtype) BitDepth() int {
	switch s {
	case SubtypePCM16:
		return 16
	case SubtypePCM24:
		return 24
	case SubtypePCM32:
		return 32
	}
	return 0
}

// supportedExtensions is the fixed allow-list of decodable inputs. Anything
// else is rejected before decoding is attempted.
var supportedExtensions = map[string]bool{
	".wav":  true,
	".flac": true,
	".aiff": true,
	".aif":  true,
	".aifc": true,
	".au":   true,
	".snd":  true,
	".mp3":  true,
	".m4a":  true,
	".ogg":  true,
	".opus": true,
}

// IsSupportedFile reports whether the path carries an accepted extension.
func IsSupportedFile(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// SupportedExtensions returns the allow-list sorted for display.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(supportedExtensions))
	for ext := range supportedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// containerForExtension maps an input extension to its container family.
func containerForExtension(ext string) Container {
	switch strings.ToLower(ext) {
	case ".wav":
		return ContainerWAV
	case ".flac":
		return ContainerFLAC
	case ".aiff", ".aif", ".aifc":
		return ContainerAIFF
	case ".au", ".snd":
		return ContainerAU
	case ".mp3":
		return ContainerMP3
	case ".m4a":
		return ContainerM4A
	case ".ogg":
		return ContainerOGG
	case ".opus":
		return ContainerOpus
	}
	return ContainerUnknown
}
