package audio

import (
	"sort"
	"testing"
)

func TestIsSupportedFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/music/a.wav", true},
		{"/music/a.flac", true},
		{"/music/a.aiff", true},
		{"/music/a.aif", true},
		{"/music/a.aifc", true},
		{"/music/a.au", true},
		{"/music/a.snd", true},
		{"/music/a.mp3", true},
		{"/music/a.m4a", true},
		{"/music/a.ogg", true},
		{"/music/a.opus", true},
		{"/music/A.WAV", true},
		{"/music/A.Mp3", true},
		{"/music/a.wma", false},
		{"/music/a.txt", false},
		{"/music/a.mp4", false},
		{"/music/noext", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsSupportedFile(tt.path); got != tt.want {
			t.Errorf("IsSupportedFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestSupportedExtensions(t *testing.T) {
	exts := SupportedExtensions()
	if len(exts) != len(supportedExtensions) {
		t.Fatalf("SupportedExtensions() returned %d entries, want %d", len(exts), len(supportedExtensions))
	}
	if !sort.StringsAreSorted(exts) {
		t.Errorf("SupportedExtensions() not sorted: %v", exts)
	}
	for _, ext := range exts {
		if !supportedExtensions[ext] {
			t.Errorf("SupportedExtensions() returned unexpected %q", ext)
		}
	}
}

func TestSubtypeBitDepth(t *testing.T) {
	tests := []struct {
		subtype Subtype
		want    int
	}{
		{SubtypePCM16, 16},
		{SubtypePCM24, 24},
		{SubtypePCM32, 32},
		{SubtypeFloat32, 0},
		{SubtypeUnknown, 0},
	}

	for _, tt := range tests {
		if got := tt.subtype.BitDepth(); got != tt.want {
			t.Errorf("Subtype(%q).BitDepth() = %d, want %d", tt.subtype, got, tt.want)
		}
	}
}

func TestContainerForExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want Container
	}{
		{".wav", ContainerWAV},
		{".WAV", ContainerWAV},
		{".flac", ContainerFLAC},
		{".aiff", ContainerAIFF},
		{".aif", ContainerAIFF},
		{".aifc", ContainerAIFF},
		{".au", ContainerAU},
		{".snd", ContainerAU},
		{".mp3", ContainerMP3},
		{".m4a", ContainerM4A},
		{".ogg", ContainerOGG},
		{".opus", ContainerOpus},
		{".wma", ContainerUnknown},
		{"", ContainerUnknown},
	}

	for _, tt := range tests {
		if got := containerForExtension(tt.ext); got != tt.want {
			t.Errorf("containerForExtension(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}
