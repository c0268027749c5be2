package audio

import (
	"path/filepath"
	"strings"
)

// Format identifies the container/codec family of an input file, per
// spec §4.1's recognized extension set.
type Format int

const (
	FormatMP3 Format = iota
	FormatWAV
	FormatFLAC
	FormatM4A
	FormatOgg
	FormatWMA
)

func (f Format) String() string {
	switch f {
	case FormatMP3:
		return "mp3"
	case FormatWAV:
		return "wav"
	case FormatFLAC:
		return "flac"
	case FormatM4A:
		return "m4a"
	case FormatOgg:
		return "ogg"
	case FormatWMA:
		return "wma"
	default:
		return "unknown"
	}
}

// formatFromPath detects the container format from a file's extension.
// It returns ErrUnsupportedFormat for anything outside the recognized set.
func formatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "mp3":
		return FormatMP3, nil
	case "wav":
		return FormatWAV, nil
	case "flac":
		return FormatFLAC, nil
	case "m4a", "mp4":
		return FormatM4A, nil
	case "ogg", "oga":
		return FormatOgg, nil
	case "wma":
		return FormatWMA, nil
	default:
		return 0, unsupportedFormatError(ext)
	}
}
