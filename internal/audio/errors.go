package audio

import "fmt"

// Sentinel errors for the Normalizer, per spec §4.1 / §7. Callers should use
// errors.Is against these to branch on failure kind.
var (
	// ErrUnsupportedFormat is returned when the input path's extension is
	// not in the recognized container set.
	ErrUnsupportedFormat = fmt.Errorf("audio: unsupported format")

	// ErrDecodeFailure is returned when the container/codec layer rejects
	// the stream.
	ErrDecodeFailure = fmt.Errorf("audio: decode failure")

	// ErrEmptyAudio is returned when decoding yields zero samples, or fewer
	// than one sample after resampling.
	ErrEmptyAudio = fmt.Errorf("audio: empty audio")
)

// unsupportedFormatError wraps ErrUnsupportedFormat with the offending
// extension so callers get a human-readable message while errors.Is still
// matches the sentinel.
func unsupportedFormatError(ext string) error {
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

func decodeFailureError(format Format, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrDecodeFailure, format, cause)
}

func emptyAudioError(path string) error {
	return fmt.Errorf("%w: %s", ErrEmptyAudio, path)
}
