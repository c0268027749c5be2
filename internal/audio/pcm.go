package audio

import "fmt"

// TargetSampleRate is the fixed PCM rate the speech model requires
// (spec §1, §3).
const TargetSampleRate = 16000

// Buffer is a finite, ordered sequence of f32 samples in [-1.0, +1.0],
// tagged with the metadata spec §3 requires. After Normalize returns, a
// Buffer always satisfies SampleRate == TargetSampleRate && Channels == 1.
type Buffer struct {
	Samples []float32

	SampleRate int
	Channels   int

	OriginalSampleRate int
	OriginalChannels   int
	DurationSeconds    float64
}

// Len returns the number of samples in the buffer.
func (b *Buffer) Len() int {
	return len(b.Samples)
}

// DurationMS returns the buffer's duration in milliseconds.
func (b *Buffer) DurationMS() int64 {
	return int64(b.DurationSeconds * 1000.0)
}

// Summary renders a caller-facing, one-line description of the buffer,
// the Go analogue of the original Rust `AudioMetadata::format_info`.
func (b *Buffer) Summary() string {
	channelsStr := fmt.Sprintf("%d-channel", b.OriginalChannels)
	switch b.OriginalChannels {
	case 1:
		channelsStr = "mono"
	case 2:
		channelsStr = "stereo"
	}
	return fmt.Sprintf(
		"duration=%.1fs original_rate=%dHz original_channels=%s resampled_to=%dHz",
		b.DurationSeconds, b.OriginalSampleRate, channelsStr, b.SampleRate,
	)
}
