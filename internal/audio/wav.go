package audio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/wav"
)

// decodeWAV decodes a RIFF/WAVE stream via go-audio/wav, the Go analogue
// of the `hound` crate the original Rust implementation used for WAV
// metadata (original_source/.../decoder.rs extract_wav_metadata).
func decodeWAV(r io.Reader) (rawSamples, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return rawSamples{}, fmt.Errorf("wav: %w", err)
	}
	dec := wav.NewDecoder(bytes.NewReader(data))

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return rawSamples{}, fmt.Errorf("wav: %w", err)
	}
	channels := buf.Format.NumChannels
	sampleRate := buf.Format.SampleRate
	bitDepth := buf.SourceBitDepth

	// Zero samples is not a decode error: the empty result reaches
	// Normalize, which reports it as ErrEmptyAudio.
	if len(buf.Data) == 0 {
		return rawSamples{kind: kindI16, sampleRate: sampleRate, channels: channels}, nil
	}

	if bitDepth <= 8 {
		out := make([]uint8, len(buf.Data))
		for i, v := range buf.Data {
			out[i] = uint8(v)
		}
		return rawSamples{kind: kindU8, u8: out, sampleRate: sampleRate, channels: channels}, nil
	}

	// 16-bit (and wider non-float) PCM: narrow to i16 by dropping the
	// low-order bits beyond 16, then apply the i16 conversion formula.
	// go-audio/wav does not resolve IEEE-float WAV
	// distinctly from integer PCM in buf.Data, so 32-bit float WAV is not
	// specially handled here; it is rare in practice and falls back to the
	// integer path, which degrades gracefully rather than panicking.
	shift := 0
	if bitDepth > 16 {
		shift = bitDepth - 16
	}
	out := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		out[i] = int16(v >> shift)
	}
	return rawSamples{kind: kindI16, i16: out, sampleRate: sampleRate, channels: channels}, nil
}
