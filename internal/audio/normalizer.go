// Package audio implements the Audio Normalizer (spec §4.1): decoding
// heterogeneous compressed/container audio into mono f32 PCM at the
// model's fixed 16 kHz target rate.
package audio

import (
	"log/slog"
	"os"
)

// Normalizer decodes files into Buffers. It carries only a logger, handed
// in by the caller — the core has no global state (spec §9).
type Normalizer struct {
	log *slog.Logger
}

// NewNormalizer returns a Normalizer. A nil logger defaults to
// slog.Default(), mirroring the Rust `log` facade the original
// implementation wrote through (original_source/.../processor.rs).
func NewNormalizer(log *slog.Logger) *Normalizer {
	if log == nil {
		log = slog.Default()
	}
	return &Normalizer{log: log}
}

// Normalize decodes the file at path into a Buffer obeying spec §3's
// invariant: SampleRate == TargetSampleRate, Channels == 1, and
// len(Samples) == round(DurationSeconds * TargetSampleRate) within ±1
// sample. It implements spec §4.1's four-step algorithm: decode,
// sample-format conversion, mono mixdown, and linear resampling.
func (n *Normalizer) Normalize(path string) (*Buffer, error) {
	format, err := formatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, decodeFailureError(format, err)
	}
	defer f.Close()

	n.log.Debug("decoding audio file", "path", path, "format", format.String())

	raw, err := decode(format, f)
	if err != nil {
		return nil, decodeFailureError(format, err)
	}
	if raw.length() == 0 {
		return nil, emptyAudioError(path)
	}

	originalChannels := raw.channels
	originalSampleRate := raw.sampleRate

	interleaved := toF32(raw)
	mono := toMono(interleaved, originalChannels)
	resampled := resampleLinear(mono, originalSampleRate, TargetSampleRate)

	if len(resampled) == 0 {
		return nil, emptyAudioError(path)
	}

	buf := &Buffer{
		Samples:            resampled,
		SampleRate:         TargetSampleRate,
		Channels:           1,
		OriginalSampleRate: originalSampleRate,
		OriginalChannels:   originalChannels,
		DurationSeconds:    float64(len(resampled)) / float64(TargetSampleRate),
	}

	n.log.Info("normalized audio file",
		"path", path,
		"samples", buf.Len(),
		"duration_s", buf.DurationSeconds,
		"original_rate", originalSampleRate,
		"original_channels", originalChannels,
	)

	return buf, nil
}
