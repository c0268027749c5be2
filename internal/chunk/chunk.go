// Package chunk implements the Inference Driver (spec §4.3): deciding
// between single-shot and windowed inference over a normalized PCM
// buffer, invoking the Model Adapter per window, and collecting the
// resulting segments in window order with absolute timestamps. Grounded
// on original_source's infrastructure/audio/chunk.rs ChunkConfig and the
// teacher's sequential, no-overlap scheduling in internal/speech/speech.go.
package chunk

import (
	"fmt"
	"log/slog"

	"orangenote/internal/segment"
	"orangenote/internal/whisper"
)

// samplesPerMS is the Audio Normalizer's fixed output rate (16kHz)
// expressed as samples per millisecond.
const samplesPerMS = 16

// Config is the chunking configuration accepted by Run (spec §4.3).
type Config struct {
	// ChunkSizeMinutes of 0 forces single-shot inference regardless of
	// clip length.
	ChunkSizeMinutes int
	// ChunkOverlapSeconds between adjacent windows. Ignored in
	// single-shot mode.
	ChunkOverlapSeconds int
}

// Window is a half-open interval over a PCM buffer (spec §3).
type Window struct {
	StartMS int64
	EndMS   int64
}

// ErrInvalidConfig reports a chunking configuration that violates
// O < W (spec §4.3 step 1).
var ErrInvalidConfig = fmt.Errorf("chunk: overlap must be smaller than window length")

// Windows generates the window sequence for a clip of durationMS
// (spec §4.3 steps 1-2). windowMS and overlapMS are both in
// milliseconds; overlapMS must be strictly less than windowMS.
//
// A window is stretched to durationMS, rather than left as a separate
// trailing window, once a full-length window at the next stride would
// reach or pass durationMS (spec §8's worked example: a 3600s clip
// with a 300s window and 5s overlap produces 12 windows, the last
// starting at 3245s and stretching to 3600s, not a 13th window starting
// at 3540s).
func Windows(durationMS int64, windowMS, overlapMS int64) ([]Window, error) {
	if overlapMS >= windowMS {
		return nil, ErrInvalidConfig
	}
	stride := windowMS - overlapMS

	var windows []Window
	for start := int64(0); ; {
		nextStart := start + stride
		if nextStart+windowMS >= durationMS {
			windows = append(windows, Window{StartMS: start, EndMS: durationMS})
			break
		}
		windows = append(windows, Window{StartMS: start, EndMS: start + windowMS})
		start = nextStart
	}
	return windows, nil
}

// useSingleShot applies spec §4.3's policy: chunk_size_minutes == 0, or a
// clip shorter than that many minutes, always runs single-shot.
func useSingleShot(cfg Config, durationMS int64) bool {
	if cfg.ChunkSizeMinutes <= 0 {
		return true
	}
	return durationMS < int64(cfg.ChunkSizeMinutes)*60_000
}

// Options mirror the Model Adapter's per-call knobs (spec §6).
type Options struct {
	Language  string
	Translate bool
}

// Run decides single-shot vs. chunked execution, slices samples into
// windows, invokes adapter once per window in order, and returns the
// flat, window-ordered segment sequence together with the reported
// language (spec §4.3 steps 3-5, first-window-wins language policy).
//
// samples must already be the Audio Normalizer's 16kHz mono float32
// output; durationMS is len(samples) converted to milliseconds by the
// caller (kept as an explicit parameter so this package never computes
// it from a format assumption baked in twice).
func Run(driver *whisper.Driver, samples []float32, durationMS int64, cfg Config, opts Options, log *slog.Logger) (segment.Transcript, error) {
	if log == nil {
		log = slog.Default()
	}

	if useSingleShot(cfg, durationMS) {
		log.Info("running single-shot inference", "duration_ms", durationMS)
		result, err := driver.Transcribe(samples, whisper.TranscribeOptions{
			Language:  opts.Language,
			Translate: opts.Translate,
		})
		if err != nil {
			return segment.Transcript{}, err
		}
		return segment.Transcript{Language: result.Language, Segments: result.Segments}, nil
	}

	windowMS := int64(cfg.ChunkSizeMinutes) * 60_000
	overlapMS := int64(cfg.ChunkOverlapSeconds) * 1_000

	windows, err := Windows(durationMS, windowMS, overlapMS)
	if err != nil {
		return segment.Transcript{}, err
	}

	log.Info("running chunked inference", "duration_ms", durationMS, "windows", len(windows), "window_ms", windowMS, "overlap_ms", overlapMS)

	var allSegments []segment.Segment
	var language string
	for i, w := range windows {
		startSample := w.StartMS * samplesPerMS
		endSample := w.EndMS * samplesPerMS
		if endSample > int64(len(samples)) {
			endSample = int64(len(samples))
		}
		view := samples[startSample:endSample]

		result, err := driver.Transcribe(view, whisper.TranscribeOptions{
			Language:     opts.Language,
			Translate:    opts.Translate,
			TimeOffsetMS: w.StartMS,
		})
		if err != nil {
			return segment.Transcript{}, fmt.Errorf("chunk: window %d [%d,%d): %w", i, w.StartMS, w.EndMS, err)
		}

		if i == 0 {
			language = result.Language
		}
		allSegments = append(allSegments, result.Segments...)
	}

	return segment.Transcript{Language: language, Segments: allSegments}, nil
}
