// Package whisper implements the Model Adapter (spec §4.2): a thin,
// greedy-sampling wrapper around the whisper.cpp Go bindings that turns a
// slice of 16kHz mono float32 PCM into timestamped segment.Segments.
// Grounded on the teacher's internal/speech/whisper.go and
// internal/speech/factory.go, enriched with per-token probabilities the
// teacher's wrapper discards but spec §4.2 requires for confidence.
package whisper

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"orangenote/internal/segment"
)

// Sentinel errors for the Model Adapter (spec §7).
var (
	ErrModelLoadFailure  = fmt.Errorf("whisper: model load failure")
	ErrInferenceFailure  = fmt.Errorf("whisper: inference failure")
	ErrUnsupportedLocale = fmt.Errorf("whisper: unsupported language")
)

func modelLoadFailureError(path string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrModelLoadFailure, path, cause)
}

func inferenceFailureError(cause error) error {
	return fmt.Errorf("%w: %w", ErrInferenceFailure, cause)
}

func unsupportedLocaleError(lang string, cause error) error {
	return fmt.Errorf("%w: %q: %w", ErrUnsupportedLocale, lang, cause)
}

// Driver loads a single ggml weight file and runs transcription passes
// against it. Transcribe and Close hold an internal mutex, so concurrent
// calls on one Driver run one at a time rather than in parallel, mirroring
// the teacher's WhisperRecognizer mutex.
type Driver struct {
	mu      sync.Mutex
	model   whisper.Model
	threads int
	log     *slog.Logger
}

// Options configure a Driver at Open time.
type Options struct {
	// Threads is the number of CPU threads whisper.cpp uses for a single
	// inference call. Zero selects the bindings' own default.
	Threads int
	Logger  *slog.Logger
}

// Open loads the ggml weight file at path. The caller is responsible for
// resolving path via the Model Store first.
func Open(path string, opts Options) (*Driver, error) {
	model, err := whisper.New(path)
	if err != nil {
		return nil, modelLoadFailureError(path, err)
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Driver{
		model:   model,
		threads: opts.Threads,
		log:     log,
	}, nil
}

// Close releases the underlying whisper.cpp model.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.model == nil {
		return nil
	}
	err := d.model.Close()
	d.model = nil
	return err
}

// TranscribeOptions configure a single Transcribe call (spec §4.2, §4.3).
type TranscribeOptions struct {
	// Language is a BCP-47-ish locale code ("en", "fr"). Empty enables
	// whisper.cpp's language autodetection.
	Language string
	// Translate requests translation to English rather than
	// transcription in the source language.
	Translate bool
	// TimeOffsetMS is added to every emitted segment's start/end, the
	// absolute-timestamp shift the Inference Driver relies on when
	// transcribing a chunked window (spec §4.3).
	TimeOffsetMS int64
}

// Result is a single inference pass's output: the segments it produced
// and the language whisper.cpp detected or was told to use.
type Result struct {
	Language string
	Segments []segment.Segment
}

// Transcribe runs one whisper.cpp inference pass over samples, which must
// already be 16kHz mono float32 PCM (the Audio Normalizer's contract).
// Every token's probability is preserved so the caller can compute
// per-segment confidence as their arithmetic mean (spec §4.2).
func (d *Driver) Transcribe(samples []float32, opts TranscribeOptions) (Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.model == nil {
		return Result{}, inferenceFailureError(fmt.Errorf("driver is closed"))
	}

	ctx, err := d.model.NewContext()
	if err != nil {
		return Result{}, inferenceFailureError(err)
	}

	ctx.SetTranslate(opts.Translate)
	if d.threads > 0 {
		ctx.SetThreads(uint(d.threads))
	}
	// A single window carries no history from a neighboring window; each
	// inference pass starts cold, matching the Inference Driver's
	// window-independence invariant (spec §4.3).
	ctx.SetNoContext(true)

	if opts.Language != "" {
		if err := ctx.SetLanguage(opts.Language); err != nil {
			return Result{}, unsupportedLocaleError(opts.Language, err)
		}
	} else {
		if err := ctx.SetLanguage("auto"); err != nil {
			return Result{}, inferenceFailureError(err)
		}
	}

	if err := ctx.Process(samples, nil, nil, nil); err != nil {
		return Result{}, inferenceFailureError(err)
	}

	var segments []segment.Segment
	for {
		raw, err := ctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, inferenceFailureError(err)
		}
		segments = append(segments, toSegment(raw, opts.TimeOffsetMS))
	}

	return Result{
		Language: ctx.Language(),
		Segments: segments,
	}, nil
}

func toSegment(raw whisper.Segment, offsetMS int64) segment.Segment {
	tokens := make([]segment.Token, 0, len(raw.Tokens))
	for _, t := range raw.Tokens {
		tokens = append(tokens, segment.Token{
			Text:        t.Text,
			Probability: t.P,
		})
	}

	return segment.Segment{
		StartMS:    raw.Start.Milliseconds() + offsetMS,
		EndMS:      raw.End.Milliseconds() + offsetMS,
		Text:       raw.Text,
		Confidence: meanProbability(tokens),
		Tokens:     tokens,
	}
}

// meanProbability computes a segment's confidence as the arithmetic mean
// of its tokens' probabilities, 0.0 for a tokenless segment (spec §4.2,
// superseding the no_speech_prob-based formula of the reference
// implementation this wrapper was adapted from).
func meanProbability(tokens []segment.Token) float32 {
	if len(tokens) == 0 {
		return 0.0
	}
	var sum float32
	for _, t := range tokens {
		sum += t.Probability
	}
	return sum / float32(len(tokens))
}
