// Package orangenote wires the Audio Normalizer, Model Store, Inference
// Driver, and Overlap Merger into the three operations downstream
// collaborators consume (spec §6): normalize, resolve_model, and
// transcribe. There is no CLI front end here; that is an explicit
// Non-goal of the core this package implements. Grounded on the
// teacher's internal/app/app.go, which wires the equivalent components
// (recorder, model manager, speech factory) behind one struct.
package orangenote

import (
	"context"
	"fmt"
	"log/slog"

	"orangenote/internal/audio"
	"orangenote/internal/chunk"
	"orangenote/internal/merge"
	"orangenote/internal/model"
	"orangenote/internal/segment"
	"orangenote/internal/whisper"
)

// Options configure a single Transcribe call (spec §6's
// transcribe(pcm, model_path, options) signature).
type Options struct {
	// Language is a BCP-47-ish locale hint. Empty enables whisper.cpp's
	// autodetection.
	Language string
	// Translate requests translation to English.
	Translate bool
	// Threads is the Model Adapter's native worker-thread count. Zero
	// selects the bindings' own default.
	Threads int
	// ChunkSizeMinutes of 0 forces single-shot inference.
	ChunkSizeMinutes int
	// ChunkOverlapSeconds between adjacent windows.
	ChunkOverlapSeconds int
}

// Pipeline holds the long-lived collaborators: the Model Store and a
// logger shared by every operation. It is safe for sequential reuse
// across many files; it does not hold a loaded model between calls.
type Pipeline struct {
	store *model.Store
	log   *slog.Logger
}

// New builds a Pipeline, resolving the Model Store's cache directory per
// spec §4.5's precedence unless storeOpts overrides it.
func New(log *slog.Logger, storeOpts ...model.Option) (*Pipeline, error) {
	if log == nil {
		log = slog.Default()
	}

	opts := append([]model.Option{model.WithLogger(log)}, storeOpts...)
	store, err := model.NewStore(opts...)
	if err != nil {
		return nil, fmt.Errorf("orangenote: %w", err)
	}

	return &Pipeline{store: store, log: log}, nil
}

// Normalize decodes the audio file at path and returns it as a
// 16kHz mono float32 PCM buffer (spec §6, §4.1).
func (p *Pipeline) Normalize(path string) (*audio.Buffer, error) {
	n := audio.NewNormalizer(p.log)
	return n.Normalize(path)
}

// ResolveModel returns the local path to variant, downloading it first
// if the Model Store does not already have it cached (spec §6, §4.5).
// sha256Hex, if non-empty, is verified against the download.
func (p *Pipeline) ResolveModel(ctx context.Context, variant model.Variant, sha256Hex string) (string, error) {
	return p.store.Resolve(ctx, variant, sha256Hex)
}

// Transcribe runs the Inference Driver and Overlap Merger over pcm using
// the weight file at modelPath, returning a single coherent Transcript
// (spec §6, §4.3, §4.4).
func (p *Pipeline) Transcribe(pcm *audio.Buffer, modelPath string, opts Options) (*segment.Transcript, error) {
	driver, err := whisper.Open(modelPath, whisper.Options{Threads: opts.Threads, Logger: p.log})
	if err != nil {
		return nil, err
	}
	defer driver.Close()

	raw, err := chunk.Run(driver, pcm.Samples, pcm.DurationMS(), chunk.Config{
		ChunkSizeMinutes:    opts.ChunkSizeMinutes,
		ChunkOverlapSeconds: opts.ChunkOverlapSeconds,
	}, chunk.Options{
		Language:  opts.Language,
		Translate: opts.Translate,
	}, p.log)
	if err != nil {
		return nil, err
	}

	merged := merge.Merge(raw.Segments)
	return &segment.Transcript{Language: raw.Language, Segments: merged}, nil
}
