// Package model implements the Model Store (spec §4.5): resolving a named
// Whisper variant to a cached local file, downloading it when absent, and
// exposing cache introspection. Grounded on the teacher's
// internal/models/{manager,registry}.go and on original_source's
// model_manager.rs ModelSize/WhisperModelManager.
package model

import (
	"fmt"
	"strings"
)

// Variant is a closed, enumerable identity of a Whisper weight file
// (spec §3, §6). The zero value is not a valid Variant; always obtain one
// from ParseVariant or one of the exported constants.
type Variant int

const (
	Tiny Variant = iota + 1
	TinyEn
	Base
	BaseEn
	Small
	SmallEn
	Medium
	MediumEn
	Large
)

// AllVariants lists every recognized variant in registry order, the Go
// analogue of model_manager.rs's list_available_models.
var AllVariants = []Variant{Tiny, TinyEn, Base, BaseEn, Small, SmallEn, Medium, MediumEn, Large}

// ParseVariant recognizes a case-insensitive variant identifier in either
// the hyphenated (spec §3: "tiny-en") or dotted (spec §6: "tiny.en") form.
// Anything else is ErrModelNotRecognized.
func ParseVariant(s string) (Variant, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", ".")
	switch normalized {
	case "tiny":
		return Tiny, nil
	case "tiny.en":
		return TinyEn, nil
	case "base":
		return Base, nil
	case "base.en":
		return BaseEn, nil
	case "small":
		return Small, nil
	case "small.en":
		return SmallEn, nil
	case "medium":
		return Medium, nil
	case "medium.en":
		return MediumEn, nil
	case "large":
		return Large, nil
	default:
		return 0, modelNotRecognizedError(s)
	}
}

// String renders the variant's dotted canonical name, e.g. "tiny.en".
func (v Variant) String() string {
	switch v {
	case Tiny:
		return "tiny"
	case TinyEn:
		return "tiny.en"
	case Base:
		return "base"
	case BaseEn:
		return "base.en"
	case Small:
		return "small"
	case SmallEn:
		return "small.en"
	case Medium:
		return "medium"
	case MediumEn:
		return "medium.en"
	case Large:
		return "large"
	default:
		return "unknown"
	}
}

// Filename returns the canonical on-disk name for the variant's weight
// file, per spec §4.5's mapping variant -> ggml-<variant>.bin.
func (v Variant) Filename() string {
	return fmt.Sprintf("ggml-%s.bin", v.String())
}

// SizeBytes returns the variant's approximate size-on-disk (spec §3),
// grounded on the teacher's registry.go and model_manager.rs's size_mb
// table.
func (v Variant) SizeBytes() uint64 {
	const mb = 1024 * 1024
	switch v {
	case Tiny, TinyEn:
		return 75 * mb
	case Base, BaseEn:
		return 142 * mb
	case Small, SmallEn:
		return 466 * mb
	case Medium, MediumEn:
		return 1500 * mb
	case Large:
		return 2900 * mb
	default:
		return 0
	}
}

// FormatSize renders SizeBytes as a human-readable "~N MB"/"~N GB" string,
// the Go analogue of model_manager.rs's format_size.
func (v Variant) FormatSize() string {
	size := v.SizeBytes()
	const mb = 1024 * 1024
	const gb = 1024 * mb
	if size >= gb {
		return fmt.Sprintf("~%.1f GB", float64(size)/float64(gb))
	}
	return fmt.Sprintf("~%d MB", size/mb)
}
