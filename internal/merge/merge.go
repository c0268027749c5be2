// Package merge implements the Overlap Merger (spec §4.4): deduplicating
// segments that two adjacent inference windows both produced for the
// same stretch of audio, and enforcing a single monotonic, non-empty
// output sequence. Grounded on original_source's
// infrastructure/transcription/whisper/merger.go text-similarity pass,
// reworked from fuzzy Jaccard matching to exact normalized-text equality
// and confidence-weighted tie-breaking.
package merge

import (
	"sort"
	"strings"
	"unicode"

	"orangenote/internal/segment"
)

// Merge deduplicates a flat, window-ordered sequence of segments into one
// monotonic, non-empty sequence (spec §4.4). The input slice is not
// mutated.
func Merge(segments []segment.Segment) []segment.Segment {
	sorted := make([]segment.Segment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartMS < sorted[j].StartMS
	})

	var accepted []segment.Segment
	for _, candidate := range sorted {
		if isDegenerate(candidate) {
			continue
		}

		// Compare against every already-accepted segment whose end_ms is
		// still ahead of the candidate's start — a short tail, since
		// overlap between windows is bounded by the configured overlap
		// (spec §4.4 step 2).
		matched := false
		for i := len(accepted) - 1; i >= 0; i-- {
			existing := accepted[i]
			if existing.EndMS <= candidate.StartMS {
				continue
			}
			if !overlaps(existing, candidate) || normalizeText(existing.Text) != normalizeText(candidate.Text) {
				continue
			}

			if wins(candidate, existing) {
				accepted[i] = candidate
			}
			matched = true
			break
		}

		if !matched {
			accepted = append(accepted, candidate)
		}
	}

	return cleanup(accepted)
}

func overlaps(a, b segment.Segment) bool {
	return a.StartMS < b.EndMS && b.StartMS < a.EndMS
}

// wins implements spec §4.4's quality-preserving choice: higher
// confidence, ties broken by longer duration, then by earlier start_ms.
func wins(candidate, existing segment.Segment) bool {
	if candidate.Confidence != existing.Confidence {
		return candidate.Confidence > existing.Confidence
	}
	candidateDuration := candidate.EndMS - candidate.StartMS
	existingDuration := existing.EndMS - existing.StartMS
	if candidateDuration != existingDuration {
		return candidateDuration > existingDuration
	}
	return candidate.StartMS < existing.StartMS
}

func isDegenerate(s segment.Segment) bool {
	if s.EndMS <= s.StartMS {
		return true
	}
	return normalizeText(s.Text) == ""
}

// cleanup drops any segment that ended up degenerate after a replacement
// (spec §4.4 step 5) and re-sorts by start_ms, since a replacement keeps
// its slot in the accepted slice but can carry a later start than the
// segments accepted after it.
func cleanup(accepted []segment.Segment) []segment.Segment {
	out := accepted[:0]
	for _, s := range accepted {
		if !isDegenerate(s) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartMS < out[j].StartMS
	})
	return out
}

// normalizeText lowercases, strips punctuation throughout (not just at
// the edges), and collapses whitespace — the exact-match key spec §4.4
// requires, in place of the reference implementation's fuzzy Jaccard
// similarity. Grounded on original_source's merger.rs
// normalize_text_to_words, which filters each word through
// is_alphanumeric before comparing.
func normalizeText(text string) string {
	lower := strings.ToLower(text)
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, lower)
	return strings.Join(strings.Fields(stripped), " ")
}
