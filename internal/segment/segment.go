// Package segment holds the timed-text types shared by the Model Adapter,
// the Inference Driver, and the Overlap Merger: Token, Segment and
// Transcript. None of these types carry behavior beyond formatting; they
// are the core's closed, enumerable data model (spec §3).
package segment

import "fmt"

// Token is a single piece of text the model emitted within a Segment,
// together with its probability.
type Token struct {
	Text        string
	Probability float32
}

// Segment is the model's output unit: a timed span of text with a
// confidence score derived from its tokens. Start/End are absolute
// milliseconds from the origin of the audio the Transcript was built from.
type Segment struct {
	StartMS    int64
	EndMS      int64
	Text       string
	Confidence float32
	Tokens     []Token
}

// Duration returns the segment's length in milliseconds.
func (s Segment) Duration() int64 {
	return s.EndMS - s.StartMS
}

// FormatStart renders StartMS as HH:MM:SS.mmm.
func (s Segment) FormatStart() string {
	return formatTimestamp(s.StartMS)
}

// FormatEnd renders EndMS as HH:MM:SS.mmm.
func (s Segment) FormatEnd() string {
	return formatTimestamp(s.EndMS)
}

func formatTimestamp(ms int64) string {
	totalSeconds := ms / 1000
	milliseconds := ms % 1000
	seconds := totalSeconds % 60
	minutes := (totalSeconds / 60) % 60
	hours := totalSeconds / 3600
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, milliseconds)
}

// Transcript is the final result of the core: the reported language plus
// the ordered, deduplicated segment stream produced by the Overlap Merger.
type Transcript struct {
	Language string
	Segments []Segment
}

// FullText joins every segment's text with a single space, mirroring how
// the original Rust implementation assembled a flat transcript string.
func (t Transcript) FullText() string {
	out := ""
	for i, s := range t.Segments {
		if i > 0 {
			out += " "
		}
		out += s.Text
	}
	return out
}

// AverageConfidence returns the mean confidence across all segments, or
// 0.0 for an empty transcript.
func (t Transcript) AverageConfidence() float32 {
	if len(t.Segments) == 0 {
		return 0.0
	}
	var sum float32
	for _, s := range t.Segments {
		sum += s.Confidence
	}
	return sum / float32(len(t.Segments))
}
