package whisper

import (
	"testing"
	"time"

	whisperpkg "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"orangenote/internal/segment"
)

func TestMeanProbabilityEmptyTokens(t *testing.T) {
	if got := meanProbability(nil); got != 0.0 {
		t.Fatalf("meanProbability(nil) = %v, want 0.0", got)
	}
}

func TestMeanProbabilityAveragesTokens(t *testing.T) {
	tokens := []segment.Token{{Probability: 0.2}, {Probability: 0.4}, {Probability: 0.9}}
	got := meanProbability(tokens)
	want := float32(0.2+0.4+0.9) / 3
	if diff := got - want; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("meanProbability = %v, want %v", got, want)
	}
}

func TestToSegmentAppliesTimeOffset(t *testing.T) {
	raw := whisperpkg.Segment{
		Start: 1500 * time.Millisecond,
		End:   3200 * time.Millisecond,
		Text:  "hello world",
		Tokens: []whisperpkg.Token{
			{Text: "hello", P: 0.8},
			{Text: " world", P: 0.6},
		},
	}

	got := toSegment(raw, 60000)

	if got.StartMS != 61500 {
		t.Fatalf("StartMS = %d, want 61500", got.StartMS)
	}
	if got.EndMS != 63200 {
		t.Fatalf("EndMS = %d, want 63200", got.EndMS)
	}
	if got.Text != "hello world" {
		t.Fatalf("Text = %q", got.Text)
	}
	wantConfidence := float32(0.8+0.6) / 2
	if diff := got.Confidence - wantConfidence; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("Confidence = %v, want %v", got.Confidence, wantConfidence)
	}
	if len(got.Tokens) != 2 {
		t.Fatalf("len(Tokens) = %d, want 2", len(got.Tokens))
	}
}

func TestToSegmentNoTokensZeroConfidence(t *testing.T) {
	raw := whisperpkg.Segment{Text: "", Tokens: nil}
	got := toSegment(raw, 0)
	if got.Confidence != 0.0 {
		t.Fatalf("Confidence = %v, want 0.0", got.Confidence)
	}
}
