package audio

// sampleKind tags the raw sample representation a decoder produced, per
// spec §4.1 step 1's recognized set {f32, i16, u8}.
type sampleKind int

const (
	kindF32 sampleKind = iota
	kindI16
	kindU8
)

// rawSamples is the decoder-agnostic intermediate: interleaved samples in
// their native representation, plus the channel/rate the decoder reported.
type rawSamples struct {
	kind       sampleKind
	f32        []float32
	i16        []int16
	u8         []uint8
	sampleRate int
	channels   int
}

func (r rawSamples) length() int {
	switch r.kind {
	case kindF32:
		return len(r.f32)
	case kindI16:
		return len(r.i16)
	default:
		return len(r.u8)
	}
}

// toF32 applies spec §4.1 step 2's per-format conversion, producing
// interleaved f32 samples in [-1, +1].
func toF32(r rawSamples) []float32 {
	switch r.kind {
	case kindF32:
		out := make([]float32, len(r.f32))
		for i, s := range r.f32 {
			out[i] = clamp(s)
		}
		return out
	case kindI16:
		out := make([]float32, len(r.i16))
		for i, s := range r.i16 {
			out[i] = float32(s) / 32768.0
		}
		return out
	case kindU8:
		out := make([]float32, len(r.u8))
		for i, s := range r.u8 {
			out[i] = (float32(s) - 128.0) / 128.0
		}
		return out
	default:
		return nil
	}
}

func clamp(s float32) float32 {
	switch {
	case s > 1.0:
		return 1.0
	case s < -1.0:
		return -1.0
	default:
		return s
	}
}

// toMono implements spec §4.1 step 3: averaging across channels. Input is
// interleaved [c0, c1, ..., cN-1, c0, c1, ...]. channels == 1 is a
// passthrough.
func toMono(interleaved []float32, channels int) []float32 {
	if channels <= 1 {
		return interleaved
	}
	frames := len(interleaved) / channels
	out := make([]float32, frames)
	inv := 1.0 / float32(channels)
	for frame := 0; frame < frames; frame++ {
		var sum float32
		base := frame * channels
		for ch := 0; ch < channels; ch++ {
			sum += interleaved[base+ch]
		}
		out[frame] = sum * inv
	}
	return out
}

// resampleLinear implements spec §4.1 step 4: linear-interpolation
// resampling to dstRate. A passthrough when the rates already match.
//
// For output index j, t = j * srcRate / dstRate; i = floor(t), f = t - i;
// output[j] = (1-f)*in[i] + f*in[i+1], with the last input sample repeated
// past the end (edge clamping). Output length is ceil(len(in) * dstRate /
// srcRate).
func resampleLinear(in []float32, srcRate, dstRate int) []float32 {
	if srcRate == dstRate || len(in) == 0 {
		return in
	}

	outLen := (len(in)*dstRate + srcRate - 1) / srcRate
	out := make([]float32, outLen)

	ratio := float64(srcRate) / float64(dstRate)
	lastIdx := len(in) - 1

	for j := 0; j < outLen; j++ {
		t := float64(j) * ratio
		i := int(t)
		if i > lastIdx {
			i = lastIdx
		}
		f := t - float64(i)

		next := i + 1
		if next > lastIdx {
			next = lastIdx
		}

		out[j] = in[i]*float32(1.0-f) + in[next]*float32(f)
	}

	return out
}
