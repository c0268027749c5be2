package audio

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

// decodeOgg decodes an Ogg/Vorbis stream via jfreymuth/oggvorbis, which
// already produces interleaved f32 samples in [-1, +1] — the same target
// representation spec §4.1 step 2 defines for the f32 input case.
func decodeOgg(r io.Reader) (rawSamples, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return rawSamples{}, fmt.Errorf("ogg: %w", err)
	}

	var out []float32
	buf := make([]float32, 4096)
	for {
		n, rerr := dec.Read(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			if len(out) > 0 {
				break
			}
			return rawSamples{}, fmt.Errorf("ogg: %w", rerr)
		}
	}

	// An empty out is returned as-is; Normalize reports it as ErrEmptyAudio.
	return rawSamples{
		kind:       kindF32,
		f32:        out,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
