package audio

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

// decodeMP3 decodes an MPEG audio stream via the pure-Go hajimehoshi/go-mp3
// decoder, the ecosystem analogue of the MP3 codec path inside the
// original's `symphonia` decode layer (original_source/.../processor.rs).
// go-mp3 always emits interleaved, little-endian, 16-bit stereo PCM.
func decodeMP3(r io.Reader) (rawSamples, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return rawSamples{}, fmt.Errorf("mp3: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil && len(raw) == 0 {
		return rawSamples{}, fmt.Errorf("mp3: %w", err)
	}
	if len(raw)%2 != 0 {
		raw = raw[:len(raw)-1]
	}

	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[i*2 : i*2+2]))
	}

	return rawSamples{
		kind:       kindI16,
		i16:        samples,
		sampleRate: dec.SampleRate(),
		channels:   2,
	}, nil
}
