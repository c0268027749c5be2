package audio

import (
	"fmt"
	"io"

	"github.com/mewkiz/flac"
)

// decodeFLAC decodes a FLAC stream frame-by-frame via mewkiz/flac, the
// pure-Go analogue of the FLAC codec path inside the original's
// `symphonia` decode layer.
func decodeFLAC(r io.Reader) (rawSamples, error) {
	stream, err := flac.New(r)
	if err != nil {
		return rawSamples{}, fmt.Errorf("flac: %w", err)
	}
	defer stream.Close()

	channels := int(stream.Info.NChannels)
	sampleRate := int(stream.Info.SampleRate)
	bitsPerSample := stream.Info.BitsPerSample
	if bitsPerSample == 0 {
		bitsPerSample = 16
	}
	scale := float32(int64(1) << (bitsPerSample - 1))

	var out []float32
	for {
		frame, ferr := stream.ParseNext()
		if ferr == io.EOF {
			break
		}
		if ferr != nil {
			if len(out) > 0 {
				break
			}
			return rawSamples{}, fmt.Errorf("flac: %w", ferr)
		}

		nSamples := len(frame.Subframes[0].Samples)
		for i := 0; i < nSamples; i++ {
			for ch := 0; ch < len(frame.Subframes); ch++ {
				out = append(out, float32(frame.Subframes[ch].Samples[i])/scale)
			}
		}
	}

	// An empty out is returned as-is; Normalize reports it as ErrEmptyAudio.
	return rawSamples{kind: kindF32, f32: out, sampleRate: sampleRate, channels: channels}, nil
}
