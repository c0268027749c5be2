package audio

import "io"

// decode dispatches to the per-container decoder. The table covers every
// format spec §4.1 recognizes; formatFromPath already rejects anything
// outside that set before decode is ever called.
func decode(format Format, r io.Reader) (rawSamples, error) {
	switch format {
	case FormatWAV:
		return decodeWAV(r)
	case FormatMP3:
		return decodeMP3(r)
	case FormatFLAC:
		return decodeFLAC(r)
	case FormatOgg:
		return decodeOgg(r)
	case FormatM4A:
		return decodeM4A(r)
	case FormatWMA:
		return decodeWMA(r)
	default:
		return rawSamples{}, unsupportedFormatError(format.String())
	}
}
