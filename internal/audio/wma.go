package audio

import (
	"fmt"
	"io"
)

// wmaGUID is the first 16 bytes of every ASF (WMA) container header.
var wmaGUID = []byte{
	0x30, 0x26, 0xB2, 0x75, 0x8E, 0x66, 0xCF, 0x11,
	0xA6, 0xD9, 0x00, 0xAA, 0x00, 0x62, 0xCE, 0x6C,
}

// decodeWMA recognizes the ASF/WMA container header for the same reason
// decodeM4A recognizes MP4: spec §4.1 lists wma among the recognized
// extensions, so the extension alone must not raise ErrUnsupportedFormat.
// No pure-Go WMA codec exists in the examples or the common ecosystem, so
// any real payload surfaces as ErrDecodeFailure once the header check
// passes, consistent with spec §4.1's "container/codec rejected the
// stream" failure mode.
//
// TODO: wire in a WMA codec if a pure-Go one becomes available.
func decodeWMA(r io.Reader) (rawSamples, error) {
	header := make([]byte, len(wmaGUID))
	if _, err := io.ReadFull(r, header); err != nil {
		return rawSamples{}, fmt.Errorf("wma: %w", err)
	}
	for i, b := range wmaGUID {
		if header[i] != b {
			return rawSamples{}, fmt.Errorf("wma: not an ASF stream")
		}
	}
	return rawSamples{}, fmt.Errorf("wma: codec decode not implemented")
}
