package audio

import (
	"encoding/binary"
	"fmt"
	"io"
)

// decodeM4A recognizes the MP4/M4A container well enough to confirm it is
// a box-structured stream (spec §4.1 lists m4a among the recognized
// extensions, so it must not return ErrUnsupportedFormat), but does not
// decode the AAC payload: no pack repo or common pure-Go package carries
// an AAC decoder without cgo. Per spec §4.1's own failure taxonomy, an
// unparseable codec inside a recognized container is a DecodeFailure, not
// an UnsupportedFormat.
//
// TODO: wire in a pure-Go AAC decoder if one becomes available; until then
// this always returns ErrDecodeFailure for any real M4A payload.
func decodeM4A(r io.Reader) (rawSamples, error) {
	var sizeBuf [8]byte
	if _, err := io.ReadFull(r, sizeBuf[:]); err != nil {
		return rawSamples{}, fmt.Errorf("m4a: %w", err)
	}

	boxType := string(sizeBuf[4:8])
	boxSize := binary.BigEndian.Uint32(sizeBuf[0:4])
	if boxType != "ftyp" || boxSize == 0 {
		return rawSamples{}, fmt.Errorf("m4a: not an MP4 box stream")
	}

	return rawSamples{}, fmt.Errorf("m4a: AAC decode not implemented")
}
