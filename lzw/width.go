package lzw

import (
	"errors"
	"fmt"

	"github.com/cocosip/go-bmp-lzw/raster"
)

// Width is the number of bytes used to serialize every codeword of an image.
type Width int

const (
	// Width16 stores codewords in 2 bytes (codes up to 65535)
	Width16 Width = 2
	// Width24 stores codewords in 3 bytes (codes up to 16777215)
	Width24 Width = 3
)

// Valid reports whether w is 2 or 3.
func (w Width) Valid() bool {
	return w == Width16 || w == Width24
}

// Bytes returns the serialized size of one codeword.
func (w Width) Bytes() int {
	return int(w)
}

// MaxCode returns the largest code representable in w bytes.
func (w Width) MaxCode() Code {
	return Code(1)<<(8*uint(w)) - 1
}

// codeLimit returns the highest code a dictionary may assign at width w.
// The largest representable value is never assigned, so an image that
// ChooseWidth sends to 3 bytes also fails when forced to 2.
func (w Width) codeLimit() Code {
	return w.MaxCode() - 1
}

func (w Width) String() string {
	if !w.Valid() {
		return fmt.Sprintf("invalid(%d)", int(w))
	}
	return fmt.Sprintf("%d-byte", int(w))
}

// ChooseWidth selects one codeword width for all three channels.
//
// Each channel's dictionary growth is simulated without keeping codewords.
// If any channel would assign a code at or beyond 65535, the image needs
// 3-byte codewords; otherwise 2 bytes suffice. All channels are always
// evaluated, since the width is shared.
func ChooseWidth(red, green, blue []byte) (Width, error) {
	overflow := false
	for i, samples := range [3][]byte{red, green, blue} {
		o, err := needsWideCodes(samples)
		if err != nil {
			return 0, &ChannelError{Channel: raster.Channels[i], Op: "encode", Err: err}
		}
		overflow = overflow || o
	}
	if overflow {
		return Width24, nil
	}
	return Width16, nil
}

// needsWideCodes dry-runs the encoder with the 2-byte dictionary limit
// and reports whether the limit was hit.
func needsWideCodes(samples []byte) (bool, error) {
	if len(samples) == 0 {
		return false, ErrEmptyChannel
	}
	dict := NewEncodeDictionary(Width16.codeLimit())
	_, err := scan(samples, dict, nil)
	if errors.Is(err, ErrDictionaryOverflow) {
		return true, nil
	}
	return false, err
}
