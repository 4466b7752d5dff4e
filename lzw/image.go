package lzw

import (
	"fmt"
	"sync"

	"github.com/cocosip/go-bmp-lzw/raster"
)

// Stream is an encoded image: one codeword width shared by three
// codeword segments in red, green, blue order.
type Stream struct {
	Width Width
	Codes [3][]Code

	// Entries is the final dictionary size of each channel's encoder.
	Entries [3]int
}

// Bytes serializes the stream as the width byte followed by the three
// segments. Segments carry no length; the decoder finds each boundary
// from the channel dimensions.
func (s *Stream) Bytes() ([]byte, error) {
	out := make([]byte, 1, s.Len())
	out[0] = byte(s.Width)
	var err error
	for i, codes := range s.Codes {
		out, err = AppendCodes(out, codes, s.Width)
		if err != nil {
			return nil, fmt.Errorf("%s segment: %w", raster.Channels[i], err)
		}
	}
	return out, nil
}

// Len returns the serialized size in bytes.
func (s *Stream) Len() int {
	n := 0
	for _, codes := range s.Codes {
		n += len(codes)
	}
	return 1 + n*s.Width.Bytes()
}

// EncodeImage encodes all three channels with a single codeword width.
// Unless params forces a width, ChooseWidth picks it before any channel
// is encoded. A nil params uses the defaults.
func EncodeImage(img *raster.Image, params *Parameters) (*Stream, error) {
	if params == nil {
		params = NewParameters()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return nil, ErrEmptyChannel
	}
	if err := img.Validate(); err != nil {
		return nil, err
	}

	width := Width(params.CodewordWidth)
	if width == 0 {
		var err error
		width, err = ChooseWidth(img.Red, img.Green, img.Blue)
		if err != nil {
			return nil, err
		}
	}

	stream := &Stream{Width: width}
	var (
		errs [3]error
		at   [3]int
	)
	encode := func(i int) {
		codes, entries, n, err := encodeChannel(img.Plane(raster.Channels[i]), width)
		stream.Codes[i], stream.Entries[i], at[i], errs[i] = codes, entries, n, err
	}

	if params.Parallel {
		var wg sync.WaitGroup
		for i := range raster.Channels {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				encode(i)
			}(i)
		}
		wg.Wait()
	} else {
		for i := range raster.Channels {
			encode(i)
			if errs[i] != nil {
				break
			}
		}
	}

	for i, err := range errs {
		if err != nil {
			return nil, &ChannelError{Channel: raster.Channels[i], Op: "encode", Offset: at[i], Err: err}
		}
	}
	return stream, nil
}

// ParseStream splits serialized stream bytes back into channel segments
// using the channel dimensions.
func ParseStream(data []byte, widthPx, heightPx int) (*Stream, *raster.Image, error) {
	if _, err := sampleCount(widthPx, heightPx); err != nil {
		return nil, nil, err
	}
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("%w: missing codeword width byte", ErrMalformedInput)
	}
	width := Width(data[0])
	if !width.Valid() {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidWidth, data[0])
	}
	codes, err := ParseCodes(data[1:], width)
	if err != nil {
		return nil, nil, err
	}

	img := &raster.Image{Width: widthPx, Height: heightPx}
	stream := &Stream{Width: width}
	start := 0
	for i, ch := range raster.Channels {
		samples, used, err := decodeChannel(codes[start:], img.Samples(), width.codeLimit())
		if err != nil {
			return nil, nil, &ChannelError{Channel: ch, Op: "decode", Offset: start + used, Err: err}
		}
		img.SetPlane(ch, samples)
		stream.Codes[i] = codes[start : start+used]
		stream.Entries[i] = dictionarySize(used)
		start += used
	}
	if start != len(codes) {
		return nil, nil, &ChannelError{
			Channel: raster.Blue,
			Op:      "decode",
			Offset:  start,
			Err:     fmt.Errorf("%w: %d codewords after the last channel", ErrMalformedInput, len(codes)-start),
		}
	}
	return stream, img, nil
}

// DecodeImage reconstructs the three channels of a widthPx x heightPx
// image from serialized stream bytes.
func DecodeImage(data []byte, widthPx, heightPx int) (*raster.Image, error) {
	_, img, err := ParseStream(data, widthPx, heightPx)
	return img, err
}

// dictionarySize is the dictionary size after decoding n codewords:
// every codeword after the first adds one entry.
func dictionarySize(n int) int {
	if n == 0 {
		return alphabetSize
	}
	return alphabetSize + n - 1
}
