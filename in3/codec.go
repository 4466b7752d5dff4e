package in3

import (
	"bytes"
	"fmt"

	"github.com/cocosip/go-bmp-lzw/bmp"
	"github.com/cocosip/go-bmp-lzw/codec"
	"github.com/cocosip/go-bmp-lzw/lzw"
	"github.com/cocosip/go-bmp-lzw/raster"
)

var _ codec.Codec = (*Codec)(nil)

// Codec implements codec.Codec for compressed files.
type Codec struct{}

// NewCodec creates a new compressed file codec
func NewCodec() *Codec {
	return &Codec{}
}

// Name returns the codec name
func (c *Codec) Name() string {
	return "lzw-rgb"
}

// Extension returns the registered file extension
func (c *Codec) Extension() string {
	return ".in3"
}

// Encode compresses interleaved 8-bit RGB pixels into a complete file.
// Options, when set, must be *lzw.Parameters.
func (c *Codec) Encode(params codec.EncodeParams) ([]byte, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var opts *lzw.Parameters
	if params.Options != nil {
		var ok bool
		if opts, ok = params.Options.(*lzw.Parameters); !ok {
			return nil, fmt.Errorf("%w: options of type %T", codec.ErrInvalidParameter, params.Options)
		}
	}

	img, err := raster.FromInterleaved(params.PixelData, params.Width, params.Height, raster.RGB)
	if err != nil {
		return nil, err
	}
	h, err := bmp.NewHeader(params.Width, params.Height)
	if err != nil {
		return nil, err
	}
	stream, err := lzw.EncodeImage(img, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(bmp.HeaderSize + stream.Len())
	if err := Write(&buf, h, stream); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode decodes a complete file into interleaved RGB pixels
func (c *Codec) Decode(data []byte) (*codec.DecodeResult, error) {
	f, err := Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	img, err := f.Image()
	if err != nil {
		return nil, err
	}
	return &codec.DecodeResult{
		PixelData:  img.Interleave(raster.RGB),
		Width:      img.Width,
		Height:     img.Height,
		Components: 3,
		BitDepth:   8,
	}, nil
}

func init() {
	codec.Register(NewCodec())
}
