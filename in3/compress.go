package in3

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cocosip/go-bmp-lzw/bmp"
	"github.com/cocosip/go-bmp-lzw/lzw"
	"github.com/cocosip/go-bmp-lzw/raster"
)

// Stats describes one compressed image.
type Stats struct {
	OriginalSize   int // BMP header and pixel array
	CompressedSize int
	Width          lzw.Width
	ImageWidth     int
	ImageHeight    int
	Codes          [3]int // codewords per channel
	Entries        [3]int // final dictionary size per channel
}

// Ratio is the original size divided by the compressed size.
func (s *Stats) Ratio() float64 {
	if s.CompressedSize == 0 {
		return 0
	}
	return float64(s.OriginalSize) / float64(s.CompressedSize)
}

// Vars exposes the statistics as expression variables. Numbers are
// float64 so expressions can mix them freely.
func (s *Stats) Vars() map[string]interface{} {
	vars := map[string]interface{}{
		"original_size":   float64(s.OriginalSize),
		"compressed_size": float64(s.CompressedSize),
		"ratio":           s.Ratio(),
		"codeword_width":  float64(s.Width),
		"image_width":     float64(s.ImageWidth),
		"image_height":    float64(s.ImageHeight),
		"pixels":          float64(s.ImageWidth * s.ImageHeight),
	}
	for i, ch := range raster.Channels {
		vars[ch.String()+"_codes"] = float64(s.Codes[i])
		vars[ch.String()+"_entries"] = float64(s.Entries[i])
	}
	return vars
}

func (s *Stats) String() string {
	return fmt.Sprintf("%dx%d, %d -> %d bytes (%.2fx), %s codewords",
		s.ImageWidth, s.ImageHeight, s.OriginalSize, s.CompressedSize, s.Ratio(), s.Width)
}

func newStats(h *bmp.Header, stream *lzw.Stream) *Stats {
	width, height := h.Dimensions()
	s := &Stats{
		OriginalSize:   bmp.HeaderSize + h.Stride()*height,
		CompressedSize: bmp.HeaderSize + stream.Len(),
		Width:          stream.Width,
		ImageWidth:     width,
		ImageHeight:    height,
		Entries:        stream.Entries,
	}
	for i, codes := range stream.Codes {
		s.Codes[i] = len(codes)
	}
	return s
}

// Compress reads a 24-bit BMP from src and writes the compressed file
// to dst. A nil params uses the defaults.
func Compress(src io.Reader, dst io.Writer, params *lzw.Parameters) (*Stats, error) {
	h, img, err := bmp.Decode(bufio.NewReader(src))
	if err != nil {
		return nil, err
	}
	stream, err := lzw.EncodeImage(img, params)
	if err != nil {
		return nil, err
	}
	if err := Write(dst, h, stream); err != nil {
		return nil, err
	}
	return newStats(h, stream), nil
}

// Decompress reads a compressed file from src and writes the BMP to dst
// using the stored header. The decoded image is returned for checking.
func Decompress(src io.Reader, dst io.Writer) (*raster.Image, *Stats, error) {
	f, err := Read(bufio.NewReader(src))
	if err != nil {
		return nil, nil, err
	}
	stream, img, err := f.Parse()
	if err != nil {
		return nil, nil, err
	}
	if err := bmp.Encode(dst, f.Header, img); err != nil {
		return nil, nil, err
	}
	return img, newStats(f.Header, stream), nil
}
