// Package in3 implements the compressed image file: the 54-byte BMP
// header of the source bitmap followed by an LZW stream.
package in3

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cocosip/go-bmp-lzw/bmp"
	"github.com/cocosip/go-bmp-lzw/lzw"
	"github.com/cocosip/go-bmp-lzw/raster"
)

// Extension is the file extension written by the command line tool
const Extension = ".IN3"

// File is a parsed compressed file.
type File struct {
	Header *bmp.Header
	Stream []byte // codeword width byte followed by the three segments
}

// Read parses a compressed file. The stream is not decoded.
func Read(r io.Reader) (*File, error) {
	h := new(bmp.Header)
	if err := h.Read(r); err != nil {
		return nil, fmt.Errorf("in3: %w", err)
	}
	stream, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("in3: reading stream: %w", err)
	}
	if len(stream) == 0 {
		return nil, fmt.Errorf("in3: %w: no stream after header", lzw.ErrMalformedInput)
	}
	return &File{Header: h, Stream: stream}, nil
}

// Write writes the header of h followed by the serialized stream.
func Write(w io.Writer, h *bmp.Header, stream *lzw.Stream) error {
	data, err := stream.Bytes()
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if err := h.Write(bw); err != nil {
		return err
	}
	if _, err := bw.Write(data); err != nil {
		return err
	}
	return bw.Flush()
}

// Image decodes the stream using the dimensions in the header.
func (f *File) Image() (*raster.Image, error) {
	width, height := f.Header.Dimensions()
	return lzw.DecodeImage(f.Stream, width, height)
}

// Parse splits the stream into its channel segments.
func (f *File) Parse() (*lzw.Stream, *raster.Image, error) {
	width, height := f.Header.Dimensions()
	return lzw.ParseStream(f.Stream, width, height)
}
