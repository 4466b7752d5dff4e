package bmp

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// FileHeaderSize is the size of the BITMAPFILEHEADER
	FileHeaderSize = 14
	// InfoHeaderSize is the size of the BITMAPINFOHEADER
	InfoHeaderSize = 40
	// HeaderSize is the offset of the pixel array in files written by this package
	HeaderSize = FileHeaderSize + InfoHeaderSize

	// CompressionRGB is BI_RGB, uncompressed pixels
	CompressionRGB = 0

	bitsPerPixel  = 24
	bytesPerPixel = 3

	// 2835 pixels per meter is 72 DPI
	defaultResolution = 2835
)

// Header is the file header followed by the info header, in file order.
type Header struct {
	Signature       [2]byte // "BM"
	FileSize        uint32  // Total file size
	Reserved1       uint16
	Reserved2       uint16
	DataOffset      uint32 // Offset to the pixel array
	InfoSize        uint32 // Size of the info header (40)
	Width           int32
	Height          int32 // Negative for top-down rows
	Planes          uint16
	BitsPerPixel    uint16
	Compression     uint32
	ImageSize       uint32 // Pixel array size, may be 0 for BI_RGB
	XPixelsPerMeter int32
	YPixelsPerMeter int32
	ColorsUsed      uint32
	ImportantColors uint32
}

// NewHeader returns a header for a bottom-up 24-bit bitmap.
func NewHeader(width, height int) (*Header, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	h := &Header{
		Signature:       [2]byte{'B', 'M'},
		DataOffset:      HeaderSize,
		InfoSize:        InfoHeaderSize,
		Width:           int32(width),
		Height:          int32(height),
		Planes:          1,
		BitsPerPixel:    bitsPerPixel,
		Compression:     CompressionRGB,
		XPixelsPerMeter: defaultResolution,
		YPixelsPerMeter: defaultResolution,
	}
	h.ImageSize = uint32(h.Stride() * height)
	h.FileSize = HeaderSize + h.ImageSize
	return h, nil
}

// Read reads and validates a header.
func (h *Header) Read(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("bmp: reading header: %w", err)
	}
	return h.Validate()
}

// Write writes the header.
func (h *Header) Write(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, h)
}

// Validate checks that the header describes a bitmap this package can read.
func (h *Header) Validate() error {
	if h.Signature != [2]byte{'B', 'M'} {
		return fmt.Errorf("%w: %q", ErrInvalidSignature, h.Signature[:])
	}
	if h.InfoSize != InfoHeaderSize || h.DataOffset != HeaderSize {
		return fmt.Errorf("%w: info header %d bytes, pixel data at %d", ErrUnsupported, h.InfoSize, h.DataOffset)
	}
	if h.BitsPerPixel != bitsPerPixel || h.Compression != CompressionRGB {
		return fmt.Errorf("%w: %d bits per pixel, compression %d", ErrUnsupported, h.BitsPerPixel, h.Compression)
	}
	if h.Width <= 0 || h.Height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, h.Width, h.Height)
	}
	return nil
}

// Dimensions returns the image size in pixels.
func (h *Header) Dimensions() (width, height int) {
	height = int(h.Height)
	if height < 0 {
		height = -height
	}
	return int(h.Width), height
}

// TopDown reports whether the first stored row is the top of the image.
func (h *Header) TopDown() bool {
	return h.Height < 0
}

// RowPadding is the number of zero bytes that pad each row to 4 bytes.
func (h *Header) RowPadding() int {
	return (4 - int(h.Width)*bytesPerPixel%4) % 4
}

// Stride is the stored size of one row in bytes.
func (h *Header) Stride() int {
	return int(h.Width)*bytesPerPixel + h.RowPadding()
}
