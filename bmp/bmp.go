// Package bmp reads and writes uncompressed 24-bit BMP files as
// planar RGB images.
package bmp

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/cocosip/go-bmp-lzw/raster"
)

// Decode reads a 24-bit BMP file. Rows are returned top to bottom
// whatever their stored order.
func Decode(r io.Reader) (*Header, *raster.Image, error) {
	h := new(Header)
	if err := h.Read(r); err != nil {
		return nil, nil, err
	}
	img, err := ReadPixels(r, h)
	if err != nil {
		return nil, nil, err
	}
	return h, img, nil
}

// ReadPixels reads the pixel array described by h. The array is read in
// full before the image is allocated, so a header claiming more rows than
// the stream holds fails with io.ErrUnexpectedEOF.
func ReadPixels(r io.Reader, h *Header) (*raster.Image, error) {
	width, height := h.Dimensions()
	stride := h.Stride()
	if stride <= 0 || height > math.MaxInt/stride {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	size := stride * height

	pix, err := io.ReadAll(io.LimitReader(r, int64(size)))
	if err != nil {
		return nil, fmt.Errorf("bmp: reading pixels: %w", err)
	}
	if len(pix) < size {
		return nil, fmt.Errorf("bmp: reading row %d of %d: %w", len(pix)/stride, height, io.ErrUnexpectedEOF)
	}

	img, err := raster.NewImage(width, height)
	if err != nil {
		return nil, err
	}
	for i := 0; i < height; i++ {
		row := pix[i*stride : (i+1)*stride]
		y := i
		if !h.TopDown() {
			y = height - 1 - i
		}
		base := y * width
		for x, p := 0, 0; x < width; x, p = x+1, p+bytesPerPixel {
			img.Blue[base+x] = row[p]
			img.Green[base+x] = row[p+1]
			img.Red[base+x] = row[p+2]
		}
	}
	return img, nil
}

// Encode writes img as a 24-bit BMP file. A nil header is replaced by
// NewHeader; otherwise the header must match the image dimensions and
// decides the stored row order.
func Encode(w io.Writer, h *Header, img *raster.Image) error {
	if err := img.Validate(); err != nil {
		return err
	}
	if h == nil {
		var err error
		if h, err = NewHeader(img.Width, img.Height); err != nil {
			return err
		}
	}
	if err := h.Validate(); err != nil {
		return err
	}
	if width, height := h.Dimensions(); width != img.Width || height != img.Height {
		return fmt.Errorf("%w: header is %dx%d, image is %dx%d",
			ErrInvalidDimensions, width, height, img.Width, img.Height)
	}

	bw := bufio.NewWriter(w)
	if err := h.Write(bw); err != nil {
		return err
	}
	if err := WritePixels(bw, h, img); err != nil {
		return err
	}
	return bw.Flush()
}

// WritePixels writes the pixel array of img in the row order of h.
func WritePixels(w io.Writer, h *Header, img *raster.Image) error {
	row := make([]byte, h.Stride())
	for i := 0; i < img.Height; i++ {
		y := i
		if !h.TopDown() {
			y = img.Height - 1 - i
		}
		base := y * img.Width
		for x, p := 0, 0; x < img.Width; x, p = x+1, p+bytesPerPixel {
			row[p] = img.Blue[base+x]
			row[p+1] = img.Green[base+x]
			row[p+2] = img.Red[base+x]
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Reader reads one image from a BMP stream.
type Reader struct {
	r io.Reader

	// Header is set by ReadImage
	Header *Header
}

var _ raster.Source = (*Reader)(nil)

// NewReader returns a Reader for r
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadImage decodes the bitmap and keeps its header
func (d *Reader) ReadImage() (*raster.Image, error) {
	h, img, err := Decode(d.r)
	if err != nil {
		return nil, err
	}
	d.Header = h
	return img, nil
}

// Writer writes one image as a BMP stream.
type Writer struct {
	w io.Writer

	// Header is written in front of the pixels; nil writes a new bottom-up header
	Header *Header
}

var _ raster.Sink = (*Writer)(nil)

// NewWriter returns a Writer for w using header h, which may be nil
func NewWriter(w io.Writer, h *Header) *Writer {
	return &Writer{w: w, Header: h}
}

// WriteImage encodes img
func (e *Writer) WriteImage(img *raster.Image) error {
	return Encode(e.w, e.Header, img)
}
