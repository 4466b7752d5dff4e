package raster

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
)

// Order is the byte order of the three samples of an interleaved pixel.
type Order int

const (
	// RGB is the order used by DICOM and most in-memory buffers
	RGB Order = iota
	// BGR is the order used by BMP pixel rows
	BGR
)

// offsets returns the byte offset of red, green and blue within a pixel.
func (o Order) offsets() (r, g, b int) {
	if o == BGR {
		return 2, 1, 0
	}
	return 0, 1, 2
}

// FromInterleaved splits width*height packed 3-byte pixels into planes.
func FromInterleaved(pix []byte, width, height int, order Order) (*Image, error) {
	n, err := SampleCount(width, height)
	if err != nil {
		return nil, err
	}
	if len(pix) < n*3 {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrPlaneSize, len(pix), n*3)
	}
	img, err := NewImage(width, height)
	if err != nil {
		return nil, err
	}
	ro, gro, bo := order.offsets()
	for i, p := 0, 0; i < img.Samples(); i, p = i+1, p+3 {
		img.Red[i] = pix[p+ro]
		img.Green[i] = pix[p+gro]
		img.Blue[i] = pix[p+bo]
	}
	return img, nil
}

// Interleave packs the planes into 3-byte pixels.
func (img *Image) Interleave(order Order) []byte {
	ro, gro, bo := order.offsets()
	out := make([]byte, img.Samples()*3)
	for i, p := 0, 0; i < img.Samples(); i, p = i+1, p+3 {
		out[p+ro] = img.Red[i]
		out[p+gro] = img.Green[i]
		out[p+bo] = img.Blue[i]
	}
	return out
}

// FromFrame converts one uncompressed DICOM frame into planes.
// Only 8-bit unsigned RGB is accepted, with either planar configuration.
func FromFrame(info *imagetypes.FrameInfo, frame []byte) (*Image, error) {
	if info == nil {
		return nil, fmt.Errorf("%w: missing frame info", ErrUnsupportedLayout)
	}
	if info.SamplesPerPixel != 3 || info.BitsAllocated != 8 {
		return nil, fmt.Errorf("%w: %d samples per pixel, %d bits allocated (want 3, 8)",
			ErrUnsupportedLayout, info.SamplesPerPixel, info.BitsAllocated)
	}
	width, height := int(info.Width), int(info.Height)
	if info.PlanarConfiguration == 0 {
		return FromInterleaved(frame, width, height, RGB)
	}

	n, err := SampleCount(width, height)
	if err != nil {
		return nil, err
	}
	if len(frame) < n*3 {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrPlaneSize, len(frame), n*3)
	}
	img, err := NewImage(width, height)
	if err != nil {
		return nil, err
	}
	copy(img.Red, frame[:n])
	copy(img.Green, frame[n:2*n])
	copy(img.Blue, frame[2*n:3*n])
	return img, nil
}

// Frame packs the planes using the planar configuration of info.
func (img *Image) Frame(info *imagetypes.FrameInfo) []byte {
	if info != nil && info.PlanarConfiguration != 0 {
		n := img.Samples()
		out := make([]byte, 0, n*3)
		out = append(out, img.Red...)
		out = append(out, img.Green...)
		return append(out, img.Blue...)
	}
	return img.Interleave(RGB)
}
