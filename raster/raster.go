// Package raster holds the in-memory form of an RGB image as three
// independent sample planes.
package raster

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidDimensions is returned when width or height is not positive
	ErrInvalidDimensions = errors.New("invalid image dimensions")

	// ErrPlaneSize is returned when a plane does not hold width*height samples
	ErrPlaneSize = errors.New("plane size does not match dimensions")

	// ErrUnsupportedLayout is returned for pixel layouts other than 8-bit RGB
	ErrUnsupportedLayout = errors.New("unsupported pixel layout")
)

// Channel identifies one color component.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

// Channels lists the components in stream order.
var Channels = [3]Channel{Red, Green, Blue}

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

// Image is an RGB image stored as three row-major planes, top row first.
type Image struct {
	Width  int
	Height int
	Red    []byte
	Green  []byte
	Blue   []byte
}

// SampleCount returns width*height, rejecting non-positive dimensions and
// images whose three planes together would overflow an int.
func SampleCount(width, height int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if height > math.MaxInt/3/width {
		return 0, fmt.Errorf("%w: %dx%d overflows", ErrInvalidDimensions, width, height)
	}
	return width * height, nil
}

// NewImage allocates zeroed planes for a width x height image.
// Callers decoding untrusted input check the input size first; NewImage
// only rejects dimensions that cannot be represented.
func NewImage(width, height int) (*Image, error) {
	n, err := SampleCount(width, height)
	if err != nil {
		return nil, err
	}
	return &Image{
		Width:  width,
		Height: height,
		Red:    make([]byte, n),
		Green:  make([]byte, n),
		Blue:   make([]byte, n),
	}, nil
}

// Plane returns the samples of one channel.
func (img *Image) Plane(c Channel) []byte {
	switch c {
	case Red:
		return img.Red
	case Green:
		return img.Green
	case Blue:
		return img.Blue
	}
	return nil
}

// SetPlane replaces the samples of one channel.
func (img *Image) SetPlane(c Channel, samples []byte) {
	switch c {
	case Red:
		img.Red = samples
	case Green:
		img.Green = samples
	case Blue:
		img.Blue = samples
	}
}

// Samples returns the number of samples in each plane.
func (img *Image) Samples() int {
	return img.Width * img.Height
}

// Validate checks the dimensions against the plane lengths.
func (img *Image) Validate() error {
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, img.Width, img.Height)
	}
	n := img.Samples()
	for _, c := range Channels {
		if got := len(img.Plane(c)); got != n {
			return fmt.Errorf("%w: %s plane has %d samples, want %d", ErrPlaneSize, c, got, n)
		}
	}
	return nil
}

// At returns the red, green and blue samples of pixel (x, y).
func (img *Image) At(x, y int) (r, g, b byte) {
	i := y*img.Width + x
	return img.Red[i], img.Green[i], img.Blue[i]
}

// Equal reports whether both images have the same dimensions and samples.
func (img *Image) Equal(other *Image) bool {
	if other == nil || img.Width != other.Width || img.Height != other.Height {
		return false
	}
	for _, c := range Channels {
		if string(img.Plane(c)) != string(other.Plane(c)) {
			return false
		}
	}
	return true
}

// Source yields an image from some container.
type Source interface {
	ReadImage() (*Image, error)
}

// Sink accepts a reconstructed image for persistence or display.
type Sink interface {
	WriteImage(img *Image) error
}
