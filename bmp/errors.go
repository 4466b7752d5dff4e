package bmp

import "errors"

var (
	// ErrInvalidSignature is returned when the file does not start with "BM"
	ErrInvalidSignature = errors.New("bmp: invalid signature")

	// ErrUnsupported is returned for anything other than an uncompressed
	// 24-bit bitmap with a 40-byte info header
	ErrUnsupported = errors.New("bmp: unsupported bitmap format")

	// ErrInvalidDimensions is returned for a zero or negative width, or a zero height
	ErrInvalidDimensions = errors.New("bmp: invalid dimensions")
)
