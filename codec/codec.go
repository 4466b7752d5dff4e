package codec

// Codec is the interface for whole-file image codecs
type Codec interface {
	// Encode encodes pixel data into a complete file
	Encode(params EncodeParams) ([]byte, error)

	// Decode decodes a complete file
	Decode(data []byte) (*DecodeResult, error)

	// Extension returns the file extension, including the leading dot
	Extension() string

	// Name returns a human-readable name
	Name() string
}

// EncodeParams contains parameters for encoding
type EncodeParams struct {
	PixelData  []byte  // Interleaved RGB pixel data, top row first
	Width      int     // Image width
	Height     int     // Image height
	Components int     // Number of color components (3=RGB)
	BitDepth   int     // Bits per sample
	Options    Options // Codec-specific options, nil for defaults
}

// Options is an interface for codec-specific encoding options
type Options interface {
	// Validate checks if the options are valid
	Validate() error
}

// DecodeResult contains the result of decoding
type DecodeResult struct {
	PixelData  []byte // Decoded interleaved RGB pixel data
	Width      int    // Image width
	Height     int    // Image height
	Components int    // Number of color components
	BitDepth   int    // Bits per sample
}

// Validate checks the layout fields of the parameters
func (p *EncodeParams) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return ErrInvalidParameter
	}
	if p.Components != 3 || p.BitDepth != 8 {
		return ErrUnsupportedFormat
	}
	if len(p.PixelData) < p.Width*p.Height*p.Components {
		return ErrInvalidParameter
	}
	if p.Options != nil {
		return p.Options.Validate()
	}
	return nil
}
