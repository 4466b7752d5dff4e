package lzw

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/mitchellh/mapstructure"
)

// Ensure Parameters implements codec.Parameters
var _ codec.Parameters = (*Parameters)(nil)

// Parameters controls how an image is encoded.
type Parameters struct {
	// CodewordWidth forces the codeword size in bytes.
	// - 0: choose automatically (default)
	// - 2: 16-bit codewords; encoding fails if the dictionary outgrows them
	// - 3: 24-bit codewords
	CodewordWidth int `mapstructure:"codeword_width" yaml:"codeword_width"`

	// Parallel encodes the three channels concurrently.
	Parallel bool `mapstructure:"parallel" yaml:"parallel"`

	// internal storage for compatibility with generic parameter interface
	params map[string]interface{}
}

// NewParameters creates Parameters with default values.
func NewParameters() *Parameters {
	return &Parameters{
		params: make(map[string]interface{}),
	}
}

// ParametersFromMap decodes a generic map, such as a section of a YAML
// config file, into Parameters. Keys use the mapstructure tags above;
// unknown keys are kept as custom parameters.
func ParametersFromMap(m map[string]interface{}) (*Parameters, error) {
	p := NewParameters()
	if len(m) == 0 {
		return p, nil
	}

	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Metadata:         &md,
		Result:           p,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(m); err != nil {
		return nil, fmt.Errorf("invalid LZW parameters: %w", err)
	}
	for _, key := range md.Unused {
		p.params[key] = m[key]
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *Parameters) GetParameter(name string) interface{} {
	switch name {
	case "codeword_width":
		return p.CodewordWidth
	case "parallel":
		return p.Parallel
	default:
		return p.params[name]
	}
}

// SetParameter sets a parameter value (implements codec.Parameters)
func (p *Parameters) SetParameter(name string, value interface{}) {
	switch name {
	case "codeword_width":
		if v, ok := value.(int); ok {
			p.CodewordWidth = v
		}
	case "parallel":
		if v, ok := value.(bool); ok {
			p.Parallel = v
		}
	default:
		if p.params == nil {
			p.params = make(map[string]interface{})
		}
		p.params[name] = value
	}
}

// Validate checks that the forced width, if any, is 2 or 3.
func (p *Parameters) Validate() error {
	if p.CodewordWidth != 0 && !Width(p.CodewordWidth).Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidWidth, p.CodewordWidth)
	}
	return nil
}

// WithCodewordWidth forces the codeword width and returns the parameters for chaining
func (p *Parameters) WithCodewordWidth(width Width) *Parameters {
	p.CodewordWidth = int(width)
	return p
}

// WithParallel enables concurrent channel encoding and returns the parameters for chaining
func (p *Parameters) WithParallel(parallel bool) *Parameters {
	p.Parallel = parallel
	return p
}

// fromGeneric reads the known keys of any codec.Parameters implementation.
func fromGeneric(parameters codec.Parameters) (*Parameters, error) {
	if parameters == nil {
		return NewParameters(), nil
	}
	if p, ok := parameters.(*Parameters); ok {
		return p, p.Validate()
	}
	m := make(map[string]interface{})
	for _, key := range []string{"codeword_width", "parallel"} {
		if v := parameters.GetParameter(key); v != nil {
			m[key] = v
		}
	}
	return ParametersFromMap(m)
}
