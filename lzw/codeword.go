package lzw

import "fmt"

// AppendCodes serializes codes big-endian, width bytes each, and appends
// them to dst. A code that does not fit in width is ErrDictionaryOverflow.
func AppendCodes(dst []byte, codes []Code, width Width) ([]byte, error) {
	if !width.Valid() {
		return dst, fmt.Errorf("%w: %d", ErrInvalidWidth, int(width))
	}
	maxCode := width.MaxCode()
	for i, c := range codes {
		if c > maxCode {
			return dst, fmt.Errorf("%w: codeword %d at index %d needs more than %d bytes", ErrDictionaryOverflow, c, i, int(width))
		}
		if width == Width24 {
			dst = append(dst, byte(c>>16))
		}
		dst = append(dst, byte(c>>8), byte(c))
	}
	return dst, nil
}

// ParseCodes reads big-endian codewords of width bytes each. The length of
// data must be a multiple of width.
func ParseCodes(data []byte, width Width) ([]Code, error) {
	if !width.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, int(width))
	}
	w := width.Bytes()
	if rem := len(data) % w; rem != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after %d codewords", ErrMalformedInput, rem, len(data)/w)
	}
	codes := make([]Code, len(data)/w)
	for i := range codes {
		p := data[i*w : i*w+w]
		if w == 3 {
			codes[i] = Code(p[0])<<16 | Code(p[1])<<8 | Code(p[2])
		} else {
			codes[i] = Code(p[0])<<8 | Code(p[1])
		}
	}
	return codes, nil
}
