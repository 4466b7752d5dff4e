package lzw

import (
	"fmt"
	"math"
)

// Decode reconstructs widthPx*heightPx samples from the front of codes.
//
// It returns the samples and the index of the first codeword it did not
// consume, which is where the next channel's segment starts when several
// channels are concatenated. On failure the index is that of the
// offending codeword.
func Decode(codes []Code, widthPx, heightPx int) ([]byte, int, error) {
	total, err := sampleCount(widthPx, heightPx)
	if err != nil {
		return nil, 0, err
	}
	return decodeChannel(codes, total, Width24.codeLimit())
}

// sampleCount returns widthPx*heightPx, rejecting empty and overflowing
// dimensions.
func sampleCount(widthPx, heightPx int) (int, error) {
	if widthPx <= 0 || heightPx <= 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrEmptyChannel, widthPx, heightPx)
	}
	if heightPx > math.MaxInt/widthPx {
		return 0, fmt.Errorf("%w: %dx%d samples overflow", ErrDimensionMismatch, widthPx, heightPx)
	}
	return widthPx * heightPx, nil
}

// maxSamples is the most samples n codewords can produce: the i-th
// codeword of a channel names a phrase of at most i+1 samples.
func maxSamples(n int) uint64 {
	return uint64(n) * (uint64(n) + 1) / 2
}

// initialOutputCap bounds the first allocation of a channel's samples.
const initialOutputCap = 1 << 20

// grow extends b by k bytes, reallocating geometrically.
func grow(b []byte, k int) []byte {
	if n := len(b) + k; n <= cap(b) {
		return b[:n]
	}
	return append(b, make([]byte, k)...)
}

// decodeChannel decodes exactly total samples, never assigning a code
// above limit.
func decodeChannel(codes []Code, total int, limit Code) ([]byte, int, error) {
	if total <= 0 {
		return nil, 0, ErrEmptyChannel
	}
	if len(codes) == 0 {
		return nil, 0, fmt.Errorf("%w: no codewords for %d samples", ErrDimensionMismatch, total)
	}
	if uint64(total) > maxSamples(len(codes)) {
		return nil, 0, fmt.Errorf("%w: %d codewords cannot produce %d samples", ErrDimensionMismatch, len(codes), total)
	}

	first := codes[0]
	if first >= firstFreeCode {
		return nil, 0, fmt.Errorf("%w: first codeword %d is not a single sample", ErrMalformedInput, first)
	}

	// out grows with the decoded samples; total comes from the caller's
	// dimensions and is only an upper bound until the stream confirms it.
	dict := NewDecodeDictionary(limit)
	out := make([]byte, 1, min(total, initialOutputCap))
	out[0] = byte(first)
	n := 1
	prev := first

	i := 1
	for ; n < total; i++ {
		if i >= len(codes) {
			return nil, i, fmt.Errorf("%w: stream ended after %d of %d samples", ErrDimensionMismatch, n, total)
		}
		c := codes[i]
		next := dict.NextCode()

		switch {
		case c < next:
			size := dict.PhraseLen(c)
			if n+size > total {
				return nil, i, fmt.Errorf("%w: codeword %d overruns %d samples", ErrDimensionMismatch, c, total)
			}
			out = grow(out, size)
			dict.expand(out[n:n+size], c)
			n += size
			if _, err := dict.Add(prev, dict.First(c)); err != nil {
				return nil, i, err
			}

		case c == next:
			// The encoder assigned c while emitting prev, so the phrase is
			// prev followed by its own first sample.
			size := dict.PhraseLen(prev) + 1
			if n+size > total {
				return nil, i, fmt.Errorf("%w: codeword %d overruns %d samples", ErrDimensionMismatch, c, total)
			}
			if _, err := dict.Add(prev, dict.First(prev)); err != nil {
				return nil, i, err
			}
			out = grow(out, size)
			dict.expand(out[n:n+size], c)
			n += size

		default:
			return nil, i, fmt.Errorf("%w: codeword %d at index %d, next code is %d", ErrMalformedInput, c, i, next)
		}
		prev = c
	}
	return out, i, nil
}
