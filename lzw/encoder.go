package lzw

import "fmt"

// Encode compresses one channel into a codeword sequence.
//
// Assigned codes stay below the largest value representable in width
// bytes (65534 for 2 bytes); if the dictionary outgrows that, Encode fails
// with ErrDictionaryOverflow rather than wrapping. Use ChooseWidth to pick
// a width that fits.
func Encode(samples []byte, width Width) ([]Code, error) {
	if !width.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, int(width))
	}
	codes, _, at, err := encodeChannel(samples, width)
	if err != nil && at >= 0 {
		return nil, fmt.Errorf("sample %d: %w", at, err)
	}
	return codes, err
}

// encodeChannel runs the encoder and also returns the final dictionary
// size. On failure it returns the index of the sample being processed,
// or -1 if no sample was reached.
func encodeChannel(samples []byte, width Width) ([]Code, int, int, error) {
	if len(samples) == 0 {
		return nil, 0, -1, ErrEmptyChannel
	}
	dict := NewEncodeDictionary(width.codeLimit())
	codes := make([]Code, 0, len(samples)/2+1)
	n, err := scan(samples, dict, func(c Code) {
		codes = append(codes, c)
	})
	if err != nil {
		return nil, dict.Len(), n, err
	}
	return codes, dict.Len(), n, nil
}

// scan performs the left-to-right LZW pass, calling emit (if non-nil) for
// every closed phrase. On failure it returns the index of the sample being
// processed.
func scan(samples []byte, dict *EncodeDictionary, emit func(Code)) (int, error) {
	if emit == nil {
		emit = func(Code) {}
	}
	current := Code(samples[0])
	for i := 1; i < len(samples); i++ {
		s := samples[i]
		if next, ok := dict.Child(current, s); ok {
			current = next
			continue
		}
		emit(current)
		if _, err := dict.Add(current, s); err != nil {
			return i, err
		}
		current = Code(s)
	}
	emit(current)
	return len(samples), nil
}
