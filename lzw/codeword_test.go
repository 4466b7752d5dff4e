package lzw

import (
	"bytes"
	"errors"
	"testing"
)

func TestAppendCodes(t *testing.T) {
	tests := []struct {
		name  string
		codes []Code
		width Width
		want  []byte
	}{
		{"2-byte", []Code{1, 0x1234, 0xFFFF}, Width16, []byte{0x00, 0x01, 0x12, 0x34, 0xFF, 0xFF}},
		{"3-byte", []Code{1, 0x123456}, Width24, []byte{0x00, 0x00, 0x01, 0x12, 0x34, 0x56}},
		{"empty", nil, Width16, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AppendCodes(nil, tt.codes, tt.width)
			if err != nil {
				t.Fatalf("AppendCodes failed: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("AppendCodes = % x, want % x", got, tt.want)
			}

			codes, err := ParseCodes(got, tt.width)
			if err != nil {
				t.Fatalf("ParseCodes failed: %v", err)
			}
			if !equalCodes(codes, tt.codes) {
				t.Errorf("ParseCodes = %v, want %v", codes, tt.codes)
			}
		})
	}
}

func TestAppendCodesOverflow(t *testing.T) {
	_, err := AppendCodes(nil, []Code{1, 70000}, Width16)
	if !errors.Is(err, ErrDictionaryOverflow) {
		t.Errorf("AppendCodes error = %v, want %v", err, ErrDictionaryOverflow)
	}
}

func TestParseCodesErrors(t *testing.T) {
	if _, err := ParseCodes([]byte{0, 1, 2}, Width16); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("ParseCodes(3 bytes, 2-byte) error = %v, want %v", err, ErrMalformedInput)
	}
	if _, err := ParseCodes([]byte{0, 1, 2, 3}, Width24); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("ParseCodes(4 bytes, 3-byte) error = %v, want %v", err, ErrMalformedInput)
	}
	if _, err := ParseCodes([]byte{0, 1}, Width(5)); !errors.Is(err, ErrInvalidWidth) {
		t.Errorf("ParseCodes(width 5) error = %v, want %v", err, ErrInvalidWidth)
	}
}
