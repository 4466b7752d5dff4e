package lzw

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func equalCodes(a, b []Code) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func compareSamples(t *testing.T, got, want []byte) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Decoded length mismatch: got %d, want %d", len(got), len(want))
	}
	errs := 0
	for i := range want {
		if got[i] != want[i] {
			errs++
			if errs <= 10 {
				t.Errorf("Sample %d mismatch: got %d, want %d", i, got[i], want[i])
			}
		}
	}
	if errs > 0 {
		t.Errorf("Total sample errors: %d / %d", errs, len(want))
	}
}

func noise(n int, seed int64) []byte {
	r := rand.New(rand.NewSource(seed))
	b := make([]byte, n)
	r.Read(b)
	return b
}

// TestEncodeRepeatedSample covers a run of one value, where the second
// codeword refers to the entry assigned in the same step.
func TestEncodeRepeatedSample(t *testing.T) {
	samples := []byte{5, 5, 5, 5, 5, 5, 5, 5}

	codes, err := Encode(samples, Width16)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	want := []Code{5, 256, 257, 256}
	if !equalCodes(codes, want) {
		t.Fatalf("Encode = %v, want %v", codes, want)
	}

	decoded, next, err := Decode(codes, 8, 1)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if next != len(codes) {
		t.Errorf("next index = %d, want %d", next, len(codes))
	}
	compareSamples(t, decoded, samples)
}

// TestEncodeDistinctSamples covers a channel with no repeated pair.
func TestEncodeDistinctSamples(t *testing.T) {
	samples := make([]byte, 256)
	for i := range samples {
		samples[i] = byte(i)
	}

	codes, err := Encode(samples, Width16)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(codes) != 256 {
		t.Fatalf("Encode emitted %d codes, want 256", len(codes))
	}
	for i, c := range codes {
		if c != Code(i) {
			t.Fatalf("code %d = %d, want singleton %d", i, c, i)
		}
	}

	decoded, _, err := Decode(codes, 16, 16)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	compareSamples(t, decoded, samples)
}

func TestSingleSample(t *testing.T) {
	codes, err := Encode([]byte{7}, Width24)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !equalCodes(codes, []Code{7}) {
		t.Fatalf("Encode = %v, want [7]", codes)
	}

	decoded, next, err := Decode(codes, 1, 1)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if next != 1 || len(decoded) != 1 || decoded[0] != 7 {
		t.Errorf("Decode = %v, %d; want [7], 1", decoded, next)
	}
}

func TestEmptyChannel(t *testing.T) {
	if _, err := Encode(nil, Width16); !errors.Is(err, ErrEmptyChannel) {
		t.Errorf("Encode(nil) error = %v, want %v", err, ErrEmptyChannel)
	}
	if _, _, err := Decode([]Code{1}, 0, 4); !errors.Is(err, ErrEmptyChannel) {
		t.Errorf("Decode(0x4) error = %v, want %v", err, ErrEmptyChannel)
	}
	if _, _, err := Decode([]Code{1}, 4, 0); !errors.Is(err, ErrEmptyChannel) {
		t.Errorf("Decode(4x0) error = %v, want %v", err, ErrEmptyChannel)
	}
}

func TestEncodeInvalidWidth(t *testing.T) {
	for _, w := range []Width{0, 1, 4} {
		if _, err := Encode([]byte{1, 2}, w); !errors.Is(err, ErrInvalidWidth) {
			t.Errorf("Encode(width %d) error = %v, want %v", w, err, ErrInvalidWidth)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	width, height := 64, 48

	gradient := make([]byte, width*height)
	stripes := make([]byte, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gradient[y*width+x] = byte((x + y*2) % 256)
			stripes[y*width+x] = byte((x / 4 % 3) * 100)
		}
	}

	tests := []struct {
		name    string
		samples []byte
	}{
		{"constant", make([]byte, width*height)},
		{"gradient", gradient},
		{"stripes", stripes},
		{"noise", noise(width*height, 42)},
	}

	for _, tt := range tests {
		for _, w := range []Width{Width16, Width24} {
			t.Run(tt.name+"/"+w.String(), func(t *testing.T) {
				codes, err := Encode(tt.samples, w)
				if err != nil {
					t.Fatalf("Encode failed: %v", err)
				}
				t.Logf("%d samples -> %d codes (%d bytes)", len(tt.samples), len(codes), len(codes)*w.Bytes())

				decoded, next, err := Decode(codes, width, height)
				if err != nil {
					t.Fatalf("Decode failed: %v", err)
				}
				if next != len(codes) {
					t.Errorf("next index = %d, want %d", next, len(codes))
				}
				compareSamples(t, decoded, tt.samples)
			})
		}
	}
}

// TestSelfSynchronization exercises the decoder's unknown-code branch for
// every pair of samples.
func TestSelfSynchronization(t *testing.T) {
	for a := 0; a < 256; a++ {
		// [a a a]: the second codeword is the [a a] entry the encoder has just
		// assigned, which the decoder must rebuild from [a] alone.
		samples := []byte{byte(a), byte(a), byte(a)}
		codes, err := Encode(samples, Width16)
		if err != nil {
			t.Fatalf("Encode(%v) failed: %v", samples, err)
		}
		if !equalCodes(codes, []Code{Code(a), 256}) {
			t.Fatalf("Encode(%v) = %v, want [%d 256]", samples, codes, a)
		}

		for b := 0; b < 256; b++ {
			// [a b a b a b a] emits a reference to [a b a] right after assigning it.
			samples := []byte{byte(a), byte(b), byte(a), byte(b), byte(a), byte(b), byte(a)}
			codes, err := Encode(samples, Width16)
			if err != nil {
				t.Fatalf("Encode(%v) failed: %v", samples, err)
			}
			decoded, _, err := Decode(codes, len(samples), 1)
			if err != nil {
				t.Fatalf("Decode(%v) failed: %v", codes, err)
			}
			if string(decoded) != string(samples) {
				t.Fatalf("Decode(%v) = %v, want %v", codes, decoded, samples)
			}
		}
	}
}

func TestDecodeSegmentBoundaries(t *testing.T) {
	width, height := 40, 30
	channels := [][]byte{
		noise(width*height, 1),
		make([]byte, width*height),
		noise(width*height, 2),
	}

	var all []Code
	var ends []int
	for _, samples := range channels {
		codes, err := Encode(samples, Width24)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		all = append(all, codes...)
		ends = append(ends, len(all))
	}

	start := 0
	for i, want := range channels {
		decoded, next, err := Decode(all[start:], width, height)
		if err != nil {
			t.Fatalf("channel %d: Decode failed: %v", i, err)
		}
		if start+next != ends[i] {
			t.Errorf("channel %d: segment ends at %d, want %d", i, start+next, ends[i])
		}
		compareSamples(t, decoded, want)
		start += next
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name    string
		codes   []Code
		samples int
		want    error
	}{
		{"first code not singleton", []Code{300}, 4, ErrMalformedInput},
		{"code beyond next", []Code{1, 258}, 4, ErrMalformedInput},
		{"no codes", nil, 4, ErrDimensionMismatch},
		{"stream too short", []Code{1, 2}, 4, ErrDimensionMismatch},
		{"more samples than codewords can name", []Code{1, 2, 256}, 7, ErrDimensionMismatch},
		{"phrase overruns channel", []Code{5, 256}, 2, ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.codes, tt.samples, 1)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode(%v) error = %v, want %v", tt.codes, err, tt.want)
			}
		})
	}
}

// Dimensions from an untrusted header must be checked against the number
// of codewords before the output is allocated.
func TestDecodeHugeDimensions(t *testing.T) {
	if _, _, err := Decode([]Code{1}, 1<<30, 1<<30); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Decode(1<<30 x 1<<30) error = %v, want %v", err, ErrDimensionMismatch)
	}
	if _, _, err := Decode([]Code{1}, math.MaxInt, 2); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Decode(MaxInt x 2) error = %v, want %v", err, ErrDimensionMismatch)
	}

	// A long stream whose phrases stop short of the claimed size grows its
	// output as it goes and then reports the shortfall.
	samples := noise(4096, 5)
	codes, err := Encode(samples, Width24)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if _, _, err := Decode(codes, len(samples)+1, 1); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Decode(one sample too many) error = %v, want %v", err, ErrDimensionMismatch)
	}
}

func TestEncodeOverflow(t *testing.T) {
	samples := noise(512*512, 7)
	_, err := Encode(samples, Width16)
	if !errors.Is(err, ErrDictionaryOverflow) {
		t.Fatalf("Encode(noise, 2 bytes) error = %v, want %v", err, ErrDictionaryOverflow)
	}

	codes, err := Encode(samples, Width24)
	if err != nil {
		t.Fatalf("Encode(noise, 3 bytes) failed: %v", err)
	}
	decoded, _, err := Decode(codes, 512, 512)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	compareSamples(t, decoded, samples)
}

// TestCodeMonotonicity checks that each emitted code is either known or
// the very next code to be assigned, which holds only if codes are
// assigned once and in increasing order.
func TestCodeMonotonicity(t *testing.T) {
	samples := noise(10000, 3)
	for i := range samples[:5000] {
		samples[i] %= 4
	}

	codes, err := Encode(samples, Width24)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	next := firstFreeCode
	for i, c := range codes {
		if c > next {
			t.Fatalf("code %d at index %d was emitted before %d was assigned", c, i, next)
		}
		if i > 0 {
			next++
		}
	}
}
