package lzw

import "strconv"

// Phrase is an immutable sequence of samples.
//
// Phrases are comparable with == and usable as map keys; two phrases are
// equal exactly when they hold the same samples in the same order.
// The zero value is the empty phrase.
type Phrase struct {
	s string
}

// Singleton returns the one-sample phrase [s].
func Singleton(s byte) Phrase {
	return Phrase{s: string([]byte{s})}
}

// NewPhrase copies samples into a new phrase.
func NewPhrase(samples ...byte) Phrase {
	return Phrase{s: string(samples)}
}

// Append returns a new phrase with s added to the end. p is unchanged.
func (p Phrase) Append(s byte) Phrase {
	b := make([]byte, len(p.s)+1)
	copy(b, p.s)
	b[len(p.s)] = s
	return Phrase{s: string(b)}
}

// Len returns the number of samples.
func (p Phrase) Len() int {
	return len(p.s)
}

// First returns the first sample. It panics on the empty phrase.
func (p Phrase) First() byte {
	return p.s[0]
}

// At returns the i-th sample.
func (p Phrase) At(i int) byte {
	return p.s[i]
}

// Samples returns a copy of the samples.
func (p Phrase) Samples() []byte {
	return []byte(p.s)
}

// AppendTo appends the samples to dst.
func (p Phrase) AppendTo(dst []byte) []byte {
	return append(dst, p.s...)
}

// Equal reports whether p and q hold the same samples.
func (p Phrase) Equal(q Phrase) bool {
	return p.s == q.s
}

func (p Phrase) String() string {
	b := make([]byte, 0, 2+4*len(p.s))
	b = append(b, '[')
	for i := 0; i < len(p.s); i++ {
		if i > 0 {
			b = append(b, ' ')
		}
		b = strconv.AppendUint(b, uint64(p.s[i]), 10)
	}
	return string(append(b, ']'))
}
