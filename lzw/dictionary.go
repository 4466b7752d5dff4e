package lzw

import "fmt"

// Code is an LZW codeword.
type Code uint32

// alphabetSize is the number of single-sample phrases seeded into every dictionary
const alphabetSize = 256

// firstFreeCode is the first code assigned to a data-dependent phrase
const firstFreeCode Code = alphabetSize

// link identifies a phrase by the code of its prefix and its final sample.
// Since every prefix has exactly one code, a link names exactly one phrase.
type link struct {
	prefix Code
	sample byte
}

// EncodeDictionary maps phrases to codes for the encoder.
// Codes 0..255 are the singletons; later codes are assigned in increasing
// order and are never removed or remapped.
type EncodeDictionary struct {
	codes map[link]Code
	next  Code
	limit Code
}

// NewEncodeDictionary creates a dictionary seeded with the 256 singletons.
// limit is the highest code the dictionary may assign.
func NewEncodeDictionary(limit Code) *EncodeDictionary {
	return &EncodeDictionary{
		codes: make(map[link]Code),
		next:  firstFreeCode,
		limit: limit,
	}
}

// NextCode returns the code the next insertion will receive.
func (d *EncodeDictionary) NextCode() Code {
	return d.next
}

// Len returns the number of phrases, singletons included.
func (d *EncodeDictionary) Len() int {
	return int(d.next)
}

// Child returns the code of the phrase prefix+[s], if present.
func (d *EncodeDictionary) Child(prefix Code, s byte) (Code, bool) {
	c, ok := d.codes[link{prefix, s}]
	return c, ok
}

// Add assigns the next code to the phrase prefix+[s].
func (d *EncodeDictionary) Add(prefix Code, s byte) (Code, error) {
	if prefix >= d.next {
		return 0, fmt.Errorf("%w: code %d", ErrUnknownPrefix, prefix)
	}
	key := link{prefix, s}
	if c, ok := d.codes[key]; ok {
		return c, ErrPhraseExists
	}
	if d.next > d.limit {
		return 0, fmt.Errorf("%w: code %d exceeds maximum %d", ErrDictionaryOverflow, d.next, d.limit)
	}
	c := d.next
	d.codes[key] = c
	d.next++
	return c, nil
}

// Lookup returns the code of p, if present.
func (d *EncodeDictionary) Lookup(p Phrase) (Code, bool) {
	if p.Len() == 0 {
		return 0, false
	}
	code := Code(p.First())
	for i := 1; i < p.Len(); i++ {
		next, ok := d.codes[link{code, p.At(i)}]
		if !ok {
			return 0, false
		}
		code = next
	}
	return code, true
}

// Insert assigns the next code to p. All but the last sample of p must
// already be a phrase in the dictionary.
func (d *EncodeDictionary) Insert(p Phrase) (Code, error) {
	if p.Len() < 2 {
		if p.Len() == 1 {
			return Code(p.First()), ErrPhraseExists
		}
		return 0, fmt.Errorf("%w: empty phrase", ErrUnknownPrefix)
	}
	prefix, ok := d.Lookup(NewPhrase(p.Samples()[:p.Len()-1]...))
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnknownPrefix, p)
	}
	return d.Add(prefix, p.At(p.Len()-1))
}

// entry is a decoded phrase stored as its prefix code and final sample.
// first and length are cached so the repair rule and output sizing never
// walk the prefix chain.
type entry struct {
	prefix Code
	last   byte
	first  byte
	length uint32
}

// DecodeDictionary maps codes to phrases for the decoder.
type DecodeDictionary struct {
	entries []entry
	limit   Code
}

// NewDecodeDictionary creates a dictionary seeded with the 256 singletons.
// limit is the highest code the dictionary may assign.
func NewDecodeDictionary(limit Code) *DecodeDictionary {
	entries := make([]entry, alphabetSize, 2*alphabetSize)
	for i := range entries {
		entries[i] = entry{last: byte(i), first: byte(i), length: 1}
	}
	return &DecodeDictionary{entries: entries, limit: limit}
}

// NextCode returns the code the next insertion will receive.
func (d *DecodeDictionary) NextCode() Code {
	return Code(len(d.entries))
}

// Len returns the number of phrases, singletons included.
func (d *DecodeDictionary) Len() int {
	return len(d.entries)
}

// Known reports whether code has been assigned.
func (d *DecodeDictionary) Known(code Code) bool {
	return int(code) < len(d.entries)
}

// First returns the first sample of the phrase for a known code.
func (d *DecodeDictionary) First(code Code) byte {
	return d.entries[code].first
}

// PhraseLen returns the length of the phrase for a known code.
func (d *DecodeDictionary) PhraseLen(code Code) int {
	return int(d.entries[code].length)
}

// Add assigns the next code to the phrase prefix+[s].
func (d *DecodeDictionary) Add(prefix Code, s byte) (Code, error) {
	if !d.Known(prefix) {
		return 0, fmt.Errorf("%w: code %d", ErrUnknownPrefix, prefix)
	}
	next := d.NextCode()
	if next > d.limit {
		return 0, fmt.Errorf("%w: code %d exceeds maximum %d", ErrDictionaryOverflow, next, d.limit)
	}
	p := d.entries[prefix]
	d.entries = append(d.entries, entry{
		prefix: prefix,
		last:   s,
		first:  p.first,
		length: p.length + 1,
	})
	return next, nil
}

// ReverseLookup returns the phrase for code, if assigned.
func (d *DecodeDictionary) ReverseLookup(code Code) (Phrase, bool) {
	if !d.Known(code) {
		return Phrase{}, false
	}
	b := make([]byte, d.entries[code].length)
	d.expand(b, code)
	return NewPhrase(b...), true
}

// expand writes the phrase for a known code into dst, which must be
// exactly as long as the phrase.
func (d *DecodeDictionary) expand(dst []byte, code Code) {
	for i := len(dst) - 1; i >= 0; i-- {
		e := d.entries[code]
		dst[i] = e.last
		code = e.prefix
	}
}
