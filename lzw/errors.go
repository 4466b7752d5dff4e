package lzw

import (
	"errors"
	"fmt"

	"github.com/cocosip/go-bmp-lzw/raster"
)

var (
	// ErrMalformedInput is returned when a codeword stream references a code
	// that was never assigned, or is otherwise corrupt or truncated
	ErrMalformedInput = errors.New("malformed LZW input")

	// ErrDictionaryOverflow is returned when the dictionary would need a code
	// that the active codeword width cannot represent
	ErrDictionaryOverflow = errors.New("LZW dictionary overflow")

	// ErrDimensionMismatch is returned when a channel does not decode to
	// exactly width*height samples
	ErrDimensionMismatch = errors.New("decoded sample count does not match dimensions")

	// ErrEmptyChannel is returned for channels with no samples
	ErrEmptyChannel = errors.New("empty channel")

	// ErrInvalidWidth is returned for a codeword width other than 2 or 3 bytes
	ErrInvalidWidth = errors.New("invalid codeword width (must be 2 or 3)")

	// ErrPhraseExists is returned when inserting a phrase that already has a code
	ErrPhraseExists = errors.New("phrase already in dictionary")

	// ErrUnknownPrefix is returned when extending a phrase that has no code
	ErrUnknownPrefix = errors.New("phrase prefix not in dictionary")
)

// ChannelError reports a codec failure on one color channel.
type ChannelError struct {
	Channel raster.Channel
	Op      string // "encode" or "decode"
	Offset  int    // sample index for encode, codeword index within the stream for decode
	Err     error
}

func (e *ChannelError) Error() string {
	unit := "sample"
	if e.Op == "decode" {
		unit = "codeword"
	}
	return fmt.Sprintf("lzw: %s %s channel at %s %d: %v", e.Op, e.Channel, unit, e.Offset, e.Err)
}

func (e *ChannelError) Unwrap() error {
	return e.Err
}
