// Package lzw implements an adaptive LZW coder for 8-bit color channels.
//
// Each channel is encoded independently with its own dictionary. All three
// channels of an image share one codeword width of 2 or 3 bytes, chosen by
// ChooseWidth before encoding. A serialized image stream is one width byte
// followed by the red, green and blue codeword segments; segment lengths are
// not stored, the decoder stops each channel after width*height samples.
package lzw
