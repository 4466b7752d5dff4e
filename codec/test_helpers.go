package codec

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
)

// TestPixelData is an in-memory imagetypes.PixelData for codec tests.
// Frames are stored as given; encoded and raw frames share the same
// frame info.
type TestPixelData struct {
	frames       [][]byte
	frameInfo    *imagetypes.FrameInfo
	encapsulated bool
}

var _ imagetypes.PixelData = (*TestPixelData)(nil)

// NewTestPixelData creates an empty TestPixelData with the given frame info
func NewTestPixelData(frameInfo *imagetypes.FrameInfo) *TestPixelData {
	return &TestPixelData{frameInfo: frameInfo}
}

// NewEncodedTestPixelData creates an empty TestPixelData that reports
// itself as encapsulated, for holding compressed frames
func NewEncodedTestPixelData(frameInfo *imagetypes.FrameInfo) *TestPixelData {
	return &TestPixelData{frameInfo: frameInfo, encapsulated: true}
}

// GetFrame returns frame frameIndex (0-indexed)
func (p *TestPixelData) GetFrame(frameIndex int) ([]byte, error) {
	if frameIndex < 0 || frameIndex >= len(p.frames) {
		return nil, fmt.Errorf("frame %d out of range (%d frames)", frameIndex, len(p.frames))
	}
	return p.frames[frameIndex], nil
}

// AddFrame appends a frame
func (p *TestPixelData) AddFrame(frameData []byte) error {
	if len(frameData) == 0 {
		return fmt.Errorf("empty frame")
	}
	p.frames = append(p.frames, frameData)
	return nil
}

// FrameCount returns the number of frames
func (p *TestPixelData) FrameCount() int {
	return len(p.frames)
}

// GetFrameInfo returns the frame info shared by all frames
func (p *TestPixelData) GetFrameInfo() *imagetypes.FrameInfo {
	return p.frameInfo
}

// IsEncapsulated reports whether the frames hold compressed data
func (p *TestPixelData) IsEncapsulated() bool {
	return p.encapsulated
}
