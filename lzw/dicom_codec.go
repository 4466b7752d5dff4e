package lzw

import (
	"fmt"

	"github.com/cocosip/go-bmp-lzw/raster"
	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
)

var _ codec.Codec = (*DICOMCodec)(nil)

const dicomCodecName = "LZW RGB"

// DICOMCodec implements the external codec.Codec interface for 8-bit RGB
// frames. DICOM defines no LZW transfer syntax, so the caller chooses a
// private one.
type DICOMCodec struct {
	transferSyntax *transfer.Syntax
	width          Width // 0 for automatic selection
}

// NewDICOMCodec creates a codec that reports ts as its transfer syntax
func NewDICOMCodec(ts *transfer.Syntax) *DICOMCodec {
	return &DICOMCodec{transferSyntax: ts}
}

// NewDICOMCodecWithWidth creates a codec that always uses the given codeword width
func NewDICOMCodecWithWidth(ts *transfer.Syntax, width Width) *DICOMCodec {
	return &DICOMCodec{transferSyntax: ts, width: width}
}

// Name returns the codec name
func (c *DICOMCodec) Name() string {
	if c.width.Valid() {
		return fmt.Sprintf("%s (%s codewords)", dicomCodecName, c.width)
	}
	return dicomCodecName
}

// TransferSyntax returns the transfer syntax this codec handles
func (c *DICOMCodec) TransferSyntax() *transfer.Syntax {
	return c.transferSyntax
}

// GetDefaultParameters returns the default codec parameters
func (c *DICOMCodec) GetDefaultParameters() codec.Parameters {
	return NewParameters().WithCodewordWidth(c.width)
}

// Encode compresses every frame of oldPixelData into newPixelData
func (c *DICOMCodec) Encode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	frameInfo, err := validatePixelData(oldPixelData, newPixelData)
	if err != nil {
		return err
	}

	params, err := fromGeneric(parameters)
	if err != nil {
		return err
	}
	if parameters == nil {
		params.CodewordWidth = int(c.width)
	}

	frameCount := oldPixelData.FrameCount()
	if frameCount == 0 {
		return fmt.Errorf("source pixel data is empty (no frames)")
	}
	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := oldPixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}
		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}

		img, err := raster.FromFrame(frameInfo, frameData)
		if err != nil {
			return fmt.Errorf("frame %d: %w", frameIndex, err)
		}
		stream, err := EncodeImage(img, params)
		if err != nil {
			return fmt.Errorf("LZW encode failed for frame %d: %w", frameIndex, err)
		}
		encoded, err := stream.Bytes()
		if err != nil {
			return fmt.Errorf("LZW encode failed for frame %d: %w", frameIndex, err)
		}

		if err := newPixelData.AddFrame(encoded); err != nil {
			return fmt.Errorf("failed to add encoded frame %d: %w", frameIndex, err)
		}
	}
	return nil
}

// Decode reconstructs every frame of oldPixelData into newPixelData.
// Frame dimensions and planar configuration come from the source frame info.
func (c *DICOMCodec) Decode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, _ codec.Parameters) error {
	frameInfo, err := validatePixelData(oldPixelData, newPixelData)
	if err != nil {
		return err
	}

	frameCount := oldPixelData.FrameCount()
	if frameCount == 0 {
		return fmt.Errorf("source pixel data is empty (no frames)")
	}
	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := oldPixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}
		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}

		img, err := DecodeImage(frameData, int(frameInfo.Width), int(frameInfo.Height))
		if err != nil {
			return fmt.Errorf("LZW decode failed for frame %d: %w", frameIndex, err)
		}

		if err := newPixelData.AddFrame(img.Frame(frameInfo)); err != nil {
			return fmt.Errorf("failed to add decoded frame %d: %w", frameIndex, err)
		}
	}
	return nil
}

func validatePixelData(oldPixelData, newPixelData imagetypes.PixelData) (*imagetypes.FrameInfo, error) {
	if oldPixelData == nil || newPixelData == nil {
		return nil, fmt.Errorf("source and destination PixelData cannot be nil")
	}
	frameInfo := oldPixelData.GetFrameInfo()
	if frameInfo == nil {
		return nil, fmt.Errorf("failed to get frame info from source pixel data")
	}
	if frameInfo.SamplesPerPixel != 3 || frameInfo.BitsAllocated != 8 {
		return nil, fmt.Errorf("%w: LZW codec supports 8-bit RGB only (got %d samples, %d bits)",
			raster.ErrUnsupportedLayout, frameInfo.SamplesPerPixel, frameInfo.BitsAllocated)
	}
	return frameInfo, nil
}

// RegisterDICOMCodec registers the LZW codec with the global registry under ts
func RegisterDICOMCodec(ts *transfer.Syntax) {
	registry := codec.GetGlobalRegistry()
	registry.RegisterCodec(ts, NewDICOMCodec(ts))
}
