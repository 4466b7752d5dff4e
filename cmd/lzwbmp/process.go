package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cocosip/go-bmp-lzw/bmp"
	"github.com/cocosip/go-bmp-lzw/codec"
	"github.com/cocosip/go-bmp-lzw/in3"
	"github.com/cocosip/go-bmp-lzw/raster"
)

const decompressedSuffix = "_lossless_decompressed.bmp"

var (
	errRejected    = errors.New("rejected by accept rule")
	errNotLossless = errors.New("decompressed image differs from the original")
)

// process compresses a .bmp or decompresses a file with the codec
// registered for its extension. Compressed files written by this tool keep
// their stored header; other codecs get a default one.
func (p *processor) process(path string) error {
	if strings.EqualFold(filepath.Ext(path), ".bmp") {
		_, err := p.compress(path)
		return err
	}
	c, err := codec.ForPath(path)
	if err != nil {
		return fmt.Errorf("%w: unknown file type %q", err, filepath.Ext(path))
	}
	p.logf("%s: decompressing (%s)", path, c.Name())
	if _, ok := c.(*in3.Codec); ok {
		_, err = p.decompress(path)
	} else {
		_, err = p.decodeWith(c, path)
	}
	return err
}

// outputPath places name in the configured output directory or next to input.
func (p *processor) outputPath(input, suffix string) string {
	dir := p.cfg.OutputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, base+suffix)
}

func (p *processor) compress(path string) (*in3.Stats, error) {
	original, err := readBMP(path)
	if err != nil {
		return nil, err
	}

	compressedPath := p.outputPath(path, in3.Extension)
	stats, err := withFiles(path, compressedPath, func(src *os.File, dst *os.File) (*in3.Stats, error) {
		return in3.Compress(src, dst, p.params)
	})
	if err != nil {
		return nil, err
	}

	p.logf("%s -> %s", path, compressedPath)
	p.logf("Original file size: %d", stats.OriginalSize)
	p.logf("Compressed file size: %d", stats.CompressedSize)
	p.logf("Compression ratio: %.4f (%s codewords)", stats.Ratio(), stats.Width)

	ok, err := p.rule.Evaluate(stats.Vars())
	if err != nil {
		return stats, err
	}
	if !ok {
		return stats, fmt.Errorf("%w %s", errRejected, p.rule)
	}

	decoded, err := p.decompress(compressedPath)
	if err != nil {
		return stats, err
	}
	if p.cfg.Verify {
		if !decoded.Equal(original) {
			return stats, errNotLossless
		}
		p.logf("%s: verified %dx%d pixels", path, decoded.Width, decoded.Height)
	}
	return stats, nil
}

func (p *processor) decompress(path string) (*raster.Image, error) {
	outPath := p.outputPath(path, decompressedSuffix)
	var img *raster.Image
	_, err := withFiles(path, outPath, func(src *os.File, dst *os.File) (*in3.Stats, error) {
		decoded, stats, err := in3.Decompress(src, dst)
		img = decoded
		return stats, err
	})
	if err != nil {
		return nil, err
	}
	p.logf("%s -> %s", path, outPath)
	return img, nil
}

// decodeWith decodes path with c and writes the pixels as a bitmap.
func (p *processor) decodeWith(c codec.Codec, path string) (*raster.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	res, err := c.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name(), err)
	}
	if res.Components != 3 || res.BitDepth != 8 {
		return nil, fmt.Errorf("%w: %d components at %d bits", codec.ErrUnsupportedFormat, res.Components, res.BitDepth)
	}
	img, err := raster.FromInterleaved(res.PixelData, res.Width, res.Height, raster.RGB)
	if err != nil {
		return nil, err
	}

	outPath := p.outputPath(path, decompressedSuffix)
	f, err := os.Create(outPath)
	if err != nil {
		return nil, err
	}
	err = bmp.NewWriter(f, nil).WriteImage(img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(outPath)
		return nil, err
	}
	p.logf("%s -> %s", path, outPath)
	return img, nil
}

func readBMP(path string) (*raster.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return bmp.NewReader(f).ReadImage()
}

// withFiles opens input, creates output and runs fn. The output file is
// removed when fn fails.
func withFiles(input, output string, fn func(src, dst *os.File) (*in3.Stats, error)) (*in3.Stats, error) {
	src, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	dst, err := os.Create(output)
	if err != nil {
		return nil, err
	}

	stats, err := fn(src, dst)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(output)
		return nil, err
	}
	return stats, nil
}
