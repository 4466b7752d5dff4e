// Command lzwbmp compresses 24-bit BMP files into .IN3 files and back.
//
// Usage:
//
//	lzwbmp [flags] image.bmp|image.IN3 ...
//
// A .bmp input is compressed to <name>.IN3 and then decompressed to
// <name>_lossless_decompressed.bmp. An .IN3 input is only decompressed.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cocosip/go-bmp-lzw/config"
	"github.com/cocosip/go-bmp-lzw/lzw"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("lzwbmp: ")

	configPath := flag.String("config", "lzwbmp.yaml", "configuration file (optional)")
	width := flag.Int("width", 0, "codeword width in bytes: 0 automatic, 2 or 3")
	parallel := flag.Bool("parallel", false, "encode the three channels concurrently")
	verify := flag.Bool("verify", true, "compare decompressed pixels with the original")
	outputDir := flag.String("o", "", "output directory (default: next to each input)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: lzwbmp [flags] image.bmp|image.IN3 ...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	// Flags given on the command line override the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Codec["codeword_width"] = *width
		case "parallel":
			cfg.Codec["parallel"] = *parallel
		case "verify":
			cfg.Verify = *verify
		case "o":
			cfg.OutputDir = *outputDir
		}
	})

	p, err := newProcessor(cfg)
	if err != nil {
		log.Fatal(err)
	}

	failed := 0
	for _, path := range flag.Args() {
		if err := p.process(path); err != nil {
			log.Printf("%s: %v", path, err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// newProcessor validates the configuration once for all inputs.
func newProcessor(cfg *config.Config) (*processor, error) {
	if cfg.Codec == nil {
		cfg.Codec = map[string]interface{}{}
	}
	params, err := cfg.Parameters()
	if err != nil {
		return nil, err
	}
	rule, err := cfg.Rule()
	if err != nil {
		return nil, err
	}
	return &processor{cfg: cfg, params: params, rule: rule, logf: log.Printf}, nil
}

type processor struct {
	cfg    *config.Config
	params *lzw.Parameters
	rule   *config.Rule
	logf   func(format string, args ...interface{})
}
