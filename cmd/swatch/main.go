// Command swatch extracts a color palette from an image and prints it as
// hex values, one per line.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/swatchkit/swatchkit"
	"github.com/swatchkit/swatchkit/colormath"
	"github.com/swatchkit/swatchkit/quantize"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var (
		input       = flag.String("in", "", "path to the input image (png, jpeg, gif, webp, bmp, tiff)")
		count       = flag.Int("k", 5, "number of palette colors to extract")
		method      = flag.String("method", "kmeans", "extraction method: kmeans, median-cut, or dominant")
		maxDim      = flag.Int("max-dim", 220, "downscale the longer image side to this before sampling")
		smooth      = flag.Float64("smooth", 0, "Gaussian blur radius applied before sampling (0 = off)")
		seed        = flag.Int64("seed", 0, "random seed for kmeans (0 = time-based)")
		showDetails = flag.Bool("details", false, "print HSL and OKLCH alongside each hex value")
		verbose     = flag.Bool("v", false, "enable debug logging")
		showVersion = flag.Bool("version", false, "print version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("swatch %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	swatchkit.SetLogger(logger)

	if *input == "" {
		fmt.Fprintln(os.Stderr, "swatch: -in is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(logger, *input, *count, quantize.Method(*method), *maxDim, *smooth, *seed, *showDetails); err != nil {
		logger.Error("palette extraction failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, path string, count int, method quantize.Method, maxDim int, smooth float64, seed int64, details bool) error {
	img, err := quantize.LoadImage(path)
	if err != nil {
		return err
	}
	bounds := img.Bounds()
	logger.Debug("image loaded", "path", path, "width", bounds.Dx(), "height", bounds.Dy())

	opts := quantize.DefaultImageOptions()
	opts.Count = count
	opts.Method = method
	opts.MaxDimension = maxDim
	opts.SmoothRadius = smooth
	opts.Cluster.Seed = seed

	palette, err := quantize.FromImage(img, opts)
	if err != nil {
		return err
	}

	for _, c := range palette {
		if !details {
			fmt.Println(c.Hex())
			continue
		}
		hsl := colormath.RGBToHSL(c)
		ok := colormath.RGBToOKLCh(c)
		fmt.Printf("%s  hsl(%3.0f, %3.0f%%, %3.0f%%)  oklch(%.3f %.3f %.1f)\n",
			c.Hex(), hsl.H, hsl.S, hsl.L, ok.L, ok.C, ok.H)
	}
	return nil
}
