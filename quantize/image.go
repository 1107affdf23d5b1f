package quantize

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sort"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/swatchkit/swatchkit/colormath"
)

// Method selects the palette extraction algorithm.
type Method string

// Supported extraction methods.
const (
	MethodKMeans    Method = "kmeans"
	MethodMedianCut Method = "median-cut"
	MethodDominant  Method = "dominant"
)

// ImageOptions tunes palette extraction from an image. The zero value
// normalizes to 5 k-means colors from an image downscaled to 220px.
type ImageOptions struct {
	// Count is the number of palette colors to extract.
	Count int `json:"count"`

	// Method picks the algorithm. Default kmeans.
	Method Method `json:"method"`

	// MaxDimension downscales the longer image side before sampling.
	// Palette quality is insensitive to resolution, runtime is not.
	MaxDimension int `json:"max_dimension"`

	// SmoothRadius, when positive, applies a Gaussian blur of that radius
	// before sampling to suppress speckle noise and compression
	// artifacts. Zero disables smoothing.
	SmoothRadius float64 `json:"smooth_radius"`

	// AlphaThreshold drops pixels whose 8-bit alpha falls at or below it.
	AlphaThreshold uint8 `json:"alpha_threshold"`

	// Cluster carries the k-means parameters used by MethodKMeans.
	Cluster Options `json:"cluster"`
}

// DefaultImageOptions returns the documented defaults.
func DefaultImageOptions() ImageOptions {
	return ImageOptions{
		Count:          5,
		Method:         MethodKMeans,
		MaxDimension:   220,
		AlphaThreshold: 16,
	}
}

func (o ImageOptions) normalized() ImageOptions {
	if o.Count <= 0 {
		o.Count = 5
	}
	switch o.Method {
	case MethodKMeans, MethodMedianCut, MethodDominant:
	default:
		o.Method = MethodKMeans
	}
	if o.MaxDimension <= 0 {
		o.MaxDimension = 220
	}
	if o.SmoothRadius < 0 {
		o.SmoothRadius = 0
	}
	return o
}

// LoadImage decodes an image from disk. PNG, JPEG, GIF, WebP, BMP, and
// TIFF are supported.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// FromImage extracts a palette from an image: optional Gaussian smoothing,
// Lanczos downscale to MaxDimension, alpha-filtered pixel sampling, then
// the selected quantization method.
func FromImage(img image.Image, opts ImageOptions) ([]colormath.RGB, error) {
	opts = opts.normalized()
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("image has no pixels")
	}

	if opts.SmoothRadius > 0 {
		img = blur.Gaussian(img, opts.SmoothRadius)
	}
	img = imaging.Fit(img, opts.MaxDimension, opts.MaxDimension, imaging.Lanczos)

	pixels := samplePixels(img, opts.AlphaThreshold)
	if len(pixels) == 0 {
		return nil, fmt.Errorf("no opaque pixels above alpha threshold %d", opts.AlphaThreshold)
	}

	switch opts.Method {
	case MethodMedianCut:
		return MedianCut(pixels, opts.Count), nil
	case MethodDominant:
		freqs := dominantFromPixels(pixels, opts.Count)
		out := make([]colormath.RGB, len(freqs))
		for i, f := range freqs {
			out[i] = f.Color
		}
		return out, nil
	default:
		return Cluster(pixels, opts.Count, opts.Cluster).Centers, nil
	}
}

// ColorFrequency pairs a color with its share of the sampled pixels.
type ColorFrequency struct {
	Color      colormath.RGB `json:"color"`
	Percentage float64       `json:"percentage"` // 0-100
}

// DominantColors returns the n most frequent colors of an image, grouping
// near-identical pixels by quantizing each channel to 16 levels. Results
// are sorted by frequency, most common first.
func DominantColors(img image.Image, n int) ([]ColorFrequency, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("image has no pixels")
	}
	pixels := samplePixels(img, 0)
	if len(pixels) == 0 {
		return nil, fmt.Errorf("image has no opaque pixels")
	}
	return dominantFromPixels(pixels, n), nil
}

func dominantFromPixels(pixels []colormath.RGB, n int) []ColorFrequency {
	// Quantize to 16 levels per channel so near-identical pixels group
	// together, then count.
	counts := make(map[colormath.RGB]int)
	for _, p := range pixels {
		q := colormath.RGB{
			R: p.R / 16 * 16,
			G: p.G / 16 * 16,
			B: p.B / 16 * 16,
			A: 1,
		}
		counts[q]++
	}

	out := make([]ColorFrequency, 0, len(counts))
	total := float64(len(pixels))
	for c, cnt := range counts {
		out = append(out, ColorFrequency{
			Color:      c,
			Percentage: float64(cnt) / total * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Percentage != out[j].Percentage {
			return out[i].Percentage > out[j].Percentage
		}
		// Stable order for equal shares.
		return out[i].Color.Hex() < out[j].Color.Hex()
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// samplePixels collects the opaque pixels of an image as RGB records.
func samplePixels(img image.Image, alphaThreshold uint8) []colormath.RGB {
	bounds := img.Bounds()
	pixels := make([]colormath.RGB, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			a8 := uint8(a >> 8)
			if a8 <= alphaThreshold && alphaThreshold > 0 {
				continue
			}
			if a8 == 0 {
				continue
			}
			pixels = append(pixels, colormath.RGB{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
				A: 1,
			})
		}
	}
	return pixels
}
