package triangler

import (
	"fmt"
	"io"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

// EdgeDetector selects the algorithm producing the weight grid.
type EdgeDetector string

const (
	EdgeSobel   EdgeDetector = "sobel"
	EdgeCanny   EdgeDetector = "canny"
	EdgeEntropy EdgeDetector = "entropy"
)

// Sampler selects the point sampling strategy.
type Sampler string

const (
	SamplerPoissonDisk Sampler = "poisson_disk"
	SamplerThreshold   Sampler = "threshold"
)

// Renderer selects how a triangle gets its color.
type Renderer string

const (
	RenderCentroid Renderer = "centroid"
	RenderMean     Renderer = "mean"
)

// CornerSet selects the anchor points appended after sampling.
type CornerSet string

const (
	CornersFour  CornerSet = "four"
	CornersSeven CornerSet = "seven"
)

// Wireframe selects how the triangle outlines are drawn over the result.
type Wireframe string

const (
	WireframeNone Wireframe = "none"
	WireframeWith Wireframe = "with"
	WireframeOnly Wireframe = "only"
)

// SobelConfig holds the luminance weights used by the Sobel detector.
type SobelConfig struct {
	RWeight float64 `json:"rWeight"`
	GWeight float64 `json:"gWeight"`
	BWeight float64 `json:"bWeight"`
}

// EntropyConfig holds the parameters of the entropy and color edge blend.
type EntropyConfig struct {
	Balance           float64 `json:"balance"`
	DenoiseWeight     float64 `json:"denoiseWeight"`
	DenoiseIterations int     `json:"denoiseIterations"`
	EntropyRadius     int     `json:"entropyRadius"`
	EdgeRadius        int     `json:"edgeRadius"`
	Sigma             float64 `json:"sigma"`
}

// PoissonDiskConfig holds the retry budget and the weight epsilon of the Poisson-disk sampler.
type PoissonDiskConfig struct {
	Iterations int     `json:"iterations"`
	Eps        float64 `json:"eps"`
}

// ThresholdConfig holds the relative cutoff of the threshold sampler.
type ThresholdConfig struct {
	Cutoff float64 `json:"cutoff"`
}

// Config is the set of options of a single conversion.
type Config struct {
	EdgeDetector EdgeDetector `json:"edgeDetector"`
	Sampler      Sampler      `json:"sampler"`
	Renderer     Renderer     `json:"renderer"`
	Points       int          `json:"points"`
	BlurRadius   int          `json:"blurRadius"`
	Reduce       bool         `json:"reduce"`
	AddCorners   bool         `json:"addCorners"`
	Corners      CornerSet    `json:"corners"`
	// Seed makes the conversion reproducible. Zero seeds from the clock.
	Seed        int64     `json:"seed"`
	Wireframe   Wireframe `json:"wireframe"`
	StrokeWidth float64   `json:"strokeWidth"`
	Solid       bool      `json:"solid"`
	Grayscale   bool      `json:"grayscale"`
	Noise       int       `json:"noise"`

	Sobel       SobelConfig       `json:"sobel"`
	Entropy     EntropyConfig     `json:"entropy"`
	PoissonDisk PoissonDiskConfig `json:"poissonDisk"`
	Threshold   ThresholdConfig   `json:"threshold"`
}

// DefaultConfig returns the default conversion options.
func DefaultConfig() Config {
	return Config{
		EdgeDetector: EdgeSobel,
		Sampler:      SamplerPoissonDisk,
		Renderer:     RenderCentroid,
		Points:       1024,
		BlurRadius:   2,
		AddCorners:   true,
		Corners:      CornersSeven,
		Wireframe:    WireframeNone,
		StrokeWidth:  1,
		Sobel: SobelConfig{
			RWeight: 0.2126,
			GWeight: 0.7152,
			BWeight: 0.0722,
		},
		Entropy: EntropyConfig{
			Balance:           0.1,
			DenoiseWeight:     0.1,
			DenoiseIterations: 30,
			EntropyRadius:     5,
			EdgeRadius:        3,
			Sigma:             1,
		},
		PoissonDisk: PoissonDiskConfig{
			Iterations: 16,
			Eps:        1e-6,
		},
		Threshold: ThresholdConfig{
			Cutoff: 0.2,
		},
	}
}

// ParseConfig decodes a YAML (or JSON) document on top of the default options.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(ErrInvalidInput, "parse config: %v", err)
	}
	return cfg, nil
}

// Validate checks the enum values and the numeric ranges of the options.
// The pixel dependent over-sampling guard is applied by the Processor.
func (c Config) Validate() error {
	switch c.EdgeDetector {
	case EdgeSobel, EdgeCanny, EdgeEntropy:
	default:
		return unsupported("edge detector", c.EdgeDetector, string(EdgeSobel), string(EdgeCanny), string(EdgeEntropy))
	}
	switch c.Sampler {
	case SamplerPoissonDisk, SamplerThreshold:
	default:
		return unsupported("sampler", c.Sampler, string(SamplerPoissonDisk), string(SamplerThreshold))
	}
	switch c.Renderer {
	case RenderCentroid, RenderMean:
	default:
		return unsupported("renderer", c.Renderer, string(RenderCentroid), string(RenderMean))
	}
	switch c.Corners {
	case CornersFour, CornersSeven:
	default:
		return unsupported("corner set", c.Corners, string(CornersFour), string(CornersSeven))
	}
	switch c.Wireframe {
	case WireframeNone, WireframeWith, WireframeOnly:
	default:
		return unsupported("wireframe mode", c.Wireframe, string(WireframeNone), string(WireframeWith), string(WireframeOnly))
	}
	if c.Points < 1 {
		return errors.Wrapf(ErrInvalidInput, "points must be positive, got %d", c.Points)
	}
	if c.BlurRadius < 0 {
		return errors.Wrapf(ErrInvalidInput, "blur radius must not be negative, got %d", c.BlurRadius)
	}
	if c.Noise < 0 {
		return errors.Wrapf(ErrInvalidInput, "noise must not be negative, got %d", c.Noise)
	}
	if c.PoissonDisk.Iterations < 1 {
		return errors.Wrapf(ErrInvalidInput, "poisson disk iterations must be positive, got %d", c.PoissonDisk.Iterations)
	}
	if c.Threshold.Cutoff < 0 || c.Threshold.Cutoff > 1 {
		return errors.Wrapf(ErrInvalidInput, "threshold cutoff must be in [0,1], got %v", c.Threshold.Cutoff)
	}
	if c.PoissonDisk.Eps <= 0 {
		return errors.Wrapf(ErrInvalidInput, "poisson disk eps must be positive, got %v", c.PoissonDisk.Eps)
	}
	if c.Entropy.Balance < 0 || c.Entropy.Balance > 1 {
		return errors.Wrapf(ErrInvalidInput, "entropy balance must be in [0,1], got %v", c.Entropy.Balance)
	}
	if c.Entropy.EntropyRadius < 0 || c.Entropy.EdgeRadius < 0 {
		return errors.Wrapf(ErrInvalidInput, "entropy radii must not be negative, got %d and %d",
			c.Entropy.EntropyRadius, c.Entropy.EdgeRadius)
	}
	if c.Entropy.Sigma < 0 {
		return errors.Wrapf(ErrInvalidInput, "entropy sigma must not be negative, got %v", c.Entropy.Sigma)
	}
	if c.Entropy.DenoiseIterations < 0 {
		return errors.Wrapf(ErrInvalidInput, "denoise iterations must not be negative, got %d", c.Entropy.DenoiseIterations)
	}
	return nil
}

// Print writes a human readable summary of the options.
func (c Config) Print(w io.Writer) {
	fmt.Fprintf(w, "[%s]\t\t= Edge Detector\n", c.EdgeDetector)
	fmt.Fprintf(w, "[%s]\t= Sampler\n", c.Sampler)
	fmt.Fprintf(w, "[%s]\t\t= Renderer\n", c.Renderer)
	fmt.Fprintf(w, "%d\t\t\t= Points\n", c.Points)
	fmt.Fprintf(w, "%d\t\t\t= Blur Radius\n", c.BlurRadius)
	fmt.Fprintf(w, "%v\t\t\t= Reduce\n", c.Reduce)
	if c.AddCorners {
		fmt.Fprintf(w, "[%s]\t\t= Corners\n", c.Corners)
	} else {
		fmt.Fprintf(w, "[none]\t\t= Corners\n")
	}
	fmt.Fprintf(w, "%d\t\t\t= Seed\n", c.Seed)
}
