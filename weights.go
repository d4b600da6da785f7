package triangler

import (
	"image"

	"gonum.org/v1/gonum/mat"
)

// ComputeWeights turns the image into a grid of non-negative "interestingness"
// values, one per pixel (rows are image rows), using the configured detector.
func ComputeWeights(img image.Image, cfg Config) (*mat.Dense, error) {
	switch cfg.EdgeDetector {
	case EdgeSobel:
		return SobelWeights(img, cfg.Sobel), nil
	case EdgeCanny:
		return CannyWeights(img, cfg.BlurRadius, cfg.Sobel), nil
	case EdgeEntropy:
		return EntropyWeights(img, cfg.Entropy, cfg.Sobel), nil
	}
	return nil, unsupported("edge detector", cfg.EdgeDetector, string(EdgeSobel), string(EdgeCanny), string(EdgeEntropy))
}
