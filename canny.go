package triangler

import (
	"image"

	"gonum.org/v1/gonum/mat"
)

// cannyCutoff drops the weak Laplacian responses left over by the box blur.
const cannyCutoff = 3.0 / 256

// CannyWeights computes the denoised Laplacian edge density of the image.
// The luminance is box blurred over a (2*blur+1)^2 window, run through a
// discrete Laplacian, thresholded and densified with a 3x3 box before being
// normalized so that its maximum is 255.
func CannyWeights(img image.Image, blur int, cfg SobelConfig) *mat.Dense {
	src := ImgToNRGBA(img)
	lum := luminance(src, channels(img) == 1, cfg, 1)

	side := float64(2*blur + 1)
	blurred := convolve(lum, boxKernel(blur, 1/(side*side)))

	edges := convolve(blurred, laplacian)
	edges.Apply(func(_, _ int, v float64) float64 {
		if v < cannyCutoff {
			return 0
		}
		return v
	}, edges)

	dense := convolve(edges, boxKernel(1, 1))
	normalizeMax(dense, 255)

	return dense
}
