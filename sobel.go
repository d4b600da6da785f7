package triangler

import (
	"image"
	"math"

	"gonum.org/v1/gonum/mat"
)

// gradientFloor drops the rounding residue a flat region leaves in the
// gradient, which normalization would otherwise blow up to full scale.
const gradientFloor = 1e-6

// SobelWeights computes the Sobel gradient magnitude of the image luminance,
// scaled so that the strongest edge maps to 255 and truncated to 8-bit levels.
// A flat image yields an all-zero grid.
func SobelWeights(img image.Image, cfg SobelConfig) *mat.Dense {
	src := ImgToNRGBA(img)
	lum := luminance(src, channels(img) == 1, cfg, 255)

	gx := convolve(lum, sobelX)
	gy := convolve(lum, sobelY)

	dst := newGrid(gx.Dims())
	out := data(dst)
	dx, dy := data(gx), data(gy)
	for i := range out {
		if m := math.Sqrt(dx[i]*dx[i] + dy[i]*dy[i]); m > gradientFloor {
			out[i] = m
		}
	}

	normalizeMax(dst, 255)
	dst.Apply(func(_, _ int, v float64) float64 {
		return math.Floor(Clamp(v, 0, 255))
	}, dst)

	return dst
}
