package triangler

import (
	"image"
	"image/draw"
	"math"
	"math/rand"
)

// NoiseFilter applies a noise factor, like adobe's grain filter.
type NoiseFilter struct {
	Amount int
	Rand   *rand.Rand
}

// Bounds implements Filter.
func (f NoiseFilter) Bounds(srcBounds image.Rectangle) image.Rectangle {
	return srcBounds
}

// Draw implements Filter. The same offset is added to the three color
// channels of a pixel, unless one of them would overflow.
func (f NoiseFilter) Draw(dst draw.Image, src image.Image) {
	img := ImgToNRGBA(src)
	out := image.NewNRGBA(img.Bounds())
	copy(out.Pix, img.Pix)

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			noise := (f.Rand.Float64() - 0.5) * float64(f.Amount)
			i := out.PixOffset(x, y)
			rf := float64(out.Pix[i]) + noise
			gf := float64(out.Pix[i+1]) + noise
			bf := float64(out.Pix[i+2]) + noise
			// Check if color do not overflow the maximum limit after noise has been applied
			if Max(rf, gf, bf) > 255 || Min(rf, gf, bf) < 0 {
				continue
			}
			out.Pix[i] = uint8(math.Round(rf))
			out.Pix[i+1] = uint8(math.Round(gf))
			out.Pix[i+2] = uint8(math.Round(bf))
		}
	}
	draw.Draw(dst, dst.Bounds(), out, out.Bounds().Min, draw.Src)
}
