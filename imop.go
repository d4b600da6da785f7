package triangler

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/mat"
)

// ImgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
func ImgToNRGBA(img image.Image) *image.NRGBA {
	srcBounds := img.Bounds()
	if srcBounds.Min.X == 0 && srcBounds.Min.Y == 0 {
		if src0, ok := img.(*image.NRGBA); ok {
			return src0
		}
	}
	srcMinX := srcBounds.Min.X
	srcMinY := srcBounds.Min.Y

	dstBounds := srcBounds.Sub(srcBounds.Min)
	dstW := dstBounds.Dx()
	dstH := dstBounds.Dy()
	dst := image.NewNRGBA(dstBounds)

	switch src := img.(type) {
	case *image.NRGBA:
		rowSize := dstW * 4
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			copy(dst.Pix[di:di+rowSize], src.Pix[si:si+rowSize])
		}
	case *image.YCbCr:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				srcX := srcMinX + dstX
				srcY := srcMinY + dstY
				siy := src.YOffset(srcX, srcY)
				sic := src.COffset(srcX, srcY)
				r, g, b := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = b
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	case *image.Gray:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := src.Pix[si]
				dst.Pix[di+0] = c
				dst.Pix[di+1] = c
				dst.Pix[di+2] = c
				dst.Pix[di+3] = 0xff
				di += 4
				si++
			}
		}
	default:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := color.NRGBAModel.Convert(img.At(srcMinX+dstX, srcMinY+dstY)).(color.NRGBA)
				dst.Pix[di+0] = c.R
				dst.Pix[di+1] = c.G
				dst.Pix[di+2] = c.B
				dst.Pix[di+3] = c.A
				di += 4
			}
		}
	}

	return dst
}

// channels reports the number of color channels carried by the image type.
func channels(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	}
	return 3
}

// luminance converts the image into a grid of luminance values in [0, scale].
// Single channel images are taken as they are; the weights apply otherwise.
func luminance(img *image.NRGBA, single bool, w SobelConfig, scale float64) *mat.Dense {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	g := newGrid(height, width)
	out := data(g)
	f := scale / 255

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := img.PixOffset(x, y)
			r, gr, b := float64(img.Pix[i]), float64(img.Pix[i+1]), float64(img.Pix[i+2])
			if single {
				out[y*width+x] = r * f
				continue
			}
			out[y*width+x] = (r*w.RWeight + gr*w.GWeight + b*w.BWeight) * f
		}
	}
	return g
}

// Grayscale converts the image to grayscale mode.
func Grayscale(src *image.NRGBA) *image.NRGBA {
	dx, dy := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewNRGBA(src.Bounds())
	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			i := src.PixOffset(x, y)
			r, g, b := float64(src.Pix[i]), float64(src.Pix[i+1]), float64(src.Pix[i+2])
			lum := uint8(Clamp(r*0.2126+g*0.7152+b*0.0722+0.5, 0, 255))
			dst.Pix[i+0] = lum
			dst.Pix[i+1] = lum
			dst.Pix[i+2] = lum
			dst.Pix[i+3] = src.Pix[i+3]
		}
	}
	return dst
}

// srgbToLinear undoes the sRGB transfer curve of a [0,1] component.
func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func labF(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta*delta*delta {
		return math.Cbrt(t)
	}
	return t/(3*delta*delta) + 4.0/29.0
}

// rgbToLab converts sRGB components in [0,1] to CIE L*a*b* under the D65 illuminant.
func rgbToLab(r, g, b float64) (l, a, bb float64) {
	r, g, b = srgbToLinear(r), srgbToLinear(g), srgbToLinear(b)

	x := 0.412453*r + 0.357580*g + 0.180423*b
	y := 0.212671*r + 0.715160*g + 0.072169*b
	z := 0.019334*r + 0.119193*g + 0.950227*b

	fx := labF(x / 0.95047)
	fy := labF(y)
	fz := labF(z / 1.08883)

	return 116*fy - 16, 500 * (fx - fy), 200 * (fy - fz)
}

// Min returns the smallest value between two numbers.
func Min[T constraints.Ordered](values ...T) T {
	var acc T = values[0]

	for _, v := range values {
		if v < acc {
			acc = v
		}
	}
	return acc
}

// Max returns the biggest value between two numbers.
func Max[T constraints.Ordered](values ...T) T {
	var acc T = values[0]

	for _, v := range values {
		if v > acc {
			acc = v
		}
	}
	return acc
}

// Clamp restricts v to the [lo, hi] range.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	return Min(Max(v, lo), hi)
}
