package triangler

import (
	"image"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// kernel is a small convolution matrix stored row by row.
type kernel [][]float64

var (
	sobelX = kernel{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = kernel{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
	scharrX = kernel{
		{3, 0, -3},
		{10, 0, -10},
		{3, 0, -3},
	}
	scharrY = kernel{
		{3, 10, 3},
		{0, 0, 0},
		{-3, -10, -3},
	}
	laplacian = kernel{
		{1, 1, 1},
		{1, -8, 1},
		{1, 1, 1},
	}
)

// boxKernel returns a (2*size+1)^2 kernel filled with value.
func boxKernel(size int, value float64) kernel {
	side := size*2 + 1
	k := make(kernel, side)
	for i := range k {
		k[i] = make([]float64, side)
		for j := range k[i] {
			k[i][j] = value
		}
	}
	return k
}

func newGrid(height, width int) *mat.Dense {
	return mat.NewDense(height, width, nil)
}

// data exposes the backing slice of a grid created by newGrid.
func data(g *mat.Dense) []float64 {
	return g.RawMatrix().Data
}

// symm maps an out of range index back into [0, n) by mirroring about the
// edge, repeating the edge sample (..., 1, 0 | 0, 1, ... | n-1, n-2, ...).
func symm(i, n int) int {
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		}
		if i >= n {
			i = 2*n - i - 1
		}
	}
	return i
}

// convolve computes the same-size 2-D convolution of src with k using
// symmetric boundary extension.
func convolve(src *mat.Dense, k kernel) *mat.Dense {
	h, w := src.Dims()
	kh, kw := len(k), len(k[0])
	ch, cw := kh/2, kw/2

	in := data(src)
	dst := newGrid(h, w)
	out := data(dst)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for m := 0; m < kh; m++ {
				sy := symm(y+ch-m, h) * w
				for n := 0; n < kw; n++ {
					v := k[m][n]
					if v == 0 {
						continue
					}
					sum += in[sy+symm(x+cw-n, w)] * v
				}
			}
			out[y*w+x] = sum
		}
	}
	return dst
}

// gridMax returns the largest value of the grid.
func gridMax(g *mat.Dense) float64 {
	return floats.Max(data(g))
}

// gridMean returns the arithmetic mean of the grid.
func gridMean(g *mat.Dense) float64 {
	return stat.Mean(data(g), nil)
}

// normalizeMax scales g in place so that its maximum equals ceiling exactly.
// A grid without positive values is left untouched.
func normalizeMax(g *mat.Dense, ceiling float64) {
	if m := gridMax(g); m > 0 {
		g.Apply(func(_, _ int, v float64) float64 {
			return v / m * ceiling
		}, g)
	}
}

// gaussianBlur smooths the grid with a separable Gaussian of the given sigma,
// truncated at four standard deviations, repeating the edge samples.
func gaussianBlur(src *mat.Dense, sigma float64) *mat.Dense {
	h, w := src.Dims()
	if sigma <= 0 {
		return mat.DenseCopyOf(src)
	}
	radius := int(4*sigma + 0.5)
	weights := make([]float64, 2*radius+1)
	for i := -radius; i <= radius; i++ {
		weights[i+radius] = math.Exp(-float64(i*i) / (2 * sigma * sigma))
	}
	floats.Scale(1/floats.Sum(weights), weights)

	in := data(src)
	tmp := make([]float64, len(in))
	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			var sum float64
			for i, wt := range weights {
				sx := Clamp(x+i-radius, 0, w-1)
				sum += in[row+sx] * wt
			}
			tmp[row+x] = sum
		}
	}
	dst := newGrid(h, w)
	out := data(dst)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for i, wt := range weights {
				sy := Clamp(y+i-radius, 0, h-1)
				sum += tmp[sy*w+x] * wt
			}
			out[y*w+x] = sum
		}
	}
	return dst
}

// disk returns the offsets of a digital disk footprint of the given radius.
func disk(radius int) []image.Point {
	var pts []image.Point
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				pts = append(pts, image.Pt(dx, dy))
			}
		}
	}
	return pts
}

// dilate applies a grayscale dilation (local maximum) over a disk footprint.
// Samples falling outside the grid are ignored.
func dilate(src *mat.Dense, radius int) *mat.Dense {
	h, w := src.Dims()
	footprint := disk(radius)
	in := data(src)
	dst := newGrid(h, w)
	out := data(dst)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m := math.Inf(-1)
			for _, p := range footprint {
				sx, sy := x+p.X, y+p.Y
				if sx < 0 || sx >= w || sy < 0 || sy >= h {
					continue
				}
				if v := in[sy*w+sx]; v > m {
					m = v
				}
			}
			out[y*w+x] = m
		}
	}
	return dst
}
