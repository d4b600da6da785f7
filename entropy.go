package triangler

import (
	"image"
	"math"

	"gonum.org/v1/gonum/mat"
)

// EntropyWeights blends a local entropy map of the grayscale image with the
// color edges found in Lab space. The result is divided by its mean and then
// by its maximum, so the strongest response is 1.
func EntropyWeights(img image.Image, cfg EntropyConfig, lum SobelConfig) *mat.Dense {
	src := ImgToNRGBA(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()

	rgb := [3]*mat.Dense{newGrid(h, w), newGrid(h, w), newGrid(h, w)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				data(rgb[c])[y*w+x] = float64(src.Pix[i+c]) / 255
			}
		}
	}
	for c := range rgb {
		rgb[c] = denoiseTV(rgb[c], cfg.DenoiseWeight, cfg.DenoiseIterations)
	}

	gray := newGrid(h, w)
	levels := make([]uint8, w*h)
	r, g, b := data(rgb[0]), data(rgb[1]), data(rgb[2])
	for i := range levels {
		v := r[i]*lum.RWeight + g[i]*lum.GWeight + b[i]*lum.BWeight
		data(gray)[i] = v
		levels[i] = uint8(Clamp(math.Round(v*255), 0, 255))
	}

	entropyMap := localEntropy(levels, w, h, cfg.EntropyRadius)
	entropyMap = gaussianBlur(dilate(entropyMap, cfg.EntropyRadius), cfg.Sigma)

	lab := [3]*mat.Dense{newGrid(h, w), newGrid(h, w), newGrid(h, w)}
	for i := range levels {
		l, a, bb := rgbToLab(Clamp(r[i], 0, 1), Clamp(g[i], 0, 1), Clamp(b[i], 0, 1))
		data(lab[0])[i] = l
		data(lab[1])[i] = a
		data(lab[2])[i] = bb
	}
	edges := newGrid(h, w)
	for _, ch := range lab {
		edges.Add(edges, scharr(ch))
	}
	edges.Scale(1.0/3, edges)
	edges = dilate(edges, cfg.EdgeRadius)

	weights := newGrid(h, w)
	weights.Scale(cfg.Balance, entropyMap)
	edges.Scale(1-cfg.Balance, edges)
	weights.Add(weights, edges)

	if m := gridMean(weights); m > 0 {
		weights.Scale(1/m, weights)
	}
	normalizeMax(weights, 1)

	return weights
}

// scharr returns the Scharr gradient magnitude, sqrt((gx^2+gy^2)/2), using
// kernels normalized by 16.
func scharr(src *mat.Dense) *mat.Dense {
	gx := convolve(src, scharrX)
	gy := convolve(src, scharrY)
	dst := newGrid(src.Dims())
	out, dx, dy := data(dst), data(gx), data(gy)
	for i := range out {
		x, y := dx[i]/16, dy[i]/16
		if m := math.Sqrt((x*x + y*y) / 2); m > gradientFloor {
			out[i] = m
		}
	}
	return dst
}

// localEntropy computes the Shannon entropy, in bits, of the 8-bit levels
// found inside a disk around every pixel. Pixels outside the image are not
// counted.
func localEntropy(levels []uint8, w, h, radius int) *mat.Dense {
	footprint := disk(radius)
	dst := newGrid(h, w)
	out := data(dst)

	var (
		hist    [256]int
		touched = make([]uint8, 0, len(footprint))
	)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := 0
			touched = touched[:0]
			for _, p := range footprint {
				sx, sy := x+p.X, y+p.Y
				if sx < 0 || sx >= w || sy < 0 || sy >= h {
					continue
				}
				v := levels[sy*w+sx]
				if hist[v] == 0 {
					touched = append(touched, v)
				}
				hist[v]++
				n++
			}
			var e float64
			for _, v := range touched {
				p := float64(hist[v]) / float64(n)
				e -= p * math.Log2(p)
				hist[v] = 0
			}
			out[y*w+x] = e
		}
	}
	return dst
}

// denoiseTV applies Chambolle's total variation denoising. A larger weight
// removes more noise at the expense of fidelity to the input.
func denoiseTV(src *mat.Dense, weight float64, iterations int) *mat.Dense {
	if weight <= 0 || iterations <= 0 {
		return mat.DenseCopyOf(src)
	}
	const tau = 0.25

	h, w := src.Dims()
	in := data(src)
	px := make([]float64, len(in))
	py := make([]float64, len(in))

	dst := mat.DenseCopyOf(src)
	out := data(dst)

	for it := 0; it < iterations; it++ {
		if it > 0 {
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					i := y*w + x
					d := -(px[i] + py[i])
					if x > 0 {
						d += px[i-1]
					}
					if y > 0 {
						d += py[i-w]
					}
					out[i] = in[i] + d
				}
			}
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				i := y*w + x
				var gx, gy float64
				if x < w-1 {
					gx = out[i+1] - out[i]
				}
				if y < h-1 {
					gy = out[i+w] - out[i]
				}
				norm := 1 + math.Sqrt(gx*gx+gy*gy)*tau/weight
				px[i] = (px[i] - tau*gx) / norm
				py[i] = (py[i] - tau*gy) / norm
			}
		}
	}
	return dst
}
