package triangler

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// ThresholdSample picks up to n points uniformly at random, without
// replacement, among the pixels whose weight reaches the cutoff. The weights
// are taken relative to the strongest one, so the cutoff lies in [0, 1].
// It also returns the number of pixels that passed the cutoff.
func ThresholdSample(weights *mat.Dense, n int, cutoff float64, rng *rand.Rand) ([]Point, int) {
	height, width := weights.Dims()
	src := data(weights)

	scale := 1.0
	if m := gridMax(weights); m > 0 {
		scale = 1 / m
	}

	var (
		x, y    int
		points  []Point
		dpoints []Point
	)
	for y = 0; y < height; y++ {
		for x = 0; x < width; x++ {
			if src[y*width+x]*scale >= cutoff {
				points = append(points, Point{X: x, Y: y})
			}
		}
	}

	ilen := len(points)
	limit := Min(n, ilen)
	dpoints = make([]Point, 0, limit)

	// Partial Fisher-Yates: the first limit slots end up holding a uniform
	// selection in random order.
	for i := 0; i < limit; i++ {
		j := i + rng.Intn(ilen-i)
		points[i], points[j] = points[j], points[i]
		dpoints = append(dpoints, points[i])
	}
	return dpoints, ilen
}
