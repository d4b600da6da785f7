package triangler

import (
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Point is an integer sample position: X is the column, Y the row.
type Point struct {
	X, Y int
}

// SamplePoints selects at most n distinct in-bounds points of the weight grid
// with the configured sampler. A sampler finding fewer candidates than
// requested returns the points it found together with ErrDegenerateSampling.
func SamplePoints(weights *mat.Dense, n int, cfg Config, rng *rand.Rand) ([]Point, error) {
	switch cfg.Sampler {
	case SamplerPoissonDisk:
		return PoissonDiskSample(weights, n, cfg.PoissonDisk, rng), nil
	case SamplerThreshold:
		points, found := ThresholdSample(weights, n, cfg.Threshold.Cutoff, rng)
		if found < n {
			return points, errors.Wrapf(ErrDegenerateSampling, "%d pixels above cutoff %v, %d requested", found, cfg.Threshold.Cutoff, n)
		}
		return points, nil
	}
	return nil, unsupported("sampler", cfg.Sampler, string(SamplerPoissonDisk), string(SamplerThreshold))
}

// Anchors returns the fixed points framing a width x height image. They sit
// on the pixel extent frame (x in {0, width}, y in {0, height}), so the
// triangulation spans every pixel. Anchors on the right and bottom edges lie
// outside the pixel bounds that sampled points are confined to.
func Anchors(width, height int, set CornerSet) []Point {
	anchors := []Point{
		{0, 0},
		{width, 0},
		{0, height},
		{width, height},
	}
	if set == CornersSeven {
		anchors = append(anchors,
			Point{width / 2, 0},
			Point{width / 2, height},
			Point{width / 2, height / 2},
		)
	}
	return anchors
}

// AppendAnchors appends the anchors not already present in points.
func AppendAnchors(points, anchors []Point) []Point {
	seen := make(map[Point]struct{}, len(points)+len(anchors))
	for _, p := range points {
		seen[p] = struct{}{}
	}
	for _, a := range anchors {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		points = append(points, a)
	}
	return points
}
