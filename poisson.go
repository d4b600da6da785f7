package triangler

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// radiusField holds the per-pixel minimum spacing of the weighted
// Poisson-disk sampler.
type radiusField struct {
	width, height int
	radii         []float64
	max           float64
}

// newRadiusField derives the spacing of every pixel from the weight grid:
// the more interesting the pixel, the closer its neighbours may be.
func newRadiusField(weights *mat.Dense, n int, eps float64) *radiusField {
	height, width := weights.Dims()
	area := float64(width * height)

	c := math.Log10(area) / 2
	maxRadius := float64(Min(width, height)) / 4
	avgRadius := math.Sqrt(area / ((1 / c) * float64(n) * math.Pi))
	minRadius := avgRadius / 4

	mean := gridMean(weights)
	src := data(weights)
	radii := make([]float64, len(src))
	for i, w := range src {
		if mean > 0 {
			w /= mean
		} else {
			w = 1
		}
		// Clip the same way as numpy: lower bound first, then the upper one.
		radii[i] = math.Min(math.Max(avgRadius/(w+eps), minRadius), maxRadius)
	}

	return &radiusField{
		width:  width,
		height: height,
		radii:  radii,
		max:    maxRadius,
	}
}

func (rf *radiusField) at(p Point) float64 {
	return rf.radii[p.Y*rf.width+p.X]
}

func (rf *radiusField) inBounds(p Point) bool {
	return p.X >= 0 && p.X < rf.width && p.Y >= 0 && p.Y < rf.height
}

// poissonState is the mutable state of one sampling run: the active queue,
// the accepted points and the spatial index over them.
type poissonState struct {
	field    *radiusField
	rng      *rand.Rand
	queue    []Point
	accepted []Point
	index    *kdtree.Tree
}

func newPoissonState(field *radiusField, rng *rand.Rand) *poissonState {
	first := Point{X: rng.Intn(field.width), Y: rng.Intn(field.height)}
	return &poissonState{
		field:    field,
		rng:      rng,
		queue:    []Point{first},
		accepted: []Point{first},
		index:    kdtree.New(kdtree.Points{toKD(first)}, false),
	}
}

func toKD(p Point) kdtree.Point {
	return kdtree.Point{float64(p.X), float64(p.Y)}
}

// near draws a candidate from the annulus between the spacing of p and the
// maximum radius. Coordinates are floored onto the pixel grid.
func (s *poissonState) near(p Point) Point {
	inner := s.field.at(p)
	r := inner + s.rng.Float64()*(s.field.max-inner)
	theta := s.rng.Float64() * 2 * math.Pi
	return Point{
		X: int(math.Floor(float64(p.X) + r*math.Cos(theta))),
		Y: int(math.Floor(float64(p.Y) + r*math.Sin(theta))),
	}
}

// hasNeighbor reports whether an accepted point lies within the candidate's own spacing.
func (s *poissonState) hasNeighbor(p Point) bool {
	_, dist := s.index.Nearest(toKD(p))
	r := s.field.at(p)
	return dist <= r*r
}

func (s *poissonState) accept(p Point) {
	s.queue = append(s.queue, p)
	s.accepted = append(s.accepted, p)
	s.index.Insert(toKD(p), false)
}

// step expands one random active point. It returns false when the point had
// to be retired from the queue.
func (s *poissonState) step(iterations int) bool {
	idx := s.rng.Intn(len(s.queue))
	point := s.queue[idx]

	for i := 0; i < iterations; i++ {
		candidate := s.near(point)
		if s.field.inBounds(candidate) && !s.hasNeighbor(candidate) {
			s.accept(candidate)
			return true
		}
	}
	s.queue = append(s.queue[:idx], s.queue[idx+1:]...)
	return false
}

// PoissonDiskSample performs weighted Poisson-disk sampling (Bridson's dart
// throwing with a per-pixel radius) and returns at most n points.
func PoissonDiskSample(weights *mat.Dense, n int, cfg PoissonDiskConfig, rng *rand.Rand) []Point {
	field := newRadiusField(weights, n, cfg.Eps)
	s := newPoissonState(field, rng)

	for len(s.queue) > 0 && len(s.accepted) < n {
		s.step(cfg.Iterations)
	}
	return s.accepted
}
