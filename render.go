package triangler

import (
	"context"
	"image"
	"image/color"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// renderBatch is the number of triangles filled by one worker task.
const renderBatch = 64

// owns reports whether pixel centers lying exactly on the st edge belong to
// the triangle the edge is traversed by. Of two triangles sharing an edge
// exactly one owns it, so shared edges are painted once.
func owns(s, t node) bool {
	dy, dx := t.y-s.y, t.x-s.x
	return dy < 0 || (dy == 0 && dx > 0)
}

// rasterize calls fill for every pixel of bounds whose center lies inside the
// abc triangle, scanning the rows of its bounding box.
func rasterize(a, b, c node, bounds image.Rectangle, fill func(x, y int)) {
	area := orient(a, b, c)
	if area == 0 {
		return
	}
	if area < 0 {
		b, c = c, b
	}
	edges := [3][2]node{{a, b}, {b, c}, {c, a}}

	minX := Max(int(math.Floor(Min(a.x, b.x, c.x))), bounds.Min.X)
	maxX := Min(int(math.Ceil(Max(a.x, b.x, c.x))), bounds.Max.X-1)
	minY := Max(int(math.Floor(Min(a.y, b.y, c.y))), bounds.Min.Y)
	maxY := Min(int(math.Ceil(Max(a.y, b.y, c.y))), bounds.Max.Y-1)

	for y := minY; y <= maxY; y++ {
		cy := float64(y) + 0.5
	scan:
		for x := minX; x <= maxX; x++ {
			p := node{float64(x) + 0.5, cy}
			for _, e := range edges {
				w := orient(e[0], e[1], p)
				if w < 0 || (w == 0 && !owns(e[0], e[1])) {
					continue scan
				}
			}
			fill(x, y)
		}
	}
}

// vertices returns the corners of the triangle scaled by s.
func vertices(points []Point, t Triangle, s float64) (a, b, c node) {
	p0, p1, p2 := points[t[0]], points[t[1]], points[t[2]]
	return node{float64(p0.X) * s, float64(p0.Y) * s},
		node{float64(p1.X) * s, float64(p1.Y) * s},
		node{float64(p2.X) * s, float64(p2.Y) * s}
}

// centroidColor returns the source color at the floored centroid of the
// triangle, clamped to the image.
func centroidColor(src *image.NRGBA, points []Point, t Triangle) color.NRGBA {
	p0, p1, p2 := points[t[0]], points[t[1]], points[t[2]]
	b := src.Bounds()
	cx := Clamp((p0.X+p1.X+p2.X)/3, 0, b.Dx()-1)
	cy := Clamp((p0.Y+p1.Y+p2.Y)/3, 0, b.Dy()-1)
	return src.NRGBAAt(cx, cy)
}

// meanColor returns the per-channel mean of the source pixels covered by the
// triangle, rounded half up. Triangles too thin to cover a pixel center use
// the centroid color.
func meanColor(src *image.NRGBA, points []Point, t Triangle) color.NRGBA {
	var sum [4]int
	n := 0
	a, b, c := vertices(points, t, 1)
	rasterize(a, b, c, src.Bounds(), func(x, y int) {
		i := src.PixOffset(x, y)
		for ch := 0; ch < 4; ch++ {
			sum[ch] += int(src.Pix[i+ch])
		}
		n++
	})
	if n == 0 {
		return centroidColor(src, points, t)
	}
	avg := func(v int) uint8 { return uint8((v + n/2) / n) }
	return color.NRGBA{R: avg(sum[0]), G: avg(sum[1]), B: avg(sum[2]), A: avg(sum[3])}
}

// Render paints every triangle on a canvas twice the size of src, with the
// vertex coordinates doubled. Triangles are filled concurrently by up to
// workers goroutines (GOMAXPROCS when workers < 1); a valid triangulation
// never paints a pixel twice.
func Render(ctx context.Context, src *image.NRGBA, points []Point, triangles []Triangle, method Renderer, workers int) (*image.NRGBA, error) {
	var colorOf func(*image.NRGBA, []Point, Triangle) color.NRGBA
	switch method {
	case RenderCentroid:
		colorOf = centroidColor
	case RenderMean:
		colorOf = meanColor
	default:
		return nil, unsupported("renderer", method, string(RenderCentroid), string(RenderMean))
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, 2*b.Dx(), 2*b.Dy()))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(triangles); start += renderBatch {
		batch := triangles[start:Min(start+renderBatch, len(triangles))]
		g.Go(func() error {
			for _, t := range batch {
				if err := ctx.Err(); err != nil {
					return err
				}
				col := colorOf(src, points, t)
				a, b, c := vertices(points, t, 2)
				rasterize(a, b, c, dst.Bounds(), func(x, y int) {
					i := dst.PixOffset(x, y)
					dst.Pix[i+0] = col.R
					dst.Pix[i+1] = col.G
					dst.Pix[i+2] = col.B
					dst.Pix[i+3] = col.A
				})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dst, nil
}
