package triangler

import (
	"context"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterizeCoversCanvasOnce(t *testing.T) {
	const w, h = 21, 15
	points := randomPoints(rand.New(rand.NewSource(11)), 40, w, h)
	triangles, err := Delaunay{}.Triangulate(points)
	require.NoError(t, err)

	bounds := image.Rect(0, 0, 2*w, 2*h)
	hits := make([]int, bounds.Dx()*bounds.Dy())
	for _, tr := range triangles {
		a, b, c := vertices(points, tr, 2)
		rasterize(a, b, c, bounds, func(x, y int) {
			hits[y*bounds.Dx()+x]++
		})
	}
	for i, n := range hits {
		require.Equal(t, 1, n, "pixel (%d,%d) painted %d times", i%bounds.Dx(), i/bounds.Dx(), n)
	}
}

func TestRenderSolid(t *testing.T) {
	c := color.NRGBA{R: 200, G: 30, B: 90, A: 255}
	src := solidImage(20, 12, c)
	points := AppendAnchors([]Point{{5, 5}, {14, 3}, {9, 9}}, Anchors(20, 12, CornersSeven))
	triangles, err := Delaunay{}.Triangulate(points)
	require.NoError(t, err)

	for _, method := range []Renderer{RenderCentroid, RenderMean} {
		dst, err := Render(context.Background(), src, points, triangles, method, 3)
		require.NoError(t, err)
		require.Equal(t, image.Rect(0, 0, 40, 24), dst.Bounds())
		for y := 0; y < 24; y++ {
			for x := 0; x < 40; x++ {
				require.Equal(t, c, dst.NRGBAAt(x, y), "%s at (%d,%d)", method, x, y)
			}
		}
	}
}

func TestRenderHalves(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	src := solidImage(20, 10, red)
	for y := 0; y < 10; y++ {
		for x := 10; x < 20; x++ {
			src.SetNRGBA(x, y, blue)
		}
	}
	points := Anchors(20, 10, CornersFour)
	points = append(points, Point{10, 0}, Point{10, 10})
	triangles, err := Delaunay{}.Triangulate(points)
	require.NoError(t, err)

	for _, method := range []Renderer{RenderCentroid, RenderMean} {
		dst, err := Render(context.Background(), src, points, triangles, method, 0)
		require.NoError(t, err)
		assert.Equal(t, red, dst.NRGBAAt(3, 17), method)
		assert.Equal(t, red, dst.NRGBAAt(19, 0), method)
		assert.Equal(t, blue, dst.NRGBAAt(20, 19), method)
		assert.Equal(t, blue, dst.NRGBAAt(39, 5), method)
	}
}

func TestMeanColor(t *testing.T) {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	src := solidImage(4, 4, color.NRGBA{A: 255})
	for y := 0; y < 4; y++ {
		src.SetNRGBA(2, y, white)
		src.SetNRGBA(3, y, white)
	}
	points := []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}}

	// The upper triangle owns the diagonal: 7 white and 3 black pixels.
	upper := meanColor(src, points, Triangle{0, 1, 2})
	assert.Equal(t, color.NRGBA{R: 179, G: 179, B: 179, A: 255}, upper)

	// The lower one covers 5 black pixels and a single white one.
	lower := meanColor(src, points, Triangle{0, 2, 3})
	assert.Equal(t, color.NRGBA{R: 43, G: 43, B: 43, A: 255}, lower)

	assert.Equal(t, white, centroidColor(src, points, Triangle{0, 1, 2}))
	assert.Equal(t, color.NRGBA{A: 255}, centroidColor(src, points, Triangle{0, 2, 3}))
}

func TestMeanColorRounding(t *testing.T) {
	src := solidImage(2, 2, color.NRGBA{R: 10, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 11, G: 1, A: 255})
	src.SetNRGBA(1, 1, color.NRGBA{R: 11, G: 1, A: 255})
	points := []Point{{0, 0}, {4, 0}, {0, 4}}

	// All four pixels are covered: R averages 10.5 and G 0.5.
	c := meanColor(src, points, Triangle{0, 1, 2})
	assert.Equal(t, color.NRGBA{R: 11, G: 1, A: 255}, c)
}

func TestMeanColorThinTriangle(t *testing.T) {
	src := stepImage(8, 8)
	points := []Point{{0, 0}, {7, 0}, {7, 0}}
	c := meanColor(src, points, Triangle{0, 1, 2})
	assert.Equal(t, centroidColor(src, points, Triangle{0, 1, 2}), c)
}

func TestRenderErrors(t *testing.T) {
	src := solidImage(10, 10, color.NRGBA{A: 255})
	points := Anchors(10, 10, CornersSeven)
	triangles, err := Delaunay{}.Triangulate(points)
	require.NoError(t, err)

	_, err = Render(context.Background(), src, points, triangles, "voronoi", 1)
	assert.True(t, errors.Is(err, ErrUnsupportedMethod))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Render(ctx, src, points, triangles, RenderCentroid, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func checkerboard(w, h, cell int) *image.NRGBA {
	img := solidImage(w, h, color.NRGBA{A: 255})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			}
		}
	}
	return img
}

// strictlyInside reports whether p lies inside the positively oriented abc
// triangle and off its edges.
func strictlyInside(a, b, c, p node) bool {
	return orient(a, b, p) > 0 && orient(b, c, p) > 0 && orient(c, a, p) > 0
}

func TestRenderCheckerboard(t *testing.T) {
	const w, h = 12, 12
	src := checkerboard(w, h, 2)
	points := AppendAnchors([]Point{{3, 4}, {8, 2}, {6, 9}}, Anchors(w, h, CornersFour))
	triangles, err := Delaunay{}.Triangulate(points)
	require.NoError(t, err)

	centroid, err := Render(context.Background(), src, points, triangles, RenderCentroid, 2)
	require.NoError(t, err)
	mean, err := Render(context.Background(), src, points, triangles, RenderMean, 2)
	require.NoError(t, err)

	checked := 0
	for y := 0; y < 2*h; y++ {
		for x := 0; x < 2*w; x++ {
			p := node{float64(x) + 0.5, float64(y) + 0.5}
			for _, tr := range triangles {
				a, b, c := vertices(points, tr, 2)
				if !strictlyInside(a, b, c, p) {
					continue
				}
				p0, p1, p2 := points[tr[0]], points[tr[1]], points[tr[2]]
				cx, cy := (p0.X+p1.X+p2.X)/3, (p0.Y+p1.Y+p2.Y)/3
				require.Equal(t, src.NRGBAAt(cx, cy), centroid.NRGBAAt(x, y))
				require.Equal(t, meanColor(src, points, tr), mean.NRGBAAt(x, y))
				checked++
			}
		}
	}
	assert.Greater(t, checked, 2*w*h)

	// The mean footprints partition the source pixels.
	footprint := 0
	for _, tr := range triangles {
		a, b, c := vertices(points, tr, 1)
		rasterize(a, b, c, src.Bounds(), func(int, int) { footprint++ })
	}
	assert.Equal(t, w*h, footprint)
}
