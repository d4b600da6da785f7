package triangler

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceFilterBounds(t *testing.T) {
	var f ReduceFilter
	assert.Equal(t, image.Rect(0, 0, 20, 15), f.Bounds(image.Rect(0, 0, 40, 30)))
	assert.Equal(t, image.Rect(0, 0, 21, 16), f.Bounds(image.Rect(0, 0, 41, 31)))
}

func TestReduceFilterSolid(t *testing.T) {
	c := color.NRGBA{R: 12, G: 200, B: 99, A: 255}
	out := NewFilterChain(ReduceFilter{}).Apply(solidImage(40, 30, c))
	require.Equal(t, image.Rect(0, 0, 20, 15), out.Bounds())
	for y := 0; y < 15; y++ {
		for x := 0; x < 20; x++ {
			got := out.NRGBAAt(x, y)
			assert.InDelta(t, c.R, got.R, 1)
			assert.InDelta(t, c.G, got.G, 1)
			assert.InDelta(t, c.B, got.B, 1)
		}
	}
}

func TestFilterChainEmpty(t *testing.T) {
	src := solidImage(4, 4, color.NRGBA{A: 255})
	assert.Same(t, src, NewFilterChain().Apply(src))
}

func TestNoiseFilter(t *testing.T) {
	src := solidImage(16, 16, color.NRGBA{R: 128, G: 128, B: 128, A: 255})

	out := NewFilterChain(NoiseFilter{Amount: 0, Rand: rand.New(rand.NewSource(1))}).Apply(src)
	assert.Equal(t, src.Pix, out.Pix)

	out = NewFilterChain(NoiseFilter{Amount: 40, Rand: rand.New(rand.NewSource(1))}).Apply(src)
	changed := 0
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			c := out.NRGBAAt(x, y)
			assert.Equal(t, c.R, c.G)
			assert.Equal(t, c.R, c.B)
			assert.InDelta(t, 128, c.R, 20)
			assert.Equal(t, uint8(255), c.A)
			if c.R != 128 {
				changed++
			}
		}
	}
	assert.Positive(t, changed)
}

func TestWireframeFilter(t *testing.T) {
	src := solidImage(20, 20, color.NRGBA{R: 255, A: 255})
	points := Anchors(10, 10, CornersFour)
	triangles, err := Delaunay{}.Triangulate(points)
	require.NoError(t, err)

	f := WireframeFilter{
		Mode:      WireframeNone,
		Width:     2,
		Scale:     2,
		Source:    solidImage(10, 10, color.NRGBA{R: 255, A: 255}),
		Points:    points,
		Triangles: triangles,
	}
	out := NewFilterChain(f).Apply(src)
	assert.Equal(t, src.Pix, out.Pix)

	f.Mode = WireframeOnly
	f.Solid = true
	out = NewFilterChain(f).Apply(src)
	require.Equal(t, src.Bounds(), out.Bounds())
	// Away from the outlines the background is white.
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, out.NRGBAAt(10, 3))
	// The canvas corner is stroked in black.
	assert.Equal(t, color.NRGBA{A: 255}, out.NRGBAAt(0, 0))
}
