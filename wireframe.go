package triangler

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
)

// WireframeFilter strokes the triangle outlines over the rendered canvas.
// The triangle vertices are given in source image coordinates and scaled by
// Scale onto the canvas.
type WireframeFilter struct {
	Mode      Wireframe
	Width     float64
	Solid     bool
	Scale     float64
	Source    *image.NRGBA
	Points    []Point
	Triangles []Triangle
}

// Bounds implements Filter.
func (f WireframeFilter) Bounds(srcBounds image.Rectangle) image.Rectangle {
	return srcBounds
}

// Draw implements Filter.
func (f WireframeFilter) Draw(dst draw.Image, src image.Image) {
	if f.Mode == WireframeNone || f.Mode == "" {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
		return
	}

	var ctx *gg.Context
	if f.Mode == WireframeOnly {
		ctx = gg.NewContext(src.Bounds().Dx(), src.Bounds().Dy())
		ctx.DrawRectangle(0, 0, float64(src.Bounds().Dx()), float64(src.Bounds().Dy()))
		ctx.SetColor(color.White)
		ctx.Fill()
	} else {
		ctx = gg.NewContextForImage(src)
	}
	ctx.SetLineWidth(f.Width)

	for _, t := range f.Triangles {
		a, b, c := vertices(f.Points, t, f.Scale)

		ctx.Push()
		ctx.MoveTo(a.x, a.y)
		ctx.LineTo(b.x, b.y)
		ctx.LineTo(c.x, c.y)
		ctx.ClosePath()

		switch {
		case f.Mode == WireframeWith:
			ctx.SetColor(color.NRGBA{R: 0, G: 0, B: 0, A: 20})
		case f.Solid:
			ctx.SetColor(color.Black)
		default:
			ctx.SetColor(centroidColor(f.Source, f.Points, t))
		}
		ctx.Stroke()
		ctx.Pop()
	}

	draw.Draw(dst, dst.Bounds(), ctx.Image(), image.Point{}, draw.Src)
}
