package triangler

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Filter is a post-processing stage applied to the rendered canvas.
type Filter interface {
	Draw(dst draw.Image, src image.Image)
	// Bounds calculates the appropriate bounds of an image after applying the filter.
	Bounds(srcBounds image.Rectangle) (dstBounds image.Rectangle)
}

// FilterChain implements a list of filters that can be applied to an image at once.
type FilterChain struct {
	Filters []Filter
}

// NewFilterChain creates a new filter chain initialized with the given list of filters.
func NewFilterChain(filters ...Filter) *FilterChain {
	return &FilterChain{
		Filters: filters,
	}
}

// Bounds returns the bounds of the image produced by the whole chain.
func (fc *FilterChain) Bounds(srcBounds image.Rectangle) image.Rectangle {
	for _, f := range fc.Filters {
		srcBounds = f.Bounds(srcBounds)
	}
	return srcBounds
}

// Apply runs the chain over src and returns the result as a new image.
// An empty chain returns src itself.
func (fc *FilterChain) Apply(src *image.NRGBA) *image.NRGBA {
	if len(fc.Filters) == 0 {
		return src
	}
	dst := image.NewNRGBA(fc.Bounds(src.Bounds()))
	fc.Draw(dst, src)
	return dst
}

// Draw applies all the added filters to the src image and outputs the result to the dst image.
func (fc *FilterChain) Draw(dst draw.Image, src image.Image) {
	first, last := 0, len(fc.Filters)-1
	var tmpIn image.Image
	var tmpOut draw.Image

	for i, f := range fc.Filters {
		if i == first {
			tmpIn = src
		} else {
			tmpIn = tmpOut
		}

		if i == last {
			tmpOut = dst
		} else {
			tmpOut = createTempImage(f.Bounds(tmpIn.Bounds()))
		}

		f.Draw(tmpOut, tmpIn)
	}
}

// create default temp image
func createTempImage(r image.Rectangle) draw.Image {
	return image.NewNRGBA(r)
}

// reduceSigma is the Gaussian prefilter of a factor 2 pyramid reduction.
const reduceSigma = 2.0 / 3

// ReduceFilter halves the image size: a Gaussian prefilter followed by a
// bilinear resampling, as one level of an image pyramid.
type ReduceFilter struct{}

// Bounds implements Filter.
func (ReduceFilter) Bounds(srcBounds image.Rectangle) image.Rectangle {
	return image.Rect(0, 0, (srcBounds.Dx()+1)/2, (srcBounds.Dy()+1)/2)
}

// Draw implements Filter.
func (ReduceFilter) Draw(dst draw.Image, src image.Image) {
	smooth := blurNRGBA(ImgToNRGBA(src), reduceSigma)
	xdraw.BiLinear.Scale(dst, dst.Bounds(), smooth, smooth.Bounds(), xdraw.Src, nil)
}

// blurNRGBA runs a Gaussian blur over every channel of the image.
func blurNRGBA(src *image.NRGBA, sigma float64) *image.NRGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	for ch := 0; ch < 4; ch++ {
		g := newGrid(h, w)
		in := data(g)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				in[y*w+x] = float64(src.Pix[src.PixOffset(x, y)+ch])
			}
		}
		out := data(gaussianBlur(g, sigma))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dst.Pix[dst.PixOffset(x, y)+ch] = uint8(Clamp(out[y*w+x]+0.5, 0, 255))
			}
		}
	}
	return dst
}
