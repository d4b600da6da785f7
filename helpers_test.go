package triangler

import (
	"image"
	"image/color"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// stepImage is black on the left half and white on the right half.
func stepImage(w, h int) *image.NRGBA {
	img := solidImage(w, h, color.NRGBA{A: 255})
	for y := 0; y < h; y++ {
		for x := w / 2; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	return img
}

// diagonalImage is white with a three pixel wide black line on its main diagonal.
func diagonalImage(size int) *image.NRGBA {
	img := solidImage(size, size, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if abs(x-y) <= 1 {
				img.SetNRGBA(x, y, color.NRGBA{A: 255})
			}
		}
	}
	return img
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
