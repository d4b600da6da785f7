package triangler

import (
	"image"
	_ "image/gif" // register decoder
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register decoder
)

// jpegQuality is used when the output file has a jpeg extension.
const jpegQuality = 95

// Decode reads an image in any of the registered formats.
func Decode(r io.Reader) (image.Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidInput, "decode image: %v", err)
	}
	return src, nil
}

// Load opens and decodes the image stored at path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidInput, "open source: %v", err)
	}
	defer f.Close()

	return Decode(f)
}

// Encode writes img in the format matching the extension of name.
// Unknown extensions are encoded as PNG.
func Encode(w io.Writer, name string, img image.Image) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return png.Encode(w, img)
}

// Save encodes img into the file at path, creating or truncating it.
func Save(path string, img image.Image) error {
	fq, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	if err := Encode(fq, path, img); err != nil {
		fq.Close()
		return errors.Wrapf(err, "encode %s", filepath.Base(path))
	}
	return fq.Close()
}
