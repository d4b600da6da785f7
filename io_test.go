package triangler

import (
	"bytes"
	"image"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode(strings.NewReader("not an image"))
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = Load(filepath.Join(t.TempDir(), "nope.png"))
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestSaveByExtension(t *testing.T) {
	dir := t.TempDir()
	src := stepImage(12, 8)
	for _, name := range []string{"a.png", "a.jpg", "a.bmp", "a.tiff"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, src), name)

		img, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, image.Rect(0, 0, 12, 8), img.Bounds(), name)
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, "out.unknown", src))
	_, format, err := image.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}
