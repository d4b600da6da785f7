package triangler

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestConvertSolidImage(t *testing.T) {
	c := color.NRGBA{R: 220, G: 40, B: 40, A: 255}
	cfg := DefaultConfig()
	cfg.Sampler = SamplerThreshold
	cfg.Points = 50
	cfg.Seed = 1

	core, logs := observer.New(zap.WarnLevel)
	res, err := NewProcessor(cfg, zap.New(core)).Convert(context.Background(), solidImage(64, 64, c))
	require.NoError(t, err)

	require.Len(t, res.Warnings, 1)
	assert.True(t, errors.Is(res.Warnings[0], ErrDegenerateSampling))
	assert.Equal(t, 1, logs.Len())
	assert.Zero(t, res.Sampled)
	assert.Len(t, res.Points, 7)
	assert.NotEmpty(t, res.Triangles)

	require.Equal(t, image.Rect(0, 0, 128, 128), res.Image.Bounds())
	for y := 0; y < 128; y++ {
		for x := 0; x < 128; x++ {
			require.Equal(t, c, res.Image.NRGBAAt(x, y))
		}
	}
}

func TestConvertDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Points = 150
	cfg.Seed = 99

	src := diagonalImage(48)
	a, err := NewProcessor(cfg, nil).Convert(context.Background(), src)
	require.NoError(t, err)
	b, err := NewProcessor(cfg, nil).Convert(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, int64(99), a.Seed)
	assert.Equal(t, a.Points, b.Points)
	assert.Equal(t, a.Triangles, b.Triangles)
	assert.True(t, bytes.Equal(a.Image.Pix, b.Image.Pix), "same seed rendered different images")
}

func TestConvertMethods(t *testing.T) {
	src := diagonalImage(32)
	for _, detector := range []EdgeDetector{EdgeSobel, EdgeCanny, EdgeEntropy} {
		for _, sampler := range []Sampler{SamplerPoissonDisk, SamplerThreshold} {
			for _, renderer := range []Renderer{RenderCentroid, RenderMean} {
				name := string(detector) + "/" + string(sampler) + "/" + string(renderer)
				t.Run(name, func(t *testing.T) {
					cfg := DefaultConfig()
					cfg.EdgeDetector = detector
					cfg.Sampler = sampler
					cfg.Renderer = renderer
					cfg.Points = 60
					cfg.Seed = 3
					cfg.Entropy.DenoiseIterations = 3

					res, err := NewProcessor(cfg, zap.NewNop()).Convert(context.Background(), src)
					require.NoError(t, err)
					assert.Equal(t, image.Rect(0, 0, 64, 64), res.Image.Bounds())
					assert.LessOrEqual(t, res.Sampled, 60)
					assert.NotEmpty(t, res.Triangles)
					for _, p := range res.Points[:res.Sampled] {
						assert.True(t, p.X >= 0 && p.X < 32 && p.Y >= 0 && p.Y < 32, "point %v out of bounds", p)
					}
				})
			}
		}
	}
}

func TestConvertOptions(t *testing.T) {
	src := diagonalImage(40)

	cfg := DefaultConfig()
	cfg.Points = 80
	cfg.Reduce = true
	cfg.Grayscale = true
	cfg.Noise = 10
	cfg.Wireframe = WireframeWith
	res, err := NewProcessor(cfg, nil).Convert(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 40, 40), res.Image.Bounds())
	assert.NotZero(t, res.Seed)
	for i := 0; i < len(res.Image.Pix); i += 4 {
		p := res.Image.Pix[i : i+3]
		require.True(t, p[0] == p[1] && p[1] == p[2], "colored pixel %v in grayscale output", p)
	}

	cfg = DefaultConfig()
	cfg.Points = 50
	cfg.AddCorners = false
	res, err = NewProcessor(cfg, nil).Convert(context.Background(), src)
	require.NoError(t, err)
	assert.Len(t, res.Points, res.Sampled)
}

func TestConvertErrors(t *testing.T) {
	ctx := context.Background()
	src := diagonalImage(20)

	cfg := DefaultConfig()
	cfg.Points = 201
	_, err := NewProcessor(cfg, nil).Convert(ctx, src)
	assert.True(t, errors.Is(err, ErrOverSampling), "got %v", err)

	cfg.Points = 200
	cfg.Seed = 1
	_, err = NewProcessor(cfg, nil).Convert(ctx, src)
	assert.NoError(t, err)

	_, err = NewProcessor(DefaultConfig(), nil).Convert(ctx, nil)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = NewProcessor(DefaultConfig(), nil).Convert(ctx, image.NewNRGBA(image.Rect(0, 0, 1, 5)))
	assert.True(t, errors.Is(err, ErrInvalidInput))

	cfg = DefaultConfig()
	cfg.Renderer = "gouraud"
	_, err = NewProcessor(cfg, nil).Convert(ctx, src)
	assert.True(t, errors.Is(err, ErrUnsupportedMethod))

	_, err = NewProcessor(DefaultConfig(), nil).ConvertFile(ctx, filepath.Join(t.TempDir(), "missing.png"), "")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.jpg")
	require.NoError(t, Save(in, stepImage(30, 20)))

	cfg := DefaultConfig()
	cfg.Points = 40
	cfg.Reduce = true
	res, err := NewProcessor(cfg, nil).ConvertFile(context.Background(), in, out)
	require.NoError(t, err)
	assert.NotNil(t, res.Weights)

	img, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 30, 20), img.Bounds())
}
