package triangler

import (
	"context"
	"image"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Processor converts images into low-poly art with the options of Config.
type Processor struct {
	Config Config
	// Logger receives stage timings at debug level and non-fatal sampling
	// problems at warn level. Nil disables logging.
	Logger *zap.Logger
	// Triangulator defaults to Delaunay.
	Triangulator Triangulator
	// Workers bounds the goroutines filling triangles. Zero uses GOMAXPROCS.
	Workers int
}

// Result holds the outcome of a conversion.
type Result struct {
	// Image is the rendered image: twice the source size, or the source size
	// when the Reduce option is set.
	Image *image.NRGBA
	// Source is the image the triangle colors were taken from.
	Source  *image.NRGBA
	Weights *mat.Dense
	// Points holds the sampled points followed by the anchors.
	Points    []Point
	Sampled   int
	Triangles []Triangle
	// Warnings collects the non-fatal problems met, like ErrDegenerateSampling.
	Warnings []error
	Seed     int64
}

// NewProcessor returns a Processor using cfg and the default Delaunay triangulator.
func NewProcessor(cfg Config, logger *zap.Logger) *Processor {
	return &Processor{
		Config:       cfg,
		Logger:       logger,
		Triangulator: Delaunay{},
	}
}

func (p *Processor) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

// check validates the options against the source dimensions.
func (p *Processor) check(src image.Image) error {
	if src == nil {
		return errors.Wrap(ErrInvalidInput, "nil image")
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	if w < 2 || h < 2 {
		return errors.Wrapf(ErrInvalidInput, "image of %dx%d pixels is too small", w, h)
	}
	if err := p.Config.Validate(); err != nil {
		return err
	}
	if float64(p.Config.Points) > float64(w*h)*0.5 {
		return errors.Wrapf(ErrOverSampling, "%d points requested for %dx%d pixels", p.Config.Points, w, h)
	}
	return nil
}

// Convert triangulates src: it computes the edge weights, samples the points,
// appends the anchors, triangulates them, renders the triangles on a 2x
// canvas and runs the post-processing filters.
func (p *Processor) Convert(ctx context.Context, src image.Image) (*Result, error) {
	if err := p.check(src); err != nil {
		return nil, err
	}
	var (
		cfg   = p.Config
		log   = p.logger()
		start = time.Now()
		res   = &Result{Seed: cfg.Seed}
	)
	if res.Seed == 0 {
		res.Seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(res.Seed))

	img := ImgToNRGBA(src)
	width, height := img.Bounds().Dx(), img.Bounds().Dy()

	weights, err := ComputeWeights(src, cfg)
	if err != nil {
		return nil, err
	}
	res.Weights = weights
	log.Debug("weights computed",
		zap.String("detector", string(cfg.EdgeDetector)),
		zap.Duration("elapsed", time.Since(start)),
	)

	points, err := SamplePoints(weights, cfg.Points, cfg, rng)
	switch {
	case errors.Is(err, ErrDegenerateSampling):
		log.Warn("sampling found fewer points than requested", zap.Error(err))
		res.Warnings = append(res.Warnings, err)
	case err != nil:
		return nil, err
	}
	res.Sampled = len(points)
	if cfg.AddCorners {
		points = AppendAnchors(points, Anchors(width, height, cfg.Corners))
	}
	res.Points = points
	log.Debug("points sampled",
		zap.String("sampler", string(cfg.Sampler)),
		zap.Int("sampled", res.Sampled),
		zap.Int("total", len(points)),
		zap.Duration("elapsed", time.Since(start)),
	)

	triangulator := p.Triangulator
	if triangulator == nil {
		triangulator = Delaunay{}
	}
	triangles, err := triangulator.Triangulate(points)
	if err != nil {
		return nil, errors.Wrap(err, "triangulate")
	}
	res.Triangles = triangles
	log.Debug("points triangulated",
		zap.Int("triangles", len(triangles)),
		zap.Duration("elapsed", time.Since(start)),
	)

	source := img
	if cfg.Grayscale {
		source = Grayscale(img)
	}
	res.Source = source
	canvas, err := Render(ctx, source, points, triangles, cfg.Renderer, p.Workers)
	if err != nil {
		return nil, err
	}

	var filters []Filter
	if cfg.Wireframe != WireframeNone {
		filters = append(filters, WireframeFilter{
			Mode:      cfg.Wireframe,
			Width:     cfg.StrokeWidth,
			Solid:     cfg.Solid,
			Scale:     2,
			Source:    source,
			Points:    points,
			Triangles: triangles,
		})
	}
	if cfg.Noise > 0 {
		filters = append(filters, NoiseFilter{Amount: cfg.Noise, Rand: rng})
	}
	if cfg.Reduce {
		filters = append(filters, ReduceFilter{})
	}
	res.Image = NewFilterChain(filters...).Apply(canvas)

	log.Debug("image rendered",
		zap.String("renderer", string(cfg.Renderer)),
		zap.Int("width", res.Image.Bounds().Dx()),
		zap.Int("height", res.Image.Bounds().Dy()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

// ConvertFile loads the image at in, converts it and, when out is not empty,
// saves the result there.
func (p *Processor) ConvertFile(ctx context.Context, in, out string) (*Result, error) {
	src, err := Load(in)
	if err != nil {
		return nil, err
	}
	res, err := p.Convert(ctx, src)
	if err != nil {
		return nil, err
	}
	if out != "" {
		if err := Save(out, res.Image); err != nil {
			return nil, err
		}
	}
	return res, nil
}
