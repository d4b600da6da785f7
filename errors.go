package triangler

import "github.com/pkg/errors"

// Error kinds surfaced by a conversion. They are wrapped with context, so
// callers should test for them with errors.Is.
var (
	// ErrInvalidInput is returned for unreadable sources and images too small to triangulate.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupportedMethod is returned when a detector, sampler or renderer value is not recognized.
	ErrUnsupportedMethod = errors.New("unsupported method")
	// ErrOverSampling is returned when more points are requested than half the pixel count.
	ErrOverSampling = errors.New("too many sample points")
	// ErrDegenerateSampling is a non-fatal condition: the sampler found fewer
	// candidates than requested. It is recorded in Result.Warnings.
	ErrDegenerateSampling = errors.New("degenerate sampling")
)

func unsupported(kind string, value interface{}, allowed ...string) error {
	return errors.Wrapf(ErrUnsupportedMethod, "%s %q, expected one of %v", kind, value, allowed)
}
