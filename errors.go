package pathfill

import "errors"

// Errors returned by the renderer.
var (
	// ErrTooManyVertices is returned when one emission needs more vertices
	// than a vertex buffer holds.
	ErrTooManyVertices = errors.New("pathfill: too many vertices")

	// ErrTooManyGradientStops is returned for a brush with more stops than
	// the instance texture holds.
	ErrTooManyGradientStops = errors.New("pathfill: too many gradient stops")

	// ErrInvalidConfig is returned by New for out-of-range options.
	ErrInvalidConfig = errors.New("pathfill: invalid configuration")

	// ErrUnknownBrush is returned for a Brush whose Kind is not defined.
	ErrUnknownBrush = errors.New("pathfill: unknown brush kind")

	// ErrNoImageTexture is returned for an image brush without a texture.
	ErrNoImageTexture = errors.New("pathfill: image brush without texture")

	// ErrSingularTransform is returned for an image brush whose combined
	// brush and fill transform cannot be inverted.
	ErrSingularTransform = errors.New("pathfill: singular image transform")

	// ErrNilContext is returned by New when no graphic context is given.
	ErrNilContext = errors.New("pathfill: nil graphic context")
)
