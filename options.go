package pathfill

import (
	"fmt"

	"github.com/gogpu/pathfill/internal/mask"
)

// Default renderer settings.
const (
	// DefaultAntialiasLevel is the supersampling factor per axis.
	DefaultAntialiasLevel = 4

	// DefaultMaskBlockSize is the coverage block edge in pixels.
	DefaultMaskBlockSize = mask.DefaultBlockSize

	// DefaultMaskTextureSize is the mask atlas edge in texels.
	DefaultMaskTextureSize = mask.DefaultTextureSize

	// DefaultMaxGradientStops is the gradient-stop capacity of one batch.
	DefaultMaxGradientStops = 256

	// maxAntialiasLevel keeps 256/level² at least 1.
	maxAntialiasLevel = 16
)

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := pathfill.New(gc, batch,
//	    pathfill.WithAntialiasLevel(8),
//	    pathfill.WithMaxVertices(6*256),
//	)
type Option func(*config)

// config holds the renderer configuration.
type config struct {
	antialiasLevel   int
	maskBlockSize    int
	maskTextureSize  int
	maxVertices      int // 0 means six per atlas block
	maxGradientStops int
	userStops        bool
}

// defaultConfig returns the default renderer configuration.
func defaultConfig() config {
	return config{
		antialiasLevel:   DefaultAntialiasLevel,
		maskBlockSize:    DefaultMaskBlockSize,
		maskTextureSize:  DefaultMaskTextureSize,
		maxGradientStops: DefaultMaxGradientStops,
	}
}

// WithAntialiasLevel sets the supersampling factor per axis (1 to 16).
func WithAntialiasLevel(level int) Option {
	return func(c *config) {
		c.antialiasLevel = level
	}
}

// WithMaskBlockSize sets the coverage block edge in pixels.
// It must divide the mask texture size.
func WithMaskBlockSize(size int) Option {
	return func(c *config) {
		c.maskBlockSize = size
	}
}

// WithMaskTextureSize sets the mask atlas edge in texels.
func WithMaskTextureSize(size int) Option {
	return func(c *config) {
		c.maskTextureSize = size
	}
}

// WithMaxVertices caps the vertices buffered per batch. The default holds
// six vertices for every atlas block.
func WithMaxVertices(n int) Option {
	return func(c *config) {
		c.maxVertices = n
	}
}

// WithMaxGradientStops sets the gradient-stop capacity of one batch.
func WithMaxGradientStops(n int) Option {
	return func(c *config) {
		c.maxGradientStops = n
		c.userStops = true
	}
}

// validate checks ranges and fills derived defaults.
func (c *config) validate() error {
	if c.antialiasLevel < 1 || c.antialiasLevel > maxAntialiasLevel {
		return fmt.Errorf("%w: antialias level %d outside [1, %d]", ErrInvalidConfig, c.antialiasLevel, maxAntialiasLevel)
	}
	if _, err := mask.NewAtlas(c.maskBlockSize, c.maskTextureSize); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.maxVertices == 0 {
		n := c.maskTextureSize / c.maskBlockSize
		c.maxVertices = 6 * n * n
	}
	if c.maxVertices < 6 {
		return fmt.Errorf("%w: max vertices %d below one block", ErrInvalidConfig, c.maxVertices)
	}
	if c.maxGradientStops < 1 {
		return fmt.Errorf("%w: max gradient stops %d", ErrInvalidConfig, c.maxGradientStops)
	}
	return nil
}
