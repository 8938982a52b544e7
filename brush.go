package pathfill

import (
	"cmp"
	"image"
	"slices"

	"github.com/gogpu/pathfill/render"
)

// BrushKind selects which fields of a Brush are meaningful.
type BrushKind uint8

const (
	// BrushSolid paints Color.
	BrushSolid BrushKind = iota
	// BrushLinear paints a gradient along Start to End.
	BrushLinear
	// BrushRadial paints an elliptical gradient around Center.
	BrushRadial
	// BrushImage paints a sub-rectangle of a texture.
	BrushImage
)

// String returns the kind name.
func (k BrushKind) String() string {
	switch k {
	case BrushSolid:
		return "solid"
	case BrushLinear:
		return "linear"
	case BrushRadial:
		return "radial"
	case BrushImage:
		return "image"
	default:
		return "unknown"
	}
}

// GradientStop is a color at a position along a gradient.
type GradientStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  RGBA    // Straight-alpha color at this position
}

// ImageSource is a texture region painted by an image brush.
type ImageSource struct {
	// Texture is the sampled texture. It must stay alive until the batch
	// that uses it has been flushed.
	Texture render.Texture

	// Rect is the source rectangle in texels. An empty Rect selects the
	// whole texture.
	Rect image.Rectangle
}

// Brush describes what a fill paints with. It is a tagged variant: Kind
// decides which of the remaining fields apply.
//
// Brush geometry (Start, End, Center, radii, image space) is mapped by
// Transform first and by the fill transform second. A zero Transform is
// treated as the identity.
//
// Example usage:
//
//	pathfill.Solid(pathfill.Red)
//	pathfill.LinearGradient(pathfill.Pt(0, 0), pathfill.Pt(100, 0),
//	    pathfill.GradientStop{Offset: 0, Color: pathfill.Red},
//	    pathfill.GradientStop{Offset: 1, Color: pathfill.Blue})
type Brush struct {
	Kind BrushKind

	// Color is used by BrushSolid.
	Color RGBA

	// Start and End are used by BrushLinear.
	Start, End Point

	// Center, RadiusX and RadiusY are used by BrushRadial.
	Center           Point
	RadiusX, RadiusY float64

	// Stops are used by gradient brushes, ordered by Offset.
	Stops []GradientStop

	// Image is used by BrushImage.
	Image ImageSource

	// Transform maps brush space to path space.
	Transform Matrix
}

// Solid creates a solid color brush.
func Solid(c RGBA) Brush {
	return Brush{Kind: BrushSolid, Color: c, Transform: Identity()}
}

// LinearGradient creates a linear gradient brush. Stops are sorted by offset.
func LinearGradient(start, end Point, stops ...GradientStop) Brush {
	return Brush{
		Kind:      BrushLinear,
		Start:     start,
		End:       end,
		Stops:     sortStops(stops),
		Transform: Identity(),
	}
}

// RadialGradient creates an elliptical gradient brush with radii rx and ry.
// Stops are sorted by offset.
func RadialGradient(center Point, rx, ry float64, stops ...GradientStop) Brush {
	return Brush{
		Kind:      BrushRadial,
		Center:    center,
		RadiusX:   rx,
		RadiusY:   ry,
		Stops:     sortStops(stops),
		Transform: Identity(),
	}
}

// ImageBrush creates a brush painting rect of tex with its top-left corner
// at the brush-space origin.
func ImageBrush(tex render.Texture, rect image.Rectangle) Brush {
	return Brush{
		Kind:      BrushImage,
		Image:     ImageSource{Texture: tex, Rect: rect},
		Transform: Identity(),
	}
}

// WithTransform returns a copy of b with Transform set to m.
func (b Brush) WithTransform(m Matrix) Brush {
	b.Transform = m
	return b
}

// brushTransform returns the effective brush transform.
func (b *Brush) brushTransform() Matrix {
	if b.Transform == (Matrix{}) {
		return Identity()
	}
	return b.Transform
}

// gradientStops returns the stops stored for the brush kind.
func (b *Brush) gradientStops() []GradientStop {
	if b.Kind == BrushLinear || b.Kind == BrushRadial {
		return b.Stops
	}
	return nil
}

// sourceRect returns the image rectangle, defaulting to the whole texture.
func (s ImageSource) sourceRect() image.Rectangle {
	if s.Rect.Empty() && s.Texture != nil {
		return image.Rect(0, 0, s.Texture.Width(), s.Texture.Height())
	}
	return s.Rect
}

// sortStops returns a copy of stops ordered by offset.
func sortStops(stops []GradientStop) []GradientStop {
	sorted := slices.Clone(stops)
	slices.SortStableFunc(sorted, func(a, b GradientStop) int {
		return cmp.Compare(a.Offset, b.Offset)
	})
	return sorted
}
