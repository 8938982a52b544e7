// Package raster provides the supersampled scanline edge lists and the
// fill-rule cursor used by the path-fill renderer.
package raster

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd (alternate) rule.
	FillRuleEvenOdd
)

// String returns the rule name.
func (r FillRule) String() string {
	switch r {
	case FillRuleNonZero:
		return "nonzero"
	case FillRuleEvenOdd:
		return "evenodd"
	default:
		return "unknown"
	}
}

// Edge is a single path crossing of one supersampled row.
type Edge struct {
	// X is the crossing position in supersampled units.
	X float32
	// Up is true when the segment runs towards smaller y.
	Up bool
}

// Scanline holds the crossings of one supersampled row.
// Edges must be sorted by X before a Range walks them.
type Scanline struct {
	Edges []Edge
}

// Empty reports whether the row has no crossings.
func (s *Scanline) Empty() bool {
	return len(s.Edges) == 0
}

// Extent is a horizontal span in supersampled units.
type Extent struct {
	Left, Right int
}

// Empty reports whether the extent covers no columns.
func (e Extent) Empty() bool {
	return e.Right <= e.Left
}
