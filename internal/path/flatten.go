// Package path flattens Bezier path elements into polylines.
package path

import "math"

// Point represents a 2D point (internal copy to avoid import cycle).
type Point struct {
	X, Y float64
}

// Tolerance is the maximum distance from the curve for flattening.
const Tolerance = 0.1

// maxDepth bounds recursive subdivision for degenerate input.
const maxDepth = 16

// Element is one path command.
type Element interface {
	isElement()
}

// MoveTo starts a new subpath.
type MoveTo struct{ Point Point }

func (MoveTo) isElement() {}

// LineTo draws a line.
type LineTo struct{ Point Point }

func (LineTo) isElement() {}

// QuadTo draws a quadratic curve.
type QuadTo struct{ Control, Point Point }

func (QuadTo) isElement() {}

// CubicTo draws a cubic curve.
type CubicTo struct{ Control1, Control2, Point Point }

func (CubicTo) isElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isElement() {}

// Subpath is a flattened polyline. Points[0] is the start point.
type Subpath struct {
	Points []Point
	Closed bool
}

// Flatten converts elements into polylines, one per subpath.
// Drawing commands before the first MoveTo start at the origin.
func Flatten(elements []Element, tolerance float64) []Subpath {
	if tolerance <= 0 {
		tolerance = Tolerance
	}

	var out []Subpath
	var cur *Subpath
	var current Point

	begin := func(p Point) {
		out = append(out, Subpath{Points: []Point{p}})
		cur = &out[len(out)-1]
	}

	for _, elem := range elements {
		if cur == nil {
			if _, ok := elem.(MoveTo); !ok {
				begin(current)
			}
		}
		switch e := elem.(type) {
		case MoveTo:
			begin(e.Point)
			current = e.Point

		case LineTo:
			cur.Points = append(cur.Points, e.Point)
			current = e.Point

		case QuadTo:
			cur.Points = flattenQuadratic(cur.Points, current, e.Control, e.Point, tolerance, 0)
			current = e.Point

		case CubicTo:
			cur.Points = flattenCubic(cur.Points, current, e.Control1, e.Control2, e.Point, tolerance, 0)
			current = e.Point

		case Close:
			cur.Closed = true
			current = cur.Points[0]
			cur = nil
		}
	}
	return out
}

// Lerp interpolates between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Length returns the vector length.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// flattenQuadratic appends the flattened curve (excluding p0) to points.
func flattenQuadratic(points []Point, p0, p1, p2 Point, tolerance float64, depth int) []Point {
	if depth >= maxDepth || distanceToLine(p1, p0, p2) < tolerance {
		return append(points, p2)
	}

	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := q0.Lerp(q1, 0.5)

	points = flattenQuadratic(points, p0, q0, q2, tolerance, depth+1)
	return flattenQuadratic(points, q2, q1, p2, tolerance, depth+1)
}

// flattenCubic appends the flattened curve (excluding p0) to points.
func flattenCubic(points []Point, p0, p1, p2, p3 Point, tolerance float64, depth int) []Point {
	dist := math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if depth >= maxDepth || dist < tolerance {
		return append(points, p3)
	}

	// de Casteljau split at t = 0.5
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)

	points = flattenCubic(points, p0, q0, r0, s, tolerance, depth+1)
	return flattenCubic(points, s, r1, q2, p3, tolerance, depth+1)
}

// distanceToLine returns the distance from p to the segment (a, b).
func distanceToLine(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 < 1e-20 {
		return p.Sub(a).Length()
	}

	ap := p.Sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Sub(a.Lerp(b, t)).Length()
}
