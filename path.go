package pathfill

import (
	"github.com/gogpu/pathfill/internal/path"
)

// Path is a vector outline made of straight and Bezier segments. Curves
// are flattened to line segments when the path is filled.
type Path struct {
	elements []path.Element
	start    Point // Starting point of current subpath
	current  Point // Current point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]path.Element, 0, 16),
	}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, path.MoveTo{Point: toInternal(pt)})
	p.start = pt
	p.current = pt
}

// LineTo draws a line to (x, y).
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, path.LineTo{Point: toInternal(pt)})
	p.current = pt
}

// QuadraticTo draws a quadratic Bezier curve.
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, path.QuadTo{
		Control: toInternal(Pt(cx, cy)),
		Point:   toInternal(pt),
	})
	p.current = pt
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, path.CubicTo{
		Control1: toInternal(Pt(c1x, c1y)),
		Control2: toInternal(Pt(c2x, c2y)),
		Point:    toInternal(pt),
	})
	p.current = pt
}

// Close closes the current subpath by drawing a line to the start point.
func (p *Path) Close() {
	p.elements = append(p.elements, path.Close{})
	p.current = p.start
}

// Clear removes all elements from the path.
func (p *Path) Clear() {
	p.elements = p.elements[:0]
	p.start = Point{}
	p.current = Point{}
}

// Len returns the number of path elements.
func (p *Path) Len() int {
	return len(p.elements)
}

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() Point {
	return p.current
}

// Rectangle adds a closed rectangle to the path.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Polygon adds a closed polygon through pts.
func (p *Path) Polygon(pts ...Point) {
	if len(pts) == 0 {
		return
	}
	p.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.LineTo(pt.X, pt.Y)
	}
	p.Close()
}

// Circle adds a circle to the path using cubic Bezier curves.
func (p *Path) Circle(cx, cy, r float64) {
	p.Ellipse(cx, cy, r, r)
}

// Ellipse adds an ellipse to the path.
func (p *Path) Ellipse(cx, cy, rx, ry float64) {
	const k = 0.5522847498307936 // 4/3 * (sqrt(2) - 1)
	ox := rx * k
	oy := ry * k

	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	p.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	p.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	p.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	p.Close()
}

// Fill rasterizes the path with r. The renderer's edge lists are cleared
// first, every flattened point is mapped by transform, and the result is
// filled with brush under rule.
//
// Open subpaths are closed implicitly, as fills always are.
func (p *Path) Fill(r *Renderer, rule FillRule, brush Brush, transform Matrix) error {
	r.Clear()
	p.appendTo(r, transform)
	return r.Fill(rule, brush, transform)
}

// appendTo feeds the flattened subpaths to r without clearing it.
func (p *Path) appendTo(r *Renderer, transform Matrix) {
	for _, sp := range path.Flatten(p.elements, path.Tolerance) {
		if len(sp.Points) < 2 {
			continue
		}
		first := transform.TransformPoint(fromInternal(sp.Points[0]))
		r.Begin(first.X, first.Y)
		for _, ip := range sp.Points[1:] {
			pt := transform.TransformPoint(fromInternal(ip))
			r.Line(pt.X, pt.Y)
		}
		r.End(true)
	}
}

func toInternal(p Point) path.Point {
	return path.Point{X: p.X, Y: p.Y}
}

func fromInternal(p path.Point) Point {
	return Point{X: p.X, Y: p.Y}
}
