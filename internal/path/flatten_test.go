package path

import (
	"math"
	"testing"
)

func TestFlattenLines(t *testing.T) {
	subs := Flatten([]Element{
		MoveTo{Point{0, 0}},
		LineTo{Point{10, 0}},
		LineTo{Point{10, 10}},
		Close{},
		MoveTo{Point{20, 20}},
		LineTo{Point{30, 20}},
	}, Tolerance)

	if len(subs) != 2 {
		t.Fatalf("got %d subpaths, want 2", len(subs))
	}
	if !subs[0].Closed || len(subs[0].Points) != 3 {
		t.Errorf("first subpath = %+v, want 3 closed points", subs[0])
	}
	if subs[1].Closed || len(subs[1].Points) != 2 || subs[1].Points[0] != (Point{20, 20}) {
		t.Errorf("second subpath = %+v, want open segment from (20,20)", subs[1])
	}
}

func TestFlattenImplicitStart(t *testing.T) {
	tests := []struct {
		name     string
		elements []Element
		want     Point
	}{
		{"origin", []Element{LineTo{Point{5, 5}}}, Point{0, 0}},
		{"after close", []Element{
			MoveTo{Point{3, 4}},
			LineTo{Point{6, 4}},
			Close{},
			LineTo{Point{9, 9}},
		}, Point{3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs := Flatten(tt.elements, Tolerance)
			last := subs[len(subs)-1]
			if last.Points[0] != tt.want {
				t.Errorf("start = %v, want %v", last.Points[0], tt.want)
			}
		})
	}
}

func TestFlattenCurvesStayWithinTolerance(t *testing.T) {
	tests := []struct {
		name string
		elem Element
		at   func(t float64) Point
	}{
		{
			name: "quadratic",
			elem: QuadTo{Control: Point{50, 100}, Point: Point{100, 0}},
			at: func(t float64) Point {
				u := 1 - t
				return Point{2*u*t*50 + t*t*100, 2 * u * t * 100}
			},
		},
		{
			name: "cubic",
			elem: CubicTo{Control1: Point{0, 100}, Control2: Point{100, 100}, Point: Point{100, 0}},
			at: func(t float64) Point {
				u := 1 - t
				return Point{3*u*t*t*100 + t*t*t*100, 3*u*u*t*100 + 3*u*t*t*100}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs := Flatten([]Element{MoveTo{Point{0, 0}}, tt.elem}, Tolerance)
			pts := subs[0].Points
			if len(pts) < 8 {
				t.Fatalf("only %d points for a large curve", len(pts))
			}
			if pts[len(pts)-1] != tt.at(1) {
				t.Errorf("end = %v, want %v", pts[len(pts)-1], tt.at(1))
			}
			// Every sample of the curve must lie near the polyline.
			for i := 0; i <= 100; i++ {
				p := tt.at(float64(i) / 100)
				best := math.Inf(1)
				for k := 1; k < len(pts); k++ {
					best = math.Min(best, distanceToLine(p, pts[k-1], pts[k]))
				}
				if best > 2*Tolerance {
					t.Fatalf("sample %d at %v is %.3f from the polyline", i, p, best)
				}
			}
		})
	}
}

func TestFlattenDegenerateCurve(t *testing.T) {
	p := Point{7, 7}
	subs := Flatten([]Element{MoveTo{p}, CubicTo{p, p, p}}, Tolerance)
	if got := len(subs[0].Points); got != 2 {
		t.Errorf("degenerate cubic produced %d points, want 2", got)
	}
}

func TestDistanceToLine(t *testing.T) {
	tests := []struct {
		p, a, b Point
		want    float64
	}{
		{Point{5, 3}, Point{0, 0}, Point{10, 0}, 3},
		{Point{-4, 3}, Point{0, 0}, Point{10, 0}, 5},
		{Point{3, 4}, Point{0, 0}, Point{0, 0}, 5},
	}
	for _, tt := range tests {
		if got := distanceToLine(tt.p, tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("distanceToLine(%v, %v, %v) = %v, want %v", tt.p, tt.a, tt.b, got, tt.want)
		}
	}
}
