package pathfill

import (
	"math"
	"testing"
)

func pointsClose(a, b Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestMatrixTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		in   Point
		want Point
	}{
		{"identity", Identity(), Pt(3, 4), Pt(3, 4)},
		{"translate", Translate(10, -2), Pt(3, 4), Pt(13, 2)},
		{"scale", Scale(2, 3), Pt(3, 4), Pt(6, 12)},
		{"rotate", Rotate(math.Pi / 2), Pt(1, 0), Pt(0, 1)},
		{"scale then translate", Translate(5, 5).Multiply(Scale(2, 2)), Pt(1, 1), Pt(7, 7)},
		{"translate then scale", Scale(2, 2).Multiply(Translate(5, 5)), Pt(1, 1), Pt(12, 12)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformPoint(tt.in); !pointsClose(got, tt.want) {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatrixTransformVector(t *testing.T) {
	m := Translate(100, 100).Multiply(Scale(2, -1))
	if got := m.TransformVector(Pt(3, 4)); !pointsClose(got, Pt(6, -4)) {
		t.Errorf("TransformVector = %v, want (6,-4)", got)
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Translate(3, -7).Multiply(Rotate(0.4)).Multiply(Scale(2, 5))
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Invert reported a singular matrix")
	}
	p := Pt(11, -2)
	if got := inv.TransformPoint(m.TransformPoint(p)); !pointsClose(got, p) {
		t.Errorf("round trip = %v, want %v", got, p)
	}
	if math.Abs(m.Determinant()-10) > 1e-9 {
		t.Errorf("Determinant = %v, want 10", m.Determinant())
	}

	inv, ok = Scale(0, 1).Invert()
	if ok || !inv.IsIdentity() {
		t.Errorf("singular Invert = %+v, %v, want identity, false", inv, ok)
	}
}

func TestPointOps(t *testing.T) {
	p := Pt(3, 4)
	if p.Length() != 5 {
		t.Errorf("Length = %v", p.Length())
	}
	if got := p.Normalize(); !pointsClose(got, Pt(0.6, 0.8)) {
		t.Errorf("Normalize = %v", got)
	}
	if got := (Point{}).Normalize(); got != (Point{}) {
		t.Errorf("zero Normalize = %v", got)
	}
	if got := p.Add(Pt(1, 1)).Sub(Pt(4, 5)); got != (Point{}) {
		t.Errorf("Add/Sub = %v", got)
	}
}
