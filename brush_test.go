package pathfill

import (
	"image"
	"math"
	"testing"

	"github.com/gogpu/pathfill/render"
)

func TestBrushKindString(t *testing.T) {
	tests := []struct {
		kind BrushKind
		want string
	}{
		{BrushSolid, "solid"},
		{BrushLinear, "linear"},
		{BrushRadial, "radial"},
		{BrushImage, "image"},
		{BrushKind(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestGradientStopsSorted(t *testing.T) {
	stops := []GradientStop{{1, Blue}, {0, Red}, {0.5, Green}}
	b := LinearGradient(Pt(0, 0), Pt(1, 0), stops...)
	for i, want := range []float64{0, 0.5, 1} {
		if b.Stops[i].Offset != want {
			t.Errorf("stop %d offset = %v, want %v", i, b.Stops[i].Offset, want)
		}
	}
	if stops[0].Offset != 1 {
		t.Error("LinearGradient reordered the caller's slice")
	}
	solid := Solid(Red)
	if n := len(solid.gradientStops()); n != 0 {
		t.Errorf("solid brush has %d stops", n)
	}
}

func TestBrushTransformDefaults(t *testing.T) {
	zero := Brush{Kind: BrushSolid}
	if m := zero.brushTransform(); !m.IsIdentity() {
		t.Errorf("zero Transform = %+v, want identity", m)
	}
	b := Solid(Red).WithTransform(Scale(2, 2))
	if b.brushTransform() != Scale(2, 2) {
		t.Errorf("WithTransform = %+v", b.Transform)
	}
}

func findVertex(t *testing.T, r *Renderer) render.Vertex {
	t.Helper()
	if len(r.vertices) == 0 {
		t.Fatal("no vertices queued")
	}
	return r.vertices[0]
}

func TestLinearBrushVertexData(t *testing.T) {
	r, _ := newTestRenderer(t, 64, 64)
	brush := LinearGradient(Pt(10, 0), Pt(10, 20),
		GradientStop{0, Red}, GradientStop{1, Blue})
	if err := rect(0, 0, 16, 16).Fill(r, FillRuleNonZero, brush, Identity()); err != nil {
		t.Fatal(err)
	}

	v := findVertex(t, r)
	if v.Mode != render.DrawModeLinear {
		t.Fatalf("mode = %v, want linear", v.Mode)
	}
	// Top-left corner relative to the start, along a downward direction.
	if v.BrushData1[0] != -10 || v.BrushData1[1] != 0 || v.BrushData1[2] != 0 || v.BrushData1[3] != 1 {
		t.Errorf("data1 = %v", v.BrushData1)
	}
	if math.Abs(float64(v.BrushData2[0])-1.0/20) > 1e-7 || v.BrushData2[1] != 0 || v.BrushData2[2] != 2 {
		t.Errorf("data2 = %v, want (1/20, 0, 2, _)", v.BrushData2)
	}
}

func TestRadialBrushVertexData(t *testing.T) {
	r, _ := newTestRenderer(t, 64, 64)
	// One stop buffered ahead moves the range of the second brush.
	if err := rect(0, 0, 16, 16).Fill(r, FillRuleNonZero,
		LinearGradient(Pt(0, 0), Pt(1, 0), GradientStop{0, Red}), Identity()); err != nil {
		t.Fatal(err)
	}
	r.vertices = r.vertices[:0]

	brush := RadialGradient(Pt(8, 8), 4, 8, GradientStop{0, White}, GradientStop{1, Black})
	if err := rect(0, 0, 16, 16).Fill(r, FillRuleNonZero, brush, Scale(2, 1)); err != nil {
		t.Fatal(err)
	}
	v := findVertex(t, r)
	want := [4]float32{1.0 / 8, 1, 3, 1.0 / 8}
	if v.BrushData2 != want {
		t.Errorf("data2 = %v, want %v", v.BrushData2, want)
	}
	if v.BrushData1[0] != -16 || v.BrushData1[1] != -8 {
		t.Errorf("data1 = %v, want corner relative to (16,8)", v.BrushData1)
	}
}

func TestImageSourceRect(t *testing.T) {
	_, gc := newTestRenderer(t, 8, 8)
	tex, err := gc.NewImageTexture(image.NewRGBA(image.Rect(0, 0, 5, 3)))
	if err != nil {
		t.Fatal(err)
	}
	if got := (ImageSource{Texture: tex}).sourceRect(); got != image.Rect(0, 0, 5, 3) {
		t.Errorf("default rect = %v", got)
	}
	sub := image.Rect(1, 1, 3, 2)
	if got := (ImageSource{Texture: tex, Rect: sub}).sourceRect(); got != sub {
		t.Errorf("rect = %v, want %v", got, sub)
	}
}
