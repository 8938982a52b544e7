package text

import (
	"errors"
	"testing"

	"github.com/go-text/typesetting/di"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/pathfill"
	"github.com/gogpu/pathfill/backend/software"
)

func goRegular(t *testing.T) *FontSource {
	t.Helper()
	src, err := NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatalf("NewFontSource: %v", err)
	}
	return src
}

func TestNewFontSourceErrors(t *testing.T) {
	if _, err := NewFontSource(nil); !errors.Is(err, ErrEmptyFont) {
		t.Errorf("empty data: %v, want ErrEmptyFont", err)
	}
	if _, err := NewFontSource([]byte("not a font")); err == nil {
		t.Error("garbage data should fail to parse")
	}
}

func TestShape(t *testing.T) {
	face := goRegular(t).Face(20)
	glyphs := face.Shape("Hello")
	if len(glyphs) != 5 {
		t.Fatalf("got %d glyphs, want 5", len(glyphs))
	}
	for i := 1; i < len(glyphs); i++ {
		if glyphs[i].X <= glyphs[i-1].X {
			t.Errorf("glyph %d at x=%v does not follow %v", i, glyphs[i].X, glyphs[i-1].X)
		}
	}
	if glyphs[2].ID != glyphs[3].ID {
		t.Error("the two l glyphs differ")
	}
	if adv := face.Advance("Hello"); adv <= glyphs[4].X {
		t.Errorf("Advance = %v, want past the last glyph at %v", adv, glyphs[4].X)
	}
	if face.Shape("") != nil {
		t.Error("empty string produced glyphs")
	}
}

func TestShapeNormalizes(t *testing.T) {
	face := goRegular(t).Face(16)
	composed := face.Shape("\u00e9")
	decomposed := face.Shape("e\u0301")
	if len(composed) != 1 || len(decomposed) != 1 || composed[0].ID != decomposed[0].ID {
		t.Errorf("composed %+v, decomposed %+v, want the same single glyph", composed, decomposed)
	}
}

func TestAdvanceScalesWithSize(t *testing.T) {
	src := goRegular(t)
	small, large := src.Face(10).Advance("Go"), src.Face(40).Advance("Go")
	if small <= 0 || large < 3.9*small || large > 4.1*small {
		t.Errorf("advance at 10px = %v, at 40px = %v", small, large)
	}
}

func TestMetrics(t *testing.T) {
	m := goRegular(t).Face(32).Metrics()
	if m.Ascent <= 0 || m.Descent <= 0 || m.Ascent > 40 {
		t.Errorf("metrics = %+v", m)
	}
	if m.Height() < m.Ascent+m.Descent {
		t.Errorf("Height = %v", m.Height())
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		s    string
		want di.Direction
	}{
		{"abc", di.DirectionLTR},
		{"123 abc", di.DirectionLTR},
		{"\u05e9\u05dc\u05d5\u05dd", di.DirectionRTL},
		{"", di.DirectionLTR},
	}
	for _, tt := range tests {
		if got := direction([]rune(tt.s)); got != tt.want {
			t.Errorf("direction(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestAppendString(t *testing.T) {
	face := goRegular(t).Face(32)
	p := pathfill.NewPath()
	adv := face.AppendString(p, "H", 4, 40)
	if p.Len() == 0 {
		t.Fatal("no outline appended")
	}
	if adv <= 0 {
		t.Errorf("advance = %v", adv)
	}
	n := p.Len()
	face.AppendString(p, " ", 4, 40)
	if p.Len() != n {
		t.Error("a space appended outline elements")
	}

	gc := software.NewContext(48, 48)
	r, err := pathfill.New(gc, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Fill(r, pathfill.FillRuleNonZero, pathfill.Solid(pathfill.Black), pathfill.Identity()); err != nil {
		t.Fatal(err)
	}
	if err := r.Flush(); err != nil {
		t.Fatal(err)
	}

	img := gc.Image()
	above, below := 0, 0
	for y := range 48 {
		for x := range 48 {
			if img.RGBAAt(x, y).A == 0 {
				continue
			}
			if y < 40 {
				above++
			} else {
				below++
			}
		}
	}
	if above == 0 {
		t.Error("glyph drew nothing above the baseline")
	}
	if below != 0 {
		t.Errorf("H drew %d pixels below the baseline", below)
	}
}
