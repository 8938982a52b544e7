package text

import (
	"sync"
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
	"golang.org/x/text/unicode/norm"
)

// shapers pools HarfBuzz shapers, which keep per-call buffers.
var shapers = sync.Pool{
	New: func() any { return &shaping.HarfbuzzShaper{} },
}

// Metrics are the vertical font metrics at a face's size, in pixels.
type Metrics struct {
	Ascent  float64 // above the baseline, positive
	Descent float64 // below the baseline, positive
	LineGap float64
}

// Height returns the line height.
func (m Metrics) Height() float64 { return m.Ascent + m.Descent + m.LineGap }

// Glyph is a shaped glyph positioned relative to the pen origin.
// Y grows downwards.
type Glyph struct {
	ID       font.GID
	Cluster  int // rune index of the first character it renders
	X, Y     float64
	XAdvance float64
}

// Face is a FontSource at one size. It is safe for concurrent use.
type Face struct {
	source *FontSource
	size   float64
}

// Size returns the face size in pixels per em.
func (f *Face) Size() float64 { return f.size }

// Source returns the font the face was created from.
func (f *Face) Source() *FontSource { return f.source }

// scale converts font units to pixels.
func (f *Face) scale() float64 { return f.size / f.source.upem }

// Metrics returns the horizontal line metrics.
func (f *Face) Metrics() Metrics {
	ext, ok := font.NewFace(f.source.font).FontHExtents()
	if !ok {
		return Metrics{Ascent: f.size * 0.8, Descent: f.size * 0.2}
	}
	s := f.scale()
	return Metrics{
		Ascent:  float64(ext.Ascender) * s,
		Descent: -float64(ext.Descender) * s,
		LineGap: float64(ext.LineGap) * s,
	}
}

// Shape lays out s on one line.
func (f *Face) Shape(s string) []Glyph {
	glyphs, _ := f.shape(font.NewFace(f.source.font), s)
	return glyphs
}

// Advance returns the pen advance of s in pixels.
func (f *Face) Advance(s string) float64 {
	_, adv := f.shape(font.NewFace(f.source.font), s)
	return adv
}

func (f *Face) shape(face *font.Face, s string) ([]Glyph, float64) {
	runes := []rune(norm.NFC.String(s))
	if len(runes) == 0 {
		return nil, 0
	}

	dir := direction(runes)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      face,
		Size:      fixed.Int26_6(f.size * 64),
		Script:    script(runes),
		Language:  language.DefaultLanguage(),
	}
	hb := shapers.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	shapers.Put(hb)

	glyphs := make([]Glyph, len(out.Glyphs))
	var pen float64
	for i, g := range out.Glyphs {
		adv := fromFixed(g.XAdvance)
		glyphs[i] = Glyph{
			ID:       g.GlyphID,
			Cluster:  g.ClusterIndex,
			X:        pen + fromFixed(g.XOffset),
			Y:        -fromFixed(g.YOffset),
			XAdvance: adv,
		}
		pen += adv
	}
	return glyphs, pen
}

// direction returns the direction of the first strong character.
func direction(runes []rune) di.Direction {
	for _, r := range runes {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.R, bidi.AL:
			return di.DirectionRTL
		case bidi.L:
			return di.DirectionLTR
		}
	}
	return di.DirectionLTR
}

// script returns the first specific script in runes, defaulting to Latin.
func script(runes []rune) language.Script {
	for _, r := range runes {
		if unicode.IsSpace(r) {
			continue
		}
		if sc := language.LookupScript(r); sc != language.Common && sc != language.Inherited {
			return sc
		}
	}
	return language.Latin
}

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }
