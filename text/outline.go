package text

import (
	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"

	"github.com/gogpu/pathfill"
)

// AppendString shapes s and appends the glyph outlines to p with the
// pen starting at (x, y) on the baseline. It returns the advance.
func (f *Face) AppendString(p *pathfill.Path, s string, x, y float64) float64 {
	face := font.NewFace(f.source.font)
	glyphs, adv := f.shape(face, s)
	for _, g := range glyphs {
		f.appendGlyph(p, face, g.ID, x+g.X, y+g.Y)
	}
	return adv
}

// AppendGlyph appends the outline of gid with its origin at (x, y).
func (f *Face) AppendGlyph(p *pathfill.Path, gid font.GID, x, y float64) {
	f.appendGlyph(p, font.NewFace(f.source.font), gid, x, y)
}

func (f *Face) appendGlyph(p *pathfill.Path, face *font.Face, gid font.GID, x, y float64) {
	segs := f.source.outline(face, gid)
	if len(segs) == 0 {
		return
	}
	s := f.scale()
	// Font units grow upwards.
	pt := func(sp ot.SegmentPoint) (float64, float64) {
		return x + float64(sp.X)*s, y - float64(sp.Y)*s
	}

	open := false
	for i := range segs {
		seg := &segs[i]
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			if open {
				p.Close()
			}
			p.MoveTo(pt(seg.Args[0]))
			open = true
		case ot.SegmentOpLineTo:
			p.LineTo(pt(seg.Args[0]))
		case ot.SegmentOpQuadTo:
			cx, cy := pt(seg.Args[0])
			ex, ey := pt(seg.Args[1])
			p.QuadraticTo(cx, cy, ex, ey)
		case ot.SegmentOpCubeTo:
			c1x, c1y := pt(seg.Args[0])
			c2x, c2y := pt(seg.Args[1])
			ex, ey := pt(seg.Args[2])
			p.CubicTo(c1x, c1y, c2x, c2y, ex, ey)
		}
	}
	if open {
		p.Close()
	}
}
