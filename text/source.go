package text

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-text/typesetting/font"

	"github.com/gogpu/pathfill/internal/cache"
)

// outlineCacheSize bounds the cached glyph outlines per font.
const outlineCacheSize = 1024

// ErrEmptyFont is returned by NewFontSource for empty data.
var ErrEmptyFont = errors.New("text: empty font data")

// FontSource is a parsed font. It is safe for concurrent use.
type FontSource struct {
	font *font.Font
	upem float64

	outlines *cache.LRU[font.GID, []font.Segment]
}

// NewFontSource parses TTF or OTF data.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFont
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	upem := float64(face.Upem())
	if upem == 0 {
		upem = 1000
	}
	return &FontSource{
		font:     face.Font,
		upem:     upem,
		outlines: cache.New[font.GID, []font.Segment](outlineCacheSize),
	}, nil
}

// Face returns the font at size pixels per em.
func (s *FontSource) Face(size float64) *Face {
	return &Face{source: s, size: size}
}

// UnitsPerEm returns the font design units per em.
func (s *FontSource) UnitsPerEm() float64 { return s.upem }

// outline returns the cached outline segments of gid in font units.
// Glyphs without a vector outline yield nil.
func (s *FontSource) outline(face *font.Face, gid font.GID) []font.Segment {
	segs, ok := s.outlines.Get(gid)
	if ok {
		return segs
	}

	switch g := face.GlyphData(gid).(type) {
	case font.GlyphOutline:
		segs = g.Segments
	case font.GlyphSVG:
		segs = g.Outline.Segments
	case font.GlyphBitmap:
		if g.Outline != nil {
			segs = g.Outline.Segments
		}
	}

	s.outlines.Put(gid, segs)
	return segs
}
