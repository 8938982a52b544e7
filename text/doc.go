// Package text turns strings into fillable outlines.
//
// A FontSource holds a parsed TTF/OTF font and is shared between faces.
// A Face is the source at one pixel size. Face.AppendString shapes a
// string with the go-text HarfBuzz shaper and appends the glyph outlines
// to a pathfill.Path, ready to be filled with FillRuleNonZero:
//
//	src, err := text.NewFontSource(goregular.TTF)
//	if err != nil {
//	    return err
//	}
//	face := src.Face(24)
//	p := pathfill.NewPath()
//	face.AppendString(p, "Hello", 10, 40)
//	err = p.Fill(r, pathfill.FillRuleNonZero, pathfill.Solid(pathfill.Black), pathfill.Identity())
//
// Strings are normalized to NFC before shaping. The run direction comes
// from the first strong bidi character and the script from the first
// non-space rune; mixed runs are shaped as one.
package text
