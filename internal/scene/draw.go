package scene

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // image brushes
	_ "image/png"
	"math"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/font/gofont/goregular"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/pathfill"
	"github.com/gogpu/pathfill/render"
	"github.com/gogpu/pathfill/text"
)

// Target is a graphic context that can also clear itself and upload
// decoded images. Both bundled backends implement it.
type Target interface {
	render.GraphicContext
	Clear(c color.Color)
	NewImageTexture(img image.Image) (render.Texture, error)
}

// Draw renders s into t and flushes. The returned stats describe the
// renderer's work.
func Draw(s *Scene, t Target) (pathfill.Stats, error) {
	if s.Background != "" {
		bg, _ := parseColor(s.Background) // validated
		t.Clear(bg.NRGBA())
	}

	var opts []pathfill.Option
	if s.Antialias > 0 {
		opts = append(opts, pathfill.WithAntialiasLevel(s.Antialias))
	}
	r, err := pathfill.New(t, nil, opts...)
	if err != nil {
		return pathfill.Stats{}, err
	}

	d := drawer{scene: s, target: t, r: r, textures: make(map[string]render.Texture)}
	defer d.release()

	for i := range s.Shapes {
		if err := d.shape(&s.Shapes[i]); err != nil {
			return r.Stats(), fmt.Errorf("scene: shape %d: %w", i, err)
		}
	}
	if err := r.Destroy(); err != nil {
		return r.Stats(), err
	}
	return r.Stats(), nil
}

type drawer struct {
	scene    *Scene
	target   Target
	r        *pathfill.Renderer
	font     *text.FontSource
	textures map[string]render.Texture
}

func (d *drawer) release() {
	for _, tex := range d.textures {
		tex.Destroy()
	}
}

func (d *drawer) shape(sh *Shape) error {
	p := pathfill.NewPath()
	switch {
	case sh.Rect != nil:
		p.Rectangle(sh.Rect.X, sh.Rect.Y, sh.Rect.W, sh.Rect.H)
	case len(sh.Polygon) > 0:
		pts := make([]pathfill.Point, len(sh.Polygon))
		for i, v := range sh.Polygon {
			pts[i] = pathfill.Pt(v[0], v[1])
		}
		p.Polygon(pts...)
	case sh.Circle != nil:
		ry := sh.Circle.RY
		if ry == 0 {
			ry = sh.Circle.R
		}
		p.Ellipse(sh.Circle.CX, sh.Circle.CY, sh.Circle.R, ry)
	case sh.Text != nil:
		src, err := d.fontSource()
		if err != nil {
			return err
		}
		size := sh.Text.Size
		if size <= 0 {
			size = 16
		}
		src.Face(size).AppendString(p, sh.Text.Value, sh.Text.X, sh.Text.Y)
	}

	brush, err := d.brush(&sh.Brush)
	if err != nil {
		return err
	}
	rule, _ := sh.fillRule() // validated
	return p.Fill(d.r, rule, brush, sh.Transform.matrix())
}

// matrix returns scale, then rotate, then translate.
func (t *Transform) matrix() pathfill.Matrix {
	if t == nil {
		return pathfill.Identity()
	}
	sx, sy := 1.0, 1.0
	switch len(t.Scale) {
	case 1:
		sx, sy = t.Scale[0], t.Scale[0]
	case 2:
		sx, sy = t.Scale[0], t.Scale[1]
	}
	return pathfill.Translate(t.Translate[0], t.Translate[1]).
		Multiply(pathfill.Rotate(t.Rotate * math.Pi / 180)).
		Multiply(pathfill.Scale(sx, sy))
}

func (d *drawer) brush(b *Brush) (pathfill.Brush, error) {
	switch {
	case b.Linear != nil:
		return pathfill.LinearGradient(pt(b.Linear.Start), pt(b.Linear.End), stops(b.Linear.Stops)...), nil
	case b.Radial != nil:
		ry := b.Radial.RY
		if ry == 0 {
			ry = b.Radial.RX
		}
		return pathfill.RadialGradient(pt(b.Radial.Center), b.Radial.RX, ry, stops(b.Radial.Stops)...), nil
	case b.Image != nil:
		tex, err := d.texture(b.Image.Path)
		if err != nil {
			return pathfill.Brush{}, err
		}
		var rect image.Rectangle
		if len(b.Image.Rect) == 4 {
			rect = image.Rect(b.Image.Rect[0], b.Image.Rect[1], b.Image.Rect[2], b.Image.Rect[3])
		}
		scale := b.Image.Scale
		if scale == 0 {
			scale = 1
		}
		m := pathfill.Translate(b.Image.Origin[0], b.Image.Origin[1]).Multiply(pathfill.Scale(scale, scale))
		return pathfill.ImageBrush(tex, rect).WithTransform(m), nil
	default:
		c, _ := parseColor(b.Solid) // validated
		return pathfill.Solid(c), nil
	}
}

func (d *drawer) texture(name string) (render.Texture, error) {
	if tex, ok := d.textures[name]; ok {
		return tex, nil
	}
	f, err := os.Open(d.resolve(name))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	tex, err := d.target.NewImageTexture(img)
	if err != nil {
		return nil, err
	}
	d.textures[name] = tex
	return tex, nil
}

func (d *drawer) fontSource() (*text.FontSource, error) {
	if d.font != nil {
		return d.font, nil
	}
	data := goregular.TTF
	if d.scene.Font != "" {
		var err error
		if data, err = os.ReadFile(d.resolve(d.scene.Font)); err != nil {
			return nil, err
		}
	}
	src, err := text.NewFontSource(data)
	if err != nil {
		return nil, err
	}
	d.font = src
	return src, nil
}

func (d *drawer) resolve(name string) string {
	if filepath.IsAbs(name) || d.scene.Dir == "" {
		return name
	}
	return filepath.Join(d.scene.Dir, name)
}

func pt(v [2]float64) pathfill.Point { return pathfill.Pt(v[0], v[1]) }

func stops(in []Stop) []pathfill.GradientStop {
	out := make([]pathfill.GradientStop, len(in))
	for i, st := range in {
		c, _ := parseColor(st.Color) // validated
		out[i] = pathfill.GradientStop{Offset: st.Offset, Color: c}
	}
	return out
}
