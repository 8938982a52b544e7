// Package scene loads YAML scene descriptions and draws them with a
// path-fill renderer.
//
// A scene looks like:
//
//	width: 256
//	height: 128
//	background: "#ffffff"
//	antialias: 4
//	shapes:
//	  - rect: {x: 8, y: 8, w: 100, h: 40}
//	    brush: {solid: "#ff0000"}
//	  - circle: {cx: 180, cy: 64, r: 40}
//	    fill_rule: evenodd
//	    brush:
//	      radial:
//	        center: [180, 64]
//	        rx: 40
//	        ry: 40
//	        stops: [{offset: 0, color: "#fff"}, {offset: 1, color: "#00f"}]
//	  - text: {x: 8, y: 100, size: 24, value: "Hello"}
//	    brush: {solid: "#000"}
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/pathfill"
)

// Errors returned by Decode.
var (
	ErrInvalidSize  = errors.New("scene: width and height must be positive")
	ErrInvalidShape = errors.New("scene: shape must set exactly one of rect, polygon, circle or text")
	ErrInvalidBrush = errors.New("scene: brush must set exactly one of solid, linear, radial or image")
	ErrFillRule     = errors.New("scene: unknown fill rule")
)

// Scene is a decoded scene file.
type Scene struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Background string  `yaml:"background"`
	Antialias  int     `yaml:"antialias"`
	Font       string  `yaml:"font"`
	Shapes     []Shape `yaml:"shapes"`

	// Dir resolves relative font and image paths. Load sets it to the
	// directory of the scene file.
	Dir string `yaml:"-"`
}

// Shape is one filled outline.
type Shape struct {
	Rect      *Rect        `yaml:"rect"`
	Polygon   [][2]float64 `yaml:"polygon"`
	Circle    *Circle      `yaml:"circle"`
	Text      *Text        `yaml:"text"`
	FillRule  string       `yaml:"fill_rule"`
	Brush     Brush        `yaml:"brush"`
	Transform *Transform   `yaml:"transform"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Circle is a circle or, with RY set, an ellipse.
type Circle struct {
	CX float64 `yaml:"cx"`
	CY float64 `yaml:"cy"`
	R  float64 `yaml:"r"`
	RY float64 `yaml:"ry"`
}

// Text is a string drawn with the scene font; Y is the baseline.
type Text struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Size  float64 `yaml:"size"`
	Value string  `yaml:"value"`
}

// Transform is applied as scale, then rotate, then translate.
type Transform struct {
	Translate [2]float64 `yaml:"translate"`
	Scale     []float64  `yaml:"scale"`
	Rotate    float64    `yaml:"rotate"` // degrees
}

// Brush selects the paint of a shape.
type Brush struct {
	Solid  string  `yaml:"solid"`
	Linear *Linear `yaml:"linear"`
	Radial *Radial `yaml:"radial"`
	Image  *Image  `yaml:"image"`
}

// Stop is a gradient stop.
type Stop struct {
	Offset float64 `yaml:"offset"`
	Color  string  `yaml:"color"`
}

// Linear is a linear gradient from Start to End.
type Linear struct {
	Start [2]float64 `yaml:"start"`
	End   [2]float64 `yaml:"end"`
	Stops []Stop     `yaml:"stops"`
}

// Radial is an elliptical gradient.
type Radial struct {
	Center [2]float64 `yaml:"center"`
	RX     float64    `yaml:"rx"`
	RY     float64    `yaml:"ry"`
	Stops  []Stop     `yaml:"stops"`
}

// Image paints a decoded image file, optionally a sub-rectangle, placed
// at Origin and scaled by Scale.
type Image struct {
	Path   string     `yaml:"path"`
	Rect   []int      `yaml:"rect"` // x0, y0, x1, y1
	Origin [2]float64 `yaml:"origin"`
	Scale  float64    `yaml:"scale"`
}

// Load reads and decodes the scene file at path.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	defer f.Close()
	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Dir = filepath.Dir(path)
	return s, nil
}

// Decode parses and validates a scene.
func Decode(r io.Reader) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("scene: decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks sizes, shapes, brushes and colors.
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, s.Width, s.Height)
	}
	if s.Background != "" {
		if _, err := parseColor(s.Background); err != nil {
			return fmt.Errorf("scene: background: %w", err)
		}
	}
	for i := range s.Shapes {
		if err := s.Shapes[i].validate(); err != nil {
			return fmt.Errorf("scene: shape %d: %w", i, err)
		}
	}
	return nil
}

func (sh *Shape) validate() error {
	n := 0
	if sh.Rect != nil {
		n++
	}
	if len(sh.Polygon) > 0 {
		n++
	}
	if sh.Circle != nil {
		n++
	}
	if sh.Text != nil {
		n++
	}
	if n != 1 {
		return ErrInvalidShape
	}
	if _, err := sh.fillRule(); err != nil {
		return err
	}
	return sh.Brush.validate()
}

func (sh *Shape) fillRule() (pathfill.FillRule, error) {
	switch sh.FillRule {
	case "", "nonzero":
		return pathfill.FillRuleNonZero, nil
	case "evenodd":
		return pathfill.FillRuleEvenOdd, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrFillRule, sh.FillRule)
}

func (b *Brush) validate() error {
	n := 0
	if b.Solid != "" {
		n++
		if _, err := parseColor(b.Solid); err != nil {
			return err
		}
	}
	if b.Linear != nil {
		n++
		if err := validateStops(b.Linear.Stops); err != nil {
			return err
		}
	}
	if b.Radial != nil {
		n++
		if err := validateStops(b.Radial.Stops); err != nil {
			return err
		}
	}
	if b.Image != nil {
		n++
		if b.Image.Path == "" || (len(b.Image.Rect) != 0 && len(b.Image.Rect) != 4) {
			return fmt.Errorf("%w: image needs a path and an optional 4-value rect", ErrInvalidBrush)
		}
	}
	if n != 1 {
		return ErrInvalidBrush
	}
	return nil
}

// parseColor accepts hex colors and SVG color names.
func parseColor(s string) (pathfill.RGBA, error) {
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return pathfill.FromColor(c), nil
	}
	return pathfill.ParseHex(s)
}

func validateStops(stops []Stop) error {
	for _, st := range stops {
		if _, err := parseColor(st.Color); err != nil {
			return err
		}
	}
	return nil
}
