package pathfill

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/pathfill/internal/mask"
	"github.com/gogpu/pathfill/internal/raster"
	"github.com/gogpu/pathfill/render"
)

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleNonZero fills areas with a non-zero winding number.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd fills areas crossed an odd number of times.
	FillRuleEvenOdd
)

// String returns the rule name.
func (r FillRule) String() string {
	return raster.FillRule(r).String()
}

// block is one queued coverage block: where it is drawn and which atlas
// block holds its coverage.
type block struct {
	x, y  int // destination in pixels
	index int // atlas block
}

// Stats counts the work done by a Renderer since creation.
type Stats struct {
	Fills           int // calls to Fill
	Draws           int // draw submissions
	CapacityFlushes int // flushes forced by a full buffer or a texture switch
	Vertices        int // vertices submitted
	Blocks          int // atlas blocks rasterized
	ReusedBlocks    int // full blocks drawn from an existing atlas block
}

// rendererIDs hands out the transfer ids renderers use with a BatchBuffer.
var rendererIDs atomic.Int64

// Renderer is an antialiased path-fill renderer.
//
// Segments are added with Begin, Line and End in canvas pixels, then
// Fill rasterizes them into coverage blocks and queues the blocks for
// drawing. Queued blocks are submitted by Flush, or earlier when one of
// the batch buffers runs out of space.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	cfg   config
	gc    render.GraphicContext
	batch *render.BatchBuffer
	id    int

	atlas   mask.Atlas
	acc     *raster.Accumulator
	ranges  []raster.Range
	dedup   *mask.Dedup
	program render.Program

	width, height int

	// Batch state. Buffers are held between the first fill of a batch
	// and the flush that submits it.
	acquired     bool
	maskTransfer *render.TransferTexture
	maskTexture  render.Texture
	instTransfer *render.TransferTexture
	instTexture  render.Texture
	image        render.Texture

	vertices  []render.Vertex
	upload    []block
	nextBlock int
	stops     int

	stats Stats
}

// New creates a renderer drawing to gc with resources from batch.
// A nil batch gets a default BatchBuffer over gc.
func New(gc render.GraphicContext, batch *render.BatchBuffer, opts ...Option) (*Renderer, error) {
	if gc == nil {
		return nil, ErrNilContext
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	userVertices := cfg.maxVertices != 0
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if batch == nil {
		bc := render.DefaultBatchConfig()
		bc.MaskSize = cfg.maskTextureSize
		bc.InstanceWidth = max(bc.InstanceWidth, 2*cfg.maxGradientStops)
		bc.VertexCapacity = max(bc.VertexCapacity, cfg.maxVertices)
		batch = render.NewBatchBuffer(gc, bc)
	}

	bc := batch.Config()
	if cfg.maxVertices > bc.VertexCapacity {
		if userVertices {
			return nil, fmt.Errorf("%w: max vertices %d exceed vertex buffer capacity %d",
				ErrInvalidConfig, cfg.maxVertices, bc.VertexCapacity)
		}
		cfg.maxVertices = bc.VertexCapacity - bc.VertexCapacity%render.VerticesPerBlock
	}
	if bc.MaskSize != cfg.maskTextureSize {
		return nil, fmt.Errorf("%w: mask texture %d, batch mask size %d",
			ErrInvalidConfig, cfg.maskTextureSize, bc.MaskSize)
	}
	if bc.InstanceWidth < 2*cfg.maxGradientStops {
		if cfg.userStops || bc.InstanceWidth < 2 {
			return nil, fmt.Errorf("%w: %d gradient stops need an instance texture of width %d, have %d",
				ErrInvalidConfig, cfg.maxGradientStops, 2*cfg.maxGradientStops, bc.InstanceWidth)
		}
		cfg.maxGradientStops = bc.InstanceWidth / 2
	}

	atlas, err := mask.NewAtlas(cfg.maskBlockSize, cfg.maskTextureSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	propagateLogger(gc)
	program, err := gc.CreateProgram(render.ProgramDescriptor{
		Label:        "path-fill",
		Source:       shaderSource,
		VertexLayout: render.VertexLayout(),
	})
	if err != nil {
		return nil, fmt.Errorf("pathfill: create program: %w", err)
	}

	r := &Renderer{
		cfg:      cfg,
		gc:       gc,
		batch:    batch,
		id:       int(rendererIDs.Add(1)),
		atlas:    atlas,
		acc:      raster.NewAccumulator(cfg.antialiasLevel, cfg.maskBlockSize),
		ranges:   make([]raster.Range, cfg.maskBlockSize*cfg.antialiasLevel),
		dedup:    mask.NewDedup(),
		program:  program,
		vertices: make([]render.Vertex, 0, cfg.maxVertices),
	}
	r.SetSize(gc.Width(), gc.Height())

	Logger().Debug("pathfill: renderer created",
		"antialias", cfg.antialiasLevel,
		"block", cfg.maskBlockSize,
		"atlas", cfg.maskTextureSize,
		"maxVertices", cfg.maxVertices,
		"maxStops", cfg.maxGradientStops)
	return r, nil
}

// AntialiasLevel returns the supersampling factor per axis.
func (r *Renderer) AntialiasLevel() int { return r.cfg.antialiasLevel }

// MaxVertices returns the vertex capacity of one batch.
func (r *Renderer) MaxVertices() int { return r.cfg.maxVertices }

// MaxBlocks returns the number of mask blocks in one batch.
func (r *Renderer) MaxBlocks() int { return r.atlas.MaxBlocks() }

// MaxGradientStops returns the gradient-stop capacity of one batch.
func (r *Renderer) MaxGradientStops() int { return r.cfg.maxGradientStops }

// Stats returns the work counters.
func (r *Renderer) Stats() Stats { return r.stats }

// SetSize sets the canvas size in pixels. The edge tables are only
// reallocated when the size rounded up to whole blocks changes.
func (r *Renderer) SetSize(width, height int) {
	r.width = max(width, 0)
	r.height = max(height, 0)
	r.acc.SetSize(r.width, r.height)
}

// Size returns the canvas size set by SetSize.
func (r *Renderer) Size() (width, height int) { return r.width, r.height }

// Clear drops all segments added since the last Clear.
func (r *Renderer) Clear() { r.acc.Clear() }

// Begin starts a subpath at (x, y).
func (r *Renderer) Begin(x, y float64) { r.acc.Begin(float32(x), float32(y)) }

// Line adds a segment from the current point to (x, y).
func (r *Renderer) Line(x, y float64) { r.acc.Line(float32(x), float32(y)) }

// End finishes the current subpath, closing it back to its start point
// when closePath is set.
func (r *Renderer) End(closePath bool) { r.acc.End(closePath) }

// Destroy flushes pending work and releases the program. The batch
// buffer is owned by the caller.
func (r *Renderer) Destroy() error {
	err := r.Flush()
	if r.program != nil {
		r.program.Destroy()
		r.program = nil
	}
	return err
}
