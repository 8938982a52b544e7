// Package pathfill provides an antialiased vector path filler that batches
// coverage into GPU draws.
//
// # Overview
//
// Paths are flattened to line segments and accumulated into per-scanline
// crossing lists at a configurable supersampling level. The renderer
// sweeps the canvas in bands of block-height rows, turns each covered
// block into 8-bit coverage inside a shared mask atlas, and emits two
// triangles per block carrying brush data for a single path-fill shader.
// Fully covered blocks share one atlas entry per batch.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/pathfill"
//	    "github.com/gogpu/pathfill/backend/software"
//	    "github.com/gogpu/pathfill/render"
//	)
//
//	gc := software.NewContext(256, 256)
//	r, err := pathfill.New(gc, render.NewBatchBuffer(gc, render.BatchConfig{}))
//	if err != nil {
//	    return err
//	}
//
//	var p pathfill.Path
//	p.MoveTo(32, 32)
//	p.LineTo(224, 64)
//	p.LineTo(128, 224)
//	p.Close()
//
//	err = p.Fill(r, pathfill.FillRuleNonZero, pathfill.Solid(pathfill.Red), pathfill.Identity())
//	err = r.Flush()
//
// # Brushes
//
// A Brush is a tagged variant selected by Kind: solid color, linear
// gradient, radial gradient or image. Gradient stops from every brush in a
// batch share one instance texture.
//
// # Limits
//
// Each batch is bounded by the atlas block count, the vertex buffer size
// and the gradient-stop capacity. Exceeding them flushes transparently.
// A single brush with more stops than the capacity, or a single emission
// with more vertices than the vertex buffer, fails with
// ErrTooManyGradientStops or ErrTooManyVertices.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
package pathfill
