package raster

// Range is a pull cursor over the sorted edges of one scanline. After
// Begin or Next, Found reports whether [X0, X1) holds a filled interval.
//
// X0 may be advanced by the caller to mark part of the interval as
// consumed. A Range is reused for many scanlines without allocating.
type Range struct {
	X0, X1 float32
	Found  bool

	line    *Scanline
	rule    FillRule
	i       int
	winding int
}

// Begin resets the cursor on line and advances to its first interval.
func (r *Range) Begin(line *Scanline, rule FillRule) {
	r.line = line
	r.rule = rule
	r.Found = false
	r.X0, r.X1 = 0, 0
	r.i = 0
	r.winding = 0
	r.Next()
}

// Next advances to the following interval, or clears Found when the
// scanline is exhausted.
func (r *Range) Next() {
	edges := r.line.Edges
	if r.i+1 >= len(edges) {
		r.Found = false
		return
	}

	if r.rule == FillRuleEvenOdd {
		r.X0 = edges[r.i].X
		r.X1 = edges[r.i+1].X
		r.i += 2
		r.Found = true
		return
	}

	r.X0 = edges[r.i].X
	r.winding += direction(edges[r.i])
	r.i++
	for r.i < len(edges) {
		r.winding += direction(edges[r.i])
		r.X1 = edges[r.i].X
		r.i++
		if r.winding == 0 {
			r.Found = true
			return
		}
	}
	r.Found = false
}

func direction(e Edge) int {
	if e.Up {
		return 1
	}
	return -1
}
