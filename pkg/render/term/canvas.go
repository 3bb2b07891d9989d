// Package term draws layout frames as text for terminals.
//
// A terminal cell is roughly twice as tall as it is wide, so screen
// coordinates are measured in half-rows: column = x, row = y/2.
package term

import (
	"math"
	"strings"

	"github.com/matzehuels/forcegraph/pkg/layout/force"
	"github.com/matzehuels/forcegraph/pkg/view"
)

// Glyphs used on the canvas.
const (
	NodeGlyph     = 'o'
	PinnedGlyph   = '@'
	SelectedGlyph = '#'
	EdgeGlyph     = '.'
)

// Options configures [Render].
type Options struct {
	Width  int
	Height int

	// Labels writes each node's name to the right of it.
	Labels bool

	// View maps world to screen coordinates. Nil fits the frame into the
	// canvas.
	View *view.Transform

	// Selected marks one node with [SelectedGlyph].
	Selected    int
	HasSelected bool
}

// Canvas is a fixed-size grid of runes.
type Canvas struct {
	w, h  int
	cells [][]rune
}

// NewCanvas returns a blank canvas. Sizes below 1 are raised to 1.
func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 1), max(h, 1)
	cells := make([][]rune, h)
	for i := range cells {
		cells[i] = []rune(strings.Repeat(" ", w))
	}
	return &Canvas{w: w, h: h, cells: cells}
}

// Set writes r at (col, row). Points outside the canvas are dropped.
func (c *Canvas) Set(col, row int, r rune) {
	if col < 0 || row < 0 || col >= c.w || row >= c.h {
		return
	}
	c.cells[row][col] = r
}

// At returns the rune at (col, row), or 0 outside the canvas.
func (c *Canvas) At(col, row int) rune {
	if col < 0 || row < 0 || col >= c.w || row >= c.h {
		return 0
	}
	return c.cells[row][col]
}

// Text writes s starting at (col, row).
func (c *Canvas) Text(col, row int, s string) {
	for i, r := range []rune(s) {
		c.Set(col+i, row, r)
	}
}

// Line draws a straight line between two cells with Bresenham's algorithm,
// clipped to the canvas. Only blank cells are overwritten.
func (c *Canvas) Line(x0, y0, x1, y1 int, r rune) {
	x0, y0, x1, y1, ok := c.clip(x0, y0, x1, y1)
	if !ok {
		return
	}
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		if c.At(x0, y0) == ' ' {
			c.Set(x0, y0, r)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// clip cuts a segment to the canvas (Liang-Barsky).
func (c *Canvas) clip(x0, y0, x1, y1 int) (int, int, int, int, bool) {
	fx, fy := float64(x0), float64(y0)
	dx, dy := float64(x1-x0), float64(y1-y0)
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{fx, float64(c.w-1) - fx, fy, float64(c.h-1) - fy}
	u1, u2 := 0.0, 1.0
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			u1 = max(u1, t)
		} else {
			u2 = min(u2, t)
		}
	}
	if u1 > u2 {
		return 0, 0, 0, 0, false
	}
	return int(math.Round(fx + u1*dx)), int(math.Round(fy + u1*dy)),
		int(math.Round(fx + u2*dx)), int(math.Round(fy + u2*dy)), true
}

// String returns the canvas rows joined by newlines, with trailing spaces
// trimmed.
func (c *Canvas) String() string {
	lines := make([]string, c.h)
	for i, row := range c.cells {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}

// Render draws a snapshot: edges first, then nodes on top, then labels.
func Render(s force.Snapshot, opts Options) *Canvas {
	c := NewCanvas(opts.Width, opts.Height)

	t := FitView(s, c.w, c.h)
	if opts.View != nil {
		t = *opts.View
	}

	cells := make(map[int][2]int, len(s.Nodes))
	for _, n := range s.Nodes {
		if col, row, ok := ToCell(t, n.Pos); ok {
			cells[n.ID] = [2]int{col, row}
		}
	}

	for _, e := range s.Edges {
		from, ok1 := cells[e.From]
		to, ok2 := cells[e.To]
		if ok1 && ok2 {
			c.Line(from[0], from[1], to[0], to[1], EdgeGlyph)
		}
	}
	for _, n := range s.Nodes {
		p, ok := cells[n.ID]
		if !ok {
			continue
		}
		glyph := NodeGlyph
		switch {
		case opts.HasSelected && n.ID == opts.Selected:
			glyph = SelectedGlyph
		case n.Pinned:
			glyph = PinnedGlyph
		}
		c.Set(p[0], p[1], glyph)
	}
	if opts.Labels {
		for _, n := range s.Nodes {
			if p, ok := cells[n.ID]; ok && n.Name != "" {
				c.Text(p[0]+2, p[1], n.Name)
			}
		}
	}
	return c
}

// FitView returns the transform that fits a snapshot into a w x h cell
// canvas with a one-cell margin.
func FitView(s force.Snapshot, w, h int) view.Transform {
	lo, hi := s.Bounds()
	return view.Fit(lo, hi, float64(w-1), float64(2*(h-1)), 1)
}

// ToCell maps a world position to a canvas cell through t. ok is false for
// positions that are not finite or too far off the canvas to address.
func ToCell(t view.Transform, p force.Vec) (col, row int, ok bool) {
	if !p.IsFinite() {
		return 0, 0, false
	}
	sp := t.ToScreen(p)
	x, y := math.Round(sp.X), math.Round(sp.Y/2)
	if math.Abs(x) > math.MaxInt32 || math.Abs(y) > math.MaxInt32 {
		return 0, 0, false
	}
	return int(x), int(y), true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
