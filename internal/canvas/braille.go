// Package canvas rasterizes map shapes onto terminal cells with braille glyphs.
//
// Each cell holds a 2x4 grid of micro-pixels, so a w x h cell canvas is addressed
// in micro coordinates from (0, 0) to (2w-1, 4h-1).
package canvas

import (
	"math"

	"github.com/paulmach/orb"
)

// HandleSize is the side of the box drawn around a handle, micro-pixels.
const HandleSize = 3

// dot bits of the braille block, indexed [column][row]
var dots = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// Braille is a cell buffer with one 8-bit dot mask per cell.
type Braille struct {
	w, h int // in cells
	m    [][]uint8
	hl   [][]bool
}

func New(w, h int) *Braille {
	w, h = max(w, 0), max(h, 0)
	m := make([][]uint8, h)
	hl := make([][]bool, h)
	for i := range m {
		m[i] = make([]uint8, w)
		hl[i] = make([]bool, w)
	}
	return &Braille{w: w, h: h, m: m, hl: hl}
}

// Cells is the canvas size in terminal cells.
func (b *Braille) Cells() (w, h int) { return b.w, b.h }

// Size is the canvas size in micro-pixels.
func (b *Braille) Size() (w, h int) { return b.w * 2, b.h * 4 }

// Set turns on the micro-pixel at (mx, my). Off-canvas pixels are ignored.
func (b *Braille) Set(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= dots[mx%2][my%4]
}

// Highlight marks the cell holding micro-pixel (mx, my).
func (b *Braille) Highlight(mx, my int) {
	if mx < 0 || my < 0 || my/4 >= b.h || mx/2 >= b.w {
		return
	}
	b.hl[my/4][mx/2] = true
}

// Highlighted reports whether cell (cx, cy) was marked by Highlight.
func (b *Braille) Highlighted(cx, cy int) bool {
	if cx < 0 || cy < 0 || cy >= b.h || cx >= b.w {
		return false
	}
	return b.hl[cy][cx]
}

// Line draws a line on the microgrid using Bresenham.
func (b *Braille) Line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Stroke draws ls, clipped to the canvas.
func (b *Braille) Stroke(ls orb.LineString) {
	if len(ls) == 1 {
		b.Set(round(ls[0][0]), round(ls[0][1]))
		return
	}
	w, h := b.Size()
	for i := 1; i < len(ls); i++ {
		p, q, ok := clip(ls[i-1], ls[i], float64(w), float64(h))
		if !ok {
			continue
		}
		b.Line(round(p[0]), round(p[1]), round(q[0]), round(q[1]))
	}
}

// Handle draws a small square centered on (x, y).
func (b *Braille) Handle(x, y int) {
	r := HandleSize / 2
	for d := -r; d <= r; d++ {
		b.Set(x+d, y-r)
		b.Set(x+d, y+r)
		b.Set(x-r, y+d)
		b.Set(x+r, y+d)
	}
}

// Lines returns one string per cell row; empty cells are spaces.
func (b *Braille) Lines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			row[x] = Glyph(b.m[y][x])
		}
		out[y] = string(row)
	}
	return out
}

// Glyph is the braille rune for a dot mask.
func Glyph(mask uint8) rune {
	if mask == 0 {
		return ' '
	}
	return rune(0x2800 + int(mask))
}

// clip cuts segment p-q to the rectangle [-1, w] x [-1, h] (Liang-Barsky).
func clip(p, q orb.Point, w, h float64) (orb.Point, orb.Point, bool) {
	if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsNaN(q[0]) || math.IsNaN(q[1]) {
		return p, q, false
	}
	t0, t1 := 0.0, 1.0
	dx, dy := q[0]-p[0], q[1]-p[1]
	edges := [4][2]float64{
		{-dx, p[0] + 1},
		{dx, w - p[0]},
		{-dy, p[1] + 1},
		{dy, h - p[1]},
	}
	for _, e := range edges {
		pe, qe := e[0], e[1]
		if pe == 0 {
			if qe < 0 {
				return p, q, false
			}
			continue
		}
		t := qe / pe
		if pe < 0 {
			if t > t1 {
				return p, q, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return p, q, false
			}
			t1 = min(t1, t)
		}
	}
	return orb.Point{p[0] + t0*dx, p[1] + t0*dy}, orb.Point{p[0] + t1*dx, p[1] + t1*dy}, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func round(v float64) int { return int(math.Round(v)) }
