package chart

import (
	"math"
	"strings"
)

// Braille dot bit per pixel inside a cell, indexed by row then column.
// Each cell covers two pixels across and four down.
//
// See https://en.wikipedia.org/wiki/Braille_Patterns
var brailleDot = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille pixel canvas for terminal rendering. A canvas of
// width w and height h cells carries 2w by 4h pixels.
type Canvas struct {
	width  int
	height int
	bits   []uint8
}

// NewCanvas creates a blank canvas of the given size in cells.
func NewCanvas(width, height int) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Canvas{width: width, height: height, bits: make([]uint8, width*height)}
}

// Set marks one pixel. Pixels outside the canvas are ignored.
func (c *Canvas) Set(px, py int) {
	if px < 0 || py < 0 || px >= 2*c.width || py >= 4*c.height {
		return
	}
	c.bits[(py/4)*c.width+px/2] |= brailleDot[py%4][px%2]
}

// Line draws a pixel line between two points.
func (c *Canvas) Line(x1, y1, x2, y2 int) {
	dx, dy := x2-x1, y2-y1
	steps := abs(dx)
	if abs(dy) > steps {
		steps = abs(dy)
	}
	if steps == 0 {
		c.Set(x1, y1)
		return
	}
	for i := 0; i <= steps; i++ {
		c.Set(x1+dx*i/steps, y1+dy*i/steps)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Plot draws a sampled series scaled into the given data window, larger y
// upward.
func (c *Canvas) Plot(t, y []float64, tmin, tmax, ymin, ymax float64) {
	if len(t) != len(y) || len(t) == 0 {
		return
	}
	if tmax <= tmin {
		tmax = tmin + 1
	}
	if ymax <= ymin {
		ymax = ymin + 0.5
		ymin = ymax - 1
	}
	w := float64(2*c.width - 1)
	h := float64(4*c.height - 1)
	px := func(v float64) int { return int(math.Round((v - tmin) / (tmax - tmin) * w)) }
	py := func(v float64) int { return int(math.Round((ymax - v) / (ymax - ymin) * h)) }

	lastX, lastY := px(t[0]), py(y[0])
	c.Set(lastX, lastY)
	for i := 1; i < len(t); i++ {
		x, yy := px(t[i]), py(y[i])
		c.Line(lastX, lastY, x, yy)
		lastX, lastY = x, yy
	}
}

// String renders the canvas as height lines of width runes.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.height; row++ {
		for col := 0; col < c.width; col++ {
			b.WriteRune(rune(0x2800 + int(c.bits[row*c.width+col])))
		}
		if row < c.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Bounds returns the data window covering every well formed series. An
// empty set of series yields the unit window.
func Bounds(lines ...Line) (tmin, tmax, ymin, ymax float64) {
	first := true
	for _, ln := range lines {
		if len(ln.T) != len(ln.Y) {
			continue
		}
		for i := range ln.T {
			if first {
				tmin, tmax = ln.T[i], ln.T[i]
				ymin, ymax = ln.Y[i], ln.Y[i]
				first = false
				continue
			}
			tmin = math.Min(tmin, ln.T[i])
			tmax = math.Max(tmax, ln.T[i])
			ymin = math.Min(ymin, ln.Y[i])
			ymax = math.Max(ymax, ln.Y[i])
		}
	}
	if first {
		return 0, 1, 0, 1
	}
	return tmin, tmax, ymin, ymax
}

// Braille renders the series into a braille grid sized in cells, all
// series sharing one data window.
func Braille(width, height int, lines ...Line) string {
	c := NewCanvas(width, height)
	tmin, tmax, ymin, ymax := Bounds(lines...)
	for _, ln := range lines {
		if len(ln.T) == len(ln.Y) {
			c.Plot(ln.T, ln.Y, tmin, tmax, ymin, ymax)
		}
	}
	return c.String()
}
