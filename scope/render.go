// Package scope opens a live window on the closed loop: the reference and
// the simulated output drawn 60 times a second, with the gains adjustable
// from the keyboard. Rendering into the frame buffer is kept free of any
// window dependency so it stays testable.
package scope

import (
	"image"
	"image/color"
	"math"

	"github.com/lambert-ike-1232/pidlab/chart"
)

// Dark panel palette: gray reference trace, red output trace.
var (
	backgroundColor = color.RGBA{0x22, 0x22, 0x22, 0xff}
	gridColor       = color.RGBA{0x3a, 0x3a, 0x3a, 0xff}
	axisColor       = color.RGBA{0x5a, 0x5a, 0x5a, 0xff}
	referenceColor  = color.RGBA{0xaa, 0xaa, 0xaa, 0xff}
	outputColor     = color.RGBA{0xff, 0x6b, 0x6b, 0xff}
)

// margin keeps the traces clear of the window edge and the HUD text.
const margin = 30

// Render draws the reference and output traces over a fresh background.
// Series that are empty or misaligned are skipped.
func Render(img *image.RGBA, t, r, y []float64) {
	fill(img, backgroundColor)
	if len(t) < 2 {
		return
	}

	b := img.Bounds()
	w := float64(b.Dx())
	h := float64(b.Dy())

	tmin, tmax, ymin, ymax := chart.Bounds(
		chart.Line{T: t, Y: r},
		chart.Line{T: t, Y: y},
	)
	if ymax <= ymin {
		ymin--
		ymax++
	}
	pad := 0.05 * (ymax - ymin)
	ymin -= pad
	ymax += pad

	px := func(v float64) float64 { return margin + (v-tmin)/(tmax-tmin)*(w-2*margin) }
	py := func(v float64) float64 { return margin + (ymax-v)/(ymax-ymin)*(h-2*margin) }

	for i := 0; i <= 4; i++ {
		level := ymin + float64(i)/4*(ymax-ymin)
		drawThickLine(img, px(tmin), py(level), px(tmax), py(level), 1, gridColor)
	}
	if ymin < 0 && ymax > 0 {
		drawThickLine(img, px(tmin), py(0), px(tmax), py(0), 1, axisColor)
	}

	drawTrace(img, t, r, px, py, 1.5, referenceColor)
	drawTrace(img, t, y, px, py, 2.5, outputColor)
}

func drawTrace(img *image.RGBA, t, series []float64, px, py func(float64) float64, width float64, c color.RGBA) {
	if len(series) != len(t) || len(t) < 2 {
		return
	}
	for i := 1; i < len(t); i++ {
		drawThickLine(img,
			px(t[i-1]), py(series[i-1]),
			px(t[i]), py(series[i]),
			width, c)
	}
}

func fill(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func drawCircleFilled(img *image.RGBA, cx, cy, r float64, c color.RGBA) {
	b := img.Bounds()
	minX := int(math.Floor(cx - r))
	maxX := int(math.Ceil(cx + r))
	minY := int(math.Floor(cy - r))
	maxY := int(math.Ceil(cy + r))
	for y := minY; y <= maxY; y++ {
		if y < b.Min.Y || y >= b.Max.Y {
			continue
		}
		for x := minX; x <= maxX; x++ {
			if x < b.Min.X || x >= b.Max.X {
				continue
			}
			dx := float64(x) - cx
			dy := float64(y) - cy
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func drawThickLine(img *image.RGBA, x1, y1, x2, y2, width float64, c color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	dist := math.Hypot(dx, dy)
	if dist < 1e-6 {
		drawCircleFilled(img, x1, y1, width/2, c)
		return
	}
	steps := int(dist / 0.8)
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		drawCircleFilled(img, x1+f*dx, y1+f*dy, width/2, c)
	}
}
