package scope

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/lambert-ike-1232/pidlab/chart"
	"github.com/lambert-ike-1232/pidlab/control"
	"github.com/lambert-ike-1232/pidlab/signal"
	"github.com/lambert-ike-1232/pidlab/simulate"
	"github.com/lambert-ike-1232/pidlab/tf"
)

const (
	screenWidth  = 960
	screenHeight = 540
)

// One keypress moves the focused gain by this much.
var gainStep = map[control.Gain]float64{
	control.Proportional: 0.5,
	control.Integral:     0.1,
	control.Derivative:   0.05,
}

// App is the live closed loop viewer. It resimulates whenever a gain or
// the reference changes and redraws from the cached frame otherwise.
type App struct {
	plant  tf.TransferFunction
	grid   simulate.Grid
	outDir string

	pid   control.PID
	base  control.PID
	kind  signal.Kind
	focus control.Gain

	img        *image.RGBA
	fb         *ebiten.Image
	dirty      bool
	needRender bool
	status     string

	t    []float64
	ref  []float64
	resp *simulate.Response
}

// New prepares a viewer around the plant with the starting gains.
func New(plant tf.TransferFunction, pid control.PID, grid simulate.Grid, outDir string) *App {
	return &App{
		plant:  plant,
		grid:   grid,
		outDir: outDir,
		pid:    pid,
		base:   pid,
		kind:   signal.KindStep,
		dirty:  true,
	}
}

// Run opens the window and blocks until it is closed.
func (a *App) Run() error {
	ebiten.SetWindowTitle("pidlab scope")
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetTPS(60)
	return ebiten.RunGame(a)
}

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		a.focus = control.Gain((int(a.focus) + 1) % 3)
		a.needRender = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		a.nudge(gainStep[a.focus])
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		a.nudge(-gainStep[a.focus])
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		a.kind = nextKind(a.kind, 1)
		a.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		a.kind = nextKind(a.kind, -1)
		a.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.pid = a.base
		a.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		a.snapshot()
	}
	if a.dirty {
		a.simulate()
	}
	return nil
}

func (a *App) nudge(delta float64) {
	value := a.pid.Value(a.focus) + delta
	if value < 0 {
		value = 0
	}
	a.pid = a.pid.With(a.focus, value)
	a.dirty = true
}

func nextKind(k signal.Kind, d int) signal.Kind {
	kinds := signal.Kinds()
	for i, candidate := range kinds {
		if candidate == k {
			return kinds[(i+d+len(kinds))%len(kinds)]
		}
	}
	return kinds[0]
}

func (a *App) simulate() {
	a.dirty = false
	a.needRender = true
	a.status = ""

	loop, err := a.pid.ClosedLoop(a.plant)
	if err != nil {
		a.status = err.Error()
		return
	}
	sys, err := loop.Realize()
	if err != nil {
		a.status = err.Error()
		return
	}
	t := a.grid.Times()
	ref := signal.Samples(a.kind.Source(), t)
	resp, err := simulate.ForcedResponse(sys, t, ref)
	if err != nil {
		// The previous trace stays on screen while the status line
		// carries the error.
		a.status = err.Error()
		return
	}
	a.t, a.ref, a.resp = t, ref, resp
}

func (a *App) snapshot() {
	if a.resp == nil {
		a.status = "nothing to save yet"
		return
	}
	name := fmt.Sprintf("scope-%s-%s",
		strings.ToLower(a.kind.String()), time.Now().Format("150405"))
	png := filepath.Join(a.outDir, name+".png")
	err := chart.SavePNG(png,
		fmt.Sprintf("%s tracking a %s reference", a.pid, a.kind),
		"time (s)", "response",
		chart.Line{Name: "reference", T: a.t, Y: a.ref},
		chart.Line{Name: "output", T: a.t, Y: a.resp.Y},
	)
	if err != nil {
		a.status = err.Error()
		return
	}
	err = chart.WriteCSV(filepath.Join(a.outDir, name+".csv"),
		[]string{"t", "reference", "output"},
		[][]float64{a.t, a.ref, a.resp.Y})
	if err != nil {
		a.status = err.Error()
		return
	}
	a.status = "saved " + png
	a.needRender = true
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.img == nil {
		a.img = image.NewRGBA(image.Rect(0, 0, screenWidth, screenHeight))
		a.fb = ebiten.NewImage(screenWidth, screenHeight)
		a.needRender = true
	}
	if a.needRender {
		var y []float64
		if a.resp != nil {
			y = a.resp.Y
		}
		Render(a.img, a.t, a.ref, y)
		a.fb.WritePixels(a.img.Pix)
		a.needRender = false
	}
	screen.DrawImage(a.fb, nil)
	ebitenutil.DebugPrintAt(screen, hudText(a.pid, a.focus, a.kind, a.status), 8, 2)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// hudText renders the keyboard help and the gain readout, the focused
// gain marked with an arrow.
func hudText(pid control.PID, focus control.Gain, kind signal.Kind, status string) string {
	marker := func(g control.Gain) string {
		if g == focus {
			return ">"
		}
		return " "
	}
	text := fmt.Sprintf("%skp=%-8.4g%ski=%-8.4g%skd=%-8.4g reference: %s\n",
		marker(control.Proportional), pid.Kp,
		marker(control.Integral), pid.Ki,
		marker(control.Derivative), pid.Kd,
		kind)
	text += "tab: pick gain  up/down: adjust  left/right: reference  r: reset  s: save  q: quit"
	if status != "" {
		text += "\n" + status
	}
	return text
}
