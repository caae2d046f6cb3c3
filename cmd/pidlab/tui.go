package main

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lambert-ike-1232/pidlab/chart"
	"github.com/lambert-ike-1232/pidlab/cmd/pidlab/ui"
	"github.com/lambert-ike-1232/pidlab/config"
	"github.com/lambert-ike-1232/pidlab/control"
	"github.com/lambert-ike-1232/pidlab/signal"
	"github.com/lambert-ike-1232/pidlab/simulate"
	"github.com/lambert-ike-1232/pidlab/tf"
)

// Focus slots: the three gain inputs, then the reference selector.
const (
	focusKp = iota
	focusKi
	focusKd
	focusReference
	focusSlots
)

const badGainMessage = "please enter valid numeric values for Kp, Ki and Kd"

type tuiModel struct {
	styles ui.Styles

	plant  tf.TransferFunction
	grid   simulate.Grid
	outDir string

	inputs   [3]textinput.Model
	focusIdx int
	kind     signal.Kind

	pid  control.PID
	t    []float64
	ref  []float64
	resp *simulate.Response

	braille    string
	yMin, yMax float64

	status string
	errMsg string

	width int
}

func runTUI() error {
	cfg, plant, err := loadSetup()
	if err != nil {
		return err
	}
	p := tea.NewProgram(newTUI(cfg, plant), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func newTUI(cfg config.Config, plant tf.TransferFunction) tuiModel {
	m := tuiModel{
		styles: ui.DefaultStyles(),
		plant:  plant,
		grid:   cfg.Grid(),
		outDir: cfg.OutDir,
		kind:   signal.KindStep,
		width:  80,
	}

	defaults := []float64{cfg.Kp, cfg.Ki, cfg.Kd}
	for i := range m.inputs {
		in := textinput.New()
		in.SetValue(strconv.FormatFloat(defaults[i], 'g', -1, 64))
		in.CharLimit = 12
		in.Width = 8
		in.Prompt = ""
		m.inputs[i] = in
	}
	m.setFocus(focusKp)
	m.generate()
	return m
}

func (m tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m.setFocus(m.focusIdx + 1)
			return m, nil
		case tea.KeyShiftTab:
			m.setFocus(m.focusIdx - 1)
			return m, nil
		case tea.KeyEnter:
			m.generate()
			return m, nil
		case tea.KeyCtrlS:
			m.save()
			return m, nil
		case tea.KeyLeft:
			if m.focusIdx == focusReference {
				m.cycleReference(-1)
				return m, nil
			}
		case tea.KeyRight:
			if m.focusIdx == focusReference {
				m.cycleReference(1)
				return m, nil
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.redraw()
		return m, nil
	}

	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *tuiModel) setFocus(idx int) {
	m.focusIdx = ((idx % focusSlots) + focusSlots) % focusSlots
	for i := range m.inputs {
		if i == m.focusIdx {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *tuiModel) cycleReference(d int) {
	kinds := signal.Kinds()
	for i, k := range kinds {
		if k == m.kind {
			m.kind = kinds[(i+d+len(kinds))%len(kinds)]
			return
		}
	}
	m.kind = kinds[0]
}

// generate reruns the closed loop simulation from the current inputs.
func (m *tuiModel) generate() {
	m.errMsg = ""

	var gains [3]float64
	for i := range m.inputs {
		v, err := strconv.ParseFloat(strings.TrimSpace(m.inputs[i].Value()), 64)
		if err != nil {
			m.errMsg = badGainMessage
			return
		}
		gains[i] = v
	}
	pid, err := control.NewPID(gains[0], gains[1], gains[2])
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	loop, err := pid.ClosedLoop(m.plant)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	sys, err := loop.Realize()
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	t := m.grid.Times()
	ref := signal.Samples(m.kind.Source(), t)
	resp, err := simulate.ForcedResponse(sys, t, ref)
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	m.pid = pid
	m.t, m.ref, m.resp = t, ref, resp
	m.redraw()
}

func (m *tuiModel) redraw() {
	if m.resp == nil {
		return
	}
	w := m.width - 8
	if w < 20 {
		w = 20
	}
	if w > 120 {
		w = 120
	}
	refLine := chart.Line{Name: "reference", T: m.t, Y: m.ref}
	outLine := chart.Line{Name: "output", T: m.t, Y: m.resp.Y}
	m.braille = chart.Braille(w, 12, refLine, outLine)
	_, _, m.yMin, m.yMax = chart.Bounds(refLine, outLine)

	maxErr := 0.0
	for i := range m.ref {
		if e := math.Abs(m.ref[i] - m.resp.Y[i]); e > maxErr {
			maxErr = e
		}
	}
	m.status = fmt.Sprintf("%s   y(%g) = %.3f   max|e| = %.3f",
		m.pid, m.grid.End, m.resp.Final(), maxErr)
}

func (m *tuiModel) save() {
	if m.resp == nil {
		m.errMsg = "generate a response first"
		return
	}
	name := fmt.Sprintf("tui-%s-%s",
		strings.ToLower(m.kind.String()), time.Now().Format("150405"))
	png := filepath.Join(m.outDir, name+".png")
	err := chart.SavePNG(png,
		fmt.Sprintf("%s tracking a %s reference", m.pid, m.kind),
		"time (s)", "response",
		chart.Line{Name: "reference", T: m.t, Y: m.ref},
		chart.Line{Name: "output", T: m.t, Y: m.resp.Y},
	)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	err = chart.WriteCSV(filepath.Join(m.outDir, name+".csv"),
		[]string{"t", "reference", "output"},
		[][]float64{m.t, m.ref, m.resp.Y})
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.status = "saved " + png
}

func (m tuiModel) referenceView() string {
	if m.focusIdx == focusReference {
		return m.styles.Focused.Render("< " + m.kind.String() + " >")
	}
	return m.kind.String()
}

func (m tuiModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("PID Control Simulator"))
	b.WriteString("\n\n")

	row := lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.KpLabel.Render("Kp "), m.inputs[focusKp].View(), "   ",
		m.styles.KiLabel.Render("Ki "), m.inputs[focusKi].View(), "   ",
		m.styles.KdLabel.Render("Kd "), m.inputs[focusKd].View(), "   ",
		m.styles.Selector.Render("Input "), m.referenceView(),
	)
	b.WriteString(row)
	b.WriteString("\n\n")

	if m.braille != "" {
		content := m.styles.Axis.Render(fmt.Sprintf("%.3g", m.yMax)) +
			"\n" + m.braille + "\n" +
			m.styles.Axis.Render(fmt.Sprintf("%.3g", m.yMin))
		b.WriteString(m.styles.Panel.Render(content))
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString(m.styles.Error.Render(m.errMsg))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render(
		"tab: next field | enter: generate | left/right: reference | ctrl+s: save | esc: quit"))
	return b.String()
}
