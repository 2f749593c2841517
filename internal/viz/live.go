package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rigidsim/internal/sim"
	"github.com/san-kum/rigidsim/internal/vecmath"
)

const (
	width           = 60
	height          = 20
	historyCapacity = 200
	trailCapacity   = 120
	axisLength      = 1.5
	markerLength    = 0.75
)

type TickMsg time.Time

// Model steps a world on every tick and draws it.
type Model struct {
	sim      *sim.Simulator
	initial  *sim.World
	world    *sim.World
	t, dt    float64
	workers  int
	fps      int
	title    string
	running  bool
	selected int
	canvas   *Canvas
	camera   *Camera
	trails   [][]vec
	speeds   []float64
	err      error
}

func NewModel(s *sim.Simulator, w *sim.World, dt float64, workers, fps int, title string) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		sim:     s,
		initial: w.Clone(),
		world:   w.Clone(),
		dt:      dt,
		workers: workers,
		fps:     fps,
		title:   title,
		running: true,
		canvas:  NewCanvas(width, height),
		camera:  NewCamera(),
		trails:  make([][]vec, len(w.Bodies)),
		speeds:  make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			if n := len(m.world.Bodies); n > 0 {
				m.selected = (m.selected + 1) % n
				m.speeds = m.speeds[:0]
			}
		case "left":
			m.camera.Orbit(-0.1)
		case "right":
			m.camera.Orbit(0.1)
		case "up":
			m.camera.Tilt(-0.1)
		case "down":
			m.camera.Tilt(0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-":
			m.camera.ZoomOut()
		}
		return m, nil

	case TickMsg:
		if m.running && m.err == nil {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	if err := m.sim.Step(context.Background(), m.world, m.t, m.dt, m.workers); err != nil {
		m.err = err
		return
	}
	m.t += m.dt

	for i := range m.world.Bodies {
		if !m.world.Bodies[i].IsValid() {
			m.err = &sim.SimulationError{Time: m.t, Body: m.world.Name(i), Wrapped: sim.ErrInvalidState}
			return
		}
		m.trails[i] = appendCapped(m.trails[i], m.world.Bodies[i].Pos, trailCapacity)
	}
	if m.selected < len(m.world.Bodies) {
		m.speeds = appendCapped(m.speeds, m.world.Bodies[m.selected].Vel.Norm(), historyCapacity)
	}
}

func (m *Model) reset() {
	m.world = m.initial.Clone()
	m.t = 0
	m.err = nil
	m.trails = make([][]vec, len(m.world.Bodies))
	m.speeds = m.speeds[:0]
}

func appendCapped[T any](s []T, v T, capacity int) []T {
	if len(s) >= capacity {
		copy(s, s[1:])
		s = s[:len(s)-1]
	}
	return append(s, v)
}

func (m *Model) draw() {
	m.canvas.Clear()
	for i := range m.world.Bodies {
		b := &m.world.Bodies[i]
		for _, p := range m.trails[i] {
			m.camera.Point(m.canvas, p)
		}
		m.camera.Segment(m.canvas, b.Pos, b.Pos.Add(b.Ori.Axis.Scale(axisLength)))
		m.camera.Segment(m.canvas, b.Pos, spinMarker(b))
	}
}

// spinMarker returns the tip of a marker perpendicular to Ori.Axis, turned
// by Ori.Angle about it, so rotation about the axis shows on screen.
func spinMarker(b *sim.Body) vec {
	axis := b.Ori.Axis.R3()
	if axis.Norm() == 0 {
		return b.Pos
	}
	tip := b.Ori.Rotate(axis.Ortho()).Mul(markerLength)
	return b.Pos.Add(vecmath.FromR3[float64](tip))
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(statusError.Render("DIVERGED") + "\n")
		s.WriteString(m.err.Error() + "\n")
	case m.running:
		s.WriteString(statusRunning.Render("RUNNING") + "\n")
	default:
		s.WriteString(statusPaused.Render("PAUSED") + "\n")
	}
	s.WriteString(labelStyle.Render("time") + valueStyle.Render(fmt.Sprintf("%.3fs", m.t)) + "\n\n")

	for i := range m.world.Bodies {
		name := m.world.Name(i)
		if i == m.selected {
			s.WriteString(activeStyle.Render("> "+name) + "\n")
		} else {
			s.WriteString("  " + name + "\n")
		}
	}

	if m.selected < len(m.world.Bodies) {
		b := m.world.Bodies[m.selected]
		s.WriteString("\n")
		s.WriteString(row("pos", fmtVec(b.Pos)))
		s.WriteString(row("vel", fmtVec(b.Vel)))
		s.WriteString(row("ori", fmt.Sprintf("%.3f %s", b.Ori.Angle, fmtVec(b.Ori.Axis))))
		s.WriteString(row("tor", fmt.Sprintf("%.3f %s", b.Tor.Angle, fmtVec(b.Tor.Axis))))
	}

	if len(m.speeds) > 1 {
		chart := asciigraph.Plot(m.speeds, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("speed"))
		s.WriteString("\n" + graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause R:Reset Tab:Body ←→↑↓:Camera +/-:Zoom Q:Quit"))
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

func fmtVec(v vec) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v[0], v[1], v[2])
}

// Run starts the live view in the alternate screen and blocks until quit.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
