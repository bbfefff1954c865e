package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/cranesim/internal/crane"
	"github.com/san-kum/cranesim/internal/units"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	forceStep       = 5.0 // newtons per keypress
)

type TickMsg time.Time

// Model drives the interactive crane view: each frame advances the physics
// by wall-clock time and redraws side or top projection of the rig.
type Model struct {
	rig       *crane.Model
	forces    crane.Forces
	fixedStep float64

	canvas   *Canvas
	trail    []struct{ x, y int }
	swayHist []float64

	running  bool
	topView  bool
	showHelp bool
	elapsed  float64
}

func NewModel(rig *crane.Model, fixedStep float64) Model {
	return Model{
		rig:       rig,
		fixedStep: fixedStep,
		canvas:    NewCanvas(width, height),
		trail:     make([]struct{ x, y int }, 0, 200),
		swayHist:  make([]float64, 0, historyCapacity),
		running:   true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
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
		case "left":
			m.forces.Rail = m.forces.Rail.Add(units.N(-forceStep))
		case "right":
			m.forces.Rail = m.forces.Rail.Add(units.N(forceStep))
		case "up":
			m.forces.Cart = m.forces.Cart.Add(units.N(forceStep))
		case "down":
			m.forces.Cart = m.forces.Cart.Add(units.N(-forceStep))
		case "w":
			m.forces.Wind = m.forces.Wind.Add(units.N(-forceStep)) // reel in
		case "s":
			m.forces.Wind = m.forces.Wind.Add(units.N(forceStep)) // pay out
		case "0":
			m.forces = crane.Forces{}
		case "1":
			m.switchVariant(crane.Linear)
		case "2":
			m.switchVariant(crane.NonLinearConstLine)
		case "3":
			m.switchVariant(crane.NonLinearComplete)
		case "4":
			m.switchVariant(crane.NonLinearOriginal)
		case "v":
			m.topView = !m.topView
			m.trail = m.trail[:0]
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			frame := 1.0 / 60.0
			m.rig.UpdateFixed(m.fixedStep, frame, m.forces.Rail, m.forces.Cart, m.forces.Wind)
			m.elapsed += frame

			st := m.rig.GetState()
			sway := math.Hypot(st.PayloadX-st.RailOffset, st.PayloadY-st.CartOffset)
			m.swayHist = append(m.swayHist, sway)
			if len(m.swayHist) > historyCapacity {
				m.swayHist = m.swayHist[1:]
			}
		}
		m.draw()
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) reset() {
	m.rig.Reset()
	m.forces = crane.Forces{}
	m.elapsed = 0
	m.trail = m.trail[:0]
	m.swayHist = m.swayHist[:0]
}

func (m *Model) switchVariant(t crane.ModelType) {
	m.rig.Type = t
	m.reset()
}

// draw renders either the side (X-Z) or top-down (X-Y) projection.
func (m *Model) draw() {
	m.canvas.Clear()
	if m.topView {
		m.drawTop()
	} else {
		m.drawSide()
	}
}

func (m *Model) drawSide() {
	st := m.rig.GetState()
	cw := width * 2
	cx := cw / 2
	railY := 8
	scale := float64(cw) / 1.8 // world spans roughly +-0.9 m

	// rail girder and travel limits
	m.canvas.DrawLine(0, railY, cw-1, railY)
	limL := cx + int(m.rig.Rail.LimitMin*scale)
	limR := cx + int(m.rig.Rail.LimitMax*scale)
	m.canvas.DrawLine(limL, railY-3, limL, railY+3)
	m.canvas.DrawLine(limR, railY-3, limR, railY+3)

	tx := cx + int(st.RailOffset*scale)
	px := cx + int(st.PayloadX*scale)
	py := railY - int(st.PayloadZ*scale) // PayloadZ is negative below the rig

	m.canvas.DrawBox(tx, railY, 5, 2)
	m.canvas.DrawLine(tx, railY+2, px, py)

	m.pushTrail(px, py)
	for _, pt := range m.trail {
		m.canvas.Set(pt.x, pt.y)
	}
	m.canvas.DrawBlob(px, py, 3)
}

func (m *Model) drawTop() {
	st := m.rig.GetState()
	cw, ch := width*2, height*4
	cx, cy := cw/2, ch/2
	scale := float64(ch) / 1.2

	// workspace rectangle from the travel limits
	x0 := cx + int(m.rig.Rail.LimitMin*scale)
	x1 := cx + int(m.rig.Rail.LimitMax*scale)
	y0 := cy - int(m.rig.Cart.LimitMax*scale)
	y1 := cy - int(m.rig.Cart.LimitMin*scale)
	m.canvas.DrawDashed(x0, x1, y0)
	m.canvas.DrawDashed(x0, x1, y1)
	m.canvas.DrawLine(x0, y0, x0, y1)
	m.canvas.DrawLine(x1, y0, x1, y1)

	tx := cx + int(st.RailOffset*scale)
	ty := cy - int(st.CartOffset*scale)
	px := cx + int(st.PayloadX*scale)
	py := cy - int(st.PayloadY*scale)

	m.canvas.DrawBox(tx, ty, 4, 2)
	m.canvas.DrawLine(tx, ty, px, py)

	m.pushTrail(px, py)
	for _, pt := range m.trail {
		m.canvas.Set(pt.x, pt.y)
	}
	m.canvas.DrawBlob(px, py, 2)
}

func (m *Model) pushTrail(x, y int) {
	m.trail = append(m.trail, struct{ x, y int }{x, y})
	if len(m.trail) > 200 {
		m.trail = m.trail[1:]
	}
}

func (m Model) View() string {
	st := m.rig.GetState()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("CRANE / "+strings.ToUpper(m.rig.Type.String())) + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	view := "side"
	if m.topView {
		view = "top"
	}
	s.WriteString(fmt.Sprintf("%s  (%s view)\n\n", status, view))

	if len(m.swayHist) > 1 {
		chart := asciigraph.Plot(m.swayHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Sway"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.elapsed)) + "\n")
	s.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d", m.rig.StepCount())) + "\n")
	s.WriteString(labelStyle.Render("Alfa") + valueStyle.Render(fmt.Sprintf("%+.1f°", st.Alfa*180/math.Pi)) + "\n")
	s.WriteString(labelStyle.Render("Beta") + valueStyle.Render(fmt.Sprintf("%+.1f°", st.Beta*180/math.Pi)) + "\n")
	s.WriteString(labelStyle.Render("Rail") + valueStyle.Render(fmt.Sprintf("%+.3f m", st.RailOffset)) + "\n")
	s.WriteString(labelStyle.Render("Cart") + valueStyle.Render(fmt.Sprintf("%+.3f m", st.CartOffset)) + "\n")
	s.WriteString(labelStyle.Render("Line") + valueStyle.Render(fmt.Sprintf("%.3f m", st.LiftLine)) + "\n")

	s.WriteString("\nFORCES\n")
	s.WriteString(labelStyle.Render("Rail") + forceStyle.Render(fmt.Sprintf("%+.0f N", m.forces.Rail.Value)) + "\n")
	s.WriteString(labelStyle.Render("Cart") + forceStyle.Render(fmt.Sprintf("%+.0f N", m.forces.Cart.Value)) + "\n")
	s.WriteString(labelStyle.Render("Wind") + forceStyle.Render(fmt.Sprintf("%+.0f N", m.forces.Wind.Value)) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit V:View\n←→↑↓:Drive W/S:Winch 0:Zero\n1-4:Variant ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reset rig and forces     ║
║  Q        - Quit                     ║
║  ←/→      - Rail force -/+ 5 N       ║
║  ↑/↓      - Cart force +/- 5 N       ║
║  W/S      - Winch reel in / pay out  ║
║  0        - Zero all forces          ║
║  1-4      - Switch dynamics variant  ║
║  V        - Side / top view          ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
