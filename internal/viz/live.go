package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/swarmdyn/internal/dynamo"
)

const (
	width  = 72
	height = 22
)

type TickMsg time.Time

type point struct{ x, y float64 }

// Model steps a joint multi-agent rollout tick by tick and draws every
// agent's planar position. The first two entries of each agent's state are
// its (x, y) position for every bundled model.
type Model struct {
	name    string
	joint   *dynamo.MultiModel
	x0      dynamo.State
	x       dynamo.State
	us      []dynamo.Control
	step    int
	t       float64
	running bool
	err     error
	trails  [][]point
}

func NewModel(name string, joint *dynamo.MultiModel, x0 dynamo.State, us []dynamo.Control) Model {
	return Model{
		name:    name,
		joint:   joint,
		x0:      x0.Clone(),
		x:       x0.Clone(),
		us:      us,
		running: true,
		trails:  make([][]point, len(joint.Submodels())),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
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
			m.x = m.x0.Clone()
			m.step = 0
			m.t = 0
			m.err = nil
			m.trails = make([][]point, len(m.joint.Submodels()))
			m.running = true
		}
	case TickMsg:
		if m.running && m.err == nil && m.step < len(m.us) {
			next, err := dynamo.Step(m.joint, m.x, m.us[m.step])
			if err != nil {
				m.err = err
				m.running = false
			} else {
				m.x = next
				m.t += m.joint.Dt()
				m.step++
				m.record()
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) record() {
	xs, _, err := m.joint.Partition(m.x, make(dynamo.Control, m.joint.ControlDim()))
	if err != nil {
		return
	}
	for i, xi := range xs {
		m.trails[i] = append(m.trails[i], point{xi[0], xi[1]})
		if len(m.trails[i]) > 400 {
			m.trails[i] = m.trails[i][1:]
		}
	}
}

func (m Model) View() string {
	canvas := m.renderCanvas()
	stats := m.renderStats()
	body := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(canvas), statsStyle.Render(stats))

	help := helpStyle.Render("space pause · r reset · q quit")
	return headerStyle.Render("swarmdyn · "+m.name) + "\n" + body + "\n" + help
}

func (m Model) renderCanvas() string {
	minX, maxX, minY, maxY := m.bounds()

	cells := make([][]string, height)
	for r := range cells {
		cells[r] = make([]string, width)
		for c := range cells[r] {
			cells[r][c] = " "
		}
	}

	plot := func(p point, s string) {
		c := int((p.x - minX) / (maxX - minX) * float64(width-1))
		r := int((maxY - p.y) / (maxY - minY) * float64(height-1))
		if r >= 0 && r < height && c >= 0 && c < width {
			cells[r][c] = s
		}
	}

	for i, trail := range m.trails {
		style := agentStyle(i)
		for _, p := range trail {
			plot(p, style.Render("·"))
		}
		if len(trail) > 0 {
			plot(trail[len(trail)-1], style.Render(fmt.Sprintf("%d", m.joint.IDs()[i]%10)))
		}
	}

	rows := make([]string, height)
	for r := range cells {
		rows[r] = strings.Join(cells[r], "")
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderStats() string {
	var b strings.Builder

	status := statusRunning.Render("running")
	switch {
	case m.err != nil:
		status = errorStyle.Render("error")
	case m.step >= len(m.us):
		status = statusDone.Render("done")
	case !m.running:
		status = statusPaused.Render("paused")
	}

	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("status"), status)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("t"), valueStyle.Render(fmt.Sprintf("%.2fs", m.t)))
	fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("step"), valueStyle.Render(fmt.Sprintf("%d/%d", m.step, len(m.us))))

	xs, _, err := m.joint.Partition(m.x, make(dynamo.Control, m.joint.ControlDim()))
	if err == nil {
		for i, xi := range xs {
			id := m.joint.IDs()[i]
			fmt.Fprintf(&b, "%s %s\n",
				agentStyle(i).Render(fmt.Sprintf("agent %d", id)),
				valueStyle.Render(fmt.Sprintf("(%6.2f, %6.2f)", xi[0], xi[1])))
		}
	}

	if m.err != nil {
		fmt.Fprintf(&b, "\n%s", errorStyle.Render(m.err.Error()))
	}
	return b.String()
}

// bounds computes the world window covering every trail and the initial
// positions, padded so single points do not degenerate the projection.
func (m Model) bounds() (minX, maxX, minY, maxY float64) {
	minX, maxX = math.Inf(1), math.Inf(-1)
	minY, maxY = math.Inf(1), math.Inf(-1)

	consider := func(p point) {
		minX = math.Min(minX, p.x)
		maxX = math.Max(maxX, p.x)
		minY = math.Min(minY, p.y)
		maxY = math.Max(maxY, p.y)
	}

	xs, _, err := m.joint.Partition(m.x0, make(dynamo.Control, m.joint.ControlDim()))
	if err == nil {
		for _, xi := range xs {
			consider(point{xi[0], xi[1]})
		}
	}
	for _, trail := range m.trails {
		for _, p := range trail {
			consider(p)
		}
	}

	if maxX-minX < 1 {
		minX, maxX = minX-1, maxX+1
	}
	if maxY-minY < 1 {
		minY, maxY = minY-1, maxY+1
	}
	return minX, maxX, minY, maxY
}
