package viz

import "github.com/charmbracelet/lipgloss"

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	statusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	statusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	statusDone    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))

	// One color per agent, cycled when the roster is larger.
	agentColors = []lipgloss.Color{"205", "42", "75", "220", "129", "208"}
)

func agentStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(agentColors[i%len(agentColors)])
}
