package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// AppData is the full frame: a wide primary pane for the active
// screen and a narrower side pane for details, palette, and help.
type AppData struct {
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	Footer       string
	Notification string
}

const (
	primaryPaneWidth = 58
	sidePaneWidth    = 58
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Strikethrough(true)
)

func RenderApp(data AppData) string {
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Width(primaryPaneWidth).Render(data.LeftPane),
		panelStyle.Width(sidePaneWidth).Render(data.RightPane),
	)

	style := statusStyle
	if strings.Contains(strings.ToLower(data.StatusLine), "error") {
		style = errorStyle
	}

	lines := []string{
		headerStyle.Render(data.Header),
		row,
		style.Render(data.StatusLine),
	}
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderMarkdown renders a task description for the detail pane.
// Falls back to the raw text when glamour cannot style it.
func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
