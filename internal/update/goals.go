package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusd/internal/model"
)

func (m Model) handleGoalsKey(msg tea.KeyMsg) Model {
	progress := m.Store.Progress()
	switch msg.String() {
	case "up", "k":
		if m.Goals.Cursor > 0 {
			m.Goals.Cursor--
		}
	case "down", "j":
		if m.Goals.Cursor < len(progress)-1 {
			m.Goals.Cursor++
		}
	}
	return m
}

func (m Model) currentGoalProgress() (model.GoalProgress, bool) {
	progress := m.Store.Progress()
	if len(progress) == 0 {
		return model.GoalProgress{}, false
	}
	if m.Goals.Cursor < 0 || m.Goals.Cursor >= len(progress) {
		return model.GoalProgress{}, false
	}
	return progress[m.Goals.Cursor], true
}
