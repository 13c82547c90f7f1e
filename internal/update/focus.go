package update

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusd/internal/session"
	"github.com/sandeepkv93/focusd/internal/tracker"
)

func (m Model) handleFocusKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		if m.Session.State() == session.StateRunning {
			if err := m.Session.Pause(); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
				return m, nil
			}
			m.Focus.Ticking = false
			m.Status = StatusBar{Text: "focus paused, partial time recorded", IsError: false}
			return m, nil
		}
		taskID := m.SelectedTaskID
		if taskID == "" {
			m.Status = StatusBar{Text: "no task selected", IsError: true}
			return m, nil
		}
		return m.startFocus(taskID)
	case "r":
		taskID := m.Session.TaskID()
		if taskID == "" {
			taskID = m.SelectedTaskID
		}
		if taskID == "" {
			m.Status = StatusBar{Text: "no task selected", IsError: true}
			return m, nil
		}
		task, err := m.Session.Reset(taskID)
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.Focus.Ticking = false
		m.Status = StatusBar{Text: fmt.Sprintf("cleared today's time for %s", task.Title), IsError: false}
		return m, nil
	}
	return m, nil
}

func (m Model) startFocus(taskID string) (tea.Model, tea.Cmd) {
	result, err := m.Session.Start(taskID)
	if err != nil {
		if errors.Is(err, tracker.ErrNotFound) {
			m.Status = StatusBar{Text: "task not found", IsError: true}
		} else {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		}
		return m, nil
	}
	if result == session.Refused {
		m.Status = StatusBar{Text: "task already has its full time today", IsError: false}
		return m, nil
	}
	m.CurrentView = ViewFocus
	m.SelectedTaskID = taskID
	m.Focus.StartedTotal = m.Session.Remaining()
	m.Status = StatusBar{Text: "focus running", IsError: false}
	if m.Focus.Ticking {
		// The tick chain from the replaced session keeps driving
		// the machine; no second chain.
		return m, nil
	}
	m.Focus.Ticking = true
	return m, focusTickCmd()
}

func (m Model) onFocusTick() (tea.Model, tea.Cmd) {
	if m.Session.State() != session.StateRunning {
		m.Focus.Ticking = false
		return m, nil
	}
	// Expiry idles the machine, so grab the running task id first.
	// The UI selection can have moved elsewhere mid-session.
	runningID := m.Session.TaskID()
	event, err := m.Session.Tick()
	if err != nil {
		m.Focus.Ticking = false
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	switch event {
	case session.TickExpired:
		m.Focus.Ticking = false
		m.Focus.LastExpired = runningID
		m.Status = StatusBar{Text: "session complete, task checked off", IsError: false}
		m.notify("Focus", "Session complete", "info")
		return m, nil
	case session.TickRunning:
		return m, focusTickCmd()
	default:
		m.Focus.Ticking = false
		return m, nil
	}
}

// focusFraction is how much of the started countdown has elapsed.
func (m Model) focusFraction() float64 {
	total := m.Focus.StartedTotal
	if total <= 0 {
		return 0
	}
	f := float64(total-m.Session.Remaining()) / float64(total)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return f
}

func focusTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return FocusTickMsg{} })
}
