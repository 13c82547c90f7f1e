package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusd/internal/model"
)

func (m Model) dayKey() string {
	return model.DateKey(m.Day.Date)
}

func (m Model) isToday() bool {
	return m.dayKey() == model.DateKey(m.now())
}

// isPastDay marks dates behind the current day. Past days render
// read only; the ledger for them only changes through a focus
// session that ran across midnight.
func (m Model) isPastDay() bool {
	return m.Day.Date.Before(model.StartOfDay(m.now()))
}

func (m Model) visibleTasks() []model.Task {
	return m.Store.VisibleTasksFor(m.Day.Date)
}

func (m Model) handleDayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.visibleTasks()
	switch msg.String() {
	case "up", "k":
		if m.Day.Cursor > 0 {
			m.Day.Cursor--
		}
		m.Day.PendingDeleteID = ""
		m.syncSelectedTaskToDayCursor()
	case "down", "j":
		if m.Day.Cursor < len(tasks)-1 {
			m.Day.Cursor++
		}
		m.Day.PendingDeleteID = ""
		m.syncSelectedTaskToDayCursor()
	case "left", "h":
		m.shiftDay(-1)
	case "right", "l":
		m.shiftDay(1)
	case "t":
		m.Day.Date = model.StartOfDay(m.now())
		m.Day.Cursor = 0
		m.Day.PendingDeleteID = ""
		m.syncSelectedTaskToDayCursor()
		m.Status = StatusBar{Text: "jumped to today", IsError: false}
	case " ", "enter":
		return m.toggleSelectedTask(), nil
	case "x":
		return m.deleteSelectedTask(), nil
	case "s":
		return m.startSelectedTask()
	}
	return m, nil
}

func (m *Model) shiftDay(delta int) {
	m.Day.Date = m.Day.Date.AddDate(0, 0, delta)
	m.Day.Cursor = 0
	m.Day.PendingDeleteID = ""
	m.syncSelectedTaskToDayCursor()
	m.Status = StatusBar{Text: fmt.Sprintf("day: %s", m.dayKey()), IsError: false}
}

func (m Model) toggleSelectedTask() Model {
	task, ok := m.currentDayTask()
	if !ok {
		return m
	}
	if m.isPastDay() {
		m.Status = StatusBar{Text: "past days are read only", IsError: true}
		return m
	}
	updated, err := m.Store.ToggleCompletion(task.ID, m.Day.Date)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	if model.IsCompletedOn(updated, m.Day.Date) {
		m.Status = StatusBar{Text: fmt.Sprintf("completed: %s", updated.Title), IsError: false}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("reopened: %s", updated.Title), IsError: false}
	}
	return m
}

// deleteSelectedTask is two-step: the first press arms the delete,
// the second press on the same task removes it from this day only.
func (m Model) deleteSelectedTask() Model {
	task, ok := m.currentDayTask()
	if !ok {
		return m
	}
	if m.isPastDay() {
		m.Status = StatusBar{Text: "past days are read only", IsError: true}
		return m
	}
	if m.Day.PendingDeleteID != task.ID {
		m.Day.PendingDeleteID = task.ID
		m.Status = StatusBar{Text: fmt.Sprintf("press x again to remove %q from %s", task.Title, m.dayKey()), IsError: false}
		return m
	}
	if _, err := m.Store.DeleteTaskForDate(task.ID, m.Day.Date); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Day.PendingDeleteID = ""
	m.Day.Cursor = 0
	m.syncSelectedTaskToDayCursor()
	m.Status = StatusBar{Text: fmt.Sprintf("removed %q from %s", task.Title, m.dayKey()), IsError: false}
	return m
}

func (m Model) startSelectedTask() (tea.Model, tea.Cmd) {
	task, ok := m.currentDayTask()
	if !ok {
		return m, nil
	}
	if !m.isToday() {
		m.Status = StatusBar{Text: "focus sessions run on today only", IsError: true}
		return m, nil
	}
	return m.startFocus(task.ID)
}

func (m *Model) syncSelectedTaskToDayCursor() {
	if task, ok := m.currentDayTask(); ok {
		m.SelectedTaskID = task.ID
	} else {
		m.SelectedTaskID = ""
	}
}

func (m Model) currentDayTask() (model.Task, bool) {
	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		return model.Task{}, false
	}
	if m.Day.Cursor < 0 || m.Day.Cursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[m.Day.Cursor], true
}

func (m *Model) ensureDayState() {
	if m.Day.Date.IsZero() {
		m.Day.Date = model.StartOfDay(m.now())
	}
	tasks := m.visibleTasks()
	if m.Day.Cursor < 0 {
		m.Day.Cursor = 0
	}
	if m.Day.Cursor >= len(tasks) && len(tasks) > 0 {
		m.Day.Cursor = len(tasks) - 1
	}
	if len(tasks) > 0 && m.SelectedTaskID == "" {
		m.syncSelectedTaskToDayCursor()
	}
}
