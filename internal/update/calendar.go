package update

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusd/internal/model"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "left", "h":
		m.shiftCalendarSelection(0, -1)
	case "right", "l":
		m.shiftCalendarSelection(0, 1)
	case "up", "k":
		m.shiftCalendarSelection(0, -7)
	case "down", "j":
		m.shiftCalendarSelection(0, 7)
	case "H":
		m.shiftCalendarSelection(-1, 0)
	case "L":
		m.shiftCalendarSelection(1, 0)
	case "t":
		m.Calendar.Selected = model.StartOfDay(m.now())
		m.Status = StatusBar{Text: "calendar: today", IsError: false}
	case "enter":
		m.Day.Date = m.Calendar.Selected
		m.Day.Cursor = 0
		m.Day.PendingDeleteID = ""
		m.syncSelectedTaskToDayCursor()
		m.CurrentView = ViewDay
		m.Status = StatusBar{Text: fmt.Sprintf("day: %s", m.dayKey()), IsError: false}
	}
	return m
}

func (m *Model) shiftCalendarSelection(months, days int) {
	m.Calendar.Selected = m.Calendar.Selected.AddDate(0, months, days)
	m.Status = StatusBar{
		Text:    fmt.Sprintf("calendar: %s", model.DateKey(m.Calendar.Selected)),
		IsError: false,
	}
}

// calendarRows lays the selected month out as week rows. Each cell
// carries the day number and a marker: '*' when tasks are visible
// that day, 'x' when every visible task is complete.
func (m Model) calendarRows() []table.Row {
	sel := m.Calendar.Selected
	first := time.Date(sel.Year(), sel.Month(), 1, 0, 0, 0, 0, sel.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	rows := make([]table.Row, 0, 6)
	week := make(table.Row, 7)
	for i := range week {
		week[i] = ""
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(sel.Year(), sel.Month(), day, 0, 0, 0, 0, sel.Location())
		col := int(date.Weekday())
		week[col] = m.calendarCell(date)
		if col == 6 || day == daysInMonth {
			rows = append(rows, week)
			week = make(table.Row, 7)
			for i := range week {
				week[i] = ""
			}
		}
	}
	return rows
}

func (m Model) calendarCell(date time.Time) string {
	cell := strconv.Itoa(date.Day())
	tasks := m.Store.VisibleTasksFor(date)
	if len(tasks) > 0 {
		allDone := true
		for _, t := range tasks {
			if !model.IsCompletedOn(t, date) {
				allDone = false
				break
			}
		}
		if allDone {
			cell += "x"
		} else {
			cell += "*"
		}
	}
	if model.DateKey(date) == model.DateKey(m.Calendar.Selected) {
		cell = "[" + cell + "]"
	}
	return cell
}

func (m *Model) ensureCalendarState() {
	if m.Calendar.Selected.IsZero() {
		m.Calendar.Selected = model.StartOfDay(m.now())
	}
}
