package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/scheduler"
)

func waitForRolloverCmd(ch <-chan scheduler.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return DayRolloverMsg{Event: ev}
	}
}

// onDayRollover advances a day screen that was pinned to "today"
// to the new date and arms the next midnight event.
func (m Model) onDayRollover(msg DayRolloverMsg) (tea.Model, tea.Cmd) {
	if msg.Event.Kind == scheduler.KindDayRollover {
		today := model.StartOfDay(m.now())
		if model.DateKey(m.Day.Date) == model.DateKey(today.AddDate(0, 0, -1)) {
			m.Day.Date = today
			m.Day.Cursor = 0
			m.Day.PendingDeleteID = ""
			m.syncSelectedTaskToDayCursor()
		}
		m.Status = StatusBar{Text: fmt.Sprintf("new day: %s", model.DateKey(today)), IsError: false}
	}
	if m.Scheduler != nil {
		if err := m.Scheduler.ScheduleRollover(m.now()); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		}
		return m, waitForRolloverCmd(m.Scheduler.C())
	}
	return m, nil
}
