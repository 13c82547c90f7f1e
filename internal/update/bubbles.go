package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/views"
)

func (m *Model) initBubbleComponents() {
	m.dayList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.dayList.Title = "Day (list)"
	m.dayList.SetShowHelp(false)
	m.dayList.SetFilteringEnabled(false)

	cols := []table.Column{
		{Title: "Su", Width: 6},
		{Title: "Mo", Width: 6},
		{Title: "Tu", Width: 6},
		{Title: "We", Width: 6},
		{Title: "Th", Width: 6},
		{Title: "Fr", Width: 6},
		{Title: "Sa", Width: 6},
	}
	m.calendarTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(7))

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.focusProgress = progress.New(progress.WithDefaultGradient())

	m.helpModel = help.New()
	m.descViewport = viewport.New(54, 10)
}

func (m *Model) syncBubbleData() {
	tasks := m.visibleTasks()
	dayItems := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		desc := fmt.Sprintf("%dm", t.DurationMinutes)
		if model.IsCompletedOn(t, m.Day.Date) {
			desc += " | done"
		}
		dayItems = append(dayItems, listItem{title: t.Title, description: desc})
	}
	m.dayList.SetItems(dayItems)
	if len(dayItems) > 0 && m.Day.Cursor < len(dayItems) {
		m.dayList.Select(m.Day.Cursor)
	}

	m.calendarTable.SetRows(m.calendarRows())

	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	}

	if task, ok := m.currentDayTask(); ok && strings.TrimSpace(task.Description) != "" {
		m.descViewport.SetContent(views.RenderMarkdown(task.Description))
	} else {
		m.descViewport.SetContent("")
	}
}
