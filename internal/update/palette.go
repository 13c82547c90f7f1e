package update

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/focusd/internal/commands"
	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/session"
	"github.com/sandeepkv93/focusd/internal/tracker"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m, nil
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var followUp tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add:   m.handleAddCommand,
		Goal:  m.handleGoalCommand,
		Done:  m.handleDoneCommand,
		Del:   m.handleDelCommand,
		Start: func(a commands.TargetArgs) (commands.Result, error) {
			task, resolveErr := m.resolveTask(a.Target)
			if resolveErr != nil {
				return commands.Result{}, resolveErr
			}
			result, startErr := m.Session.Start(task.ID)
			if startErr != nil {
				return commands.Result{}, startErr
			}
			if result == session.Refused {
				return commands.Result{Message: fmt.Sprintf("%s already has its full time today", task.Title)}, nil
			}
			m.CurrentView = ViewFocus
			m.SelectedTaskID = task.ID
			m.Focus.StartedTotal = m.Session.Remaining()
			if !m.Focus.Ticking {
				m.Focus.Ticking = true
				followUp = focusTickCmd()
			}
			return commands.Result{Message: fmt.Sprintf("focus started: %s", task.Title)}, nil
		},
		Pause: func() (commands.Result, error) {
			if m.Session.State() != session.StateRunning {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no session running"}
			}
			if pauseErr := m.Session.Pause(); pauseErr != nil {
				return commands.Result{}, pauseErr
			}
			m.Focus.Ticking = false
			return commands.Result{Message: "focus paused, partial time recorded"}, nil
		},
		Reset: func(a commands.TargetArgs) (commands.Result, error) {
			task, resolveErr := m.resolveTask(a.Target)
			if resolveErr != nil {
				return commands.Result{}, resolveErr
			}
			updated, resetErr := m.Session.Reset(task.ID)
			if resetErr != nil {
				return commands.Result{}, resetErr
			}
			m.Focus.Ticking = m.Session.State() == session.StateRunning
			return commands.Result{Message: fmt.Sprintf("cleared today's time for %s", updated.Title)}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			switch s.Subject {
			case "day":
				m.CurrentView = ViewDay
				if s.Date != "" {
					date, parseErr := model.ParseDateKey(s.Date)
					if parseErr != nil {
						return commands.Result{}, parseErr
					}
					m.Day.Date = date
					m.Day.Cursor = 0
					m.Day.PendingDeleteID = ""
					m.syncSelectedTaskToDayCursor()
				}
			case "calendar":
				m.CurrentView = ViewCalendar
			case "goals":
				m.CurrentView = ViewGoals
			case "stats":
				m.CurrentView = ViewStats
			case "focus":
				m.CurrentView = ViewFocus
			}
			return commands.Result{Message: fmt.Sprintf("show %s", s.Subject)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message, IsError: false}
	m.notify("Command", res.Message, "info")
	return m, followUp
}

func (m *Model) handleAddCommand(a commands.AddArgs) (commands.Result, error) {
	if m.isPastDay() {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "past days are read only"}
	}
	draft := tracker.TaskDraft{
		Title:           a.Title,
		DurationMinutes: a.DurationMinutes,
		Dates:           a.Dates,
	}
	if draft.DurationMinutes == 0 {
		draft.DurationMinutes = 25
	}
	for _, day := range a.RepeatDays {
		draft.RepeatDays = append(draft.RepeatDays, model.DayOfWeek(day))
	}
	if len(a.RepeatDays) == 0 && len(a.Dates) == 0 {
		// A bare add is pinned to the day on screen.
		draft.Dates = []string{m.dayKey()}
	}
	if a.Goal != "" {
		goal, err := m.resolveGoal(a.Goal)
		if err != nil {
			return commands.Result{}, err
		}
		draft.GoalID = goal.ID
	}
	task, err := m.Store.AddTask(draft)
	if err != nil {
		return commands.Result{}, err
	}
	m.CurrentView = ViewDay
	return commands.Result{Message: fmt.Sprintf("added task: %s", task.Title)}, nil
}

func (m *Model) handleGoalCommand(a commands.GoalArgs) (commands.Result, error) {
	goal, err := m.Store.AddGoal(tracker.GoalDraft{
		Name:                  a.Name,
		TargetDurationMinutes: a.TargetMinutes,
	})
	if err != nil {
		return commands.Result{}, err
	}
	m.CurrentView = ViewGoals
	return commands.Result{Message: fmt.Sprintf("added goal: %s", goal.Name)}, nil
}

func (m *Model) handleDoneCommand(a commands.TargetArgs) (commands.Result, error) {
	if m.isPastDay() {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "past days are read only"}
	}
	task, err := m.resolveTask(a.Target)
	if err != nil {
		return commands.Result{}, err
	}
	updated, err := m.Store.ToggleCompletion(task.ID, m.Day.Date)
	if err != nil {
		return commands.Result{}, err
	}
	if model.IsCompletedOn(updated, m.Day.Date) {
		return commands.Result{Message: fmt.Sprintf("completed: %s", updated.Title)}, nil
	}
	return commands.Result{Message: fmt.Sprintf("reopened: %s", updated.Title)}, nil
}

func (m *Model) handleDelCommand(a commands.TargetArgs) (commands.Result, error) {
	if m.isPastDay() {
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "past days are read only"}
	}
	task, err := m.resolveTask(a.Target)
	if err != nil {
		return commands.Result{}, err
	}
	if _, err := m.Store.DeleteTaskForDate(task.ID, m.Day.Date); err != nil {
		return commands.Result{}, err
	}
	m.Day.Cursor = 0
	m.syncSelectedTaskToDayCursor()
	return commands.Result{Message: fmt.Sprintf("removed %q from %s", task.Title, m.dayKey())}, nil
}

// resolveTask maps a palette target to a task on the day screen:
// a number is a 1-based list position, anything else matches a
// title prefix case-insensitively.
func (m Model) resolveTask(target string) (model.Task, error) {
	tasks := m.visibleTasks()
	if n, err := strconv.Atoi(target); err == nil {
		if n < 1 || n > len(tasks) {
			return model.Task{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task #%d on %s", n, m.dayKey())}
		}
		return tasks[n-1], nil
	}
	lowered := strings.ToLower(target)
	var matched []model.Task
	for _, t := range tasks {
		if strings.HasPrefix(strings.ToLower(t.Title), lowered) {
			matched = append(matched, t)
		}
	}
	switch len(matched) {
	case 0:
		return model.Task{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task matching %q on %s", target, m.dayKey())}
	case 1:
		return matched[0], nil
	default:
		return model.Task{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("%q matches %d tasks, be more specific", target, len(matched))}
	}
}

func (m Model) resolveGoal(name string) (model.Goal, error) {
	for _, g := range m.Store.Goals() {
		if strings.EqualFold(g.Name, name) {
			return g, nil
		}
	}
	return model.Goal{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no goal named %q", name)}
}
