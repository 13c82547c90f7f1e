package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/session"
	"github.com/sandeepkv93/focusd/internal/views"
)

func (m Model) renderDayView() string {
	tasks := m.visibleTasks()
	items := make([]views.DayTaskData, 0, len(tasks))
	for _, t := range tasks {
		item := views.DayTaskData{
			ID:        t.ID,
			Title:     t.Title,
			Duration:  fmt.Sprintf("%dm", t.DurationMinutes),
			Completed: model.IsCompletedOn(t, m.Day.Date),
		}
		if logged := t.TimeSpent[m.dayKey()]; logged > 0 {
			item.LoggedToday = formatDuration(logged)
		}
		if t.GoalID != "" {
			if goal, err := m.Store.Goal(t.GoalID); err == nil {
				item.GoalName = goal.Name
			}
		}
		items = append(items, item)
	}
	return views.RenderDayPanel(views.DayPanelData{
		DateLabel:       m.dayKey(),
		IsToday:         m.isToday(),
		ReadOnly:        m.isPastDay(),
		ListView:        m.dayList.View(),
		Items:           items,
		SelectedID:      m.SelectedTaskID,
		PendingDeleteID: m.Day.PendingDeleteID,
	})
}

func (m Model) renderTaskDetailPane() string {
	task, ok := m.currentDayTask()
	if !ok {
		return views.RenderTaskDetailPane(views.TaskDetailData{})
	}
	data := views.TaskDetailData{
		SelectedID:     task.ID,
		Title:          task.Title,
		Duration:       fmt.Sprintf("%dm", task.DurationMinutes),
		Dates:          task.Dates,
		LoggedToday:    formatDuration(task.TimeSpent[m.dayKey()]),
		LifetimeLogged: formatDuration(task.TimeSpentTotal()),
	}
	if len(task.RepeatDays) > 0 {
		days := make([]string, 0, len(task.RepeatDays))
		for _, d := range task.RepeatDays {
			days = append(days, string(d))
		}
		data.Repeats = strings.Join(days, ",")
	}
	if task.GoalID != "" {
		if goal, err := m.Store.Goal(task.GoalID); err == nil {
			data.GoalName = goal.Name
		}
	}
	if strings.TrimSpace(task.Description) != "" {
		data.DescriptionView = m.descViewport.View()
	}
	return views.RenderTaskDetailPane(data)
}

func (m Model) renderCalendarView() string {
	return views.RenderCalendarPanel(views.CalendarPanelData{
		MonthLabel: m.Calendar.Selected.Format("January 2006"),
		TableView:  m.calendarTable.View(),
		Legend:     "legend: * scheduled, x all done, [n] selected",
	})
}

func (m Model) renderGoalsView() string {
	progress := m.Store.Progress()
	items := make([]views.GoalItemData, 0, len(progress))
	for _, gp := range progress {
		pct := 0
		if gp.Goal.TargetDurationMinutes > 0 {
			pct = int(gp.AchievedMinutes() / float64(gp.Goal.TargetDurationMinutes) * 100)
		}
		if pct > 100 {
			pct = 100
		}
		items = append(items, views.GoalItemData{
			Name:            gp.Goal.Name,
			TargetMinutes:   gp.Goal.TargetDurationMinutes,
			AchievedMinutes: int(gp.AchievedMinutes()),
			Percent:         pct,
			Bar:             progressBar(float64(pct)/100, 10),
			Achieved:        gp.Achieved(),
		})
	}
	selectedName := ""
	selectedBar := ""
	if gp, ok := m.currentGoalProgress(); ok {
		selectedName = gp.Goal.Name
		frac := 0.0
		if gp.Goal.TargetDurationMinutes > 0 {
			frac = gp.AchievedMinutes() / float64(gp.Goal.TargetDurationMinutes)
		}
		if frac > 1 {
			frac = 1
		}
		selectedBar = m.focusProgress.ViewAs(frac)
	}
	return views.RenderGoalsPanel(views.GoalsPanelData{
		Items:        items,
		SelectedName: selectedName,
		BarView:      selectedBar,
	})
}

func (m Model) renderStatsView() string {
	summary := m.Store.Summary()
	rows := make([]views.StatsRowData, 0, len(summary.PerTask))
	for _, row := range summary.PerTask {
		rows = append(rows, views.StatsRowData{
			Title:       row.Title,
			Completions: row.CompletionCount,
			Minutes:     row.TotalMinutes(),
		})
	}
	return views.RenderStatsPanel(views.StatsPanelData{
		TotalFocusedMinutes: summary.TotalFocusedMinutes,
		TasksCompleted:      summary.TasksCompletedCount,
		AvgSessionMinutes:   summary.AvgSessionMinutes,
		GoalsAchieved:       summary.GoalsAchievedCount,
		TotalGoals:          summary.TotalGoals,
		Rows:                rows,
	})
}

func (m Model) renderFocusView() string {
	frac := m.focusFraction()
	data := views.FocusPanelData{
		StateLabel:   string(m.Session.State()),
		Timer:        formatDuration(m.Session.Remaining()),
		ProgressView: m.focusProgress.ViewAs(frac),
		ProgressPct:  int(frac * 100),
		ShowDone:     m.Focus.LastExpired != "" && m.Session.State() == session.StateIdle,
	}
	taskID := m.Session.TaskID()
	if taskID == "" {
		taskID = m.SelectedTaskID
	}
	if taskID != "" {
		if task, err := m.Store.Task(taskID); err == nil {
			data.TaskTitle = task.Title
			data.LoggedToday = formatDuration(task.TimeSpent[model.DateKey(m.now())])
		}
	}
	return views.RenderFocusPanel(data)
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(n)
	}
}
