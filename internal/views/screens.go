package views

import (
	"fmt"
	"strings"
)

type DayTaskData struct {
	ID           string
	Title        string
	Duration     string
	Completed    bool
	LoggedToday  string
	GoalName     string
	Repeats      string
	ExplicitDate bool
}

type DayPanelData struct {
	DateLabel       string
	IsToday         bool
	ReadOnly        bool
	ListView        string
	Items           []DayTaskData
	SelectedID      string
	PendingDeleteID string
}

type TaskDetailData struct {
	SelectedID      string
	Title           string
	Duration        string
	Repeats         string
	Dates           []string
	GoalName        string
	LoggedToday     string
	LifetimeLogged  string
	DescriptionView string
}

type CalendarPanelData struct {
	MonthLabel string
	TableView  string
	Legend     string
}

type GoalItemData struct {
	Name            string
	TargetMinutes   int
	AchievedMinutes int
	Percent         int
	Bar             string
	Achieved        bool
}

type GoalsPanelData struct {
	Items        []GoalItemData
	SelectedName string
	BarView      string
}

type StatsRowData struct {
	Title       string
	Completions int
	Minutes     float64
}

type StatsPanelData struct {
	TotalFocusedMinutes float64
	TasksCompleted      int
	AvgSessionMinutes   float64
	GoalsAchieved       int
	TotalGoals          int
	Rows                []StatsRowData
}

type FocusPanelData struct {
	TaskTitle    string
	StateLabel   string
	Timer        string
	ProgressView string
	ProgressPct  int
	LoggedToday  string
	ShowDone     bool
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderDayPanel(data DayPanelData) string {
	var b strings.Builder
	marker := ""
	if data.IsToday {
		marker = " (today)"
	}
	b.WriteString(fmt.Sprintf("day: %s%s\n", data.DateLabel, marker))
	if data.ReadOnly {
		b.WriteString("past day, read only\n")
	} else {
		b.WriteString("actions: [j/k]move [h/l]day [t]today [space]toggle [x]delete [s]start\n")
	}
	b.WriteString(data.ListView + "\n")
	if len(data.Items) == 0 {
		b.WriteString("(nothing scheduled)")
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		cursor := " "
		if data.SelectedID == item.ID {
			cursor = ">"
		}
		box := "[ ]"
		if item.Completed {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s %s (%s)", cursor, box, item.Title, item.Duration)
		if item.LoggedToday != "" {
			line += " logged:" + item.LoggedToday
		}
		if item.GoalName != "" {
			line += " goal:" + item.GoalName
		}
		if item.Completed {
			line = doneStyle.Render(line)
		}
		b.WriteString(line)
		if data.PendingDeleteID == item.ID {
			b.WriteString("  press x again to remove")
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskDetailPane(data TaskDetailData) string {
	if strings.TrimSpace(data.SelectedID) == "" {
		return "details:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("details:\n")
	b.WriteString(fmt.Sprintf("title: %s\n", data.Title))
	b.WriteString(fmt.Sprintf("duration: %s\n", data.Duration))
	if data.Repeats != "" {
		b.WriteString(fmt.Sprintf("repeats: %s\n", data.Repeats))
	}
	if len(data.Dates) > 0 {
		b.WriteString(fmt.Sprintf("dates: %s\n", strings.Join(data.Dates, ", ")))
	}
	if data.GoalName != "" {
		b.WriteString(fmt.Sprintf("goal: %s\n", data.GoalName))
	}
	b.WriteString(fmt.Sprintf("logged today: %s\n", data.LoggedToday))
	b.WriteString(fmt.Sprintf("logged lifetime: %s\n", data.LifetimeLogged))
	if data.DescriptionView != "" {
		b.WriteString("\ndescription:\n")
		b.WriteString(data.DescriptionView)
	}
	return strings.TrimSpace(b.String())
}

func RenderCalendarPanel(data CalendarPanelData) string {
	var b strings.Builder
	b.WriteString("calendar:\n")
	b.WriteString(fmt.Sprintf("month: %s\n", data.MonthLabel))
	b.WriteString("actions: [h/l]day [j/k]week [H/L]month [t]today [enter]open day\n")
	b.WriteString(data.TableView + "\n")
	if data.Legend != "" {
		b.WriteString(data.Legend)
	}
	return strings.TrimSpace(b.String())
}

func RenderGoalsPanel(data GoalsPanelData) string {
	var b strings.Builder
	b.WriteString("goals:\n")
	b.WriteString("actions: [j/k]move\n")
	if len(data.Items) == 0 {
		b.WriteString("(no goals yet, add one with /goal)")
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		cursor := " "
		if data.SelectedName == item.Name {
			cursor = ">"
		}
		badge := ""
		if item.Achieved {
			badge = " done"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %d%% (%dm / %dm)%s\n",
			cursor, item.Name, item.Bar, item.Percent, item.AchievedMinutes, item.TargetMinutes, badge))
	}
	if data.BarView != "" {
		b.WriteString("\nselected:\n" + data.BarView)
	}
	return strings.TrimSpace(b.String())
}

// minutesLabel keeps short totals in minutes and rolls longer ones
// into hours.
func minutesLabel(min float64) string {
	if min >= 60 {
		return fmt.Sprintf("%.1f hr", min/60)
	}
	return fmt.Sprintf("%.1f min", min)
}

func RenderStatsPanel(data StatsPanelData) string {
	var b strings.Builder
	b.WriteString("stats:\n")
	if data.TotalFocusedMinutes == 0 && data.TasksCompleted == 0 && data.TotalGoals == 0 {
		b.WriteString("(no activity recorded yet)")
		return strings.TrimSpace(b.String())
	}
	b.WriteString(fmt.Sprintf("total focused: %s\n", minutesLabel(data.TotalFocusedMinutes)))
	b.WriteString(fmt.Sprintf("tasks completed: %d\n", data.TasksCompleted))
	b.WriteString(fmt.Sprintf("avg session: %s\n", minutesLabel(data.AvgSessionMinutes)))
	b.WriteString(fmt.Sprintf("goals achieved: %d / %d\n", data.GoalsAchieved, data.TotalGoals))
	if len(data.Rows) > 0 {
		b.WriteString("\nper task:\n")
		for _, row := range data.Rows {
			b.WriteString(fmt.Sprintf("- %s: %d done, %s\n", row.Title, row.Completions, minutesLabel(row.Minutes)))
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString("focus:\n")
	if data.TaskTitle != "" {
		b.WriteString(fmt.Sprintf("task: %s\n", data.TaskTitle))
	} else {
		b.WriteString("task: (none, start one with s or /start)\n")
	}
	b.WriteString(fmt.Sprintf("state: %s\n", strings.ToUpper(data.StateLabel)))
	b.WriteString(fmt.Sprintf("timer: %s\n", data.Timer))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	if data.LoggedToday != "" {
		b.WriteString(fmt.Sprintf("logged today: %s\n", data.LoggedToday))
	}
	b.WriteString("actions: [space]pause/resume [r]reset\n")
	if data.ShowDone {
		b.WriteString("session complete, full credit recorded")
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
