// Package update holds the bubbletea model for the focusd TUI: the
// day list, month calendar, goal and stats screens, and the focus
// timer wired to the session machine.
package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/focusd/internal/model"
	"github.com/sandeepkv93/focusd/internal/scheduler"
	"github.com/sandeepkv93/focusd/internal/session"
	"github.com/sandeepkv93/focusd/internal/tracker"
)

type View string

const (
	ViewDay      View = "Day"
	ViewCalendar View = "Calendar"
	ViewGoals    View = "Goals"
	ViewStats    View = "Stats"
	ViewFocus    View = "Focus"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Day      string
	Calendar string
	Goals    string
	Stats    string
	Focus    string
	Help     string
	Quit     string
}

// DayState tracks which date the day screen shows and the cursor
// within that date's visible tasks. PendingDeleteID arms the
// two-step delete: pressing delete on the same task again commits.
type DayState struct {
	Date            time.Time
	Cursor          int
	PendingDeleteID string
}

type CalendarState struct {
	Selected time.Time
}

type GoalsState struct {
	Cursor int
}

// FocusUIState mirrors the session machine for rendering; ticking
// guards against double tea.Tick chains.
type FocusUIState struct {
	Ticking      bool
	LastExpired  string
	StartedTotal int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView    View
	SelectedTaskID string
	Store          *tracker.Store
	Session        *session.Machine
	Scheduler      *scheduler.Engine
	Day            DayState
	Calendar       CalendarState
	Goals          GoalsState
	Focus          FocusUIState
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	now            func() time.Time
	// Bubble components used for rich TUI controls
	dayList       list.Model
	calendarTable table.Model
	commandInput  textinput.Model
	focusProgress progress.Model
	helpModel     help.Model
	descViewport  viewport.Model
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type FocusTickMsg struct{}

type DayRolloverMsg struct {
	Event scheduler.Event
}

func NewModel(store *tracker.Store) Model {
	return NewModelWithConfig(store, nil, nil, nil, DefaultRuntimeConfig())
}

func NewModelWithConfig(store *tracker.Store, machine *session.Machine, engine *scheduler.Engine, notifier DesktopNotifier, cfg RuntimeConfig) Model {
	if store == nil {
		store = tracker.NewStore(tracker.NoopPersister{})
	}
	if machine == nil {
		machine = session.NewMachine(store)
	}
	startView := cfg.DefaultView
	if !isKnownView(startView) {
		startView = ViewDay
	}
	now := time.Now
	m := Model{
		CurrentView: startView,
		Store:       store,
		Session:     machine,
		Scheduler:   engine,
		Day: DayState{
			Date: model.StartOfDay(now()),
		},
		Calendar: CalendarState{
			Selected: model.StartOfDay(now()),
		},
		DesktopEnabled: cfg.DesktopNotifications,
		notifier:       NoopDesktopNotifier{},
		Keys: GlobalKeyMap{
			Day:      "1",
			Calendar: "2",
			Goals:    "3",
			Stats:    "4",
			Focus:    "5",
			Help:     "?",
			Quit:     "q",
		},
		now: now,
	}
	if notifier != nil {
		m.notifier = notifier
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

// withClock fixes the model's idea of now. Test hook.
func (m Model) withClock(now func() time.Time) Model {
	m.now = now
	m.Day.Date = model.StartOfDay(now())
	m.Calendar.Selected = model.StartOfDay(now())
	m.syncBubbleData()
	return m
}
