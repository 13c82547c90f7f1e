// Package session coordinates the single active focus countdown. At
// most one task is in focus system-wide; every suspension point
// (pause, expiry, reset, takeover by another task) commits elapsed
// time to the ledger before the machine changes state.
package session

import (
	"time"

	"github.com/sandeepkv93/focusd/internal/model"
)

type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
)

// StartResult distinguishes a countdown actually starting from the
// defined refusal when a task has no time left to log today.
type StartResult string

const (
	Started StartResult = "started"
	Refused StartResult = "refused"
)

type TickEvent string

const (
	TickIdle    TickEvent = "idle"
	TickRunning TickEvent = "running"
	TickExpired TickEvent = "expired"
)

// Ledger is the slice of the tracker the machine commits through.
type Ledger interface {
	Task(id string) (model.Task, error)
	AccumulateTime(id string, date time.Time, deltaSeconds int) (model.Task, error)
	CompleteWithFullCredit(id string, date time.Time) (model.Task, error)
	ResetTimeSpent(id string, date time.Time) (model.Task, error)
}

type Machine struct {
	ledger Ledger
	now    func() time.Time

	state          State
	taskID         string
	startRemaining int
	remaining      int
}

func NewMachine(ledger Ledger) *Machine {
	return NewMachineWithClock(ledger, time.Now)
}

func NewMachineWithClock(ledger Ledger, now func() time.Time) *Machine {
	return &Machine{ledger: ledger, now: now, state: StateIdle}
}

func (m *Machine) State() State   { return m.state }
func (m *Machine) TaskID() string { return m.taskID }

// Remaining is the countdown value in seconds; zero when idle.
func (m *Machine) Remaining() int {
	if m.state != StateRunning {
		return 0
	}
	return m.remaining
}

// Elapsed is the uncommitted time of the current run.
func (m *Machine) Elapsed() int {
	if m.state != StateRunning {
		return 0
	}
	return m.startRemaining - m.remaining
}

// Start begins a countdown for the task, resuming from whatever time
// is already logged today. A task fully logged for today is refused
// and nothing changes; a running session for another task stays
// running. Starting while another task runs force-commits that task
// first, as a pause would.
func (m *Machine) Start(taskID string) (StartResult, error) {
	if m.state == StateRunning && m.taskID == taskID {
		if err := m.Pause(); err != nil {
			return Refused, err
		}
	}

	task, err := m.ledger.Task(taskID)
	if err != nil {
		return Refused, err
	}
	today := m.now()
	remaining := task.DurationMinutes*60 - task.TimeSpent[model.DateKey(today)]
	if remaining <= 0 {
		return Refused, nil
	}

	if m.state == StateRunning {
		if err := m.Pause(); err != nil {
			return Refused, err
		}
	}

	m.state = StateRunning
	m.taskID = taskID
	m.startRemaining = remaining
	m.remaining = remaining
	return Started, nil
}

// Tick advances the countdown by one second. On expiry the task gets
// full nominal credit and today's completion mark: expiry always sets
// logged time to duration*60 outright, unlike pause, which commits
// only what elapsed.
func (m *Machine) Tick() (TickEvent, error) {
	if m.state != StateRunning {
		return TickIdle, nil
	}
	m.remaining--
	if m.remaining > 0 {
		return TickRunning, nil
	}

	taskID := m.taskID
	m.toIdle()
	if _, err := m.ledger.CompleteWithFullCredit(taskID, m.now()); err != nil {
		return TickExpired, err
	}
	return TickExpired, nil
}

// Pause commits the elapsed portion and returns to idle. Pause is an
// edge, not a durable state: there is nothing to resume except by
// calling Start again, which recomputes remaining from the ledger.
func (m *Machine) Pause() error {
	if m.state != StateRunning {
		return nil
	}
	taskID := m.taskID
	elapsed := m.Elapsed()
	m.toIdle()
	if elapsed <= 0 {
		return nil
	}
	_, err := m.ledger.AccumulateTime(taskID, m.now(), elapsed)
	return err
}

// Reset clears today's logged time for the task, committing first if
// that task is the one currently running. The updated task is
// returned so a chained Start can rely on the cleared value without
// re-reading state that may not have propagated yet.
func (m *Machine) Reset(taskID string) (model.Task, error) {
	if m.state == StateRunning && m.taskID == taskID {
		if err := m.Pause(); err != nil {
			return model.Task{}, err
		}
	}
	return m.ledger.ResetTimeSpent(taskID, m.now())
}

func (m *Machine) toIdle() {
	m.state = StateIdle
	m.taskID = ""
	m.startRemaining = 0
	m.remaining = 0
}
