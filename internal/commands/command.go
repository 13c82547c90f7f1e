// Package commands parses palette input into typed commands and
// dispatches them to configured handlers.
package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Type string

const (
	TypeAdd   Type = "add"
	TypeGoal  Type = "goal"
	TypeDone  Type = "done"
	TypeDel   Type = "del"
	TypeStart Type = "start"
	TypePause Type = "pause"
	TypeReset Type = "reset"
	TypeShow  Type = "show"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AddArgs carries a new task. Flag tokens (dur:, repeat:, date:,
// goal:) may appear anywhere; the rest of the words form the title.
type AddArgs struct {
	Title           string
	DurationMinutes int
	RepeatDays      []string
	Dates           []string
	Goal            string
}

type GoalArgs struct {
	Name          string
	TargetMinutes int
}

// TargetArgs names a task by list position or title prefix. The
// resolver lives with the handler, not the parser.
type TargetArgs struct {
	Target string
}

type ShowArgs struct {
	Subject string
	Date    string
}

type Command struct {
	Type  Type
	Raw   string
	Add   *AddArgs
	Goal  *GoalArgs
	Done  *TargetArgs
	Del   *TargetArgs
	Start *TargetArgs
	Reset *TargetArgs
	Show  *ShowArgs
}

var weekdayNames = map[string]string{
	"sun": "Sun", "mon": "Mon", "tue": "Tue", "wed": "Wed",
	"thu": "Thu", "fri": "Fri", "sat": "Sat",
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeGoal:
		return parseGoal(input, args)
	case TypeDone:
		return parseTarget(input, TypeDone, args)
	case TypeDel:
		return parseTarget(input, TypeDel, args)
	case TypeStart:
		return parseTarget(input, TypeStart, args)
	case TypePause:
		if len(args) != 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "pause takes no arguments"}
		}
		return Command{Type: TypePause, Raw: input}, nil
	case TypeReset:
		return parseTarget(input, TypeReset, args)
	case TypeShow:
		return parseShow(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{}
	var titleWords []string
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "dur:"):
			value := strings.TrimPrefix(lower, "dur:")
			minutes, err := strconv.Atoi(value)
			if err != nil || minutes <= 0 {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid duration: %s", value)}
			}
			out.DurationMinutes = minutes
		case strings.HasPrefix(lower, "repeat:"):
			value := strings.TrimPrefix(lower, "repeat:")
			for _, day := range strings.Split(value, ",") {
				canonical, ok := weekdayNames[strings.ToLower(strings.TrimSpace(day))]
				if !ok {
					return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid weekday: %s", day)}
				}
				out.RepeatDays = append(out.RepeatDays, canonical)
			}
		case strings.HasPrefix(lower, "date:"):
			value := strings.TrimPrefix(lower, "date:")
			if _, err := time.Parse("2006-01-02", value); err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid date: %s", value)}
			}
			out.Dates = append(out.Dates, value)
		case strings.HasPrefix(lower, "goal:"):
			out.Goal = arg[len("goal:"):]
		default:
			titleWords = append(titleWords, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(titleWords, " "))
	if out.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseGoal(raw string, args []string) (Command, error) {
	out := GoalArgs{}
	var nameWords []string
	for _, arg := range args {
		lower := strings.ToLower(arg)
		if strings.HasPrefix(lower, "target:") {
			value := strings.TrimPrefix(lower, "target:")
			minutes, err := strconv.Atoi(value)
			if err != nil || minutes <= 0 {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid target: %s", value)}
			}
			out.TargetMinutes = minutes
			continue
		}
		nameWords = append(nameWords, arg)
	}
	out.Name = strings.TrimSpace(strings.Join(nameWords, " "))
	if out.Name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goal requires a name"}
	}
	if out.TargetMinutes == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goal requires target:<minutes>"}
	}
	return Command{Type: TypeGoal, Raw: raw, Goal: &out}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task", typ)}
	}
	target := TargetArgs{Target: strings.TrimSpace(strings.Join(args, " "))}
	cmd := Command{Type: typ, Raw: raw}
	switch typ {
	case TypeDone:
		cmd.Done = &target
	case TypeDel:
		cmd.Del = &target
	case TypeStart:
		cmd.Start = &target
	case TypeReset:
		cmd.Reset = &target
	}
	return cmd, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a subject"}
	}
	subject := strings.ToLower(args[0])
	switch subject {
	case "day", "calendar", "goals", "stats", "focus":
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown subject: %s", subject)}
	}
	out := ShowArgs{Subject: subject}
	if len(args) > 1 {
		if subject != "day" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no date", subject)}
		}
		value := args[1]
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid date: %s", value)}
		}
		out.Date = value
	}
	return Command{Type: TypeShow, Raw: raw, Show: &out}, nil
}
