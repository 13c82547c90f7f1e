package commands

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add read a chapter dur:30 repeat:mon,thu", TypeAdd},
		{"goal Learn Spanish target:600", TypeGoal},
		{"done 2", TypeDone},
		{"del read a chapter", TypeDel},
		{"start 1", TypeStart},
		{"/pause", TypePause},
		{"reset 1", TypeReset},
		{"show stats", TypeShow},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddCollectsFlags(t *testing.T) {
	cmd, err := Parse("add morning pages dur:25 repeat:Mon,wed date:2026-03-14 goal:writing")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := AddArgs{
		Title:           "morning pages",
		DurationMinutes: 25,
		RepeatDays:      []string{"Mon", "Wed"},
		Dates:           []string{"2026-03-14"},
		Goal:            "writing",
	}
	if !reflect.DeepEqual(*cmd.Add, want) {
		t.Fatalf("add args = %#v, want %#v", *cmd.Add, want)
	}
}

func TestParseAddRejectsBadFlags(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"no title", "add dur:25"},
		{"zero duration", "add reading dur:0"},
		{"bad weekday", "add reading repeat:funday"},
		{"bad date", "add reading date:14-03-2026"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.in)
			var ce *CommandError
			if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
				t.Fatalf("expected invalid argument error, got %v", err)
			}
		})
	}
}

func TestParseGoalRequiresTarget(t *testing.T) {
	_, err := Parse("goal Learn Spanish")
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid argument error, got %v", err)
	}

	cmd, err := Parse("goal Learn Spanish target:600")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Goal.Name != "Learn Spanish" || cmd.Goal.TargetMinutes != 600 {
		t.Fatalf("unexpected goal args: %#v", cmd.Goal)
	}
}

func TestParseShowSubjects(t *testing.T) {
	cmd, err := Parse("show day 2026-03-14")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Show.Subject != "day" || cmd.Show.Date != "2026-03-14" {
		t.Fatalf("unexpected show args: %#v", cmd.Show)
	}

	if _, err := Parse("show inbox"); err == nil {
		t.Fatal("expected error for unknown subject")
	}
	if _, err := Parse("show goals 2026-03-14"); err == nil {
		t.Fatal("expected error for date on non-day subject")
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "/", "/   "} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
			t.Fatalf("parse %q: expected empty input error, got %v", in, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/start deep work")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Start: func(a TargetArgs) (Result, error) {
			called = true
			if a.Target != "deep work" {
				t.Fatalf("unexpected target: %q", a.Target)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("handler not invoked properly: called=%v res=%#v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("pause")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected handler missing error, got %v", err)
	}
}
