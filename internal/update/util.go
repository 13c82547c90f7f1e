package update

import (
	"fmt"
	"strings"
)

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// formatDuration prints ledger seconds as a clock. Goal targets run
// into hours, so anything past 59:59 carries an hour field.
func formatDuration(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	hr := totalSec / 3600
	min := totalSec % 3600 / 60
	sec := totalSec % 60
	if hr > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hr, min, sec)
	}
	return fmt.Sprintf("%02d:%02d", min, sec)
}

func progressBar(fraction float64, width int) string {
	switch {
	case fraction < 0:
		fraction = 0
	case fraction > 1:
		fraction = 1
	}
	filled := int(fraction*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(".", width-filled) + "]"
}
