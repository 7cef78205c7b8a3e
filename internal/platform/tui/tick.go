// Package tui provides the Bubble Tea front-end for Carrot Jump.
// It handles the terminal UI loop, input mapping and the scoreboard.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one simulation tick. Gen is the run generation the
// tick chain was started for; ticks from an older chain are dropped.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

// tickCmd schedules the next tick of the chain tagged gen.
func tickCmd(interval time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
