// Package tui drives faststack in the terminal with Bubble Tea.
// It maps terminal keys to virtual keys, paces engine ticks, draws the
// playfield and hosts the same screens over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a batch of engine ticks.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that fires after ticks engine ticks of
// msPerTick milliseconds each.
func tickCmd(msPerTick, ticks int) tea.Cmd {
	interval := time.Duration(msPerTick*max(ticks, 1)) * time.Millisecond
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
