// Package tui provides the Bubble Tea front end for pong: the local
// terminal loop, key hold tracking, match history screens and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg advances the match identified by Match by one simulation tick.
type TickMsg struct {
	Time  time.Time
	Match uint64
}

var lastMatchID atomic.Uint64

// nextMatchID hands out a fresh id for each game model, so a tick chain
// left over from a previous match can be told apart and dropped.
func nextMatchID() uint64 {
	return lastMatchID.Add(1)
}

// tickCmd schedules the next tick of match at tickRate ticks per second.
func tickCmd(tickRate int, match uint64) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Match: match}
	})
}
