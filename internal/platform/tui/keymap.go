package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "up", "k":
		return core.ActionUp, false
	case "s", "down", "j":
		return core.ActionDown, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// HeldKeys turns a stream of key presses into held-key state.
//
// Terminals report presses and auto-repeats but never releases, so an
// action counts as held until hold has passed since its last event.
// The hold should exceed the terminal's key repeat interval. Pressing a
// direction releases the opposite one at once.
type HeldKeys struct {
	hold time.Duration
	last map[core.Action]time.Time
}

// NewHeldKeys creates a tracker with the given hold window.
func NewHeldKeys(hold time.Duration) *HeldKeys {
	return &HeldKeys{
		hold: hold,
		last: make(map[core.Action]time.Time),
	}
}

// Press records a key event for a at time now.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	switch a {
	case core.ActionUp:
		delete(h.last, core.ActionDown)
	case core.ActionDown:
		delete(h.last, core.ActionUp)
	}
	h.last[a] = now
}

// Frame returns the actions still held at now and forgets expired ones.
func (h *HeldKeys) Frame(now time.Time) core.InputFrame {
	frame := core.NewInputFrame()
	for a, t := range h.last {
		if now.Sub(t) >= h.hold {
			delete(h.last, a)
			continue
		}
		frame.Set(a)
	}
	return frame
}

// Reset releases every key.
func (h *HeldKeys) Reset() {
	clear(h.last)
}
