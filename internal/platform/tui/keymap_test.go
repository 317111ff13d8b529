package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"w", runeKey('w'), core.ActionUp, false},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"s", runeKey('s'), core.ActionDown, false},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('x'), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey(%s) = %v, %v; expected %v, %v", tc.name, action, quit, tc.action, tc.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('b'), MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('z'), MenuActionNone},
	}

	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.expected {
			t.Errorf("MapKeyToMenuAction(%s) = %v, expected %v", tc.msg.String(), got, tc.expected)
		}
	}
}

func TestHeldKeysExpire(t *testing.T) {
	h := NewHeldKeys(200 * time.Millisecond)
	start := time.Unix(1000, 0)

	h.Press(core.ActionUp, start)

	if !h.Frame(start.Add(100 * time.Millisecond)).Has(core.ActionUp) {
		t.Error("key should still be held within the hold window")
	}
	if h.Frame(start.Add(200 * time.Millisecond)).Has(core.ActionUp) {
		t.Error("key should be released once the hold window has passed")
	}
	if h.Frame(start.Add(150 * time.Millisecond)).Has(core.ActionUp) {
		t.Error("an expired key must stay released")
	}
}

func TestHeldKeysRepeatExtendsHold(t *testing.T) {
	h := NewHeldKeys(200 * time.Millisecond)
	start := time.Unix(1000, 0)

	for i := 0; i < 10; i++ {
		h.Press(core.ActionDown, start.Add(time.Duration(i)*50*time.Millisecond))
	}

	if !h.Frame(start.Add(600 * time.Millisecond)).Has(core.ActionDown) {
		t.Error("auto-repeat should keep the key held")
	}
}

func TestHeldKeysOppositeDirectionReleases(t *testing.T) {
	h := NewHeldKeys(200 * time.Millisecond)
	start := time.Unix(1000, 0)

	h.Press(core.ActionUp, start)
	h.Press(core.ActionDown, start.Add(10*time.Millisecond))

	frame := h.Frame(start.Add(20 * time.Millisecond))
	if frame.Has(core.ActionUp) || !frame.Has(core.ActionDown) {
		t.Errorf("expected only Down held, got %v", frame.Actions)
	}
}

func TestHeldKeysReset(t *testing.T) {
	h := NewHeldKeys(time.Second)
	now := time.Unix(1000, 0)
	h.Press(core.ActionUp, now)

	h.Reset()

	if h.Frame(now).Has(core.ActionUp) {
		t.Error("Reset should release every key")
	}
}
