package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pong/internal/core"
)

func TestRenderScreenKeepsLayout(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawTextCentered(0, "1 : 2", core.ColorBrightWhite)
	s.SetColored(3, 1, 'o', core.ColorRed)
	s.DrawTextColored(0, 2, "||", core.ColorGreen)
	s.DrawTextColored(10, 2, "||", core.ColorWhite)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 12 {
			t.Errorf("line %d width = %d, want 12", i, w)
		}
	}
	for _, want := range []string{"1 : 2", "o", "||"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderScreenUnknownColor(t *testing.T) {
	s := core.NewScreen(3, 1)
	s.SetColored(1, 0, '*', core.Color(200))

	out := RenderScreen(s)
	if lipgloss.Width(out) != 3 || !strings.Contains(out, "*") {
		t.Errorf("unknown color should fall back to plain text, got %q", out)
	}
}
