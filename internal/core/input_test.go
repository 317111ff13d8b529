package core

import "testing"

func TestInputFrameSetHas(t *testing.T) {
	var f InputFrame // zero value must be usable

	if f.Held(ActionUp) {
		t.Error("zero frame should not hold ActionUp")
	}

	f.Set(ActionUp)
	if !f.Has(ActionUp) || !f.Held(ActionUp) {
		t.Error("ActionUp should be held after Set")
	}
	if f.Held(ActionDown) {
		t.Error("ActionDown should not be held")
	}

	f.Clear()
	if f.Held(ActionUp) {
		t.Error("Clear should release all actions")
	}
}

func TestInputFrameClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionDown)

	c := f.Clone()
	f.Clear()

	if !c.Held(ActionDown) {
		t.Error("clone should not share storage with the original")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a        Action
		expected string
	}{
		{ActionUp, "Up"},
		{ActionDown, "Down"},
		{ActionPause, "Pause"},
		{Action(99), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.a.String(); got != tc.expected {
			t.Errorf("Action(%d).String() = %q, expected %q", tc.a, got, tc.expected)
		}
	}
}
