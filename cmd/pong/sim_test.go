package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func testSimOptions(format string) simOptions {
	return simOptions{
		Ticks:  2000,
		Width:  1280,
		Height: 768,
		DT:     10 * time.Millisecond,
		Format: format,
	}
}

func TestSimulateIsDeterministic(t *testing.T) {
	a, err := simulate(testSimOptions("text"))
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	b, err := simulate(testSimOptions("text"))
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if a.Hash != b.Hash {
		t.Errorf("hash differs between runs: %s vs %s", a.Hash, b.Hash)
	}
	if a.Final.Tick != 2000 {
		t.Errorf("final tick = %d, want 2000", a.Final.Tick)
	}
	if got := a.Final.Score.Player + a.Final.Score.AI; got != len(a.Points) {
		t.Errorf("score total %d does not match %d recorded points", got, len(a.Points))
	}
}

func TestSimulateZeroTicks(t *testing.T) {
	opts := testSimOptions("text")
	opts.Ticks = 0
	r, err := simulate(opts)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if r.Final.BallX != 0 || r.Final.BallY != 0 {
		t.Errorf("ball at (%g, %g), want origin", r.Final.BallX, r.Final.BallY)
	}
	if r.Final.BallVX != 6 || r.Final.BallVY != 6 {
		t.Errorf("ball velocity (%g, %g), want (6, 6)", r.Final.BallVX, r.Final.BallVY)
	}
	if len(r.Points) != 0 {
		t.Errorf("points = %d, want 0", len(r.Points))
	}
}

func TestSimulateRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*simOptions)
	}{
		{"negative ticks", func(o *simOptions) { o.Ticks = -1 }},
		{"zero width", func(o *simOptions) { o.Width = 0 }},
		{"negative height", func(o *simOptions) { o.Height = -5 }},
		{"zero dt", func(o *simOptions) { o.DT = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testSimOptions("text")
			tt.mutate(&opts)
			if _, err := simulate(opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunSimText(t *testing.T) {
	var buf bytes.Buffer
	if err := runSim(&buf, testSimOptions("text")); err != nil {
		t.Fatalf("runSim: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Window:     1280x768", "Ticks:      2000", "Hash:       "} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunSimYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := runSim(&buf, testSimOptions("yaml")); err != nil {
		t.Fatalf("runSim: %v", err)
	}

	var got simReport
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid yaml: %v\n%s", err, buf.String())
	}
	want, err := simulate(testSimOptions("yaml"))
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if got.Hash != want.Hash {
		t.Errorf("hash = %s, want %s", got.Hash, want.Hash)
	}
	if got.Final.Tick != 2000 {
		t.Errorf("final tick = %d, want 2000", got.Final.Tick)
	}
	if len(got.Points) != len(want.Points) {
		t.Errorf("points = %d, want %d", len(got.Points), len(want.Points))
	}
}

func TestRunSimUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := runSim(&buf, testSimOptions("json")); err == nil {
		t.Error("expected error for unknown format")
	}
}
