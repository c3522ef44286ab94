package store

import (
	"errors"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	c := New(Defaults())
	s := c.Snapshot()
	if s.Workload != 65 || s.AmbientTemp != 22 || s.WaterCostIndex != 1 {
		t.Errorf("numeric defaults %+v", s)
	}
	if !s.Optimisation || s.AIBurst || s.Scenario != ScenarioNormal || s.SelectedRack != "" {
		t.Errorf("flag defaults %+v", s)
	}
}

func TestSettersNotifySubscribers(t *testing.T) {
	c := New(Defaults())
	ch, cancel := c.Subscribe(4)
	defer cancel()

	c.SetWorkload(120)
	c.SetOptimisation(false)

	for _, want := range []func(State) bool{
		func(s State) bool { return s.Workload == 120 && s.Optimisation },
		func(s State) bool { return s.Workload == 120 && !s.Optimisation },
	} {
		select {
		case s := <-ch:
			if !want(s) {
				t.Errorf("unexpected state %+v", s)
			}
		case <-time.After(time.Second):
			t.Fatal("no notification")
		}
	}
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	c := New(Defaults())
	_, cancel := c.Subscribe(1)
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			c.SetWorkload(float64(i))
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("setter blocked on a full subscriber")
	}
}

func TestCancelClosesChannel(t *testing.T) {
	c := New(Defaults())
	ch, cancel := c.Subscribe(1)
	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed")
	}
	c.SetAIBurst(true)
}

func TestToggleRack(t *testing.T) {
	c := New(Defaults())
	if s := c.ToggleRack("A-03"); s.SelectedRack != "A-03" {
		t.Fatalf("select: %+v", s)
	}
	if s := c.ToggleRack("B-01"); s.SelectedRack != "B-01" {
		t.Fatalf("switch: %+v", s)
	}
	if s := c.ToggleRack("B-01"); s.SelectedRack != "" {
		t.Fatalf("deselect: %+v", s)
	}
	c.ToggleRack("A-03")
	if s := c.ClearSelection(); s.SelectedRack != "" {
		t.Fatalf("clear: %+v", s)
	}
}

func TestApply(t *testing.T) {
	c := New(Defaults())
	w, burst, sc := 140.0, true, "peak"
	s, err := c.Apply(Update{Workload: &w, AIBurst: &burst, Scenario: &sc})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if s.Workload != 140 || !s.AIBurst || s.Scenario != ScenarioPeak {
		t.Errorf("state %+v", s)
	}
	if s.AmbientTemp != 22 {
		t.Errorf("untouched field changed: %+v", s)
	}
}

func TestApplyRejectsUnknownScenario(t *testing.T) {
	c := New(Defaults())
	w, sc := 10.0, "meltdown"
	_, err := c.Apply(Update{Workload: &w, Scenario: &sc})
	if !errors.Is(err, ErrInvalidScenario) {
		t.Fatalf("expected ErrInvalidScenario, got %v", err)
	}
	if c.Snapshot().Workload != 65 {
		t.Fatal("rejected update must not be partially applied")
	}
}

func TestParseScenario(t *testing.T) {
	for _, s := range []string{"normal", "peak", "maintenance", "emergency"} {
		if _, err := ParseScenario(s); err != nil {
			t.Errorf("ParseScenario(%q): %v", s, err)
		}
	}
	if _, err := ParseScenario("Normal"); err == nil {
		t.Error("scenario names are case sensitive")
	}
}
