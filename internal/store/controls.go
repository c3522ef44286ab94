// Package store holds the live demo controls. A *Controls is created once by
// the host process and passed to every consumer; setters are the only way to
// change it and each change is broadcast to subscribers.
package store

import (
	"errors"
	"fmt"
	"sync"
)

type Scenario string

const (
	ScenarioNormal      Scenario = "normal"
	ScenarioPeak        Scenario = "peak"
	ScenarioMaintenance Scenario = "maintenance"
	ScenarioEmergency   Scenario = "emergency"
)

var ErrInvalidScenario = errors.New("invalid scenario")

func ParseScenario(s string) (Scenario, error) {
	switch sc := Scenario(s); sc {
	case ScenarioNormal, ScenarioPeak, ScenarioMaintenance, ScenarioEmergency:
		return sc, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidScenario, s)
}

// State is a point-in-time copy of the controls.
type State struct {
	Workload       float64  `json:"workload"`
	AmbientTemp    float64  `json:"ambient_temp"`
	WaterCostIndex float64  `json:"water_cost_index"`
	AIBurst        bool     `json:"ai_burst"`
	Optimisation   bool     `json:"optimisation"`
	Scenario       Scenario `json:"scenario"`
	SelectedRack   string   `json:"selected_rack,omitempty"`
}

func Defaults() State {
	return State{
		Workload:       65,
		AmbientTemp:    22,
		WaterCostIndex: 1.0,
		Optimisation:   true,
		Scenario:       ScenarioNormal,
	}
}

// Update is a partial change; nil fields are left untouched.
type Update struct {
	Workload       *float64 `json:"workload,omitempty" validate:"omitempty,gte=0,lte=150"`
	AmbientTemp    *float64 `json:"ambient_temp,omitempty" validate:"omitempty,gte=15,lte=40"`
	WaterCostIndex *float64 `json:"water_cost_index,omitempty" validate:"omitempty,gte=0,lte=5"`
	AIBurst        *bool    `json:"ai_burst,omitempty"`
	Optimisation   *bool    `json:"optimisation,omitempty"`
	Scenario       *string  `json:"scenario,omitempty" validate:"omitempty,oneof=normal peak maintenance emergency"`
}

type Controls struct {
	mu    sync.RWMutex
	state State
	subs  map[chan State]struct{}
}

func New(initial State) *Controls {
	return &Controls{state: initial, subs: make(map[chan State]struct{})}
}

func (c *Controls) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Subscribe returns a channel that receives the state after every change and
// a function that cancels the subscription. Slow subscribers miss updates
// rather than block setters.
func (c *Controls) Subscribe(buffer int) (<-chan State, func()) {
	ch := make(chan State, buffer)
	c.mu.Lock()
	c.subs[ch] = struct{}{}
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, ch)
			c.mu.Unlock()
			close(ch)
		})
	}
}

func (c *Controls) mutate(fn func(*State)) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
	s := c.state
	for ch := range c.subs {
		select {
		case ch <- s:
		default:
		}
	}
	return s
}

func (c *Controls) SetWorkload(v float64) State {
	return c.mutate(func(s *State) { s.Workload = v })
}

func (c *Controls) SetAmbientTemp(v float64) State {
	return c.mutate(func(s *State) { s.AmbientTemp = v })
}

func (c *Controls) SetWaterCostIndex(v float64) State {
	return c.mutate(func(s *State) { s.WaterCostIndex = v })
}

func (c *Controls) SetAIBurst(v bool) State {
	return c.mutate(func(s *State) { s.AIBurst = v })
}

func (c *Controls) SetOptimisation(v bool) State {
	return c.mutate(func(s *State) { s.Optimisation = v })
}

func (c *Controls) SetScenario(v Scenario) State {
	return c.mutate(func(s *State) { s.Scenario = v })
}

// ToggleRack selects id, or clears the selection if id is already selected.
func (c *Controls) ToggleRack(id string) State {
	return c.mutate(func(s *State) {
		if s.SelectedRack == id {
			s.SelectedRack = ""
			return
		}
		s.SelectedRack = id
	})
}

func (c *Controls) ClearSelection() State {
	return c.mutate(func(s *State) { s.SelectedRack = "" })
}

// Apply merges u in a single change. Range checks are the caller's job; the
// scenario is parsed here since State only holds known scenarios.
func (c *Controls) Apply(u Update) (State, error) {
	var sc Scenario
	if u.Scenario != nil {
		var err error
		if sc, err = ParseScenario(*u.Scenario); err != nil {
			return c.Snapshot(), err
		}
	}
	return c.mutate(func(s *State) {
		if u.Workload != nil {
			s.Workload = *u.Workload
		}
		if u.AmbientTemp != nil {
			s.AmbientTemp = *u.AmbientTemp
		}
		if u.WaterCostIndex != nil {
			s.WaterCostIndex = *u.WaterCostIndex
		}
		if u.AIBurst != nil {
			s.AIBurst = *u.AIBurst
		}
		if u.Optimisation != nil {
			s.Optimisation = *u.Optimisation
		}
		if u.Scenario != nil {
			s.Scenario = sc
		}
	}), nil
}
