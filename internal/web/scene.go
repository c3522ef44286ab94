package web

import (
	"sync"
	"time"

	"github.com/wattr-labs/wattr-demo/internal/facility"
	"github.com/wattr-labs/wattr-demo/internal/service"
)

// SceneRack is the eased appearance of one rack in a scene frame.
type SceneRack struct {
	ID string `json:"id"`
	facility.VisualState
}

// Scene eases every rack towards its target once per Step. Targets come
// from the last facility view handed to SetView.
type Scene struct {
	mu      sync.Mutex
	view    service.FacilityView
	visuals map[string]facility.VisualState
	hovered string
	started time.Time
	last    time.Time
}

func NewScene(now time.Time) *Scene {
	return &Scene{visuals: make(map[string]facility.VisualState), started: now, last: now}
}

func (s *Scene) SetView(v service.FacilityView) {
	s.mu.Lock()
	s.view = v
	s.mu.Unlock()
}

// Hover marks id as under the pointer; an empty id clears it.
func (s *Scene) Hover(id string) {
	s.mu.Lock()
	s.hovered = id
	s.mu.Unlock()
}

func (s *Scene) Step(now time.Time) []SceneRack {
	s.mu.Lock()
	defer s.mu.Unlock()

	dt := now.Sub(s.last)
	s.last = now
	elapsed := now.Sub(s.started)

	out := make([]SceneRack, 0, len(s.view.Racks))
	for _, rv := range s.view.Racks {
		util := facility.EffectiveUtilisation(rv.Definition.BaseUtilisation, s.view.Workload)
		tgt := facility.TargetFor(util, rv.Definition.ID == s.view.Selected, rv.Definition.ID == s.hovered)

		cur, ok := s.visuals[rv.Definition.ID]
		if !ok {
			cur = facility.InitialVisual(util)
		}
		cur = facility.Ease(cur, tgt, dt, elapsed)
		s.visuals[rv.Definition.ID] = cur
		out = append(out, SceneRack{ID: rv.Definition.ID, VisualState: cur})
	}
	return out
}
