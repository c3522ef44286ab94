package service

import (
	"time"

	"github.com/wattr-labs/wattr-demo/internal/domain"
	"github.com/wattr-labs/wattr-demo/internal/facility"
	"github.com/wattr-labs/wattr-demo/internal/store"
)

type FacilityService struct {
	controls *store.Controls
	clock    func() time.Time
}

type RackView struct {
	Definition domain.RackDefinition `json:"definition"`
	State      domain.RackState      `json:"state"`
}

type FacilityView struct {
	Workload float64    `json:"workload"`
	Selected string     `json:"selected,omitempty"`
	Racks    []RackView `json:"racks"`
}

func (s *FacilityService) Racks(o Overrides) FacilityView {
	st := o.apply(s.controls.Snapshot())
	defs := facility.Racks()
	states := facility.EvaluateAll(st.Workload, st.SelectedRack)

	view := FacilityView{Workload: st.Workload, Selected: st.SelectedRack, Racks: make([]RackView, len(defs))}
	for i := range defs {
		view.Racks[i] = RackView{Definition: defs[i], State: states[i]}
	}
	return view
}

// Rack returns one evaluated rack or an error wrapping facility.ErrRackNotFound.
func (s *FacilityService) Rack(id string, o Overrides) (RackView, error) {
	def, err := facility.Lookup(id)
	if err != nil {
		return RackView{}, err
	}
	st := o.apply(s.controls.Snapshot())
	return RackView{
		Definition: def,
		State:      facility.Evaluate(def, st.Workload, st.SelectedRack == def.ID),
	}, nil
}

// Select toggles the selection of a known rack.
func (s *FacilityService) Select(id string) (store.State, error) {
	if _, err := facility.Lookup(id); err != nil {
		return s.controls.Snapshot(), err
	}
	return s.controls.ToggleRack(id), nil
}

func (s *FacilityService) Plant() []domain.PlantUnit {
	return facility.Plant(s.clock())
}
