package service

import (
	"github.com/wattr-labs/wattr-demo/internal/domain"
	"github.com/wattr-labs/wattr-demo/internal/metrics"
	"github.com/wattr-labs/wattr-demo/internal/store"
)

// DashboardService recomputes dashboard panels from the live controls on
// every call; nothing is cached.
type DashboardService struct {
	controls *store.Controls
	synth    *metrics.Synthesiser
}

func (s *DashboardService) state(o Overrides) store.State {
	return o.apply(s.controls.Snapshot())
}

func (s *DashboardService) Snapshot(o Overrides) domain.Snapshot {
	st := s.state(o)
	return s.synth.Snapshot(metrics.Inputs{
		Workload:       st.Workload,
		Optimisation:   st.Optimisation,
		WaterCostIndex: st.WaterCostIndex,
	})
}

func (s *DashboardService) TimeSeries(o Overrides) []domain.TimePoint {
	st := s.state(o)
	return s.synth.TimeSeries(st.Optimisation, st.Workload)
}

type GridView struct {
	Racks   []domain.GridRack  `json:"racks"`
	Summary domain.GridSummary `json:"summary"`
}

func (s *DashboardService) Grid(o Overrides) GridView {
	racks := s.synth.RackGrid(s.state(o).Workload)
	return GridView{Racks: racks, Summary: metrics.Summarise(racks)}
}

func (s *DashboardService) KPIs(o Overrides) []domain.KPI {
	st := s.state(o)
	return metrics.KPIs(st.Optimisation, st.Workload)
}

type AlertsView struct {
	Alerts          []domain.Alert          `json:"alerts"`
	Recommendations []domain.Recommendation `json:"recommendations"`
}

func (s *DashboardService) Alerts(o Overrides) AlertsView {
	st := s.state(o)
	return AlertsView{
		Alerts:          metrics.Alerts(st.Optimisation, st.Workload),
		Recommendations: metrics.Recommendations(st.Optimisation),
	}
}

func (s *DashboardService) Overview(o Overrides) domain.Overview {
	st := s.state(o)
	return metrics.Overview(st.Workload, st.AIBurst)
}

type PipelineView struct {
	Steps        []domain.PipelineStep `json:"steps"`
	Integrations []domain.Integration  `json:"integrations"`
}

func (s *DashboardService) Pipeline() PipelineView {
	return PipelineView{Steps: metrics.Pipeline(), Integrations: metrics.Integrations()}
}
