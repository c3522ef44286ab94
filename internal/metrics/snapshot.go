package metrics

import "github.com/wattr-labs/wattr-demo/internal/domain"

// Inputs are the controls a dashboard snapshot depends on.
type Inputs struct {
	Workload       float64
	Optimisation   bool
	WaterCostIndex float64
}

// Snapshot recomputes every dashboard panel for in.
func (s *Synthesiser) Snapshot(in Inputs) domain.Snapshot {
	start := s.SeriesStart()
	series := s.timeSeriesFrom(start, in.Optimisation, in.Workload)
	racks := s.RackGrid(in.Workload)

	return domain.Snapshot{
		Workload:        in.Workload,
		Optimisation:    in.Optimisation,
		TimeSeries:      series,
		Racks:           racks,
		Summary:         Summarise(racks),
		KPIs:            KPIs(in.Optimisation, in.Workload),
		Alerts:          Alerts(in.Optimisation, in.Workload),
		Recommendations: Recommendations(in.Optimisation),
		Forecast:        Forecast(series, start, in.WaterCostIndex),
	}
}
