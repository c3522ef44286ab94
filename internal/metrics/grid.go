package metrics

import (
	"fmt"
	"math"

	"github.com/wattr-labs/wattr-demo/internal/domain"
	"github.com/wattr-labs/wattr-demo/internal/mathx"
)

const (
	GridRows    = 5
	GridColumns = 8

	// OfflineRack is held offline for the scripted demo.
	OfflineRack = 14

	gridJitter = 15.0
	tempJitter = 2.0
)

// GridStatus applies the grid thresholds, which differ from the 3D view.
func GridStatus(util float64) domain.RackStatus {
	switch {
	case util > 90:
		return domain.StatusCritical
	case util > 75:
		return domain.StatusWarn
	default:
		return domain.StatusOK
	}
}

// RackGrid scatters 40 racks around the workload. Utilisation is capped at
// 100 but not floored before status and temperature are derived; only the
// reported utilisation is clamped to [0, 100].
func (s *Synthesiser) RackGrid(workload float64) []domain.GridRack {
	racks := make([]domain.GridRack, 0, GridRows*GridColumns)
	for r := 0; r < GridRows; r++ {
		for c := 0; c < GridColumns; c++ {
			idx := r*GridColumns + c
			base := math.Min(100, workload+s.jitter(gridJitter))

			status := GridStatus(base)
			if idx == OfflineRack {
				status = domain.StatusOffline
			}
			temp := 18 + base/100*25 + s.jitter(tempJitter)

			racks = append(racks, domain.GridRack{
				ID:          fmt.Sprintf("rack-%02d-%02d", r+1, c+1),
				Label:       fmt.Sprintf("R%dC%d", r+1, c+1),
				Status:      status,
				Utilisation: int(mathx.Round(mathx.Clamp(base, 0, 100))),
				Temperature: mathx.Round1(temp),
			})
		}
	}
	return racks
}

func Summarise(racks []domain.GridRack) domain.GridSummary {
	var sum domain.GridSummary
	for _, r := range racks {
		switch r.Status {
		case domain.StatusOK:
			sum.OK++
		case domain.StatusWarn:
			sum.Warn++
		case domain.StatusCritical:
			sum.Critical++
		case domain.StatusOffline:
			sum.Offline++
		}
	}
	return sum
}
