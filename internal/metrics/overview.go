package metrics

import (
	"math"

	"github.com/wattr-labs/wattr-demo/internal/domain"
	"github.com/wattr-labs/wattr-demo/internal/mathx"
)

const (
	BandLow      = "Low Load"
	BandNormal   = "Normal Load"
	BandHigh     = "High Load"
	BandCritical = "Critical Load"
)

func LoadBand(workload float64) string {
	switch {
	case workload <= 50:
		return BandLow
	case workload <= 90:
		return BandNormal
	case workload <= 120:
		return BandHigh
	default:
		return BandCritical
	}
}

// Overview computes the live metrics shown next to the facility scene. These
// are unoptimised figures; AI burst adds 0.06 to PUE and drives the GPU
// cluster share.
func Overview(workload float64, aiBurst bool) domain.Overview {
	load := workload / MaxWorkload
	pue := 1.18 + load*0.12
	gpuShare := 0.5
	if aiBurst {
		pue += 0.06
		gpuShare = 1.3
	}

	return domain.Overview{
		PUE:        mathx.Fixed(pue, 2),
		PowerKW:    int(mathx.Round(180 + load*240)),
		ThermalKW:  int(mathx.Round(38 + load*22)),
		WaterLhr:   int(mathx.Round(12 + load*8)),
		ThermalHot: workload > 90,
		LoadBand:   LoadBand(workload),
		Distribution: []domain.LoadShare{
			{Label: "Server Hall A", Percent: math.Min(100, workload*0.7)},
			{Label: "Server Hall B", Percent: math.Min(100, workload*0.85)},
			{Label: "GPU Cluster", Percent: math.Min(100, workload*gpuShare)},
		},
	}
}
