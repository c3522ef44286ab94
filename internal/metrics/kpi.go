package metrics

import (
	"strconv"

	"github.com/wattr-labs/wattr-demo/internal/domain"
	"github.com/wattr-labs/wattr-demo/internal/mathx"
)

// MaxWorkload is the top of the workload control.
const MaxWorkload = 150.0

func KPIs(enabled bool, workload float64) []domain.KPI {
	load := workload / MaxWorkload

	var pue, wue float64
	thermal := 38 + load*22
	water := 12 + load*8
	if enabled {
		pue = 1.18 + load*0.12
		wue = 0.28 + load*0.08
		thermal *= 0.78
		water *= 0.72
	} else {
		pue = 1.42 + load*0.18
		wue = 0.51 + load*0.14
	}

	delta := func(saving string) string {
		if enabled {
			return saving
		}
		return "+0%"
	}

	return []domain.KPI{
		{Label: "PUE", Value: mathx.Fixed(pue, 2), Delta: delta("-17%"), Positive: enabled},
		{Label: "WUE", Value: mathx.Fixed(wue, 2), Delta: delta("-45%"), Positive: enabled},
		{Label: "Thermal Load", Value: strconv.Itoa(int(mathx.Round(thermal))), Unit: "kW", Delta: delta("-22%"), Positive: enabled},
		{Label: "Water Draw", Value: strconv.Itoa(int(mathx.Round(water))), Unit: "L/hr", Delta: delta("-28%"), Positive: enabled},
	}
}
