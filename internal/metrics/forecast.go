package metrics

import (
	"time"

	"github.com/ANIKETSHETTY47/energy-grid-analytics-go/aggregator"
	"github.com/ANIKETSHETTY47/energy-grid-analytics-go/converter"

	"github.com/wattr-labs/wattr-demo/internal/domain"
)

// BaseTariff is the energy price per kWh at a water cost index of 1.0.
const BaseTariff = 0.20

const smoothingWindow = 3

// PeakHour reports whether an hour falls in the evening tariff period.
func PeakHour(hour int) bool { return hour >= 17 && hour < 21 }

// Forecast aggregates a series whose first point is at start and whose points
// are an hour apart. Each point's power is treated as the mean draw over its
// hour. The tariff scales with costIndex.
func Forecast(points []domain.TimePoint, start time.Time, costIndex float64) domain.ForecastSummary {
	if len(points) == 0 {
		return domain.ForecastSummary{}
	}

	thermal := make([]aggregator.Point, len(points))
	power := make([]aggregator.Point, len(points))
	water := make([]aggregator.Point, len(points))
	conv := &converter.EnergyConverter{}

	var cost, peak float64
	for i, p := range points {
		ts := start.Add(time.Duration(i) * time.Hour)
		thermal[i] = aggregator.Point{Value: p.Thermal, Timestamp: ts}
		power[i] = aggregator.Point{Value: p.Power, Timestamp: ts}
		water[i] = aggregator.Point{Value: p.Water, Timestamp: ts}

		tier := "offpeak"
		if PeakHour(ts.Hour()) {
			tier = "peak"
		}
		cost += conv.CalculateCost(p.Power, BaseTariff*costIndex, tier)
		if i == 0 || p.Thermal > peak {
			peak = p.Thermal
		}
	}

	energy := aggregator.Sum(power)
	return domain.ForecastSummary{
		AverageThermalKW: aggregator.Average(thermal),
		PeakThermalKW:    peak,
		SmoothedThermal:  aggregator.MovingAverage(thermal, smoothingWindow),
		EnergyKWh:        energy,
		EnergyMWh:        conv.KWhToMWh(energy),
		EstimatedCost:    cost,
		WaterLitres:      aggregator.Sum(water),
	}
}
