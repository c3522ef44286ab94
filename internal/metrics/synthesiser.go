// Package metrics synthesises the operations-centre data: forecast series,
// the rack grid, KPIs, alerts and recommendations. Every value is generated
// from the workload and optimisation controls plus injected noise.
package metrics

import (
	"math"
	"math/rand"
	"time"

	"github.com/wattr-labs/wattr-demo/internal/domain"
	"github.com/wattr-labs/wattr-demo/internal/mathx"
)

// Source yields uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Noise amplitudes of the forecast series.
const (
	ThermalNoise = 2.0
	WaterNoise   = 0.6
	PowerNoise   = 2.5

	// OptimisedFactor scales forecast load while optimisation is on.
	OptimisedFactor = 0.78

	forecastPoints = 7
)

type Synthesiser struct {
	Noise Source
	Clock func() time.Time
}

// NewSynthesiser uses the process-wide random generator, which is safe for
// concurrent use, and the wall clock.
func NewSynthesiser() *Synthesiser {
	return &Synthesiser{Noise: globalSource{}, Clock: time.Now}
}

// jitter returns a uniform value in [-amp, amp).
func (s *Synthesiser) jitter(amp float64) float64 {
	return (s.Noise.Float64() - 0.5) * 2 * amp
}

func efficiency(enabled bool) float64 {
	if enabled {
		return OptimisedFactor
	}
	return 1
}

// Diurnal is the daily load curve: 0.7 at midnight, 1.0 at noon.
func Diurnal(hour int) float64 {
	return math.Sin(float64(hour)/24*math.Pi*2-math.Pi/2)*0.15 + 0.85
}

// ThermalBaseline is the noise-free thermal value of a forecast point.
func ThermalBaseline(hour int, enabled bool, workload float64) float64 {
	return 38 * Diurnal(hour) * (workload / 100) * efficiency(enabled)
}

// SeriesStart is the time of the first forecast point: one hour before now.
func (s *Synthesiser) SeriesStart() time.Time {
	return s.Clock().Add(-time.Hour)
}

// TimeSeries returns one point per hour from an hour ago to five hours ahead.
func (s *Synthesiser) TimeSeries(enabled bool, workload float64) []domain.TimePoint {
	return s.timeSeriesFrom(s.SeriesStart(), enabled, workload)
}

func (s *Synthesiser) timeSeriesFrom(start time.Time, enabled bool, workload float64) []domain.TimePoint {
	factor := efficiency(enabled)
	load := workload / 100
	points := make([]domain.TimePoint, 0, forecastPoints)

	for i := 0; i < forecastPoints; i++ {
		t := start.Add(time.Duration(i) * time.Hour)
		diurnal := Diurnal(t.Hour())
		points = append(points, domain.TimePoint{
			Time:    t.Format("15:04"),
			Thermal: mathx.Round1(38*diurnal*load*factor + s.jitter(ThermalNoise)),
			Water:   mathx.Round1(12*diurnal*load*factor + s.jitter(WaterNoise)),
			Power:   mathx.Round(mathx.Lerp(180, 420, load)*factor + s.jitter(PowerNoise)),
		})
	}
	return points
}
