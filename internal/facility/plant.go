package facility

import (
	"fmt"
	"time"

	"github.com/ANIKETSHETTY47/energy-grid-analytics-go/maintenance"

	"github.com/wattr-labs/wattr-demo/internal/domain"
)

const (
	ZoneCooling = "Cooling"
	ZonePower   = "Power / UPS"

	KindCRAC = "crac"
	KindUPS  = "ups"
)

type plantSite struct {
	kind     string
	zone     string
	pos      domain.Vec3
	failRate float64
}

var plantSites = []plantSite{
	{KindCRAC, ZoneCooling, domain.Vec3{-23, 0, -12}, 0.35},
	{KindCRAC, ZoneCooling, domain.Vec3{-23, 0, -6}, 0.35},
	{KindCRAC, ZoneCooling, domain.Vec3{-23, 0, 0}, 0.35},
	{KindCRAC, ZoneCooling, domain.Vec3{-20, 0, -12}, 0.35},
	{KindCRAC, ZoneCooling, domain.Vec3{-20, 0, -6}, 0.35},
	{KindCRAC, ZoneCooling, domain.Vec3{-20, 0, 0}, 0.35},
	{KindUPS, ZonePower, domain.Vec3{28, 0, -15}, 0.2},
	{KindUPS, ZonePower, domain.Vec3{28, 0, -8}, 0.2},
	{KindUPS, ZonePower, domain.Vec3{28, 0, -1}, 0.2},
	{KindUPS, ZonePower, domain.Vec3{28, 0, 6}, 0.2},
}

// Plant lists the cooling and power units of the facility with a maintenance
// outlook. Service history is scripted: unit n was last serviced 40+55n days
// before now and has run 20 hours a day since commissioning two years ago.
func Plant(now time.Time) []domain.PlantUnit {
	units := make([]domain.PlantUnit, 0, len(plantSites))
	counts := map[string]int{}
	for i, s := range plantSites {
		counts[s.kind]++
		health := maintenance.AssetHealth{
			HoursRun:           2 * 365 * 20,
			FailureRatePerYear: s.failRate,
			LastService:        now.Add(-time.Duration(40+55*i) * 24 * time.Hour),
			ServiceInterval:    365 * 24 * time.Hour,
		}
		risk30 := maintenance.FailureRisk(health.FailureRatePerYear, 30*24*time.Hour)
		risk90 := maintenance.FailureRisk(health.FailureRatePerYear, 90*24*time.Hour)
		next := maintenance.NextServiceDate(health)

		units = append(units, domain.PlantUnit{
			ID:                fmt.Sprintf("%s-%d", s.kind, counts[s.kind]),
			Kind:              s.kind,
			Zone:              s.zone,
			Position:          s.pos,
			HoursRun:          health.HoursRun,
			FailureRisk30Days: risk30 * 100,
			FailureRisk90Days: risk90 * 100,
			NextServiceDate:   next.Format("2006-01-02"),
			Recommendation:    serviceAdvice(risk30, next.Sub(now)),
		})
	}
	return units
}

func serviceAdvice(risk float64, untilService time.Duration) string {
	switch {
	case risk > 0.5 || untilService < 0:
		return "Schedule immediate maintenance inspection"
	case risk > 0.3 || untilService < 30*24*time.Hour:
		return "Schedule maintenance within next 30 days"
	case risk > 0.15 || untilService < 90*24*time.Hour:
		return "Plan maintenance within next 90 days"
	}
	return "Operating normally"
}
