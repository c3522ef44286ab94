package metrics

import (
	"fmt"
	"strconv"

	"github.com/wattr-labs/wattr-demo/internal/domain"
)

// OverloadThreshold is the workload above which the overload alert fires.
const OverloadThreshold = 100.0

const (
	AlertOverload         = "a0"
	AlertThermalAnomaly   = "a1"
	AlertWaterCost        = "a2"
	AlertOptimiserOffline = "a3"
)

// Alerts returns the two standing alerts, preceded by an overload alert when
// workload exceeds 100 and followed by an optimiser-offline warning when
// optimisation is off.
func Alerts(enabled bool, workload float64) []domain.Alert {
	pick := func(on, off string) string {
		if enabled {
			return on
		}
		return off
	}

	alerts := make([]domain.Alert, 0, 4)
	if workload > OverloadThreshold {
		alerts = append(alerts, domain.Alert{
			ID:        AlertOverload,
			Severity:  domain.SeverityCritical,
			Title:     "Overload condition",
			Detail:    fmt.Sprintf("Workload at %s%%, exceeding nominal capacity", strconv.FormatFloat(workload, 'f', -1, 64)),
			Timestamp: "Just now",
			Action:    pick("Wattr shedding non-critical loads", "Immediate action required"),
		})
	}

	alerts = append(alerts,
		domain.Alert{
			ID:        AlertThermalAnomaly,
			Severity:  domain.SeverityWarning,
			Title:     "Thermal anomaly detected",
			Detail:    "Row C racks showing elevated temps, avg 41.2°C",
			Timestamp: "2 min ago",
			Action:    pick("Wattr rerouting coolant flow", "Manual intervention required"),
		},
		domain.Alert{
			ID:        AlertWaterCost,
			Severity:  domain.SeverityInfo,
			Title:     "Water cost index update",
			Detail:    "Tariff period shift at 18:00, cost index rising to 1.4",
			Timestamp: "8 min ago",
			Action:    pick("Pre-cooling scheduled automatically", ""),
		},
	)

	if !enabled {
		alerts = append(alerts, domain.Alert{
			ID:        AlertOptimiserOffline,
			Severity:  domain.SeverityWarning,
			Title:     "Wattr AI offline",
			Detail:    "Predictive cooling and load optimisation disabled",
			Timestamp: "Active",
		})
	}
	return alerts
}

func Recommendations(enabled bool) []domain.Recommendation {
	if enabled {
		return []domain.Recommendation{
			{Automated: true, Text: "Pre-cooling Row C scheduled for 17:45 ahead of tariff shift"},
			{Automated: true, Text: "Rebalancing workload across racks 14-22 to reduce delta-T"},
		}
	}
	return []domain.Recommendation{
		{Text: "Manual: Check Row C inlet temps before 17:00"},
		{Text: "Manual: Review water flow rate on CRAC unit 3"},
	}
}
