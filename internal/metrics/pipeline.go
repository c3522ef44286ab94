package metrics

import "github.com/wattr-labs/wattr-demo/internal/domain"

var pipeline = []domain.PipelineStep{
	{
		Step:        1,
		ID:          "telemetry",
		Title:       "IT Telemetry",
		Subtitle:    "Real-time sensing",
		Description: "Continuous ingestion of rack-level power draw, CPU/GPU utilisation, network throughput, inlet/outlet temperatures, and PDU feeds across the entire estate.",
		Metrics:     []string{"<5ms latency", "4,000+ sensors", "99.99% uptime"},
	},
	{
		Step:        2,
		ID:          "forecast",
		Title:       "Forecast Engine",
		Subtitle:    "Predictive intelligence",
		Description: "Multi-horizon ML models predict workload demand, thermal gradients, and water consumption 6-72 hours ahead. Integrates weather, tariff, and calendar signals.",
		Metrics:     []string{"6-72hr horizon", "±2.1% MAPE", "Adaptive retraining"},
	},
	{
		Step:        3,
		ID:          "simulation",
		Title:       "Digital Simulation",
		Subtitle:    "What-if modelling",
		Description: "High-fidelity CFD-informed thermal model runs thousands of configuration scenarios per minute to find optimal cooling strategies before applying them.",
		Metrics:     []string{"1,000 sims/min", "CFD-validated", "Zero-risk testing"},
	},
	{
		Step:        4,
		ID:          "recommendations",
		Title:       "Recommendations",
		Subtitle:    "Decision support",
		Description: "Ranked action proposals with expected outcome, confidence intervals, and energy cost impact. Each recommendation is traceable and explainable.",
		Metrics:     []string{"Ranked actions", "Confidence scores", "Audit trail"},
	},
	{
		Step:        5,
		ID:          "control",
		Title:       "Control Interface",
		Subtitle:    "Closed-loop actuation",
		Description: "Wattr connects to BMS, CRAC units, and PDUs via standard protocols (BACnet, Modbus, SNMP). Actions can be automated or require human approval.",
		Metrics:     []string{"BACnet / Modbus", "Auto or manual", "Rollback safe"},
	},
}

var integrations = []domain.Integration{
	{Label: "BACnet", Description: "Building automation protocol"},
	{Label: "Modbus TCP", Description: "Industrial device comms"},
	{Label: "SNMP v3", Description: "Network management"},
	{Label: "DCIM APIs", Description: "Asset management"},
	{Label: "SCADA", Description: "Supervisory control"},
	{Label: "REST / MQTT", Description: "Modern IoT telemetry"},
}

// Pipeline returns a copy of the technology pipeline steps.
func Pipeline() []domain.PipelineStep {
	out := make([]domain.PipelineStep, len(pipeline))
	copy(out, pipeline)
	return out
}

func Integrations() []domain.Integration {
	out := make([]domain.Integration, len(integrations))
	copy(out, integrations)
	return out
}
