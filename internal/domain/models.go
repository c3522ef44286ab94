package domain

type Vec3 [3]float64

type RackStatus string

const (
	StatusOK       RackStatus = "ok"
	StatusWarn     RackStatus = "warn"
	StatusCritical RackStatus = "critical"
	StatusOffline  RackStatus = "offline"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// RackDefinition is one rack of the visualised floor plan.
type RackDefinition struct {
	ID              string `json:"id"`
	Label           string `json:"label"`
	Zone            string `json:"zone"`
	Position        Vec3   `json:"position"`
	BaseUtilisation int    `json:"base_utilisation"`
}

// RGB channels are in [0, 1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// RackState is a RackDefinition evaluated against the live workload.
type RackState struct {
	ID          string     `json:"id"`
	Label       string     `json:"label"`
	Zone        string     `json:"zone"`
	Utilisation int        `json:"utilisation"`
	Temperature float64    `json:"temp"`
	Power       float64    `json:"power"`
	Status      RackStatus `json:"status"`
	Selected    bool       `json:"selected"`
	Colour      RGB        `json:"colour"`
	Emissive    float64    `json:"emissive"`
}

type TimePoint struct {
	Time    string  `json:"time"`
	Thermal float64 `json:"thermal"`
	Water   float64 `json:"water"`
	Power   float64 `json:"power"`
}

// GridRack is a tile of the operations-centre rack grid.
type GridRack struct {
	ID          string     `json:"id"`
	Label       string     `json:"label"`
	Status      RackStatus `json:"status"`
	Utilisation int        `json:"utilization"`
	Temperature float64    `json:"temp"`
}

type GridSummary struct {
	OK       int `json:"ok"`
	Warn     int `json:"warn"`
	Critical int `json:"critical"`
	Offline  int `json:"offline"`
}

type Alert struct {
	ID        string   `json:"id"`
	Severity  Severity `json:"severity"`
	Title     string   `json:"title"`
	Detail    string   `json:"detail"`
	Timestamp string   `json:"timestamp"`
	Action    string   `json:"action,omitempty"`
}

type KPI struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Delta    string `json:"delta"`
	Positive bool   `json:"positive"`
	Unit     string `json:"unit,omitempty"`
}

type Recommendation struct {
	Automated bool   `json:"automated"`
	Text      string `json:"text"`
}

// ForecastSummary aggregates a time series.
type ForecastSummary struct {
	AverageThermalKW float64   `json:"average_thermal_kw"`
	PeakThermalKW    float64   `json:"peak_thermal_kw"`
	SmoothedThermal  []float64 `json:"smoothed_thermal"`
	EnergyKWh        float64   `json:"energy_kwh"`
	EnergyMWh        float64   `json:"energy_mwh"`
	EstimatedCost    float64   `json:"estimated_cost"`
	WaterLitres      float64   `json:"water_litres"`
}

// Snapshot is everything the operations dashboard renders for one set of controls.
type Snapshot struct {
	Workload        float64          `json:"workload"`
	Optimisation    bool             `json:"optimisation"`
	TimeSeries      []TimePoint      `json:"time_series"`
	Racks           []GridRack       `json:"racks"`
	Summary         GridSummary      `json:"summary"`
	KPIs            []KPI            `json:"kpis"`
	Alerts          []Alert          `json:"alerts"`
	Recommendations []Recommendation `json:"recommendations"`
	Forecast        ForecastSummary  `json:"forecast"`
}

type LoadShare struct {
	Label   string  `json:"label"`
	Percent float64 `json:"pct"`
}

// Overview holds the live metrics shown beside the 3D scene.
type Overview struct {
	PUE          string      `json:"pue"`
	PowerKW      int         `json:"power_kw"`
	ThermalKW    int         `json:"thermal_kw"`
	WaterLhr     int         `json:"water_lhr"`
	ThermalHot   bool        `json:"thermal_hot"`
	LoadBand     string      `json:"load_band"`
	Distribution []LoadShare `json:"distribution"`
}

type PipelineStep struct {
	Step        int      `json:"step"`
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Description string   `json:"description"`
	Metrics     []string `json:"metrics"`
}

type Integration struct {
	Label       string `json:"label"`
	Description string `json:"desc"`
}

// PlantUnit is a cooling or power unit placed in the facility scene.
type PlantUnit struct {
	ID                string  `json:"id"`
	Kind              string  `json:"kind"`
	Zone              string  `json:"zone"`
	Position          Vec3    `json:"position"`
	HoursRun          float64 `json:"hours_run"`
	FailureRisk30Days float64 `json:"failure_risk_30_days"`
	FailureRisk90Days float64 `json:"failure_risk_90_days"`
	NextServiceDate   string  `json:"next_service_date"`
	Recommendation    string  `json:"recommendation"`
}

type Enquiry struct {
	Name    string `json:"name" form:"name" validate:"required,min=2,max=120"`
	Email   string `json:"email" form:"email" validate:"required,email"`
	Company string `json:"company" form:"company" validate:"max=120"`
	Message string `json:"message" form:"message" validate:"required,min=10,max=4000"`
}
