package facility

import (
	"github.com/wattr-labs/wattr-demo/internal/domain"
	"github.com/wattr-labs/wattr-demo/internal/mathx"
)

// NominalWorkload is the workload at which racks sit on their baseline.
const NominalWorkload = 65.0

var (
	ColourCool     = domain.RGB{R: 0x70 / 255.0, G: 0xA0 / 255.0, B: 0xD0 / 255.0}
	ColourAmber    = domain.RGB{R: 0xF5 / 255.0, G: 0x9E / 255.0, B: 0x0B / 255.0}
	ColourHot      = domain.RGB{R: 0xFF / 255.0, G: 0x6A / 255.0, B: 0x3D / 255.0}
	ColourSelected = domain.RGB{R: 0x9E / 255.0, G: 0xBF / 255.0, B: 0xDF / 255.0}
)

// EffectiveUtilisation shifts a rack's baseline by 0.4 points per point of
// workload above nominal, clamped to [0, 100].
func EffectiveUtilisation(base int, workload float64) float64 {
	return mathx.Clamp(float64(base)+(workload-NominalWorkload)*0.4, 0, 100)
}

func Status3D(util float64) domain.RackStatus {
	switch {
	case util > 90:
		return domain.StatusCritical
	case util > 70:
		return domain.StatusWarn
	default:
		return domain.StatusOK
	}
}

func Temperature(util float64) float64 { return mathx.Round1(18 + util/100*25) }

func Power(util float64) float64 { return mathx.Round1(2.5 + util/100*6.5) }

// EmissiveBase is the glow intensity of an unselected, unhovered rack.
func EmissiveBase(util float64) float64 { return 0.05 + util/100*0.55 }

func LerpRGB(a, b domain.RGB, t float64) domain.RGB {
	return domain.RGB{
		R: mathx.Lerp(a.R, b.R, t),
		G: mathx.Lerp(a.G, b.G, t),
		B: mathx.Lerp(a.B, b.B, t),
	}
}

// HeatColour ramps cool blue to amber over utilisation 30..70 and amber to
// orange over 70..110.
func HeatColour(util float64) domain.RGB {
	t := mathx.Clamp((util-30)/80, 0, 1)
	if t < 0.5 {
		return LerpRGB(ColourCool, ColourAmber, t*2)
	}
	return LerpRGB(ColourAmber, ColourHot, (t-0.5)*2)
}

// Evaluate computes the runtime state of def under the given workload.
func Evaluate(def domain.RackDefinition, workload float64, selected bool) domain.RackState {
	u := EffectiveUtilisation(def.BaseUtilisation, workload)
	return domain.RackState{
		ID:          def.ID,
		Label:       "Rack " + def.Label,
		Zone:        def.Zone,
		Utilisation: int(mathx.Round(u)),
		Temperature: Temperature(u),
		Power:       Power(u),
		Status:      Status3D(u),
		Selected:    selected,
		Colour:      HeatColour(u),
		Emissive:    EmissiveBase(u),
	}
}

// EvaluateAll evaluates every rack of the layout. selectedID may be empty.
func EvaluateAll(workload float64, selectedID string) []domain.RackState {
	defs := Racks()
	out := make([]domain.RackState, len(defs))
	for i, d := range defs {
		out[i] = Evaluate(d, workload, d.ID == selectedID)
	}
	return out
}
