package facility

import (
	"math"
	"time"

	"github.com/wattr-labs/wattr-demo/internal/domain"
	"github.com/wattr-labs/wattr-demo/internal/mathx"
)

// Per-frame approach rates, tuned at 60 frames per second.
const (
	referenceFPS   = 60.0
	emissiveRate   = 0.1
	ringScaleRate  = 0.15
	ringSpinPerSec = 1.4

	selectedBoost = 0.4
	hoverBoost    = 0.18
)

// VisualState is the eased appearance of one rack.
type VisualState struct {
	Emissive  domain.RGB `json:"emissive"`
	Intensity float64    `json:"intensity"`
	RingScale float64    `json:"ring_scale"`
	RingAngle float64    `json:"ring_angle"`
}

// VisualTarget is where a rack's appearance is heading.
type VisualTarget struct {
	Emissive  domain.RGB
	Intensity float64
	RingScale float64
}

// TargetFor derives the visual target of a rack from its utilisation and
// pointer state.
func TargetFor(util float64, selected, hovered bool) VisualTarget {
	heat := HeatColour(util)
	tgt := VisualTarget{Emissive: heat, Intensity: EmissiveBase(util)}
	if selected {
		tgt.Emissive = LerpRGB(ColourSelected, heat, 0.3)
		tgt.Intensity += selectedBoost
		tgt.RingScale = 1
	}
	if hovered {
		tgt.Intensity += hoverBoost
	}
	return tgt
}

// InitialVisual is the state a rack is first drawn with.
func InitialVisual(util float64) VisualState {
	return VisualState{Emissive: HeatColour(util), Intensity: EmissiveBase(util)}
}

// approach converts a per-frame lerp rate into the factor for dt.
func approach(rate float64, dt time.Duration) float64 {
	if dt <= 0 {
		return 0
	}
	return 1 - math.Pow(1-rate, dt.Seconds()*referenceFPS)
}

// Ease advances cur towards tgt by dt. elapsed is the host clock's total
// running time and drives the ring spin.
func Ease(cur VisualState, tgt VisualTarget, dt, elapsed time.Duration) VisualState {
	e := approach(emissiveRate, dt)
	r := approach(ringScaleRate, dt)
	return VisualState{
		Emissive:  LerpRGB(cur.Emissive, tgt.Emissive, e),
		Intensity: mathx.Lerp(cur.Intensity, tgt.Intensity, e),
		RingScale: mathx.Lerp(cur.RingScale, tgt.RingScale, r),
		RingAngle: elapsed.Seconds() * ringSpinPerSec,
	}
}
