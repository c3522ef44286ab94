package web

import (
	"math"
	"testing"
	"time"

	"github.com/wattr-labs/wattr-demo/internal/facility"
	"github.com/wattr-labs/wattr-demo/internal/service"
)

func testView(workload float64, selected string) service.FacilityView {
	defs := facility.Racks()[:3]
	v := service.FacilityView{Workload: workload, Selected: selected}
	for _, d := range defs {
		v.Racks = append(v.Racks, service.RackView{Definition: d})
	}
	return v
}

func TestSceneStartsAtInitialVisual(t *testing.T) {
	t0 := time.Unix(0, 0)
	sc := NewScene(t0)
	sc.SetView(testView(65, ""))

	frame := sc.Step(t0)
	if len(frame) != 3 {
		t.Fatalf("got %d racks", len(frame))
	}
	def := facility.Racks()[0]
	want := facility.InitialVisual(facility.EffectiveUtilisation(def.BaseUtilisation, 65))
	if frame[0].Emissive != want.Emissive || frame[0].Intensity != want.Intensity {
		t.Errorf("first frame %+v, want %+v", frame[0].VisualState, want)
	}
}

func TestSceneSelectionGrowsRing(t *testing.T) {
	t0 := time.Unix(0, 0)
	sc := NewScene(t0)
	id := facility.Racks()[1].ID
	sc.SetView(testView(65, id))

	var last []SceneRack
	for i := 1; i <= 120; i++ {
		last = sc.Step(t0.Add(time.Duration(i) * time.Second / 60))
	}
	if math.Abs(last[1].RingScale-1) > 1e-3 {
		t.Errorf("selected ring scale %v after 2s", last[1].RingScale)
	}
	if last[0].RingScale != 0 {
		t.Errorf("unselected ring scale %v", last[0].RingScale)
	}
	if math.Abs(last[1].RingAngle-2.8) > 1e-9 {
		t.Errorf("ring angle %v", last[1].RingAngle)
	}
}

func TestSceneHoverRaisesIntensity(t *testing.T) {
	t0 := time.Unix(0, 0)
	sc := NewScene(t0)
	sc.SetView(testView(65, ""))
	base := sc.Step(t0)[2].Intensity

	sc.Hover(facility.Racks()[2].ID)
	var after float64
	for i := 1; i <= 180; i++ {
		after = sc.Step(t0.Add(time.Duration(i) * time.Second / 60))[2].Intensity
	}
	if math.Abs(after-(base+0.18)) > 1e-3 {
		t.Errorf("hovered intensity %v, want about %v", after, base+0.18)
	}
}
