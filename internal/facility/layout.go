package facility

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/wattr-labs/wattr-demo/internal/domain"
	"github.com/wattr-labs/wattr-demo/internal/mathx"
)

const (
	ZoneHallA = "Server Hall A"
	ZoneHallB = "Server Hall B"

	rackSpacing  = 1.15
	hallAColumns = 9
	hallBColumns = 7
	hallAOriginX = -24.0
	hallBOriginX = 14.0
)

var (
	hallARows = []float64{-18.5, -15.5, -12.5, -9.5, -6.5, -3.5, -0.5}
	hallBRows = []float64{-18, -14.5, -11, -7.5, -4, -0.5}

	ErrRackNotFound = errors.New("rack not found")
)

var (
	layoutOnce sync.Once
	layout     []domain.RackDefinition
	layoutByID map[string]int
)

// HallARacks and HallBRacks are the rack counts per hall.
var (
	HallARacks = len(hallARows) * hallAColumns
	HallBRacks = len(hallBRows) * hallBColumns
)

// BaselineUtilisation is the seeded utilisation of the i-th rack (1-based).
func BaselineUtilisation(i int) int {
	return int(mathx.Round(40 + (math.Sin(float64(i)*1.618)+1)/2*55))
}

// BuildRacks generates the floor plan. Hall A is laid out first and the rack
// index continues into Hall B.
func BuildRacks() []domain.RackDefinition {
	racks := make([]domain.RackDefinition, 0, HallARacks+HallBRacks)
	idx := 0

	for _, z := range hallARows {
		for c := 0; c < hallAColumns; c++ {
			idx++
			racks = append(racks, domain.RackDefinition{
				ID:              fmt.Sprintf("A-%02d", idx),
				Label:           fmt.Sprintf("A%d", idx),
				Zone:            ZoneHallA,
				Position:        domain.Vec3{hallAOriginX + float64(c)*rackSpacing, 0, z},
				BaseUtilisation: BaselineUtilisation(idx),
			})
		}
	}

	for _, z := range hallBRows {
		for c := 0; c < hallBColumns; c++ {
			idx++
			n := idx - HallARacks
			racks = append(racks, domain.RackDefinition{
				ID:              fmt.Sprintf("B-%02d", n),
				Label:           fmt.Sprintf("B%d", n),
				Zone:            ZoneHallB,
				Position:        domain.Vec3{hallBOriginX + float64(c)*rackSpacing, 0, z},
				BaseUtilisation: BaselineUtilisation(idx),
			})
		}
	}

	return racks
}

// Racks returns the process-wide layout. Callers must not modify the slice.
func Racks() []domain.RackDefinition {
	layoutOnce.Do(func() {
		layout = BuildRacks()
		layoutByID = make(map[string]int, len(layout))
		for i, r := range layout {
			layoutByID[r.ID] = i
		}
	})
	return layout
}

func Lookup(id string) (domain.RackDefinition, error) {
	Racks()
	i, ok := layoutByID[id]
	if !ok {
		return domain.RackDefinition{}, fmt.Errorf("%w: %s", ErrRackNotFound, id)
	}
	return layout[i], nil
}
