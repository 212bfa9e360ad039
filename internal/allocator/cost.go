package allocator

import "github.com/iliyamo/hotel-room-allocator/internal/model"

// Default per-unit travel costs.  Moving one floor costs twice as much
// as moving one room along a corridor.
const (
	DefaultVStep = 2
	DefaultHStep = 1
)

// CostModel weighs vertical and horizontal movement.
type CostModel struct {
	VStep int // cost of moving one floor
	HStep int // cost of moving one position along a floor
}

// DefaultCostModel returns the cost model with DefaultVStep and DefaultHStep.
func DefaultCostModel() CostModel {
	return CostModel{VStep: DefaultVStep, HStep: DefaultHStep}
}

// OriginCost is the distance of a room from floor 0, position 0.  It is
// only used to order candidates in the cross-floor pass.
func (m CostModel) OriginCost(r model.Room) int {
	return r.Floor*m.VStep + r.Position*m.HStep
}

// TravelTime returns the bounding-box cost of a set of rooms: the floor
// spread weighted by VStep plus the position spread weighted by HStep.
// It is 0 for a single room and for an empty set.
func (m CostModel) TravelTime(rooms []model.Room) int {
	if len(rooms) == 0 {
		return 0
	}
	minF, maxF := rooms[0].Floor, rooms[0].Floor
	minP, maxP := rooms[0].Position, rooms[0].Position
	for _, r := range rooms[1:] {
		minF, maxF = min(minF, r.Floor), max(maxF, r.Floor)
		minP, maxP = min(minP, r.Position), max(maxP, r.Position)
	}
	return (maxF-minF)*m.VStep + (maxP-minP)*m.HStep
}
