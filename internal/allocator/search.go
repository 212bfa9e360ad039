package allocator

import (
	"sort"

	"github.com/iliyamo/hotel-room-allocator/internal/model"
)

// sameFloorWindow scans floors in ascending order and returns the
// tightest run of count vacancies on the first floor that has at least
// count of them.  Vacancies are expected in floor/position order.  Ties
// on span go to the lowest starting position.  It reports false when no
// single floor has enough vacancies.
func sameFloorWindow(vacant []model.Room, count int) ([]model.Room, bool) {
	byFloor := make(map[int][]model.Room)
	floors := make([]int, 0)
	for _, r := range vacant {
		if _, seen := byFloor[r.Floor]; !seen {
			floors = append(floors, r.Floor)
		}
		byFloor[r.Floor] = append(byFloor[r.Floor], r)
	}
	sort.Ints(floors)

	for _, f := range floors {
		free := byFloor[f]
		if len(free) < count {
			continue
		}
		sort.SliceStable(free, func(i, j int) bool { return free[i].Position < free[j].Position })

		best, bestSpan := -1, 0
		for i := 0; i+count <= len(free); i++ {
			span := free[i+count-1].Position - free[i].Position
			if best < 0 || span < bestSpan {
				best, bestSpan = i, span
			}
		}
		return free[best : best+count], true
	}
	return nil, false
}

// crossFloorWindow orders every vacancy by distance from the origin and
// returns the run of count consecutive candidates with the lowest travel
// time, first run winning ties.  This is a heuristic: the cheapest set of
// rooms overall need not be consecutive in origin order.
func crossFloorWindow(vacant []model.Room, count int, cost CostModel) []model.Room {
	sorted := make([]model.Room, len(vacant))
	copy(sorted, vacant)
	sort.SliceStable(sorted, func(i, j int) bool {
		return cost.OriginCost(sorted[i]) < cost.OriginCost(sorted[j])
	})

	best, bestTime := -1, 0
	for i := 0; i+count <= len(sorted); i++ {
		t := cost.TravelTime(sorted[i : i+count])
		if best < 0 || t < bestTime {
			best, bestTime = i, t
		}
	}
	if best < 0 {
		return nil
	}
	return sorted[best : best+count]
}
