// Package inventory holds the fixed set of hotel rooms and their
// occupancy flags.  It has no behaviour beyond storage and iteration;
// choosing which rooms to occupy is the allocator's job.
package inventory

import (
	"sort"

	"github.com/iliyamo/hotel-room-allocator/internal/model"
)

// key identifies a room by its location.
type key struct {
	floor    int
	position int
}

// Inventory is an arena of rooms ordered by floor and then position.
// It is not safe for concurrent use on its own; the allocator guards
// every access with a single lock.
type Inventory struct {
	rooms      []model.Room
	floorCount int
	byKey      map[key]int
	byNumber   map[int]int
	floors     map[int][]int // floor -> arena indices in position order
}

// RoomNumber returns the number of the room at (floor, position) in a
// building with floorCount floors.  Rooms are numbered floor*100 plus a
// one-based position, except on the topmost floor which starts at 1001.
func RoomNumber(floor, position, floorCount int) int {
	if floor == floorCount {
		return 1000 + (position + 1)
	}
	return floor*100 + (position + 1)
}

// New builds the inventory for floors 1..floorCount.  roomsPerFloor gives
// the number of rooms on each floor; floors missing from the map have no
// rooms.  All rooms start vacant.
func New(floorCount int, roomsPerFloor map[int]int) *Inventory {
	inv := &Inventory{
		floorCount: floorCount,
		byKey:      make(map[key]int),
		byNumber:   make(map[int]int),
		floors:     make(map[int][]int, floorCount),
	}
	for f := 1; f <= floorCount; f++ {
		cnt := roomsPerFloor[f]
		for p := 0; p < cnt; p++ {
			idx := len(inv.rooms)
			inv.rooms = append(inv.rooms, model.Room{
				Number:   RoomNumber(f, p, floorCount),
				Floor:    f,
				Position: p,
			})
			inv.byKey[key{f, p}] = idx
			// first room wins if a misconfigured building reuses a number
			if _, dup := inv.byNumber[inv.rooms[idx].Number]; !dup {
				inv.byNumber[inv.rooms[idx].Number] = idx
			}
			inv.floors[f] = append(inv.floors[f], idx)
		}
	}
	return inv
}

// Len returns the total number of rooms.
func (inv *Inventory) Len() int { return len(inv.rooms) }

// FloorCount returns the configured number of floors.
func (inv *Inventory) FloorCount() int { return inv.floorCount }

// Floors returns the floors that have at least one room, ascending.
func (inv *Inventory) Floors() []int {
	out := make([]int, 0, len(inv.floors))
	for f := range inv.floors {
		out = append(out, f)
	}
	sort.Ints(out)
	return out
}

// Rooms returns a copy of every room.
func (inv *Inventory) Rooms() []model.Room {
	out := make([]model.Room, len(inv.rooms))
	copy(out, inv.rooms)
	return out
}

// Floor returns a copy of the rooms on floor f in position order.
func (inv *Inventory) Floor(f int) []model.Room {
	idxs := inv.floors[f]
	out := make([]model.Room, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, inv.rooms[i])
	}
	return out
}

// Vacant returns a copy of every vacant room in floor/position order.
func (inv *Inventory) Vacant() []model.Room { return inv.filter(false) }

// Occupied returns a copy of every occupied room in floor/position order.
func (inv *Inventory) Occupied() []model.Room { return inv.filter(true) }

func (inv *Inventory) filter(occupied bool) []model.Room {
	out := make([]model.Room, 0)
	for _, r := range inv.rooms {
		if r.Occupied == occupied {
			out = append(out, r)
		}
	}
	return out
}

// Lookup finds a room by its number.
func (inv *Inventory) Lookup(number int) (model.Room, bool) {
	i, ok := inv.byNumber[number]
	if !ok {
		return model.Room{}, false
	}
	return inv.rooms[i], true
}

// SetOccupied updates the occupancy of the room at (floor, position).  It
// reports false when no such room exists.
func (inv *Inventory) SetOccupied(floor, position int, occupied bool) bool {
	i, ok := inv.byKey[key{floor, position}]
	if !ok {
		return false
	}
	inv.rooms[i].Occupied = occupied
	return true
}

// Each calls fn for every room in floor/position order with a pointer
// into the arena so that bulk updates avoid a lookup per room.
func (inv *Inventory) Each(fn func(r *model.Room)) {
	for i := range inv.rooms {
		fn(&inv.rooms[i])
	}
}
