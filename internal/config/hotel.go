package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Default building: ten floors of ten rooms, except the top floor which
// has seven.
const (
	DefaultFloors        = 10
	DefaultRoomsPerFloor = 10
	DefaultTopFloorRooms = 7
)

// HotelConfig describes the building and the travel costs used by the
// allocator.  It is read once at startup; the inventory built from it is
// identical on every start.
type HotelConfig struct {
	Floors        int         // number of floors, numbered from 1
	RoomsPerFloor map[int]int // rooms on each floor
	VStep         int         // cost of moving one floor
	HStep         int         // cost of moving one room along a corridor
	Probability   float64     // default occupancy probability for randomize
}

// LoadHotelConfig reads the building layout and travel costs.
//
//   HOTEL_FLOORS                – floor count (default 10)
//   HOTEL_ROOMS_PER_FLOOR       – rooms on every floor but the top (default 10)
//   HOTEL_TOP_FLOOR_ROOMS       – rooms on the top floor (default 7)
//   HOTEL_FLOOR_ROOMS           – explicit "floor:count,..." table; replaces the two above
//   HOTEL_V_STEP, HOTEL_H_STEP  – travel costs (default 2 and 1)
//   HOTEL_RANDOMIZE_PROBABILITY – default for randomize (default 0.35)
func LoadHotelConfig() (HotelConfig, error) {
	cfg := HotelConfig{
		Floors:      envInt("HOTEL_FLOORS", DefaultFloors),
		VStep:       envInt("HOTEL_V_STEP", 2),
		HStep:       envInt("HOTEL_H_STEP", 1),
		Probability: envFloat("HOTEL_RANDOMIZE_PROBABILITY", 0.35),
	}
	if table := envStr("HOTEL_FLOOR_ROOMS", ""); table != "" {
		m, err := ParseFloorRooms(table)
		if err != nil {
			return HotelConfig{}, err
		}
		cfg.RoomsPerFloor = m
	} else {
		cfg.RoomsPerFloor = UniformFloors(cfg.Floors,
			envInt("HOTEL_ROOMS_PER_FLOOR", DefaultRoomsPerFloor),
			envInt("HOTEL_TOP_FLOOR_ROOMS", DefaultTopFloorRooms))
	}
	if err := cfg.Validate(); err != nil {
		return HotelConfig{}, err
	}
	return cfg, nil
}

// UniformFloors returns a table with perFloor rooms on floors 1..floors-1
// and topFloor rooms on the top floor.
func UniformFloors(floors, perFloor, topFloor int) map[int]int {
	m := make(map[int]int, floors)
	for f := 1; f < floors; f++ {
		m[f] = perFloor
	}
	if floors > 0 {
		m[floors] = topFloor
	}
	return m
}

// ParseFloorRooms parses "1:10,2:10,3:7" into a floor -> rooms table.
func ParseFloorRooms(s string) (map[int]int, error) {
	m := map[int]int{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fs, cs, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("floor rooms %q: expected floor:count", part)
		}
		f, err := strconv.Atoi(strings.TrimSpace(fs))
		if err != nil {
			return nil, fmt.Errorf("floor rooms %q: bad floor: %w", part, err)
		}
		c, err := strconv.Atoi(strings.TrimSpace(cs))
		if err != nil {
			return nil, fmt.Errorf("floor rooms %q: bad count: %w", part, err)
		}
		if _, dup := m[f]; dup {
			return nil, fmt.Errorf("floor rooms: floor %d listed twice", f)
		}
		m[f] = c
	}
	return m, nil
}

// Validate rejects layouts whose room numbers would collide.  Regular
// floors are numbered floor*100+1.. and the top floor 1001.., so a floor
// may hold at most 99 rooms and floor 10 can only exist as the top floor.
func (c HotelConfig) Validate() error {
	if c.Floors < 1 || c.Floors > 10 {
		return fmt.Errorf("hotel floors must be within [1, 10], got %d", c.Floors)
	}
	for f, n := range c.RoomsPerFloor {
		if f < 1 || f > c.Floors {
			return fmt.Errorf("floor %d outside [1, %d]", f, c.Floors)
		}
		if n < 0 || n > 99 {
			return fmt.Errorf("floor %d: room count must be within [0, 99], got %d", f, n)
		}
	}
	if c.VStep <= 0 || c.HStep <= 0 {
		return errors.New("travel steps must be positive")
	}
	if c.Probability < 0 || c.Probability > 1 {
		return fmt.Errorf("randomize probability must be within [0, 1], got %v", c.Probability)
	}
	return nil
}
