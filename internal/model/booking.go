package model

import "time"

// Strategy names the search pass that produced a booking.
type Strategy string

const (
	// StrategySameFloor means every room was found on one floor.
	StrategySameFloor Strategy = "same_floor"
	// StrategyCrossFloor means no single floor had enough vacancies and the
	// rooms were picked from the whole building.
	StrategyCrossFloor Strategy = "cross_floor"
)

// Booking is the result of a successful allocation.  It is returned to
// the caller and published as a notification but never stored; the only
// lasting effect of a booking is the occupancy of its rooms.
//
// Fields:
//  ID          – opaque identifier correlating the response with notifications.
//  Rooms       – reserved rooms in the order they were chosen.
//  TravelTime  – bounding-box travel cost across the reserved rooms.
//  Strategy    – which search pass produced the rooms.
//  BookedAt    – UTC time of the reservation.
//  VacantAfter – vacancies left at the moment the rooms were taken.
type Booking struct {
	ID          string    `json:"booking_id"`
	Rooms       []Room    `json:"rooms"`
	TravelTime  int       `json:"travel_time"`
	Strategy    Strategy  `json:"strategy"`
	BookedAt    time.Time `json:"booked_at"`
	VacantAfter int       `json:"vacant_after"`
}

// Numbers returns the room numbers of the booking in order.
func (b Booking) Numbers() []int {
	out := make([]int, 0, len(b.Rooms))
	for _, r := range b.Rooms {
		out = append(out, r.Number)
	}
	return out
}
