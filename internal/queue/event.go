// Package queue defines message payloads exchanged over the message broker.
package queue

// RoomsBookedQueue is the durable queue booking notifications travel on.
const RoomsBookedQueue = "rooms.booked"

// RoomsBookedEvent is published after rooms have been reserved.  It
// carries everything a downstream consumer needs to log or notify
// without asking the allocator again.
type RoomsBookedEvent struct {
	BookingID   string `json:"booking_id"`
	Rooms       []int  `json:"rooms"`
	Floors      []int  `json:"floors"`
	TravelTime  int    `json:"travel_time"`
	Strategy    string `json:"strategy"`
	Vacant      int    `json:"vacant_after"`
	ConfirmedAt string `json:"confirmed_at"`
}
