// Package allocator selects and reserves rooms for booking requests.
//
// The sentinel errors below let higher layers such as handlers tell the
// failure modes apart with errors.Is.  Every failure is reported before
// any occupancy flag is touched.
package allocator

import "errors"

// ErrInvalidRequest is returned when the requested room count is outside
// the accepted range, or a release request is empty or repeats a room.
// Handlers should translate this into an HTTP 400 response.
var ErrInvalidRequest = errors.New("invalid request")

// ErrInsufficientInventory is returned when fewer rooms are vacant than
// were requested.  Handlers should translate this into an HTTP 409.
var ErrInsufficientInventory = errors.New("not enough rooms left")

// ErrInvalidProbability is returned by Randomize for a probability
// outside [0, 1].
var ErrInvalidProbability = errors.New("probability must be within [0, 1]")

// ErrRoomNotFound is returned when a room number does not exist.
var ErrRoomNotFound = errors.New("room not found")

// ErrRoomVacant is returned when releasing a room that is not occupied.
var ErrRoomVacant = errors.New("room is not occupied")
