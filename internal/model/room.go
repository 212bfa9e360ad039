package model

// Room describes a single hotel room.  Rooms are uniquely identified
// by their floor and position; the human-facing number is derived from
// those two values when the inventory is built and never recomputed.
//
// Fields:
//  Number   – room number shown to guests (e.g. 101, 1007).
//  Floor    – floor the room is on, starting at 1.
//  Position – left-to-right index of the room on its floor, starting at 0.
//  Occupied – whether the room is currently taken.
type Room struct {
	Number   int  `json:"number"`
	Floor    int  `json:"floor"`
	Position int  `json:"position"`
	Occupied bool `json:"occupied"`
}

// Occupancy summarizes how many rooms are taken.
type Occupancy struct {
	Total    int `json:"total"`
	Occupied int `json:"occupied"`
	Vacant   int `json:"vacant"`
}
