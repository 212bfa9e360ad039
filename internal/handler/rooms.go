package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-allocator/internal/allocator"
	"github.com/iliyamo/hotel-room-allocator/internal/model"
)

// RoomsHandler exposes read-only views of the inventory.  Every view is
// taken under the allocator's lock, so a response never shows half of a
// booking.
type RoomsHandler struct {
	Alloc *allocator.Allocator
}

// LayoutFloor is one row of the static building layout.
type LayoutFloor struct {
	Floor int   `json:"floor"`
	Rooms []int `json:"rooms"`
}

// ListRooms handles GET /v1/rooms.  Optional filters: ?floor=N and
// ?status=vacant|occupied.
func (h *RoomsHandler) ListRooms(c echo.Context) error {
	var rooms []model.Room
	if fs := c.QueryParam("floor"); fs != "" {
		f, err := strconv.Atoi(fs)
		if err != nil || f < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid floor"})
		}
		rooms = h.Alloc.Floor(f)
	} else {
		rooms = h.Alloc.Snapshot()
	}

	switch c.QueryParam("status") {
	case "":
	case "vacant":
		rooms = filterRooms(rooms, false)
	case "occupied":
		rooms = filterRooms(rooms, true)
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be vacant or occupied"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rooms})
}

// GetRoom handles GET /v1/rooms/:number.
func (h *RoomsHandler) GetRoom(c echo.Context) error {
	n, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room number"})
	}
	r, err := h.Alloc.Lookup(n)
	if err != nil {
		return allocatorError(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

// Summary handles GET /v1/summary.
func (h *RoomsHandler) Summary(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Alloc.Summary())
}

// Layout handles GET /v1/layout.  It lists room numbers per floor, top
// floor first, without occupancy, so the response can be cached.
func (h *RoomsHandler) Layout(c echo.Context) error {
	floors := h.Alloc.Floors()
	out := make([]LayoutFloor, 0, len(floors))
	for i := len(floors) - 1; i >= 0; i-- {
		rooms := h.Alloc.Floor(floors[i])
		nums := make([]int, 0, len(rooms))
		for _, r := range rooms {
			nums = append(nums, r.Number)
		}
		out = append(out, LayoutFloor{Floor: floors[i], Rooms: nums})
	}
	return c.JSON(http.StatusOK, echo.Map{"floors": out})
}

func filterRooms(rooms []model.Room, occupied bool) []model.Room {
	out := make([]model.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.Occupied == occupied {
			out = append(out, r)
		}
	}
	return out
}
