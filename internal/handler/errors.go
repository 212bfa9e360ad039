package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-allocator/internal/allocator"
)

// allocatorError translates an allocator error into a JSON response.
// The wrapped message is returned to the client; it never contains more
// than room numbers and counts.
func allocatorError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, allocator.ErrInvalidRequest), errors.Is(err, allocator.ErrInvalidProbability):
		status = http.StatusBadRequest
	case errors.Is(err, allocator.ErrInsufficientInventory), errors.Is(err, allocator.ErrRoomVacant):
		status = http.StatusConflict
	case errors.Is(err, allocator.ErrRoomNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		return c.JSON(status, echo.Map{"error": "internal error"})
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}
