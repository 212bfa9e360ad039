package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/hotel-room-allocator/internal/allocator"
)

// AdminHandler serves occupancy administration.  All routes sit behind
// JWTAuth and RequireRole(ADMIN).
type AdminHandler struct {
	Alloc              *allocator.Allocator
	DefaultProbability float64
	Log                *zap.Logger
}

// Randomize handles POST /v1/admin/randomize.  The optional body
// {"probability": p} overrides the configured default.
func (h *AdminHandler) Randomize(c echo.Context) error {
	var body struct {
		Probability *float64 `json:"probability"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	p := h.DefaultProbability
	if body.Probability != nil {
		p = *body.Probability
	}
	if err := h.Alloc.Randomize(p); err != nil {
		return allocatorError(c, err)
	}
	h.logger().Info("admin randomized occupancy", zap.Any("admin", c.Get("user_id")), zap.Float64("probability", p))
	return c.JSON(http.StatusOK, h.Alloc.Summary())
}

// Reset handles POST /v1/admin/reset.
func (h *AdminHandler) Reset(c echo.Context) error {
	h.Alloc.ResetAll()
	h.logger().Info("admin reset occupancy", zap.Any("admin", c.Get("user_id")))
	return c.JSON(http.StatusOK, h.Alloc.Summary())
}

// Release handles POST /v1/admin/release with body {"rooms": [101, 102]}.
// Either every listed room is freed or none is.
func (h *AdminHandler) Release(c echo.Context) error {
	var body struct {
		Rooms []int `json:"rooms"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	rooms, err := h.Alloc.Release(body.Rooms)
	if err != nil {
		return allocatorError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rooms})
}

func (h *AdminHandler) logger() *zap.Logger {
	if h.Log == nil {
		return zap.NewNop()
	}
	return h.Log
}
