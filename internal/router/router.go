package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-allocator/internal/handler"
	"github.com/iliyamo/hotel-room-allocator/internal/middleware"
	"github.com/iliyamo/hotel-room-allocator/internal/utils"
)

// RegisterRoutes registers routes that need neither authentication nor
// the allocator.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the admin login endpoint.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
}

// RegisterPublic registers unauthenticated inventory views and the
// booking endpoint.  cache fronts the static layout only; limit guards
// bookings.
func RegisterPublic(e *echo.Echo, r *handler.RoomsHandler, b *handler.BookingHandler, cache, limit echo.MiddlewareFunc) {
	e.GET("/v1/rooms", r.ListRooms)
	e.GET("/v1/rooms/:number", r.GetRoom)
	e.GET("/v1/summary", r.Summary)
	e.GET("/v1/layout", r.Layout, cache)

	e.POST("/v1/bookings", b.Book, limit)
}

// RegisterAdmin registers occupancy administration under /v1/admin.  All
// routes require a valid JWT carrying the ADMIN role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(utils.RoleAdmin),
	)
	g.POST("/randomize", h.Randomize)
	g.POST("/reset", h.Reset)
	g.POST("/release", h.Release)
}
