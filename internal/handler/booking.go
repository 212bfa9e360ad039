package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/hotel-room-allocator/internal/allocator"
	"github.com/iliyamo/hotel-room-allocator/internal/model"
	"github.com/iliyamo/hotel-room-allocator/internal/queue"
	"github.com/iliyamo/hotel-room-allocator/internal/service"
)

// BookingPublisher sends booking notifications.  It is satisfied by
// *service.QueuePublisher.
type BookingPublisher interface {
	PublishRoomsBooked(ctx context.Context, event queue.RoomsBookedEvent) error
}

// BookingHandler serves room bookings.
type BookingHandler struct {
	Alloc     *allocator.Allocator
	Publisher BookingPublisher // optional; nil disables notifications
	Log       *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.  The allocator must be
// non-nil.
func NewBookingHandler(alloc *allocator.Allocator, pub BookingPublisher, logger *zap.Logger) *BookingHandler {
	if alloc == nil {
		panic("nil allocator passed to NewBookingHandler")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingHandler{Alloc: alloc, Publisher: pub, Log: logger}
}

type bookingRequest struct {
	Count int `json:"count"`
}

// BookingResponse is returned for a successful booking.
type BookingResponse struct {
	BookingID  string         `json:"booking_id"`
	Rooms      []int          `json:"rooms"`
	TravelTime int            `json:"travel_time"`
	Strategy   model.Strategy `json:"strategy"`
	BookedAt   string         `json:"booked_at"`
}

// Book handles POST /v1/bookings.  The body is {"count": n} with n in
// [1, 5].  It answers 201 with the reserved room numbers and their travel
// time, 400 for a bad count and 409 when not enough rooms are vacant.
func (h *BookingHandler) Book(c echo.Context) error {
	var body bookingRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	b, err := h.Alloc.Book(body.Count)
	if err != nil {
		return allocatorError(c, err)
	}

	if h.Publisher != nil {
		ev := service.NewRoomsBookedEvent(b)
		if err := h.Publisher.PublishRoomsBooked(c.Request().Context(), ev); err != nil {
			h.Log.Warn("booking notification not sent", zap.String("booking_id", b.ID), zap.Error(err))
		}
	}

	return c.JSON(http.StatusCreated, BookingResponse{
		BookingID:  b.ID,
		Rooms:      b.Numbers(),
		TravelTime: b.TravelTime,
		Strategy:   b.Strategy,
		BookedAt:   b.BookedAt.Format(time.RFC3339),
	})
}
