package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/flight-booking-session/internal/model"
)

// SeatSelecting is the slice of the booking core consumed by the seat
// selection handler.
type SeatSelecting interface {
    SelectSeat(ctx context.Context, sessionID string, flightID uint64, passengerIndex int, seatID uint64) (*model.BookingSession, error)
    RemoveSeat(ctx context.Context, sessionID string, flightID uint64, passengerIndex int) (*model.BookingSession, error)
}

// SeatSelectionHandler exposes seat holds over HTTP. Paths carry the
// session, leg and passenger; the seat itself travels in the body so
// that replacing a seat and selecting a first seat are the same call.
type SeatSelectionHandler struct {
    Seats SeatSelecting
}

// NewSeatSelectionHandler constructs a SeatSelectionHandler.
func NewSeatSelectionHandler(seats SeatSelecting) *SeatSelectionHandler {
    if seats == nil {
        panic("nil SeatSelecting passed to NewSeatSelectionHandler")
    }
    return &SeatSelectionHandler{Seats: seats}
}

// Select handles PUT /v1/sessions/:id/flights/:flightId/passengers/:paxIndex/seat.
// A passenger who already holds a seat on the leg swaps to the new one.
// A 409 response means the seat was lost to a concurrent session and a
// different seat must be chosen.
func (h *SeatSelectionHandler) Select(c echo.Context) error {
    flightID, ok := pathUint(c, "flightId")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
    }
    paxIndex, ok := pathInt(c, "paxIndex")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid passenger index"})
    }
    var body struct {
        SeatID uint64 `json:"seat_id"`
    }
    if err := c.Bind(&body); err != nil || body.SeatID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_id is required"})
    }
    doc, err := h.Seats.SelectSeat(c.Request().Context(), c.Param("id"), flightID, paxIndex, body.SeatID)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, newSelectionResponse(doc, flightID))
}

// Remove handles DELETE /v1/sessions/:id/flights/:flightId/passengers/:paxIndex/seat.
// Removing when no seat is held succeeds with zero ledger change.
func (h *SeatSelectionHandler) Remove(c echo.Context) error {
    flightID, ok := pathUint(c, "flightId")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
    }
    paxIndex, ok := pathInt(c, "paxIndex")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid passenger index"})
    }
    doc, err := h.Seats.RemoveSeat(c.Request().Context(), c.Param("id"), flightID, paxIndex)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, newSelectionResponse(doc, flightID))
}
