package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/flight-booking-session/internal/booking"
    "github.com/iliyamo/flight-booking-session/internal/model"
)

// ServiceSelecting is the slice of the booking core consumed by the
// service selection handler.
type ServiceSelecting interface {
    SelectService(ctx context.Context, sessionID string, flightID uint64, passengerIndex int, category string, offerID uint64, quantity uint32) (*model.BookingSession, error)
    RemoveService(ctx context.Context, sessionID string, flightID uint64, passengerIndex int, category string) (*model.BookingSession, error)
    SelectServicesForLeg(ctx context.Context, sessionID string, flightID uint64, requests []booking.ServiceRequest) ([]booking.ServiceResult, *model.BookingSession, error)
}

// ServiceSelectionHandler exposes ancillary offer reservations over
// HTTP with the same path shape as seats, plus a leg-wide batch
// endpoint whose entries succeed or fail independently.
type ServiceSelectionHandler struct {
    Services ServiceSelecting
}

// NewServiceSelectionHandler constructs a ServiceSelectionHandler.
func NewServiceSelectionHandler(services ServiceSelecting) *ServiceSelectionHandler {
    if services == nil {
        panic("nil ServiceSelecting passed to NewServiceSelectionHandler")
    }
    return &ServiceSelectionHandler{Services: services}
}

// Select handles PUT /v1/sessions/:id/flights/:flightId/passengers/:paxIndex/services/:category.
// Choosing a new offer in an occupied category replaces the previous
// choice; a 409 means the offer sold out under the caller.
func (h *ServiceSelectionHandler) Select(c echo.Context) error {
    flightID, ok := pathUint(c, "flightId")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
    }
    paxIndex, ok := pathInt(c, "paxIndex")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid passenger index"})
    }
    var body struct {
        OfferID  uint64 `json:"offer_id"`
        Quantity uint32 `json:"quantity"`
    }
    if err := c.Bind(&body); err != nil || body.OfferID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "offer_id is required"})
    }
    if body.Quantity == 0 {
        body.Quantity = 1
    }
    doc, err := h.Services.SelectService(c.Request().Context(), c.Param("id"), flightID, paxIndex, c.Param("category"), body.OfferID, body.Quantity)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, newSelectionResponse(doc, flightID))
}

// Remove handles DELETE /v1/sessions/:id/flights/:flightId/passengers/:paxIndex/services/:category.
// Removing an absent selection succeeds with zero ledger change.
func (h *ServiceSelectionHandler) Remove(c echo.Context) error {
    flightID, ok := pathUint(c, "flightId")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
    }
    paxIndex, ok := pathInt(c, "paxIndex")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid passenger index"})
    }
    doc, err := h.Services.RemoveService(c.Request().Context(), c.Param("id"), flightID, paxIndex, c.Param("category"))
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, newSelectionResponse(doc, flightID))
}

// SelectForLeg handles POST /v1/sessions/:id/flights/:flightId/services.
// The body carries a list of selections applied independently; the
// response reports a per-entry outcome alongside the resulting session
// totals, so partial success is visible rather than rolled back.
func (h *ServiceSelectionHandler) SelectForLeg(c echo.Context) error {
    flightID, ok := pathUint(c, "flightId")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
    }
    var body struct {
        Selections []booking.ServiceRequest `json:"selections"`
    }
    if err := c.Bind(&body); err != nil || len(body.Selections) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "selections is required"})
    }
    results, doc, err := h.Services.SelectServicesForLeg(c.Request().Context(), c.Param("id"), flightID, body.Selections)
    if err != nil {
        return writeError(c, err)
    }
    resp := newSelectionResponse(doc, flightID)
    return c.JSON(http.StatusOK, echo.Map{
        "results":            results,
        "leg_subtotal_cents": resp.LegSubtotalCents,
        "session_totals":     resp.SessionTotals,
        "expires_at":         resp.ExpiresAt,
    })
}
