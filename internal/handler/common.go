package handler

// common.go holds the pieces shared by the session and selection
// handlers: the error-to-status translation for the booking error
// taxonomy and the response envelope returned by every mutating
// selection endpoint.

import (
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/flight-booking-session/internal/booking"
    "github.com/iliyamo/flight-booking-session/internal/model"
    "github.com/iliyamo/flight-booking-session/internal/repository"
)

// selectionResponse is the envelope returned by seat and service
// selection endpoints. ExpiresAt reflects the renewed session envelope
// so clients can display the countdown without a second request.
type selectionResponse struct {
    Result           string               `json:"result"`
    LegSubtotalCents int64                `json:"leg_subtotal_cents"`
    SessionTotals    model.PriceBreakdown `json:"session_totals"`
    ExpiresAt        string               `json:"expires_at"`
}

func newSelectionResponse(doc *model.BookingSession, flightID uint64) selectionResponse {
    resp := selectionResponse{
        Result:        "ok",
        SessionTotals: doc.Totals,
        ExpiresAt:     doc.ExpiresAt.UTC().Format(time.RFC3339),
    }
    if leg := doc.Leg(flightID); leg != nil {
        resp.LegSubtotalCents = booking.LegSubtotal(leg)
    }
    return resp
}

// writeError translates the booking error taxonomy into HTTP responses.
// Session absence means the client must restart the flow (404); losing
// a race over a seat or offer is a conflict the client resolves by
// re-selecting (409); malformed selections are client bugs (400);
// everything else is a storage failure the transport layer may retry
// (500).
func writeError(c echo.Context, err error) error {
    switch {
    case errors.Is(err, repository.ErrSessionNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
    case errors.Is(err, repository.ErrSeatUnavailable):
        return c.JSON(http.StatusConflict, echo.Map{"error": "seat unavailable"})
    case errors.Is(err, repository.ErrOfferUnavailable):
        return c.JSON(http.StatusConflict, echo.Map{"error": "service unavailable"})
    case errors.Is(err, repository.ErrFlightNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
    case errors.Is(err, repository.ErrSeatNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
    case errors.Is(err, repository.ErrOfferNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "service offer not found"})
    case errors.Is(err, booking.ErrInvalidSelection):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid selection"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
}

// pathUint parses a numeric path parameter, rejecting zero.
func pathUint(c echo.Context, name string) (uint64, bool) {
    v, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || v == 0 {
        return 0, false
    }
    return v, true
}

// pathInt parses a non-negative numeric path parameter.
func pathInt(c echo.Context, name string) (int, bool) {
    v, err := strconv.Atoi(c.Param(name))
    if err != nil || v < 0 {
        return 0, false
    }
    return v, true
}
