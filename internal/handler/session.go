package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/flight-booking-session/internal/middleware"
    "github.com/iliyamo/flight-booking-session/internal/model"
)

// SessionManager is the slice of the booking core consumed by the
// session handler. Declaring it here keeps the handler testable with a
// mock while the real *booking.Manager satisfies it unchanged.
type SessionManager interface {
    GetOrCreate(ctx context.Context, sessionID, ownerID string) (*model.BookingSession, error)
    SelectFlight(ctx context.Context, sessionID, ownerID string, flightIDs []uint64, passengers int) (*model.BookingSession, error)
    GetExisting(ctx context.Context, sessionID string) (*model.BookingSession, error)
    RefreshTotals(ctx context.Context, doc *model.BookingSession) (model.PriceBreakdown, error)
    Extend(ctx context.Context, sessionID string, minutes int) (*model.BookingSession, error)
    Cancel(ctx context.Context, sessionID string) error
    ValidateReadyForCommit(ctx context.Context, sessionID string) (bool, []string, error)
}

// SessionHandler exposes the session lifecycle over HTTP: create or
// resume, snapshot on reload, extend, cancel, and the readiness check
// consumed by the booking-confirmation step.
type SessionHandler struct {
    Sessions SessionManager
}

// NewSessionHandler constructs a SessionHandler.
func NewSessionHandler(sessions SessionManager) *SessionHandler {
    if sessions == nil {
        panic("nil SessionManager passed to NewSessionHandler")
    }
    return &SessionHandler{Sessions: sessions}
}

// sessionView shapes a session document for API responses.
type sessionView struct {
    ID         string               `json:"id"`
    OwnerID    string               `json:"owner_id,omitempty"`
    Passengers int                  `json:"passengers"`
    Legs       []model.LegBooking   `json:"legs"`
    Totals     model.PriceBreakdown `json:"totals"`
    ExpiresAt  string               `json:"expires_at"`
}

func newSessionView(doc *model.BookingSession) sessionView {
    legs := doc.Legs
    if legs == nil {
        legs = []model.LegBooking{}
    }
    return sessionView{
        ID:         doc.ID,
        OwnerID:    doc.OwnerID,
        Passengers: doc.Passengers,
        Legs:       legs,
        Totals:     doc.Totals,
        ExpiresAt:  doc.ExpiresAt.UTC().Format(time.RFC3339),
    }
}

// CreateOrResume handles POST /v1/sessions. Without a session_id in the
// body it creates a brand-new session; with one it resumes the live
// session, or recreates it under the same id after expiry so
// bookmarked flows keep working.
func (h *SessionHandler) CreateOrResume(c echo.Context) error {
    var body struct {
        SessionID string `json:"session_id"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    doc, err := h.Sessions.GetOrCreate(c.Request().Context(), body.SessionID, middleware.OwnerID(c))
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusCreated, newSessionView(doc))
}

// SelectFlight handles POST /v1/sessions/flights. It attaches the
// chosen leg(s) and passenger count, creating the session on first
// flight selection when no session_id is supplied.
func (h *SessionHandler) SelectFlight(c echo.Context) error {
    var body struct {
        SessionID  string   `json:"session_id"`
        FlightIDs  []uint64 `json:"flight_ids"`
        Passengers int      `json:"passengers"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    doc, err := h.Sessions.SelectFlight(c.Request().Context(), body.SessionID, middleware.OwnerID(c), body.FlightIDs, body.Passengers)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusCreated, newSessionView(doc))
}

// Snapshot handles GET /v1/sessions/:id. It is idempotent and used on
// page reload: current holds, cached totals and expiry in one response.
func (h *SessionHandler) Snapshot(c echo.Context) error {
    doc, err := h.Sessions.GetExisting(c.Request().Context(), c.Param("id"))
    if err != nil {
        return writeError(c, err)
    }
    if _, err := h.Sessions.RefreshTotals(c.Request().Context(), doc); err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, newSessionView(doc))
}

// Extend handles POST /v1/sessions/:id/extend with a JSON body giving
// the number of minutes from now the session should stay live.
func (h *SessionHandler) Extend(c echo.Context) error {
    var body struct {
        Minutes int `json:"minutes"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    doc, err := h.Sessions.Extend(c.Request().Context(), c.Param("id"), body.Minutes)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "expires_at": doc.ExpiresAt.UTC().Format(time.RFC3339),
    })
}

// Cancel handles DELETE /v1/sessions/:id. Every held seat and reserved
// service quantity is returned to the shared pool before the session
// disappears. Cancelling an unknown session succeeds: the end state is
// the same.
func (h *SessionHandler) Cancel(c echo.Context) error {
    if err := h.Sessions.Cancel(c.Request().Context(), c.Param("id")); err != nil {
        return writeError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// Ready handles GET /v1/sessions/:id/ready, the validation interface
// consumed by the external booking-confirmation step.
func (h *SessionHandler) Ready(c echo.Context) error {
    ready, reasons, err := h.Sessions.ValidateReadyForCommit(c.Request().Context(), c.Param("id"))
    if err != nil {
        return writeError(c, err)
    }
    if reasons == nil {
        reasons = []string{}
    }
    return c.JSON(http.StatusOK, echo.Map{
        "ready":   ready,
        "reasons": reasons,
    })
}
