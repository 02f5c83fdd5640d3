package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/flight-booking-session/internal/model"
)

// SeatBrowser is the read-only seat ledger slice used by the public
// browse endpoints.
type SeatBrowser interface {
    ListByFlight(ctx context.Context, flightID uint64) ([]model.Seat, error)
}

// OfferBrowser is the read-only offer catalog slice used by the public
// browse endpoints.
type OfferBrowser interface {
    ListByFlight(ctx context.Context, flightID uint64) ([]model.ServiceOffer, error)
}

// PublicHandler exposes unauthenticated read-only views of a leg's
// inventory so shoppers can preview the seat map and offer list before
// (or while) holding anything. Holder identities are never exposed;
// only whether each unit is currently acquirable.
type PublicHandler struct {
    Seats  SeatBrowser
    Offers OfferBrowser
}

// NewPublicHandler constructs a PublicHandler.
func NewPublicHandler(seats SeatBrowser, offers OfferBrowser) *PublicHandler {
    if seats == nil || offers == nil {
        panic("nil repository passed to NewPublicHandler")
    }
    return &PublicHandler{Seats: seats, Offers: offers}
}

// seatView is the sanitized per-seat representation: hold bookkeeping
// columns are reduced to a single status string.
type seatView struct {
    ID                   uint64 `json:"id"`
    Label                string `json:"label"`
    CabinClass           string `json:"cabin_class"`
    PriceAdjustmentCents int64  `json:"price_adjustment_cents"`
    Status               string `json:"status"`
}

// offerView is the sanitized per-offer representation. Remaining is
// omitted for unlimited offers.
type offerView struct {
    ID             uint64 `json:"id"`
    Category       string `json:"category"`
    Name           string `json:"name"`
    UnitPriceCents int64  `json:"unit_price_cents"`
    FreeQuantity   uint32 `json:"free_quantity"`
    Remaining      *int64 `json:"remaining,omitempty"`
    Status         string `json:"status"`
}

// GetLegSeats handles GET /v1/legs/:id/seats. A BLOCKED seat whose hold
// deadline has already passed is reported as AVAILABLE: the reaper will
// reclaim it shortly and the conditional block decides the truth anyway.
func (h *PublicHandler) GetLegSeats(c echo.Context) error {
    flightID, ok := pathUint(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
    }
    seats, err := h.Seats.ListByFlight(c.Request().Context(), flightID)
    if err != nil {
        return writeError(c, err)
    }
    now := time.Now().UTC()
    views := make([]seatView, 0, len(seats))
    for _, s := range seats {
        status := s.Status
        if status == model.SeatStatusBlocked && s.HoldExpiresAt != nil && s.HoldExpiresAt.Before(now) {
            status = model.SeatStatusAvailable
        }
        views = append(views, seatView{
            ID:                   s.ID,
            Label:                s.Label(),
            CabinClass:           s.CabinClass,
            PriceAdjustmentCents: s.PriceAdjustmentCents,
            Status:               status,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"seats": views})
}

// GetLegServices handles GET /v1/legs/:id/services, listing the
// ancillary offers sold for a leg grouped by category.
func (h *PublicHandler) GetLegServices(c echo.Context) error {
    flightID, ok := pathUint(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
    }
    offers, err := h.Offers.ListByFlight(c.Request().Context(), flightID)
    if err != nil {
        return writeError(c, err)
    }
    views := make([]offerView, 0, len(offers))
    for _, o := range offers {
        v := offerView{
            ID:             o.ID,
            Category:       o.Category,
            Name:           o.Name,
            UnitPriceCents: o.UnitPriceCents,
            FreeQuantity:   o.FreeQuantity,
            Status:         o.Status,
        }
        if remaining := o.Remaining(); remaining >= 0 {
            v.Remaining = &remaining
        }
        views = append(views, v)
    }
    return c.JSON(http.StatusOK, echo.Map{"services": views})
}
