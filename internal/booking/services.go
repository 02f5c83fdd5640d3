package booking

import (
    "context"
    "errors"

    "github.com/iliyamo/flight-booking-session/internal/model"
    "github.com/iliyamo/flight-booking-session/internal/repository"
)

// ServiceSelector coordinates ancillary offer reservations for a
// session. Selection semantics mirror seats: at most one offer per
// (passenger, category) per leg, replace-on-reselect, and the shared
// counter in the ledger is the only authority on remaining capacity.
type ServiceSelector struct {
    sessions  *Manager
    inventory ServiceLedger
    offers    OfferCatalog
}

// NewServiceSelector constructs a ServiceSelector.
func NewServiceSelector(sessions *Manager, inventory ServiceLedger, offers OfferCatalog) *ServiceSelector {
    if sessions == nil || inventory == nil || offers == nil {
        panic("nil dependency passed to NewServiceSelector")
    }
    return &ServiceSelector{sessions: sessions, inventory: inventory, offers: offers}
}

// ServiceRequest is one entry of a batched leg-wide selection.
type ServiceRequest struct {
    PassengerIndex int    `json:"passenger_index"`
    Category       string `json:"category"`
    OfferID        uint64 `json:"offer_id"`
    Quantity       uint32 `json:"quantity"`
}

// ServiceResult reports the per-entry outcome of a batched selection.
// Error is empty on success.
type ServiceResult struct {
    PassengerIndex int    `json:"passenger_index"`
    Category       string `json:"category"`
    OfferID        uint64 `json:"offer_id"`
    Error          string `json:"error,omitempty"`
}

// SelectService reserves quantity units of an offer for one passenger
// in one category on one leg. An existing selection in the same slot is
// restored to inventory first; if the new reservation then loses a
// capacity race the prior selection is not re-acquired (symmetric to
// seat swaps) and the caller must re-select.
func (s *ServiceSelector) SelectService(ctx context.Context, sessionID string, flightID uint64, passengerIndex int, category string, offerID uint64, quantity uint32) (*model.BookingSession, error) {
    doc, err := s.sessions.GetExisting(ctx, sessionID)
    if err != nil {
        return nil, err
    }
    leg := doc.Leg(flightID)
    if leg == nil || passengerIndex < 0 || passengerIndex >= doc.Passengers || category == "" || quantity < 1 {
        return nil, ErrInvalidSelection
    }
    offer, err := s.offers.GetByID(ctx, offerID)
    if err != nil {
        return nil, err
    }
    if offer.FlightID != flightID || offer.Category != category {
        return nil, ErrInvalidSelection
    }
    if remaining := offer.Remaining(); remaining >= 0 && remaining < int64(quantity) {
        // Advisory fast-fail; Reserve below re-checks atomically.
        return nil, repository.ErrOfferUnavailable
    }

    prev := leg.ServiceFor(passengerIndex, category)
    if prev != nil && prev.OfferID == offerID && prev.Quantity == quantity {
        return doc, nil
    }
    if prev != nil {
        if err := s.inventory.Restore(ctx, prev.OfferID, prev.Quantity); err != nil {
            return nil, err
        }
        dropService(leg, passengerIndex, category)
    }

    if err := s.inventory.Reserve(ctx, offerID, quantity); err != nil {
        if errors.Is(err, repository.ErrOfferUnavailable) && prev != nil {
            if perr := s.sessions.persist(ctx, doc); perr != nil {
                return nil, perr
            }
        }
        return nil, err
    }

    leg.Services = append(leg.Services, model.ServiceSelection{
        PassengerIndex: passengerIndex,
        Category:       category,
        OfferID:        offer.ID,
        OfferName:      offer.Name,
        Quantity:       quantity,
        UnitPriceCents: offer.UnitPriceCents,
        SubtotalCents:  serviceSubtotal(offer, quantity),
        SelectedAt:     s.sessions.now().UTC(),
    })
    if err := s.sessions.persist(ctx, doc); err != nil {
        return nil, err
    }
    return doc, nil
}

// RemoveService returns a selection's quantity to inventory and drops
// it from the document. Removing an absent selection succeeds with
// zero ledger change.
func (s *ServiceSelector) RemoveService(ctx context.Context, sessionID string, flightID uint64, passengerIndex int, category string) (*model.BookingSession, error) {
    doc, err := s.sessions.GetExisting(ctx, sessionID)
    if err != nil {
        return nil, err
    }
    leg := doc.Leg(flightID)
    if leg == nil {
        return nil, ErrInvalidSelection
    }
    prev := leg.ServiceFor(passengerIndex, category)
    if prev == nil {
        return doc, nil
    }
    if err := s.inventory.Restore(ctx, prev.OfferID, prev.Quantity); err != nil {
        return nil, err
    }
    dropService(leg, passengerIndex, category)
    if err := s.sessions.persist(ctx, doc); err != nil {
        return nil, err
    }
    return doc, nil
}

// SelectServicesForLeg applies each entry independently and reports a
// per-entry outcome. Partial success is a valid result, not a failed
// transaction: entries that lost a capacity race or were malformed are
// marked while the rest stand.
func (s *ServiceSelector) SelectServicesForLeg(ctx context.Context, sessionID string, flightID uint64, requests []ServiceRequest) ([]ServiceResult, *model.BookingSession, error) {
    results := make([]ServiceResult, 0, len(requests))
    var doc *model.BookingSession
    for _, req := range requests {
        res := ServiceResult{PassengerIndex: req.PassengerIndex, Category: req.Category, OfferID: req.OfferID}
        updated, err := s.SelectService(ctx, sessionID, flightID, req.PassengerIndex, req.Category, req.OfferID, req.Quantity)
        switch {
        case errors.Is(err, repository.ErrSessionNotFound):
            // Without a session nothing later in the batch can succeed.
            return nil, nil, err
        case err != nil:
            res.Error = err.Error()
        default:
            doc = updated
        }
        results = append(results, res)
    }
    if doc == nil {
        // Nothing succeeded; return the current state for the response.
        var err error
        doc, err = s.sessions.GetExisting(ctx, sessionID)
        if err != nil {
            return nil, nil, err
        }
    }
    return results, doc, nil
}

// dropService removes the selection for one passenger and category from a leg.
func dropService(leg *model.LegBooking, passengerIndex int, category string) {
    kept := leg.Services[:0]
    for _, sel := range leg.Services {
        if sel.PassengerIndex != passengerIndex || sel.Category != category {
            kept = append(kept, sel)
        }
    }
    leg.Services = kept
}
