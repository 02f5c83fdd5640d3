package booking

import (
    "context"
    "errors"
    "time"

    "github.com/iliyamo/flight-booking-session/internal/model"
    "github.com/iliyamo/flight-booking-session/internal/repository"
)

// SeatSelector coordinates seat holds for a session. It enforces one
// seat per passenger per leg and delegates every racy decision to the
// ledger's conditional transitions.
type SeatSelector struct {
    sessions   *Manager
    seats      SeatLedger
    holdWindow time.Duration
}

// NewSeatSelector constructs a SeatSelector with the given hold window.
func NewSeatSelector(sessions *Manager, seats SeatLedger, holdWindow time.Duration) *SeatSelector {
    if sessions == nil || seats == nil {
        panic("nil dependency passed to NewSeatSelector")
    }
    return &SeatSelector{sessions: sessions, seats: seats, holdWindow: holdWindow}
}

// SelectSeat places a hold on a seat for one passenger on one leg,
// releasing any seat that passenger already held on the leg. The free
// availability check up front is advisory; only the conditional Block
// decides who wins the seat. When the passenger already held a
// different seat and the new Block loses the race, the old seat stays
// released and the passenger ends up seatless: the caller must
// re-select. Narrowing that window would require holding two seats at
// once, which the one-seat-per-passenger rule forbids.
func (s *SeatSelector) SelectSeat(ctx context.Context, sessionID string, flightID uint64, passengerIndex int, seatID uint64) (*model.BookingSession, error) {
    doc, err := s.sessions.GetExisting(ctx, sessionID)
    if err != nil {
        return nil, err
    }
    leg := doc.Leg(flightID)
    if leg == nil || passengerIndex < 0 || passengerIndex >= doc.Passengers {
        return nil, ErrInvalidSelection
    }
    seat, err := s.seats.GetByID(ctx, seatID)
    if err != nil {
        return nil, err
    }
    if seat.FlightID != flightID {
        return nil, ErrInvalidSelection
    }

    prev := leg.SeatFor(passengerIndex)
    if prev != nil && prev.SeatID == seatID {
        // Re-selecting the held seat is an idempotent no-op.
        return doc, nil
    }

    available, err := s.seats.CheckAvailability(ctx, []uint64{seatID})
    if err != nil {
        return nil, err
    }
    if len(available) == 0 {
        return nil, repository.ErrSeatUnavailable
    }

    if prev != nil {
        if err := s.seats.Release(ctx, prev.SeatID, sessionID); err != nil {
            return nil, err
        }
        dropSeat(leg, passengerIndex)
    }

    if err := s.seats.Block(ctx, seatID, sessionID, s.holdWindow); err != nil {
        if errors.Is(err, repository.ErrSeatUnavailable) && prev != nil {
            // The old seat is already gone; record that before surfacing
            // the loss so the document matches the ledger.
            if perr := s.sessions.persist(ctx, doc); perr != nil {
                return nil, perr
            }
        }
        return nil, err
    }

    leg.Seats = append(leg.Seats, model.SeatSelection{
        PassengerIndex:       passengerIndex,
        SeatID:               seat.ID,
        SeatLabel:            seat.Label(),
        PriceAdjustmentCents: seat.PriceAdjustmentCents,
        SelectedAt:           s.sessions.now().UTC(),
    })
    if err := s.sessions.persist(ctx, doc); err != nil {
        return nil, err
    }
    return doc, nil
}

// RemoveSeat releases the seat a passenger holds on a leg and drops the
// selection from the document. Removing when nothing is held succeeds
// with zero ledger change.
func (s *SeatSelector) RemoveSeat(ctx context.Context, sessionID string, flightID uint64, passengerIndex int) (*model.BookingSession, error) {
    doc, err := s.sessions.GetExisting(ctx, sessionID)
    if err != nil {
        return nil, err
    }
    leg := doc.Leg(flightID)
    if leg == nil {
        return nil, ErrInvalidSelection
    }
    prev := leg.SeatFor(passengerIndex)
    if prev == nil {
        return doc, nil
    }
    if err := s.seats.Release(ctx, prev.SeatID, sessionID); err != nil {
        return nil, err
    }
    dropSeat(leg, passengerIndex)
    if err := s.sessions.persist(ctx, doc); err != nil {
        return nil, err
    }
    return doc, nil
}

// dropSeat removes the seat selection for one passenger from a leg.
func dropSeat(leg *model.LegBooking, passengerIndex int) {
    kept := leg.Seats[:0]
    for _, sel := range leg.Seats {
        if sel.PassengerIndex != passengerIndex {
            kept = append(kept, sel)
        }
    }
    leg.Seats = kept
}
