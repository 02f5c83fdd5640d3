package model

import "time"

// SessionSchemaVersion is stamped on every persisted session document
// so the shape can evolve without guessing what a stored blob means.
const SessionSchemaVersion = 1

// BookingSession is the serialized state of one shopper's in-progress
// selections.  It is stored as a JSON document keyed by session id and
// rewritten wholesale on every mutation; the individual seat and
// service holds it lists are owned by the ledgers, which stay correct
// regardless of how document writes interleave.
//
// Fields:
//  ID            – opaque session token.
//  OwnerID       – optional identity reference; empty for guests.
//  SchemaVersion – document shape version, see SessionSchemaVersion.
//  Passengers    – number of travellers covered by this session.
//  Legs          – selected flight legs with their current holds.
//  Totals        – cached price breakdown over current holds.
//  CreatedAt     – when the session was first created.
//  ExpiresAt     – outer deadline; while live this is in the future.
type BookingSession struct {
    ID            string         `json:"id"`
    OwnerID       string         `json:"owner_id,omitempty"`
    SchemaVersion int            `json:"schema_version"`
    Passengers    int            `json:"passengers"`
    Legs          []LegBooking   `json:"legs"`
    Totals        PriceBreakdown `json:"totals"`
    CreatedAt     time.Time      `json:"created_at"`
    ExpiresAt     time.Time      `json:"expires_at"`
}

// LegBooking groups the holds one session has on a single flight leg.
type LegBooking struct {
    FlightID uint64             `json:"flight_id"`
    Seats    []SeatSelection    `json:"seats,omitempty"`
    Services []ServiceSelection `json:"services,omitempty"`
}

// SeatSelection records one held seat.  At most one exists per
// passenger index within a leg; selecting a new seat replaces it.
// The price adjustment is captured at selection time so totals stay a
// stable snapshot even if catalog prices change mid-session.
type SeatSelection struct {
    PassengerIndex       int       `json:"passenger_index"`
    SeatID               uint64    `json:"seat_id"`
    SeatLabel            string    `json:"seat_label"`
    PriceAdjustmentCents int64     `json:"price_adjustment_cents"`
    SelectedAt           time.Time `json:"selected_at"`
}

// ServiceSelection records one reserved ancillary offer.  At most one
// exists per (passenger index, category) within a leg.
type ServiceSelection struct {
    PassengerIndex int       `json:"passenger_index"`
    Category       string    `json:"category"`
    OfferID        uint64    `json:"offer_id"`
    OfferName      string    `json:"offer_name"`
    Quantity       uint32    `json:"quantity"`
    UnitPriceCents int64     `json:"unit_price_cents"`
    SubtotalCents  int64     `json:"subtotal_cents"`
    SelectedAt     time.Time `json:"selected_at"`
}

// PriceBreakdown is the monetary summary of a session's current holds.
type PriceBreakdown struct {
    SeatChargesCents    int64 `json:"seat_charges_cents"`
    ServiceChargesCents int64 `json:"service_charges_cents"`
    GrandTotalCents     int64 `json:"grand_total_cents"`
}

// Live reports whether the session's outer deadline is still ahead of
// the supplied instant.
func (s *BookingSession) Live(now time.Time) bool {
    return s.ExpiresAt.After(now)
}

// Leg returns the leg entry for the given flight, or nil when the
// session does not recognise that leg.
func (s *BookingSession) Leg(flightID uint64) *LegBooking {
    for i := range s.Legs {
        if s.Legs[i].FlightID == flightID {
            return &s.Legs[i]
        }
    }
    return nil
}

// SeatFor returns the seat selection held by the given passenger on
// this leg, or nil when none is held.
func (l *LegBooking) SeatFor(passengerIndex int) *SeatSelection {
    for i := range l.Seats {
        if l.Seats[i].PassengerIndex == passengerIndex {
            return &l.Seats[i]
        }
    }
    return nil
}

// ServiceFor returns the selection held by the given passenger in the
// given category on this leg, or nil when none is held.
func (l *LegBooking) ServiceFor(passengerIndex int, category string) *ServiceSelection {
    for i := range l.Services {
        if l.Services[i].PassengerIndex == passengerIndex && l.Services[i].Category == category {
            return &l.Services[i]
        }
    }
    return nil
}

// HasHolds reports whether the session currently holds any seat or
// service on any leg.
func (s *BookingSession) HasHolds() bool {
    for i := range s.Legs {
        if len(s.Legs[i].Seats) > 0 || len(s.Legs[i].Services) > 0 {
            return true
        }
    }
    return false
}
