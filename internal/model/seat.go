package model

import (
    "strconv"
    "time"
)

// Seat status values.  A seat moves between these states only through
// conditional transitions in the ledger; no other writer touches them.
const (
    SeatStatusAvailable   = "AVAILABLE"   // acquirable by any session
    SeatStatusBlocked     = "BLOCKED"     // temporarily held by one session
    SeatStatusBooked      = "BOOKED"      // converted into a permanent booking
    SeatStatusMaintenance = "MAINTENANCE" // withdrawn from sale
)

// Seat describes one physical seat on a scheduled flight leg together
// with its hold state.  Each combination of leg and seat number is
// unique.  HeldBy and HoldExpiresAt are both set exactly when the
// status is BLOCKED; this pairing is the ledger's core invariant.
//
// Fields:
//  ID                   – primary key identifier.
//  FlightID             – scheduled leg to which this seat belongs.
//  RowLabel             – letter or string designating the row.
//  SeatNumber           – number of the seat within the row.
//  CabinClass           – cabin the seat sits in (ECONOMY, BUSINESS, FIRST).
//  PriceAdjustmentCents – surcharge (or discount, negative) added to the
//                         fare when this seat is selected.
//  Status               – one of the SeatStatus* constants above.
//  HeldBy               – session currently holding the seat (nullable).
//  HeldAt               – when the current hold was acquired (nullable).
//  HoldExpiresAt        – when the current hold lapses (nullable).
//  CreatedAt            – creation timestamp.
//  UpdatedAt            – last update timestamp.
type Seat struct {
    ID                   uint64     // leg_seats.id
    FlightID             uint64     // leg_seats.flight_id
    RowLabel             string     // leg_seats.row_label
    SeatNumber           uint32     // leg_seats.seat_number
    CabinClass           string     // leg_seats.cabin_class
    PriceAdjustmentCents int64      // leg_seats.price_adjustment_cents
    Status               string     // leg_seats.status
    HeldBy               *string    // leg_seats.held_by (nullable)
    HeldAt               *time.Time // leg_seats.held_at (nullable)
    HoldExpiresAt        *time.Time // leg_seats.hold_expires_at (nullable)
    CreatedAt            time.Time  // leg_seats.created_at
    UpdatedAt            time.Time  // leg_seats.updated_at
}

// Label renders the human-readable seat designation, e.g. "12A".
func (s Seat) Label() string {
    return strconv.FormatUint(uint64(s.SeatNumber), 10) + s.RowLabel
}
