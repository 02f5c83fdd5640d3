// Package booking implements the session orchestration core: seat and
// service selection coordination, session lifecycle, price aggregation
// and expiry reaping. It owns no storage of its own; everything racy is
// delegated to the ledgers behind the interfaces below, which must
// implement their conditional semantics atomically.
package booking

import (
    "context"
    "time"

    "github.com/iliyamo/flight-booking-session/internal/model"
    "github.com/iliyamo/flight-booking-session/internal/queue"
)

// SeatLedger is the per-seat state machine. Block and Release are
// conditional transitions: Block must succeed for at most one caller
// per seat, and Release must be a no-op unless the named session is
// the current holder.
type SeatLedger interface {
    GetByID(ctx context.Context, seatID uint64) (*model.Seat, error)
    CheckAvailability(ctx context.Context, seatIDs []uint64) ([]uint64, error)
    Block(ctx context.Context, seatID uint64, sessionID string, holdWindow time.Duration) error
    Release(ctx context.Context, seatID uint64, sessionID string) error
    ReleaseExpired(ctx context.Context) (int64, error)
}

// ServiceLedger is the shared capacity counter for ancillary offers.
// Reserve must apply a relative atomic increment guarded by capacity;
// Restore must floor at zero.
type ServiceLedger interface {
    Reserve(ctx context.Context, offerID uint64, quantity uint32) error
    Restore(ctx context.Context, offerID uint64, quantity uint32) error
}

// FlightCatalog answers whether a scheduled leg exists. The catalog is
// an external collaborator; only reads appear here.
type FlightCatalog interface {
    GetByID(ctx context.Context, flightID uint64) (*model.Flight, error)
}

// OfferCatalog answers what an ancillary offer is and currently costs.
type OfferCatalog interface {
    GetByID(ctx context.Context, offerID uint64) (*model.ServiceOffer, error)
}

// SessionStore persists whole session documents keyed by id and exposes
// the expiry scan used by the reaper. Document writes are
// last-writer-wins; correctness of individual holds never depends on
// document write ordering.
type SessionStore interface {
    Get(ctx context.Context, sessionID string) (*model.BookingSession, error)
    Put(ctx context.Context, doc *model.BookingSession) error
    Delete(ctx context.Context, sessionID string) error
    ExpiredIDs(ctx context.Context, now time.Time, limit int64) ([]string, error)
}

// EventPublisher receives session lifecycle events. Publishing is
// best-effort: failures are logged by implementations and never fail
// the operation that triggered the event.
type EventPublisher interface {
    PublishSessionClosed(ctx context.Context, event queue.SessionClosedEvent) error
}

// EventPublisherFunc adapts a plain function to the EventPublisher
// interface, mirroring http.HandlerFunc.
type EventPublisherFunc func(ctx context.Context, event queue.SessionClosedEvent) error

// PublishSessionClosed calls f(ctx, event).
func (f EventPublisherFunc) PublishSessionClosed(ctx context.Context, event queue.SessionClosedEvent) error {
    return f(ctx, event)
}
