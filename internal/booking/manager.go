package booking

import (
    "context"
    "errors"
    "fmt"
    "log"
    "time"

    "github.com/google/uuid"

    "github.com/iliyamo/flight-booking-session/internal/model"
    "github.com/iliyamo/flight-booking-session/internal/queue"
    "github.com/iliyamo/flight-booking-session/internal/repository"
)

// Manager owns the booking session lifecycle: create/resume, fetch,
// extend, cascade-destroy and readiness validation. Sessions move
// through {absent} -> live -> expired -> {absent}; a live session is
// one whose expiry lies in the future. Every cascade releases ledgers
// before deleting the document, so a crash mid-cascade leaves at worst
// a harmless orphaned document, never an orphaned hold.
type Manager struct {
    store      SessionStore
    seats      SeatLedger
    inventory  ServiceLedger
    flights    FlightCatalog
    sessionTTL time.Duration
    events     EventPublisher // optional; nil disables publishing
    now        func() time.Time
}

// NewManager constructs a Manager. events may be nil when no broker is
// configured.
func NewManager(store SessionStore, seats SeatLedger, inventory ServiceLedger, flights FlightCatalog, sessionTTL time.Duration, events EventPublisher) *Manager {
    if store == nil || seats == nil || inventory == nil || flights == nil {
        panic("nil dependency passed to NewManager")
    }
    return &Manager{
        store:      store,
        seats:      seats,
        inventory:  inventory,
        flights:    flights,
        sessionTTL: sessionTTL,
        events:     events,
        now:        time.Now,
    }
}

// GetOrCreate resolves a session id to a live session, creating one
// when needed. Semantics by case:
//   - empty id: a brand-new session under a fresh id.
//   - existing and live: returned unchanged (idempotent resume).
//   - existing but expired: its holds are cascade-released, then a
//     fresh session is created under the same id. Bookmarked and
//     resumed flows keep working through expiry on purpose; this must
//     not be turned into a not-found.
//   - absent: a fresh session under the given id.
func (m *Manager) GetOrCreate(ctx context.Context, sessionID, ownerID string) (*model.BookingSession, error) {
    if sessionID == "" {
        return m.create(ctx, uuid.NewString(), ownerID)
    }
    doc, err := m.store.Get(ctx, sessionID)
    if errors.Is(err, repository.ErrSessionNotFound) {
        return m.create(ctx, sessionID, ownerID)
    }
    if err != nil {
        return nil, err
    }
    if doc.Live(m.now()) {
        return doc, nil
    }
    if err := m.cleanup(ctx, doc, queue.CloseReasonExpired); err != nil {
        return nil, err
    }
    return m.create(ctx, sessionID, ownerID)
}

func (m *Manager) create(ctx context.Context, sessionID, ownerID string) (*model.BookingSession, error) {
    now := m.now()
    doc := &model.BookingSession{
        ID:            sessionID,
        OwnerID:       ownerID,
        SchemaVersion: model.SessionSchemaVersion,
        CreatedAt:     now,
        ExpiresAt:     now.Add(m.sessionTTL),
    }
    if err := m.store.Put(ctx, doc); err != nil {
        return nil, err
    }
    return doc, nil
}

// GetExisting fetches a session without ever creating one. Missing and
// expired sessions both surface as repository.ErrSessionNotFound; an
// expired session is cascade-released lazily on the way out so its
// holds do not have to wait for the reaper.
func (m *Manager) GetExisting(ctx context.Context, sessionID string) (*model.BookingSession, error) {
    doc, err := m.store.Get(ctx, sessionID)
    if err != nil {
        return nil, err
    }
    if !doc.Live(m.now()) {
        if err := m.cleanup(ctx, doc, queue.CloseReasonExpired); err != nil {
            log.Printf("session: lazy cleanup of %s failed: %v", sessionID, err)
        }
        return nil, repository.ErrSessionNotFound
    }
    return doc, nil
}

// SelectFlight attaches the chosen leg(s) and passenger count to a
// session, creating the session when none exists yet. Re-selecting
// flights is only allowed while the session holds nothing; afterwards
// the legs are fixed and a changed itinerary means a fresh session.
func (m *Manager) SelectFlight(ctx context.Context, sessionID, ownerID string, flightIDs []uint64, passengers int) (*model.BookingSession, error) {
    if len(flightIDs) == 0 || passengers < 1 {
        return nil, ErrInvalidSelection
    }
    for _, id := range flightIDs {
        flight, err := m.flights.GetByID(ctx, id)
        if err != nil {
            return nil, err
        }
        if flight.Status != "SCHEDULED" {
            return nil, ErrInvalidSelection
        }
    }
    doc, err := m.GetOrCreate(ctx, sessionID, ownerID)
    if err != nil {
        return nil, err
    }
    if doc.HasHolds() {
        return nil, ErrInvalidSelection
    }
    doc.Passengers = passengers
    doc.Legs = make([]model.LegBooking, 0, len(flightIDs))
    for _, id := range flightIDs {
        doc.Legs = append(doc.Legs, model.LegBooking{FlightID: id})
    }
    if err := m.persist(ctx, doc); err != nil {
        return nil, err
    }
    return doc, nil
}

// Extend pushes the session's expiry to the given number of minutes
// from now. It does not shorten a longer remaining window.
func (m *Manager) Extend(ctx context.Context, sessionID string, minutes int) (*model.BookingSession, error) {
    if minutes < 1 {
        return nil, ErrInvalidSelection
    }
    doc, err := m.GetExisting(ctx, sessionID)
    if err != nil {
        return nil, err
    }
    deadline := m.now().Add(time.Duration(minutes) * time.Minute)
    if deadline.After(doc.ExpiresAt) {
        doc.ExpiresAt = deadline
        if err := m.store.Put(ctx, doc); err != nil {
            return nil, err
        }
    }
    return doc, nil
}

// Cancel cascade-releases everything the session holds and deletes it,
// regardless of whether its expiry has already passed. Cancelling an
// absent session is not an error.
func (m *Manager) Cancel(ctx context.Context, sessionID string) error {
    doc, err := m.store.Get(ctx, sessionID)
    if errors.Is(err, repository.ErrSessionNotFound) {
        return nil
    }
    if err != nil {
        return err
    }
    return m.cleanup(ctx, doc, queue.CloseReasonCancelled)
}

// RefreshTotals recomputes the price breakdown over the session's
// current holds, caches it on the document and persists. Exposed for
// the snapshot path so a reload always reports consistent totals.
func (m *Manager) RefreshTotals(ctx context.Context, doc *model.BookingSession) (model.PriceBreakdown, error) {
    totals := ComputeTotals(doc)
    if totals != doc.Totals {
        doc.Totals = totals
        if err := m.store.Put(ctx, doc); err != nil {
            return totals, err
        }
    }
    return totals, nil
}

// ValidateReadyForCommit reports whether the session can be converted
// into a permanent booking, with one reason per violated criterion:
// at least one leg selected, every passenger seated on every leg, and
// every held seat still blocked by this session in the ledger. The
// ledger is consulted directly rather than trusting hold timestamps in
// the document, since the ledger is the only source of truth for who
// holds what.
func (m *Manager) ValidateReadyForCommit(ctx context.Context, sessionID string) (bool, []string, error) {
    doc, err := m.GetExisting(ctx, sessionID)
    if err != nil {
        return false, nil, err
    }
    var reasons []string
    if len(doc.Legs) == 0 {
        reasons = append(reasons, "no flight selected")
    }
    now := m.now()
    for i := range doc.Legs {
        leg := &doc.Legs[i]
        for p := 0; p < doc.Passengers; p++ {
            if leg.SeatFor(p) == nil {
                reasons = append(reasons, fmt.Sprintf("passenger %d has no seat on flight %d", p, leg.FlightID))
            }
        }
        for _, sel := range leg.Seats {
            seat, err := m.seats.GetByID(ctx, sel.SeatID)
            if err != nil {
                return false, nil, err
            }
            // A hold past its deadline is as good as lost even before
            // the reaper reclaims the seat.
            held := seat.Status == model.SeatStatusBlocked && seat.HeldBy != nil && *seat.HeldBy == doc.ID &&
                seat.HoldExpiresAt != nil && seat.HoldExpiresAt.After(now)
            if !held {
                reasons = append(reasons, fmt.Sprintf("hold on seat %s has lapsed", sel.SeatLabel))
            }
        }
    }
    return len(reasons) == 0, reasons, nil
}

// persist recomputes cached totals, renews the session envelope and
// writes the document. Called after every successful mutation so
// activity keeps a session alive.
func (m *Manager) persist(ctx context.Context, doc *model.BookingSession) error {
    doc.Totals = ComputeTotals(doc)
    doc.ExpiresAt = m.now().Add(m.sessionTTL)
    return m.store.Put(ctx, doc)
}

// cleanup cascade-releases every resource the session still holds and
// then deletes the document. Ledgers are always released first: every
// release is conditional and idempotent, so partial failure leaves only
// re-runnable work behind, and the document survives until all holds
// are gone.
func (m *Manager) cleanup(ctx context.Context, doc *model.BookingSession, reason string) error {
    var seatsReleased, servicesReleased int
    for i := range doc.Legs {
        leg := &doc.Legs[i]
        for _, svc := range leg.Services {
            if err := m.inventory.Restore(ctx, svc.OfferID, svc.Quantity); err != nil {
                return fmt.Errorf("restore offer %d: %w", svc.OfferID, err)
            }
            servicesReleased++
        }
        for _, sel := range leg.Seats {
            if err := m.seats.Release(ctx, sel.SeatID, doc.ID); err != nil {
                return fmt.Errorf("release seat %d: %w", sel.SeatID, err)
            }
            seatsReleased++
        }
    }
    if err := m.store.Delete(ctx, doc.ID); err != nil {
        return err
    }
    m.publishClosed(ctx, doc, reason, seatsReleased, servicesReleased)
    return nil
}

func (m *Manager) publishClosed(ctx context.Context, doc *model.BookingSession, reason string, seats, services int) {
    if m.events == nil {
        return
    }
    event := queue.SessionClosedEvent{
        SessionID:        doc.ID,
        OwnerID:          doc.OwnerID,
        Reason:           reason,
        SeatsReleased:    seats,
        ServicesReleased: services,
        GrandTotalCents:  doc.Totals.GrandTotalCents,
        ClosedAt:         m.now().UTC().Format(time.RFC3339),
    }
    if err := m.events.PublishSessionClosed(ctx, event); err != nil {
        log.Printf("session: publish close event for %s failed: %v", doc.ID, err)
    }
}
