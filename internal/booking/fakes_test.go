package booking

// fakes_test.go provides in-memory ledger and store implementations
// with the same conditional semantics as the SQL and Redis
// repositories. Each operation takes the fake's lock, so the atomicity
// the real storage guarantees per statement is reproduced here and the
// concurrency properties of the coordinators can be exercised without
// a database.

import (
    "context"
    "encoding/json"
    "sort"
    "sync"
    "testing"
    "time"

    "github.com/iliyamo/flight-booking-session/internal/model"
    "github.com/iliyamo/flight-booking-session/internal/queue"
    "github.com/iliyamo/flight-booking-session/internal/repository"
)

type fakeSeatLedger struct {
    mu    sync.Mutex
    seats map[uint64]*model.Seat
    now   func() time.Time
}

func newFakeSeatLedger(now func() time.Time, seats ...model.Seat) *fakeSeatLedger {
    l := &fakeSeatLedger{seats: make(map[uint64]*model.Seat), now: now}
    for _, s := range seats {
        copied := s
        l.seats[s.ID] = &copied
    }
    return l
}

func (l *fakeSeatLedger) GetByID(_ context.Context, seatID uint64) (*model.Seat, error) {
    l.mu.Lock()
    defer l.mu.Unlock()
    s, ok := l.seats[seatID]
    if !ok {
        return nil, repository.ErrSeatNotFound
    }
    copied := *s
    return &copied, nil
}

func (l *fakeSeatLedger) CheckAvailability(_ context.Context, seatIDs []uint64) ([]uint64, error) {
    l.mu.Lock()
    defer l.mu.Unlock()
    var available []uint64
    for _, id := range seatIDs {
        if s, ok := l.seats[id]; ok && s.Status == model.SeatStatusAvailable {
            available = append(available, id)
        }
    }
    return available, nil
}

func (l *fakeSeatLedger) Block(_ context.Context, seatID uint64, sessionID string, holdWindow time.Duration) error {
    l.mu.Lock()
    defer l.mu.Unlock()
    s, ok := l.seats[seatID]
    if !ok || s.Status != model.SeatStatusAvailable {
        return repository.ErrSeatUnavailable
    }
    now := l.now()
    deadline := now.Add(holdWindow)
    s.Status = model.SeatStatusBlocked
    s.HeldBy = &sessionID
    s.HeldAt = &now
    s.HoldExpiresAt = &deadline
    return nil
}

func (l *fakeSeatLedger) Release(_ context.Context, seatID uint64, sessionID string) error {
    l.mu.Lock()
    defer l.mu.Unlock()
    s, ok := l.seats[seatID]
    if !ok || s.Status != model.SeatStatusBlocked || s.HeldBy == nil || *s.HeldBy != sessionID {
        return nil
    }
    s.Status = model.SeatStatusAvailable
    s.HeldBy = nil
    s.HeldAt = nil
    s.HoldExpiresAt = nil
    return nil
}

func (l *fakeSeatLedger) ReleaseExpired(_ context.Context) (int64, error) {
    l.mu.Lock()
    defer l.mu.Unlock()
    now := l.now()
    var freed int64
    for _, s := range l.seats {
        if s.Status == model.SeatStatusBlocked && s.HoldExpiresAt != nil && s.HoldExpiresAt.Before(now) {
            s.Status = model.SeatStatusAvailable
            s.HeldBy = nil
            s.HeldAt = nil
            s.HoldExpiresAt = nil
            freed++
        }
    }
    return freed, nil
}

// status returns the current hold state of one seat for assertions.
func (l *fakeSeatLedger) status(seatID uint64) (string, string) {
    l.mu.Lock()
    defer l.mu.Unlock()
    s := l.seats[seatID]
    holder := ""
    if s.HeldBy != nil {
        holder = *s.HeldBy
    }
    return s.Status, holder
}

type fakeInventory struct {
    mu     sync.Mutex
    offers map[uint64]*model.ServiceOffer
}

func newFakeInventory(offers ...model.ServiceOffer) *fakeInventory {
    inv := &fakeInventory{offers: make(map[uint64]*model.ServiceOffer)}
    for _, o := range offers {
        copied := o
        inv.offers[o.ID] = &copied
    }
    return inv
}

func (f *fakeInventory) GetByID(_ context.Context, offerID uint64) (*model.ServiceOffer, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    o, ok := f.offers[offerID]
    if !ok {
        return nil, repository.ErrOfferNotFound
    }
    copied := *o
    return &copied, nil
}

func (f *fakeInventory) Reserve(_ context.Context, offerID uint64, quantity uint32) error {
    f.mu.Lock()
    defer f.mu.Unlock()
    o, ok := f.offers[offerID]
    if !ok {
        return repository.ErrOfferUnavailable
    }
    if o.Capacity != nil && o.Sold+quantity > *o.Capacity {
        return repository.ErrOfferUnavailable
    }
    o.Sold += quantity
    if o.Capacity != nil && o.Sold >= *o.Capacity {
        o.Status = model.OfferStatusSoldOut
    }
    return nil
}

func (f *fakeInventory) Restore(_ context.Context, offerID uint64, quantity uint32) error {
    f.mu.Lock()
    defer f.mu.Unlock()
    o, ok := f.offers[offerID]
    if !ok {
        return nil
    }
    if quantity > o.Sold {
        o.Sold = 0
    } else {
        o.Sold -= quantity
    }
    if o.Capacity == nil || o.Sold < *o.Capacity {
        o.Status = model.OfferStatusAvailable
    }
    return nil
}

func (f *fakeInventory) sold(offerID uint64) uint32 {
    f.mu.Lock()
    defer f.mu.Unlock()
    return f.offers[offerID].Sold
}

type fakeStore struct {
    mu   sync.Mutex
    docs map[string][]byte
}

func newFakeStore() *fakeStore {
    return &fakeStore{docs: make(map[string][]byte)}
}

func (s *fakeStore) Get(_ context.Context, sessionID string) (*model.BookingSession, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    raw, ok := s.docs[sessionID]
    if !ok {
        return nil, repository.ErrSessionNotFound
    }
    var doc model.BookingSession
    if err := json.Unmarshal(raw, &doc); err != nil {
        return nil, err
    }
    return &doc, nil
}

func (s *fakeStore) Put(_ context.Context, doc *model.BookingSession) error {
    raw, err := json.Marshal(doc)
    if err != nil {
        return err
    }
    s.mu.Lock()
    defer s.mu.Unlock()
    s.docs[doc.ID] = raw
    return nil
}

func (s *fakeStore) Delete(_ context.Context, sessionID string) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    delete(s.docs, sessionID)
    return nil
}

func (s *fakeStore) ExpiredIDs(_ context.Context, now time.Time, limit int64) ([]string, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    var ids []string
    for id, raw := range s.docs {
        var doc model.BookingSession
        if err := json.Unmarshal(raw, &doc); err != nil {
            return nil, err
        }
        if !doc.ExpiresAt.After(now) {
            ids = append(ids, id)
        }
    }
    sort.Strings(ids)
    if int64(len(ids)) > limit {
        ids = ids[:limit]
    }
    return ids, nil
}

type fakeFlights struct {
    flights map[uint64]model.Flight
}

func newFakeFlights(flights ...model.Flight) *fakeFlights {
    f := &fakeFlights{flights: make(map[uint64]model.Flight)}
    for _, fl := range flights {
        f.flights[fl.ID] = fl
    }
    return f
}

func (f *fakeFlights) GetByID(_ context.Context, flightID uint64) (*model.Flight, error) {
    fl, ok := f.flights[flightID]
    if !ok {
        return nil, repository.ErrFlightNotFound
    }
    return &fl, nil
}

type fakePublisher struct {
    mu     sync.Mutex
    events []queue.SessionClosedEvent
}

func (p *fakePublisher) PublishSessionClosed(_ context.Context, event queue.SessionClosedEvent) error {
    p.mu.Lock()
    defer p.mu.Unlock()
    p.events = append(p.events, event)
    return nil
}

func (p *fakePublisher) closed() []queue.SessionClosedEvent {
    p.mu.Lock()
    defer p.mu.Unlock()
    return append([]queue.SessionClosedEvent(nil), p.events...)
}

// testCore bundles a fully wired booking core over fakes. The clock is
// adjustable so expiry behavior can be driven without sleeping.
type testCore struct {
    manager   *Manager
    seats     *SeatSelector
    services  *ServiceSelector
    ledger    *fakeSeatLedger
    inventory *fakeInventory
    store     *fakeStore
    publisher *fakePublisher

    mu  sync.Mutex
    now time.Time
}

func (tc *testCore) clock() time.Time {
    tc.mu.Lock()
    defer tc.mu.Unlock()
    return tc.now
}

func (tc *testCore) advance(d time.Duration) {
    tc.mu.Lock()
    defer tc.mu.Unlock()
    tc.now = tc.now.Add(d)
}

func uint32ptr(v uint32) *uint32 { return &v }

// newTestCore builds the default fixture: one scheduled leg with three
// seats and three offers, two passengers' worth of session capacity.
func newTestCore(t *testing.T) *testCore {
    t.Helper()
    tc := &testCore{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
    clock := tc.clock

    tc.ledger = newFakeSeatLedger(clock,
        model.Seat{ID: 101, FlightID: 1, RowLabel: "A", SeatNumber: 12, CabinClass: "ECONOMY", PriceAdjustmentCents: 50000, Status: model.SeatStatusAvailable},
        model.Seat{ID: 102, FlightID: 1, RowLabel: "B", SeatNumber: 12, CabinClass: "ECONOMY", Status: model.SeatStatusAvailable},
        model.Seat{ID: 103, FlightID: 1, RowLabel: "C", SeatNumber: 12, CabinClass: "ECONOMY", Status: model.SeatStatusMaintenance},
    )
    tc.inventory = newFakeInventory(
        model.ServiceOffer{ID: 201, FlightID: 1, Category: model.ServiceCategoryMeal, Name: "Hot meal", UnitPriceCents: 180000, Status: model.OfferStatusAvailable},
        model.ServiceOffer{ID: 202, FlightID: 1, Category: model.ServiceCategoryBaggage, Name: "Extra 23kg", UnitPriceCents: 90000, Capacity: uint32ptr(5), Sold: 4, Status: model.OfferStatusAvailable},
        model.ServiceOffer{ID: 203, FlightID: 1, Category: model.ServiceCategoryMeal, Name: "Cold snack", UnitPriceCents: 60000, Status: model.OfferStatusAvailable},
    )
    tc.store = newFakeStore()
    tc.publisher = &fakePublisher{}
    flights := newFakeFlights(model.Flight{ID: 1, FlightNumber: "IR652", Status: "SCHEDULED"})

    tc.manager = NewManager(tc.store, tc.ledger, tc.inventory, flights, 30*time.Minute, tc.publisher)
    tc.manager.now = clock
    tc.seats = NewSeatSelector(tc.manager, tc.ledger, 15*time.Minute)
    tc.services = NewServiceSelector(tc.manager, tc.inventory, tc.inventory)
    return tc
}

// newSession creates a live session with the default leg and two passengers.
func (tc *testCore) newSession(t *testing.T, id string) *model.BookingSession {
    t.Helper()
    doc, err := tc.manager.SelectFlight(context.Background(), id, "", []uint64{1}, 2)
    if err != nil {
        t.Fatalf("select flight: %v", err)
    }
    return doc
}
