package booking

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/flight-booking-session/internal/model"
    "github.com/iliyamo/flight-booking-session/internal/queue"
    "github.com/iliyamo/flight-booking-session/internal/repository"
)

func TestSweepOnceNothingToDo(t *testing.T) {
    tc := newTestCore(t)
    reaper := NewReaper(tc.manager, tc.ledger, tc.store, time.Minute)

    seats, sessions, err := reaper.SweepOnce(context.Background())
    require.NoError(t, err)
    assert.Zero(t, seats)
    assert.Zero(t, sessions)
}

func TestSweepOnceReleasesLapsedHolds(t *testing.T) {
    tc := newTestCore(t)
    ctx := context.Background()
    reaper := NewReaper(tc.manager, tc.ledger, tc.store, time.Minute)

    doc := tc.newSession(t, "s1")
    _, err := tc.seats.SelectSeat(ctx, doc.ID, 1, 0, 101)
    require.NoError(t, err)

    // Past the 15 minute hold window but inside the session envelope.
    tc.advance(16 * time.Minute)

    seats, sessions, err := reaper.SweepOnce(ctx)
    require.NoError(t, err)
    assert.Equal(t, int64(1), seats)
    assert.Zero(t, sessions)

    status, _ := tc.ledger.status(101)
    assert.Equal(t, model.SeatStatusAvailable, status)

    // The session itself survives; only its hold lapsed.
    _, err = tc.manager.GetExisting(ctx, doc.ID)
    assert.NoError(t, err)

    // The freed seat can be taken again straight away.
    tc.newSession(t, "s2")
    _, err = tc.seats.SelectSeat(ctx, "s2", 1, 0, 101)
    assert.NoError(t, err)
}

func TestSweepOnceDestroysExpiredSessions(t *testing.T) {
    tc := newTestCore(t)
    ctx := context.Background()
    reaper := NewReaper(tc.manager, tc.ledger, tc.store, time.Minute)

    doc := tc.newSession(t, "s1")
    _, err := tc.services.SelectService(ctx, doc.ID, 1, 0, model.ServiceCategoryBaggage, 202, 1)
    require.NoError(t, err)
    require.Equal(t, uint32(5), tc.inventory.sold(202))

    tc.advance(31 * time.Minute)

    seats, sessions, err := reaper.SweepOnce(ctx)
    require.NoError(t, err)
    assert.Zero(t, seats)
    assert.Equal(t, 1, sessions)

    // The capacity came back and the session is gone for good.
    assert.Equal(t, uint32(4), tc.inventory.sold(202))
    _, err = tc.store.Get(ctx, doc.ID)
    assert.ErrorIs(t, err, repository.ErrSessionNotFound)

    events := tc.publisher.closed()
    require.Len(t, events, 1)
    assert.Equal(t, queue.CloseReasonExpired, events[0].Reason)
}

func TestSweepOnceLeavesExtendedSessionAlone(t *testing.T) {
    tc := newTestCore(t)
    ctx := context.Background()
    reaper := NewReaper(tc.manager, tc.ledger, tc.store, time.Minute)

    doc := tc.newSession(t, "s1")
    tc.advance(20 * time.Minute)
    _, err := tc.manager.Extend(ctx, doc.ID, 60)
    require.NoError(t, err)
    tc.advance(15 * time.Minute)

    _, sessions, err := reaper.SweepOnce(ctx)
    require.NoError(t, err)
    assert.Zero(t, sessions)

    _, err = tc.manager.GetExisting(ctx, doc.ID)
    assert.NoError(t, err)
}

func TestSweepOnceIsIdempotent(t *testing.T) {
    tc := newTestCore(t)
    ctx := context.Background()
    reaper := NewReaper(tc.manager, tc.ledger, tc.store, time.Minute)

    doc := tc.newSession(t, "s1")
    _, err := tc.seats.SelectSeat(ctx, doc.ID, 1, 0, 101)
    require.NoError(t, err)

    tc.advance(31 * time.Minute)

    _, sessions, err := reaper.SweepOnce(ctx)
    require.NoError(t, err)
    assert.Equal(t, 1, sessions)

    seats, sessions, err := reaper.SweepOnce(ctx)
    require.NoError(t, err)
    assert.Zero(t, seats)
    assert.Zero(t, sessions)
    assert.Len(t, tc.publisher.closed(), 1)
}

func TestRunStopsOnContextCancel(t *testing.T) {
    tc := newTestCore(t)
    reaper := NewReaper(tc.manager, tc.ledger, tc.store, 10*time.Millisecond)

    ctx, cancel := context.WithCancel(context.Background())
    done := make(chan struct{})
    go func() {
        reaper.Run(ctx)
        close(done)
    }()

    cancel()
    select {
    case <-done:
    case <-time.After(2 * time.Second):
        t.Fatal("reaper did not stop after cancel")
    }
}
