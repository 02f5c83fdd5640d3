package booking

import (
    "context"
    "errors"
    "log"
    "time"

    "github.com/iliyamo/flight-booking-session/internal/queue"
    "github.com/iliyamo/flight-booking-session/internal/repository"
)

// reaperBatch bounds how many expired sessions one sweep will load.
// Anything beyond the batch is picked up by the next tick.
const reaperBatch = 100

// Reaper is the periodic background process reclaiming expired
// resources. Each sweep first bulk-releases seats whose per-hold
// deadline has passed, then cascade-destroys sessions whose own outer
// expiry has elapsed. Every transition it performs is conditional and
// idempotent, so multiple reaper instances may run concurrently
// without coordination; no singleton guard exists on purpose.
type Reaper struct {
    sessions *Manager
    seats    SeatLedger
    store    SessionStore
    interval time.Duration
}

// NewReaper constructs a Reaper sweeping at the given interval.
func NewReaper(sessions *Manager, seats SeatLedger, store SessionStore, interval time.Duration) *Reaper {
    if sessions == nil || seats == nil || store == nil {
        panic("nil dependency passed to NewReaper")
    }
    return &Reaper{sessions: sessions, seats: seats, store: store, interval: interval}
}

// Run sweeps immediately and then on every tick until the context is
// cancelled. Sweep errors are logged and do not stop the loop.
func (r *Reaper) Run(ctx context.Context) {
    r.sweepAndLog(ctx)
    ticker := time.NewTicker(r.interval)
    defer ticker.Stop()
    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            r.sweepAndLog(ctx)
        }
    }
}

func (r *Reaper) sweepAndLog(ctx context.Context) {
    seatsFreed, sessionsReaped, err := r.SweepOnce(ctx)
    if err != nil {
        log.Printf("reaper: sweep failed: %v", err)
        return
    }
    if seatsFreed > 0 || sessionsReaped > 0 {
        log.Printf("reaper: released %d expired seat holds, destroyed %d expired sessions", seatsFreed, sessionsReaped)
    }
}

// SweepOnce performs one full sweep and reports what it reclaimed.
// Seat holds and session expiry are independent deadlines: holds are
// renewed per-action while the session expiry is the outer envelope,
// so both passes are needed.
func (r *Reaper) SweepOnce(ctx context.Context) (seatsFreed int64, sessionsReaped int, err error) {
    seatsFreed, err = r.seats.ReleaseExpired(ctx)
    if err != nil {
        return 0, 0, err
    }
    ids, err := r.store.ExpiredIDs(ctx, r.sessions.now(), reaperBatch)
    if err != nil {
        return seatsFreed, 0, err
    }
    for _, id := range ids {
        doc, err := r.store.Get(ctx, id)
        if errors.Is(err, repository.ErrSessionNotFound) {
            // A concurrent sweeper or an explicit cancel got here first;
            // clear any stray index entry and move on.
            if derr := r.store.Delete(ctx, id); derr != nil {
                log.Printf("reaper: drop index entry %s: %v", id, derr)
            }
            continue
        }
        if err != nil {
            return seatsFreed, sessionsReaped, err
        }
        if doc.Live(r.sessions.now()) {
            // Renewed between the scan and the load; leave it alone.
            continue
        }
        if err := r.sessions.cleanup(ctx, doc, queue.CloseReasonExpired); err != nil {
            log.Printf("reaper: cleanup of %s failed: %v", id, err)
            continue
        }
        sessionsReaped++
    }
    return seatsFreed, sessionsReaped, nil
}
