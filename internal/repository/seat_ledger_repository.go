// Package repository contains data access logic for the seat ledger. This
// file implements the conditional state machine over leg_seats rows.
// All racing between sessions is resolved here: every transition is a
// single conditional UPDATE guarded by the current status (and holder,
// where relevant), so two concurrent callers can affect at most one row
// between them. Nothing in this file reads a row before deciding to
// write it.
package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "github.com/iliyamo/flight-booking-session/internal/model"
)

// SeatLedgerRepo encapsulates database operations for leg_seats.
type SeatLedgerRepo struct {
    db *sql.DB
}

// NewSeatLedgerRepo returns a new SeatLedgerRepo bound to the provided database.
func NewSeatLedgerRepo(db *sql.DB) *SeatLedgerRepo { return &SeatLedgerRepo{db: db} }

// GetByID loads a single seat row including its hold state. It returns
// ErrSeatNotFound when no row exists.
func (r *SeatLedgerRepo) GetByID(ctx context.Context, seatID uint64) (*model.Seat, error) {
    const q = `SELECT id, flight_id, row_label, seat_number, cabin_class, price_adjustment_cents,
                      status, held_by, held_at, hold_expires_at, created_at, updated_at
               FROM leg_seats WHERE id = ?`
    var s model.Seat
    err := r.db.QueryRowContext(ctx, q, seatID).Scan(
        &s.ID, &s.FlightID, &s.RowLabel, &s.SeatNumber, &s.CabinClass, &s.PriceAdjustmentCents,
        &s.Status, &s.HeldBy, &s.HeldAt, &s.HoldExpiresAt, &s.CreatedAt, &s.UpdatedAt,
    )
    if err == sql.ErrNoRows {
        return nil, ErrSeatNotFound
    }
    if err != nil {
        return nil, err
    }
    return &s, nil
}

// ListByFlight returns every seat row of one leg, ordered for a stable
// seat map rendering. Hold columns are included so callers can derive
// per-seat availability in a single query.
func (r *SeatLedgerRepo) ListByFlight(ctx context.Context, flightID uint64) ([]model.Seat, error) {
    const q = `SELECT id, flight_id, row_label, seat_number, cabin_class, price_adjustment_cents,
                      status, held_by, held_at, hold_expires_at, created_at, updated_at
               FROM leg_seats WHERE flight_id = ? ORDER BY seat_number, row_label`
    rows, err := r.db.QueryContext(ctx, q, flightID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var seats []model.Seat
    for rows.Next() {
        var s model.Seat
        if err := rows.Scan(
            &s.ID, &s.FlightID, &s.RowLabel, &s.SeatNumber, &s.CabinClass, &s.PriceAdjustmentCents,
            &s.Status, &s.HeldBy, &s.HeldAt, &s.HoldExpiresAt, &s.CreatedAt, &s.UpdatedAt,
        ); err != nil {
            return nil, err
        }
        seats = append(seats, s)
    }
    return seats, rows.Err()
}

// CheckAvailability returns the subset of the given seat IDs that are
// currently acquirable. The view is point-in-time and advisory only:
// a seat reported available here can still be lost to a concurrent
// session before Block is called.
func (r *SeatLedgerRepo) CheckAvailability(ctx context.Context, seatIDs []uint64) ([]uint64, error) {
    if len(seatIDs) == 0 {
        return []uint64{}, nil
    }
    query := `SELECT id FROM leg_seats WHERE status = 'AVAILABLE' AND id IN (` +
        strings.TrimSuffix(strings.Repeat("?,", len(seatIDs)), ",") + `)`
    args := make([]interface{}, 0, len(seatIDs))
    for _, id := range seatIDs {
        args = append(args, id)
    }
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var available []uint64
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        available = append(available, id)
    }
    return available, rows.Err()
}

// Block transitions one seat AVAILABLE -> BLOCKED on behalf of a
// session, stamping holder and deadline in the same statement. The
// WHERE guard on the current status is what makes concurrent racers
// safe: between two callers at most one UPDATE matches. Zero affected
// rows means the seat was not acquirable and is reported as
// ErrSeatUnavailable, never as a storage failure.
func (r *SeatLedgerRepo) Block(ctx context.Context, seatID uint64, sessionID string, holdWindow time.Duration) error {
    const q = `UPDATE leg_seats
               SET status = 'BLOCKED', held_by = ?, held_at = UTC_TIMESTAMP(),
                   hold_expires_at = DATE_ADD(UTC_TIMESTAMP(), INTERVAL ? SECOND)
               WHERE id = ? AND status = 'AVAILABLE'`
    res, err := r.db.ExecContext(ctx, q, sessionID, int64(holdWindow.Seconds()), seatID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrSeatUnavailable
    }
    return nil
}

// Release transitions one seat BLOCKED -> AVAILABLE, but only when the
// named session is still the holder. The holder guard means a stale or
// expired caller cannot release a seat some other session has since
// acquired. Releasing a seat the session does not hold is a no-op and
// returns nil.
func (r *SeatLedgerRepo) Release(ctx context.Context, seatID uint64, sessionID string) error {
    const q = `UPDATE leg_seats
               SET status = 'AVAILABLE', held_by = NULL, held_at = NULL, hold_expires_at = NULL
               WHERE id = ? AND status = 'BLOCKED' AND held_by = ?`
    _, err := r.db.ExecContext(ctx, q, seatID, sessionID)
    return err
}

// ReleaseExpired bulk-releases every seat whose hold deadline has
// passed and returns the number of seats freed. The statement is
// idempotent and carries its own guard, so multiple reaper instances
// can run it concurrently without double-freeing anything.
func (r *SeatLedgerRepo) ReleaseExpired(ctx context.Context) (int64, error) {
    const q = `UPDATE leg_seats
               SET status = 'AVAILABLE', held_by = NULL, held_at = NULL, hold_expires_at = NULL
               WHERE status = 'BLOCKED' AND hold_expires_at < UTC_TIMESTAMP()`
    res, err := r.db.ExecContext(ctx, q)
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}
