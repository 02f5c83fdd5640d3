// Package repository contains data access logic for the service
// inventory ledger. Offers are shared counters rather than individually
// addressed units, so correctness under concurrency depends on relative
// atomic updates: sold moves by a delta inside the database, never via
// an application-level read-modify-write, and the availability status
// flips in the same statement that moves the counter.
package repository

import (
    "context"
    "database/sql"
)

// ServiceInventoryRepo encapsulates database operations for service_offers.
type ServiceInventoryRepo struct {
    db *sql.DB
}

// NewServiceInventoryRepo returns a new ServiceInventoryRepo bound to the provided database.
func NewServiceInventoryRepo(db *sql.DB) *ServiceInventoryRepo {
    return &ServiceInventoryRepo{db: db}
}

// Reserve atomically adds quantity to an offer's sold counter,
// succeeding only when the result stays within capacity (offers with a
// NULL capacity are unlimited). The guard lives in the WHERE clause and
// the counter moves relative to its stored value, so two concurrent
// reservations for the last unit can never both succeed. MySQL applies
// SET assignments left to right, so the status CASE sees the already
// incremented sold value. Zero affected rows is reported as
// ErrOfferUnavailable.
func (r *ServiceInventoryRepo) Reserve(ctx context.Context, offerID uint64, quantity uint32) error {
    if quantity == 0 {
        return nil
    }
    const q = `UPDATE service_offers
               SET sold = sold + ?,
                   status = CASE WHEN capacity IS NOT NULL AND sold >= capacity
                                 THEN 'SOLD_OUT' ELSE 'AVAILABLE' END
               WHERE id = ? AND (capacity IS NULL OR sold + ? <= capacity)`
    res, err := r.db.ExecContext(ctx, q, quantity, offerID, quantity)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrOfferUnavailable
    }
    return nil
}

// Restore atomically subtracts quantity from an offer's sold counter,
// flooring at zero, and flips the status back to AVAILABLE when the
// counter drops below capacity. Restoring against a missing offer is a
// no-op: the selection being undone may reference an offer the catalog
// has since withdrawn, and failing the release would leak the hold.
func (r *ServiceInventoryRepo) Restore(ctx context.Context, offerID uint64, quantity uint32) error {
    if quantity == 0 {
        return nil
    }
    const q = `UPDATE service_offers
               SET sold = GREATEST(CAST(sold AS SIGNED) - ?, 0),
                   status = CASE WHEN capacity IS NULL OR sold < capacity
                                 THEN 'AVAILABLE' ELSE 'SOLD_OUT' END
               WHERE id = ?`
    _, err := r.db.ExecContext(ctx, q, quantity, offerID)
    return err
}
