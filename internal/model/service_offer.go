package model

import "time"

// Offer status values.  Unlike seats, offers are shared counters: the
// ledger flips the status in the same write that moves the sold count.
const (
    OfferStatusAvailable = "AVAILABLE"
    OfferStatusSoldOut   = "SOLD_OUT"
)

// Ancillary service categories recognised by the selection coordinator.
// Categories partition offers per leg: a passenger holds at most one
// offer per category on each leg.
const (
    ServiceCategoryMeal      = "MEAL"
    ServiceCategoryBaggage   = "BAGGAGE"
    ServiceCategoryLounge    = "LOUNGE"
    ServiceCategoryInsurance = "INSURANCE"
)

// ServiceOffer is a capacity-limited ancillary product sold alongside a
// flight leg (a meal choice, an extra baggage allowance, ...).  Offers
// are not individually addressed units: reserving one increments the
// shared Sold counter.  Sold never exceeds Capacity when Capacity is
// set, and Status is SOLD_OUT exactly when Sold equals Capacity.
//
// Fields:
//  ID             – primary key identifier.
//  FlightID       – scheduled leg the offer is sold for.
//  Category       – one of the ServiceCategory* constants above.
//  Name           – display name, e.g. "Vegetarian meal".
//  UnitPriceCents – price per unit in cents.
//  FreeQuantity   – units included in the fare at no charge.
//  Capacity       – maximum sellable units; nil means unlimited.
//  Sold           – units currently reserved or sold.
//  Status         – AVAILABLE or SOLD_OUT.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type ServiceOffer struct {
    ID             uint64    // service_offers.id
    FlightID       uint64    // service_offers.flight_id
    Category       string    // service_offers.category
    Name           string    // service_offers.name
    UnitPriceCents int64     // service_offers.unit_price_cents
    FreeQuantity   uint32    // service_offers.free_quantity
    Capacity       *uint32   // service_offers.capacity (nullable = unlimited)
    Sold           uint32    // service_offers.sold
    Status         string    // service_offers.status
    CreatedAt      time.Time // service_offers.created_at
    UpdatedAt      time.Time // service_offers.updated_at
}

// Remaining reports how many units can still be reserved.  It returns
// a negative value, meaning unlimited, when the offer has no capacity.
func (o ServiceOffer) Remaining() int64 {
    if o.Capacity == nil {
        return -1
    }
    return int64(*o.Capacity) - int64(o.Sold)
}
