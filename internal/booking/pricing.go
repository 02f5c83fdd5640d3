package booking

import "github.com/iliyamo/flight-booking-session/internal/model"

// ComputeTotals derives the monetary breakdown of a session's current
// holds. It is a pure function over the document: it trusts the price
// fields captured at selection time rather than re-querying the
// catalog, so totals remain a stable snapshot even if catalog prices
// change mid-session, and calling it twice on an unchanged document
// always yields the same result.
func ComputeTotals(doc *model.BookingSession) model.PriceBreakdown {
    var b model.PriceBreakdown
    for i := range doc.Legs {
        leg := &doc.Legs[i]
        for _, seat := range leg.Seats {
            b.SeatChargesCents += seat.PriceAdjustmentCents
        }
        for _, svc := range leg.Services {
            b.ServiceChargesCents += svc.SubtotalCents
        }
    }
    b.GrandTotalCents = b.SeatChargesCents + b.ServiceChargesCents
    return b
}

// LegSubtotal sums the charges held on one leg: seat adjustments plus
// service subtotals.
func LegSubtotal(leg *model.LegBooking) int64 {
    var sum int64
    for _, seat := range leg.Seats {
        sum += seat.PriceAdjustmentCents
    }
    for _, svc := range leg.Services {
        sum += svc.SubtotalCents
    }
    return sum
}

// serviceSubtotal prices one service selection. Units covered by the
// offer's free entitlement cost nothing; everything above it is billed
// at the unit price.
func serviceSubtotal(offer *model.ServiceOffer, quantity uint32) int64 {
    billable := int64(quantity) - int64(offer.FreeQuantity)
    if billable < 0 {
        billable = 0
    }
    return billable * offer.UnitPriceCents
}
