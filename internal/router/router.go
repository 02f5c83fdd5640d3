package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing

    "github.com/iliyamo/flight-booking-session/internal/handler" // import the handlers that implement the endpoints
)

// RegisterRoutes registers routes that carry no session context on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // Used by load balancers and monitoring to verify the service is up.
    e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated browse endpoints. These
// are read-only previews of a leg's inventory and apply no rate
// limiting: they never touch the conditional-update ledgers.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler) {
    // Seat map of one scheduled leg, with per-seat acquirability.
    e.GET("/v1/legs/:id/seats", p.GetLegSeats)
    // Ancillary offers sold for one scheduled leg.
    e.GET("/v1/legs/:id/services", p.GetLegServices)
}

// RegisterSessions registers the booking-session API. Identity is
// optional on every route: a valid Bearer token binds the session to an
// owner, while guests proceed without one. The mutating selection
// routes additionally pass through the rate limiter since each of them
// ends in conditional writes against the shared ledgers.
func RegisterSessions(e *echo.Echo, s *handler.SessionHandler, seats *handler.SeatSelectionHandler, services *handler.ServiceSelectionHandler, identity echo.MiddlewareFunc, limiter echo.MiddlewareFunc) {
    g := e.Group("/v1/sessions", identity)

    // Session lifecycle.
    g.POST("", s.CreateOrResume)
    g.POST("/flights", s.SelectFlight)
    g.GET("/:id", s.Snapshot)
    g.POST("/:id/extend", s.Extend)
    g.DELETE("/:id", s.Cancel)
    // Readiness check consumed by the booking-confirmation step.
    g.GET("/:id/ready", s.Ready)

    // Seat and service selection, rate limited per client.
    sel := g.Group("", limiter)
    sel.PUT("/:id/flights/:flightId/passengers/:paxIndex/seat", seats.Select)
    sel.DELETE("/:id/flights/:flightId/passengers/:paxIndex/seat", seats.Remove)
    sel.PUT("/:id/flights/:flightId/passengers/:paxIndex/services/:category", services.Select)
    sel.DELETE("/:id/flights/:flightId/passengers/:paxIndex/services/:category", services.Remove)
    sel.POST("/:id/flights/:flightId/services", services.SelectForLeg)
}
