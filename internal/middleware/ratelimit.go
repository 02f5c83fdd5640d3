package middleware

// ratelimit.go implements a Redis-backed fixed-window limiter for the
// mutating selection routes. Every selection request ends in at least
// one conditional UPDATE against the ledgers, so a client retry loop
// translates directly into database write pressure; the limiter caps
// that per client. The counter lives in Redis so the limit holds across
// multiple service instances.

import (
    "fmt"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/flight-booking-session/internal/config"
)

// fixedWindowScript increments the per-window counter and stamps the
// window TTL on first use, atomically. It returns the counter value so
// the decision is made from a single round trip.
var fixedWindowScript = redis.NewScript(`
    local current = redis.call('INCR', KEYS[1])
    if current == 1 then
        redis.call('PEXPIRE', KEYS[1], ARGV[1])
    end
    return current
`)

// NewFixedWindow builds the limiter middleware from config. When the
// limiter is disabled or no Redis client is available it degrades to a
// pass-through, and a Redis error at request time fails open: losing
// rate limiting briefly is preferable to refusing selections.
func NewFixedWindow(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // Keyed per client and route so one hot endpoint cannot
            // starve the rest of the session flow.
            client := OwnerID(c)
            if client == "" {
                client = c.RealIP()
            }
            key := fmt.Sprintf("%s:%s:%s", cfg.Prefix, client, c.Path())
            n, err := fixedWindowScript.Run(c.Request().Context(), rdb,
                []string{key}, cfg.Window.Milliseconds()).Int64()
            if err != nil {
                return next(c)
            }
            if n > int64(cfg.Limit) {
                c.Response().Header().Set("Retry-After", strconv.Itoa(int(cfg.Window.Seconds())))
                return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
            }
            return next(c)
        }
    }
}
