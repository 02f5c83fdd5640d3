package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types

    "github.com/joho/godotenv" // godotenv loads a local .env file during development
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  The types reflect how the values are used
// in the application: strings for identifiers and secrets, ints for
// durations and policy windows.
type Config struct {
    Env               string // application environment (e.g. "dev", "prod")
    Port              string // HTTP port to listen on
    DBUser            string // database username
    DBPass            string // database password (optional)
    DBHost            string // database host address
    DBPort            string // database port number
    DBName            string // database name
    JWTSecret         string // secret for verifying optional owner tokens (empty disables identity)
    HoldTTLMin        int    // seat hold window in minutes
    SessionTTLMin     int    // session envelope time-to-live in minutes
    ReaperIntervalSec int    // seconds between reaper sweeps
}

// Load reads configuration values from environment variables and returns
// a Config.  A .env file is honoured when present.  Required variables
// are enforced by must() and missing values cause the program to exit
// with a fatal log message; policy windows fall back to their defaults.
func Load() Config {
    _ = godotenv.Load() // best effort; real environments set vars directly
    return Config{
        Env:               must("APP_ENV"),      // environment (dev/test/prod)
        Port:              must("APP_PORT"),     // port to bind the HTTP server
        DBUser:            must("DB_USER"),      // database user
        DBPass:            os.Getenv("DB_PASS"), // database password (empty allowed)
        DBHost:            must("DB_HOST"),      // database host
        DBPort:            must("DB_PORT"),      // database port
        DBName:            must("DB_NAME"),      // database name
        JWTSecret:         os.Getenv("JWT_SECRET"),                 // empty means guests only
        HoldTTLMin:        getenvInt("HOLD_TTL_MIN", 15),           // seat hold window
        SessionTTLMin:     getenvInt("SESSION_TTL_MIN", 30),        // session envelope
        ReaperIntervalSec: getenvInt("REAPER_INTERVAL_SEC", 120),   // sweep cadence
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// getenvInt retrieves an optional integer environment variable, falling
// back to the provided default when unset.  An unparsable value is a
// configuration bug and exits fatally, like must().
func getenvInt(key string, def int) int {
    s := os.Getenv(key)
    if s == "" {
        return def
    }
    n, err := strconv.Atoi(s)
    if err != nil || n < 1 {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}
