// Package repository contains the Redis-backed session document store.
// Each booking session is one JSON document under session:<id>, plus a
// membership entry in a sorted set scored by the session's expiry so
// the reaper can scan lapsed sessions cheaply. The document itself
// carries no Redis TTL on purpose: expiry must be observed by this
// service so the cascade (release ledgers, then delete the document)
// can run. Letting Redis silently drop the key would strand service
// reservations forever.
package repository

import (
    "context"
    "encoding/json"
    "strconv"
    "time"

    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/flight-booking-session/internal/model"
)

const (
    sessionKeyPrefix  = "session:"
    sessionExpiryZSet = "sessions:by_expiry"
)

// SessionRepo provides document-level access to booking sessions.
// Writes are whole-document and last-writer-wins; per-resource
// correctness lives in the SQL ledgers, not here.
type SessionRepo struct {
    rdb *redis.Client
}

// NewSessionRepo returns a new SessionRepo bound to the provided Redis client.
func NewSessionRepo(rdb *redis.Client) *SessionRepo { return &SessionRepo{rdb: rdb} }

func sessionKey(id string) string { return sessionKeyPrefix + id }

// Get loads and decodes one session document. It returns
// ErrSessionNotFound when the key is absent; deciding whether a present
// document is still live is the manager's job.
func (r *SessionRepo) Get(ctx context.Context, sessionID string) (*model.BookingSession, error) {
    raw, err := r.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
    if err == redis.Nil {
        return nil, ErrSessionNotFound
    }
    if err != nil {
        return nil, err
    }
    var doc model.BookingSession
    if err := json.Unmarshal(raw, &doc); err != nil {
        return nil, err
    }
    return &doc, nil
}

// Put encodes and stores the whole session document and records its
// expiry in the scan index. Both writes go through a pipeline so a
// stored document is always discoverable by the reaper.
func (r *SessionRepo) Put(ctx context.Context, doc *model.BookingSession) error {
    raw, err := json.Marshal(doc)
    if err != nil {
        return err
    }
    pipe := r.rdb.TxPipeline()
    pipe.Set(ctx, sessionKey(doc.ID), raw, 0)
    pipe.ZAdd(ctx, sessionExpiryZSet, redis.Z{
        Score:  float64(doc.ExpiresAt.Unix()),
        Member: doc.ID,
    })
    _, err = pipe.Exec(ctx)
    return err
}

// Delete removes the session document and its scan-index entry.
// Deleting an absent session is a no-op, which keeps concurrent reaper
// instances and explicit cancellation safe against each other.
func (r *SessionRepo) Delete(ctx context.Context, sessionID string) error {
    pipe := r.rdb.TxPipeline()
    pipe.Del(ctx, sessionKey(sessionID))
    pipe.ZRem(ctx, sessionExpiryZSet, sessionID)
    _, err := pipe.Exec(ctx)
    return err
}

// ExpiredIDs returns up to limit session ids whose recorded expiry is
// at or before the given instant, oldest first. A returned id may have
// been deleted by a concurrent sweeper by the time the caller loads it;
// callers must tolerate ErrSessionNotFound.
func (r *SessionRepo) ExpiredIDs(ctx context.Context, now time.Time, limit int64) ([]string, error) {
    return r.rdb.ZRangeByScore(ctx, sessionExpiryZSet, &redis.ZRangeBy{
        Min:   "-inf",
        Max:   strconv.FormatInt(now.Unix(), 10),
        Count: limit,
    }).Result()
}
