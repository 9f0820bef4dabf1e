package health

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionStoreChecker pings whichever backend holds staff sessions.
type SessionStoreChecker struct {
	backend string
	ping    func(ctx context.Context) error
}

func PostgresSessionStore(pool *pgxpool.Pool) *SessionStoreChecker {
	return &SessionStoreChecker{backend: "postgres", ping: pool.Ping}
}

func RedisSessionStore(client *redis.Client) *SessionStoreChecker {
	return &SessionStoreChecker{
		backend: "redis",
		ping:    func(ctx context.Context) error { return client.Ping(ctx).Err() },
	}
}

func (c *SessionStoreChecker) Backend() string {
	return c.backend
}

func (c *SessionStoreChecker) Name() string {
	return "session_store"
}

func (c *SessionStoreChecker) Check(ctx context.Context) Result {
	if err := c.ping(ctx); err != nil {
		return Result{Status: StatusDown, Message: c.backend + ": " + err.Error()}
	}
	return Result{Status: StatusUp}
}
