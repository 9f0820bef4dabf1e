package session

import (
	"context"
	"time"
)

//go:generate mockgen -source repo_port.go -destination mock_repo_port.go -package session

// Repo persists staff sessions by opaque token. Load returns nil, nil when
// no live session exists for the token.
type Repo interface {
	Load(ctx context.Context, token string) (*Staff, error)
	Save(ctx context.Context, token string, staff Staff, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
}
