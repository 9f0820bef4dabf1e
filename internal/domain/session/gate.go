package session

import (
	"context"
	"log/slog"
)

// Navigator performs a history-replacing navigation.
type Navigator interface {
	Replace(path string)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) Replace(path string) { f(path) }

// Gate routes a client by the session state of a Store.
type Gate struct {
	nav Navigator
}

func NewGate(nav Navigator) *Gate {
	return &Gate{nav: nav}
}

// Run follows the store until ctx is done. Every non-pending snapshot
// produces a Replace, so a logout after the first redirect routes again.
func (g *Gate) Run(ctx context.Context, store *Store) {
	updates, unsubscribe := store.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case snap := <-updates:
			d := Decide(snap)
			if d.State == Pending {
				continue
			}
			slog.DebugContext(ctx, "Session gate routing",
				slog.String("state", d.State.String()),
				slog.String("target", d.Target),
			)
			g.nav.Replace(d.Target)
		}
	}
}
