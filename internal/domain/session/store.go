package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var ErrNoToken = errors.New("session has no token")

// DefaultLoadTimeout bounds the repo read made by Hydrate.
const DefaultLoadTimeout = 5 * time.Second

type StoreOption func(*Store)

// WithLoadTimeout overrides DefaultLoadTimeout. Non-positive values are ignored.
func WithLoadTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.loadTimeout = d
		}
	}
}

// Store holds one client's staff session. It starts loading and becomes
// ready exactly once, after the first Hydrate has finished reading the repo.
// Readers either Await readiness or Subscribe to every change.
type Store struct {
	repo        Repo
	token       string
	ttl         time.Duration
	loadTimeout time.Duration

	once  sync.Once
	ready chan struct{}

	mu   sync.Mutex
	snap Snapshot
	// written is set by SetStaff and Clear. A load that finishes after a
	// write must not overwrite it.
	written bool
	subs    map[int]chan Snapshot
	nextID  int
}

func NewStore(repo Repo, token string, ttl time.Duration, opts ...StoreOption) *Store {
	s := &Store{
		repo:        repo,
		token:       token,
		ttl:         ttl,
		loadTimeout: DefaultLoadTimeout,
		ready:       make(chan struct{}),
		subs:        make(map[int]chan Snapshot),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Token() string {
	return s.token
}

// Hydrate starts the load in the background. Later calls are no-ops. The
// load outlives ctx cancellation but keeps its values, and gives up after
// the store's load timeout.
func (s *Store) Hydrate(ctx context.Context) {
	s.once.Do(func() {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.loadTimeout)
		go func() {
			defer cancel()
			s.load(loadCtx)
		}()
	})
}

func (s *Store) load(ctx context.Context) {
	var staff *Staff
	if s.token != "" {
		loaded, err := s.repo.Load(ctx, s.token)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to load staff session, continuing without one",
				slog.String("error", err.Error()),
			)
		} else {
			staff = loaded
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.written {
		s.snap.Staff = staff
	}
	s.snap.HasHydrated = true
	close(s.ready)
	s.broadcastLocked()
}

// Ready is closed once hydration has completed.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Await blocks until the store is ready or ctx is done.
func (s *Store) Await(ctx context.Context) (Snapshot, error) {
	select {
	case <-s.ready:
		return s.Snapshot(), nil
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// Subscribe returns a channel that receives the current snapshot right away
// and then every later change. A slow reader only sees the latest value.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	ch <- s.snap
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// SetStaff persists staff under the store's token and publishes it.
func (s *Store) SetStaff(ctx context.Context, staff Staff) error {
	if s.token == "" {
		return ErrNoToken
	}
	if err := s.repo.Save(ctx, s.token, staff, s.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.written = true
	s.snap.Staff = &staff
	s.broadcastLocked()
	return nil
}

// Clear removes the persisted session and publishes the empty state.
func (s *Store) Clear(ctx context.Context) error {
	if s.token != "" {
		if err := s.repo.Delete(ctx, s.token); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.written = true
	s.snap.Staff = nil
	s.broadcastLocked()
	return nil
}

func (s *Store) broadcastLocked() {
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s.snap
	}
}
