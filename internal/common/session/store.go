// internal/common/session/store.go
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salesops-workers/internal/common/config"
	"salesops-workers/internal/triage"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a session has expired or never existed.
var ErrNotFound = errors.New("triage session not found")

// Store keeps in-progress triage sessions in Redis between answer events.
// Each session is a single snapshot value under prefix+id that expires ttl
// after its last write.
type Store struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewStore(client redis.Cmdable, cfg config.TriageConfig) *Store {
	return &Store{
		client: client,
		prefix: cfg.SessionKeyPrefix,
		ttl:    cfg.TTL(),
	}
}

// NewID returns a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

// Save writes snap for id and refreshes its expiry.
func (s *Store) Save(ctx context.Context, id string, snap triage.Snapshot) error {
	raw, err := snap.Marshal()
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", id, err)
	}
	if err := s.client.Set(ctx, s.key(id), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", id, err)
	}
	return nil
}

// Load returns the stored snapshot for id, or ErrNotFound.
func (s *Store) Load(ctx context.Context, id string) (*triage.Snapshot, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	snap := triage.DecodeSnapshot(raw)
	return &snap, nil
}

// Delete removes the session. Deleting a missing session is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

// Wizard loads the session and rebuilds its wizard against c.
func (s *Store) Wizard(ctx context.Context, c triage.Catalog, id string) (*triage.Wizard, error) {
	snap, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return triage.RestoreWizard(c, *snap), nil
}
