// Package session provides viewer session management for the bionet server.
//
// A session ties a browser (via cookie) to one live layout engine. The engine
// itself is in-memory only; the store persists the session record (which
// graph is loaded and the last UI state) so a viewer can resume after a
// server restart by re-running the deterministic layout.
//
// Three backends implement Store:
//   - memory: single-instance serving and tests
//   - file:   single-instance serving with restarts
//   - redis:  multi-instance deployments
//
// # Usage
//
//	store := session.NewMemoryStore()
//
//	sess := session.New("string-network", session.DefaultTTL)
//	if err := store.Set(ctx, sess); err != nil {
//	    return err
//	}
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lbartels/bionet/pkg/bionet"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("not found")

	// ErrExpired is returned when a session has exceeded its TTL.
	ErrExpired = errors.New("expired")
)

// DefaultTTL is the default session duration.
const DefaultTTL = 24 * time.Hour

// Session records one viewer's state: the graph they are viewing and the
// last UI inputs. Position state lives in the per-session engine, not here.
type Session struct {
	ID         string            `json:"id" bson:"id"`
	GraphName  string            `json:"graph_name" bson:"graph_name"`
	Thresholds bionet.Thresholds `json:"thresholds" bson:"thresholds"`
	Highlight  string            `json:"highlight" bson:"highlight"`
	Selected   string            `json:"selected,omitempty" bson:"selected,omitempty"`
	CreatedAt  time.Time         `json:"created_at" bson:"created_at"`
	ExpiresAt  time.Time         `json:"expires_at" bson:"expires_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// New creates a session for the named graph with a fresh UUID.
func New(graphName string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		GraphName: graphName,
		Highlight: bionet.HighlightAll.String(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions (may be a no-op for Redis, which
	// expires keys natively).
	Cleanup(ctx context.Context) error
}
