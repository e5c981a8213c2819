// Package store persists chart documents for the HTTP API.
//
// Every chart posted to the API is wrapped in a Chart record with a fresh
// UUID so that its render URLs stay stable across requests and restarts.
// The Store interface supports:
//   - Get/Set/Delete operations
//   - Automatic expiration checking
//   - Cleanup of expired charts
//
// Two backends are provided:
//   - MemoryStore: in-process storage for development and tests
//   - MongoStore: MongoDB-backed storage for multi-instance deployments
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Production
//	st, err := store.NewMongoStore(ctx, store.MongoConfig{
//	    URI: "mongodb://localhost:27017",
//	})
//
// Manage charts:
//
//	c := store.NewChart(spec, store.DefaultTTL)
//	if err := st.Set(ctx, c); err != nil {
//	    return err
//	}
//
//	c, err := st.Get(ctx, id)
//	if errors.Is(err, store.ErrNotFound) {
//	    // Unknown chart ID
//	}
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jfache/nivo/pkg/chart"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a chart does not exist.
	ErrNotFound = errors.New("chart not found")

	// ErrExpired is returned when a chart exists but has passed its TTL.
	ErrExpired = errors.New("chart expired")
)

// DefaultTTL is how long a stored chart remains retrievable. Backends
// remove records past their ExpiresAt either server-side or via Cleanup.
const DefaultTTL = 30 * 24 * time.Hour

// Chart is a stored chart document with its identity and lifetime.
type Chart struct {
	ID        string     `bson:"_id" json:"id"`
	Spec      chart.Spec `bson:"spec" json:"spec"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time  `bson:"expires_at" json:"expires_at"`
}

// IsExpired returns true if the chart has passed its TTL.
func (c *Chart) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// Store is the interface for chart storage backends.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get retrieves a chart by ID.
	// Returns ErrNotFound if the chart does not exist and ErrExpired if it
	// exists but has passed its TTL.
	Get(ctx context.Context, id string) (*Chart, error)

	// Set stores a chart, replacing any existing record with the same ID.
	Set(ctx context.Context, c *Chart) error

	// Delete removes a chart. Deleting a missing chart is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired charts and reports how many were removed.
	// Backends with server-side expiry may remove records before Cleanup
	// sees them.
	Cleanup(ctx context.Context) (int, error)

	// Close releases resources held by the store.
	Close() error
}

// NewChart wraps a chart spec in a stored record with a fresh UUID.
// A non-positive ttl falls back to DefaultTTL.
func NewChart(spec chart.Spec, ttl time.Duration) *Chart {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now().UTC()
	return &Chart{
		ID:        uuid.NewString(),
		Spec:      spec,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// ValidateID checks that id is a well-formed chart ID. The API calls this
// before touching a backend so malformed path parameters fail fast.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid chart id %q: %w", id, err)
	}
	return nil
}

// IsNotFound reports whether err means the chart is gone. Expired charts
// read as missing to callers.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrExpired)
}
