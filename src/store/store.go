// Package store defines the interface for persisting emitted build records.
package store

import (
	"context"
	"errors"

	"buildwatch/src/contracts"
)

// ErrBuildNotFound is returned when a build id is unknown for an adapter key.
var ErrBuildNotFound = errors.New("build not found")

// Store persists the build history per adapter key. Records are keyed by
// (adapter key, build id); recording an already-known build replaces it, so
// a build observed running and later finished keeps one row.
type Store interface {
	// RecordBuild inserts or replaces one build record.
	RecordBuild(ctx context.Context, record *contracts.BuildRecord) error

	// RecentBuilds returns up to limit records for an adapter key, most
	// recently emitted first.
	RecentBuilds(ctx context.Context, adapterKey string, limit int) ([]contracts.BuildRecord, error)

	// GetBuild returns one record by adapter key and build id.
	GetBuild(ctx context.Context, adapterKey, buildID string) (*contracts.BuildRecord, error)

	// Close closes the store connection.
	Close() error
}
