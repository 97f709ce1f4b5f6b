// Package provider defines the domain types and service interface the
// build-status adapter is built against. Concrete CI backends (the Azure
// DevOps client in src/azure) implement QueryService; the adapter core never
// touches HTTP directly.
package provider

import (
	"context"
	"time"
)

// QueryService is the adapter's view of the remote build service.
type QueryService interface {
	// ResolveDefinitions enumerates the build definitions matching the
	// filter pattern and returns an opaque metadata blob identifying them.
	// An empty string means no definitions matched; that is not an error.
	// One full round trip; callers are expected to cache the result.
	ResolveDefinitions(ctx context.Context, filter string) (string, error)

	// QueryBuilds returns builds for previously resolved definitions, in
	// server order. since, when non-nil, is a lower bound on build time.
	// running filters to in-progress builds (true), finished builds
	// (false), or both (nil).
	QueryBuilds(ctx context.Context, metadata string, since *time.Time, running *bool) ([]RawBuild, error)

	// Close releases the underlying client. Idempotent.
	Close() error
}
