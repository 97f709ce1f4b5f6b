// Package contracts defines the message types shared by the broker, the
// store, and the MCP server.
package contracts

import "time"

// BuildRecord is the wire and storage form of one normalized build.
type BuildRecord struct {
	// AdapterKey identifies the adapter that emitted the build (the
	// configured endpoint).
	AdapterKey string `json:"adapter_key"`
	// BuildID is the opaque build number.
	BuildID string `json:"build_id"`
	// Start is the build start timestamp (or the unset-start sentinel).
	Start time.Time `json:"start"`
	// Status is the normalized status name (e.g. "success", "in progress").
	Status string `json:"status"`
	// Description is the one-line display form: duration plus build number.
	Description string `json:"description"`
	// Commits lists the revision identifiers associated with the build.
	Commits []string `json:"commits"`
	// URL links to the build on the remote service.
	URL string `json:"url"`
	// EmittedAt records when the adapter emitted this build.
	EmittedAt time.Time `json:"emitted_at"`
}

// Topic names used on the broker.
const (
	// TopicBuildsFinished carries finished-build records.
	TopicBuildsFinished = "buildwatch.builds.finished"

	// TopicBuildsRunning carries in-progress build records.
	TopicBuildsRunning = "buildwatch.builds.running"
)
