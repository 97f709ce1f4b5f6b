package provider

import (
	"time"

	"buildwatch/src/status"
)

// RawBuild is one build execution as reported by the remote service,
// pre-normalization. Owned transiently by a single stream invocation.
type RawBuild struct {
	BuildNumber   string     // Opaque build number, not assumed numeric
	Status        string     // Raw status value (e.g. "inProgress", "completed")
	Result        string     // Raw result value, meaningful only for completed builds
	StartTime     *time.Time // nil when the build has not started yet
	FinishTime    *time.Time // nil while the build is running
	SourceVersion string     // Commit SHA or TFVC changeset ("C123")
	WebURL        string
}

// InProgress reports whether the build is currently running.
func (b RawBuild) InProgress() bool {
	return b.Status == status.RawInProgress
}

// BuildInfo is the normalized build record emitted to the host.
// Immutable; one per emitted build, discarded by the host after display.
type BuildInfo struct {
	ID           string // Build number
	Start        time.Time
	Status       status.Status
	Description  string
	Tooltip      string
	Commits      []string // Revision identifiers associated with the build
	URL          string
	ShowInReport bool // Always false for this adapter
}
