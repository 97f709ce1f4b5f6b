// Package status normalizes raw Azure DevOps build status and result values
// into the adapter's canonical build outcome enum and renders human-readable
// durations for display.
package status

// Raw build status values as they appear on the wire.
const (
	RawNone       = "none"
	RawNotStarted = "notStarted"
	RawPostponed  = "postponed"
	RawInProgress = "inProgress"
	RawCompleted  = "completed"
	RawCancelling = "cancelling"
)

// Raw build result values, meaningful only for completed builds.
const (
	RawSucceeded          = "succeeded"
	RawPartiallySucceeded = "partiallySucceeded"
	RawFailed             = "failed"
	RawCanceled           = "canceled"
)

// Status is the normalized build outcome, independent of the remote
// service's vocabulary.
type Status int

const (
	Unknown Status = iota
	InProgress
	Success
	Failure
	Stopped
	Unstable
)

var statusNames = map[Status]string{
	Unknown:    "unknown",
	InProgress: "in progress",
	Success:    "success",
	Failure:    "failure",
	Stopped:    "stopped",
	Unstable:   "unstable",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether the status describes a finished build.
func (s Status) Terminal() bool {
	return s != InProgress && s != Unknown
}
