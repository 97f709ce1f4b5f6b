package status

import (
	"fmt"
	"time"
)

// UnknownDuration is emitted for a finished build whose finish timestamp is
// missing from the server response.
const UnknownDuration = "???"

var resultMap = map[string]Status{
	RawSucceeded:          Success,
	RawPartiallySucceeded: Unstable,
	RawFailed:             Failure,
	RawCanceled:           Stopped,
}

// MapResult maps a raw build result value to a normalized Status.
// Unrecognized or empty results map to Unknown. The mapping applies only to
// builds that are not in progress; callers must check the raw status first.
func MapResult(result string) Status {
	if s, ok := resultMap[result]; ok {
		return s
	}
	return Unknown
}

// FormatDuration renders the duration of a build for display.
//
// The duration is empty when the build never ran (no status, notStarted or
// postponed) or when the start timestamp is missing. An in-progress build
// reports elapsed time against now. A finished build reports finish-start,
// or UnknownDuration when the server omitted the finish timestamp.
func FormatDuration(rawStatus string, start, finish *time.Time, now time.Time) string {
	switch rawStatus {
	case "", RawNone, RawNotStarted, RawPostponed:
		return ""
	}
	if start == nil {
		return ""
	}
	if rawStatus == RawInProgress {
		return Elapsed(now.Sub(*start))
	}
	if finish == nil {
		return UnknownDuration
	}
	return Elapsed(finish.Sub(*start))
}

// Elapsed renders a duration as a compact human-readable string
// ("5s", "2m 3s", "1h 4m 5s"). Negative durations clamp to "0s".
func Elapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)

	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
