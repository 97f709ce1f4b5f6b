package status

import (
	"testing"
	"time"
)

func TestMapResult(t *testing.T) {
	tests := []struct {
		name   string
		result string
		want   Status
	}{
		{name: "succeeded", result: "succeeded", want: Success},
		{name: "failed", result: "failed", want: Failure},
		{name: "canceled", result: "canceled", want: Stopped},
		{name: "partially succeeded", result: "partiallySucceeded", want: Unstable},
		{name: "empty", result: "", want: Unknown},
		{name: "unrecognized", result: "foo", want: Unknown},
		{name: "wrong case", result: "Succeeded", want: Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapResult(tt.result); got != tt.want {
				t.Errorf("MapResult(%q) = %v, want %v", tt.result, got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	finish := start.Add(5 * time.Second)
	now := start.Add(90 * time.Second)

	tests := []struct {
		name      string
		rawStatus string
		start     *time.Time
		finish    *time.Time
		want      string
	}{
		{name: "empty status", rawStatus: "", start: &start, finish: &finish, want: ""},
		{name: "none", rawStatus: RawNone, start: &start, finish: &finish, want: ""},
		{name: "not started", rawStatus: RawNotStarted, start: &start, finish: &finish, want: ""},
		{name: "postponed", rawStatus: RawPostponed, start: &start, finish: &finish, want: ""},
		{name: "missing start", rawStatus: RawCompleted, start: nil, finish: &finish, want: ""},
		{name: "in progress", rawStatus: RawInProgress, start: &start, finish: nil, want: "1m 30s"},
		{name: "completed", rawStatus: RawCompleted, start: &start, finish: &finish, want: "5s"},
		{name: "completed without finish", rawStatus: RawCompleted, start: &start, finish: nil, want: UnknownDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatDuration(tt.rawStatus, tt.start, tt.finish, now)
			if got != tt.want {
				t.Errorf("FormatDuration() = %q, want %q", got, tt.want)
			}
		})
	}
}

// In-progress durations must change as now advances past start, and must be
// deterministic for equal inputs.
func TestFormatDuration_InProgress(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	seen := map[string]time.Duration{}
	for _, elapsed := range []time.Duration{
		time.Second, time.Minute, 10 * time.Minute, time.Hour, 3 * time.Hour,
	} {
		now := start.Add(elapsed)
		got := FormatDuration(RawInProgress, &start, nil, now)
		if got == "" {
			t.Fatalf("FormatDuration() empty for elapsed %v", elapsed)
		}
		if prior, dup := seen[got]; dup {
			t.Errorf("FormatDuration() = %q for both %v and %v", got, prior, elapsed)
		}
		seen[got] = elapsed

		if again := FormatDuration(RawInProgress, &start, nil, now); again != got {
			t.Errorf("FormatDuration() not deterministic: %q then %q", got, again)
		}
	}
}

func TestElapsed(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "zero", d: 0, want: "0s"},
		{name: "negative clamps", d: -5 * time.Second, want: "0s"},
		{name: "seconds only", d: 5 * time.Second, want: "5s"},
		{name: "sub-second truncates", d: 4900 * time.Millisecond, want: "4s"},
		{name: "minutes", d: 2*time.Minute + 3*time.Second, want: "2m 3s"},
		{name: "hours", d: time.Hour + 4*time.Minute + 5*time.Second, want: "1h 4m 5s"},
		{name: "exact hour", d: time.Hour, want: "1h 0m 0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Elapsed(tt.d); got != tt.want {
				t.Errorf("Elapsed(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}
