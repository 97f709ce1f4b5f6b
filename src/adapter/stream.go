package adapter

import (
	"context"
	"errors"
	"time"

	"buildwatch/src/provider"
)

// Event is one element of a build stream: either a normalized build record
// or a terminal stream error. The channel closes after the last event;
// cancellation closes it with no error event.
type Event struct {
	Build provider.BuildInfo
	Err   error
}

// FinishedBuildsSince streams finished builds started after since (nil means
// no lower bound), in server order.
//
// The first invocation on an instance always completes immediately with zero
// emissions regardless of arguments; see the suppression note on Adapter.
// Cancellation of ctx closes the stream silently.
func (a *Adapter) FinishedBuildsSince(ctx context.Context, since *time.Time) <-chan Event {
	a.mu.Lock()
	suppressed := !a.firstFinishedDone
	a.firstFinishedDone = true
	a.mu.Unlock()

	if suppressed {
		return closedStream()
	}

	running := false
	return a.stream(ctx, since, &running)
}

// RunningBuilds streams the builds currently in progress. No suppression.
func (a *Adapter) RunningBuilds(ctx context.Context) <-chan Event {
	running := true
	return a.stream(ctx, nil, &running)
}

func closedStream() <-chan Event {
	out := make(chan Event)
	close(out)
	return out
}

// stream runs the full query protocol shared by both operations: ensure
// definition metadata (awaiting the prefetch if needed), query the service,
// and emit one BuildInfo per raw build in server order.
func (a *Adapter) stream(ctx context.Context, since *time.Time, running *bool) <-chan Event {
	a.mu.Lock()
	inert := !a.initialized || a.inert
	service := a.service
	a.mu.Unlock()

	if inert {
		return closedStream()
	}

	out := make(chan Event)
	go func() {
		defer close(out)

		metadata, ok := a.awaitMetadata(ctx, out)
		if !ok {
			return
		}

		raws, err := service.QueryBuilds(ctx, metadata, since, running)
		if err != nil {
			if canceled(ctx, err) {
				return
			}
			emit(ctx, out, Event{Err: err})
			return
		}

		now := time.Now()
		for _, raw := range raws {
			info, err := buildInfo(raw, now)
			if err != nil {
				// A revision that fails to parse drops this build,
				// not the stream.
				a.log.Debug("skipping build %s: %v", raw.BuildNumber, err)
				continue
			}
			if !emit(ctx, out, Event{Build: info}) {
				return
			}
		}
	}()

	return out
}

// awaitMetadata returns the definition metadata for this instance, blocking
// on the pending prefetch when it has not landed yet. The prefetch outcome is
// latched into adapter state on first receipt so later streams never re-await
// a drained channel. ok is false when the stream should end without querying:
// cancellation, an empty resolution (behaves like a project with no builds),
// or a resolution error, which is emitted on out. The first successful
// resolution is written back to the shared cache.
//
// The single-value result channel relies on the one-stream-at-a-time contract
// documented on Adapter: only one caller ever reaches the receive below.
func (a *Adapter) awaitMetadata(ctx context.Context, out chan<- Event) (string, bool) {
	a.mu.Lock()
	if a.resolved {
		metadata := a.metadata
		a.mu.Unlock()
		return metadata, metadata != ""
	}
	if a.prefetchErr != nil {
		err := a.prefetchErr
		a.mu.Unlock()
		emit(ctx, out, Event{Err: err})
		return "", false
	}
	pending := a.pending
	a.mu.Unlock()

	if pending == nil {
		return "", false
	}

	var res prefetchResult
	select {
	case res = <-pending:
	case <-ctx.Done():
		return "", false
	}

	a.mu.Lock()
	a.pending = nil
	if res.err != nil {
		a.prefetchErr = res.err
		a.mu.Unlock()
		if !canceled(ctx, res.err) {
			emit(ctx, out, Event{Err: res.err})
		}
		return "", false
	}
	a.resolved = true
	a.metadata = res.metadata
	key := a.key
	a.mu.Unlock()

	if res.metadata == "" {
		return "", false
	}

	a.cache.Put(key, res.metadata)
	return res.metadata, true
}

// emit delivers ev unless ctx is cancelled first. Reports delivery.
func emit(ctx context.Context, out chan<- Event, ev Event) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// canceled reports whether err (or ctx) reflects cancellation rather than a
// real failure. Cancellation terminates a stream silently.
func canceled(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
