// Demo program to showcase the buildwatch monitor with a realistic dataset.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"buildwatch/src/adapter"
	"buildwatch/src/provider"
	"buildwatch/src/status"
	"buildwatch/src/tui"
)

func main() {
	fmt.Println("Generating sample build data...")
	src := newDemoSource()

	fmt.Printf("Loaded %d builds.\n", len(src.finished)+len(src.running))
	fmt.Println("Launching monitor...")
	time.Sleep(500 * time.Millisecond) // Brief pause for effect

	if err := tui.Start(src, "https://dev.azure.com/acme/storefront"); err != nil {
		fmt.Fprintf(os.Stderr, "Error running monitor: %v\n", err)
		os.Exit(1)
	}
}

// demoSource replays canned builds instead of querying a real server.
type demoSource struct {
	running  []provider.BuildInfo
	finished []provider.BuildInfo
	primed   bool
}

func (d *demoSource) FinishedBuildsSince(ctx context.Context, since *time.Time) <-chan adapter.Event {
	ch := make(chan adapter.Event, len(d.finished))
	if d.primed {
		for _, b := range d.finished {
			ch <- adapter.Event{Build: b}
		}
	}
	d.primed = true
	close(ch)
	return ch
}

func (d *demoSource) RunningBuilds(ctx context.Context) <-chan adapter.Event {
	ch := make(chan adapter.Event, len(d.running))
	for _, b := range d.running {
		ch <- adapter.Event{Build: b}
	}
	close(ch)
	return ch
}

func newDemoSource() *demoSource {
	now := time.Now()

	mk := func(id string, st status.Status, age time.Duration, dur, rev string) provider.BuildInfo {
		return provider.BuildInfo{
			ID:          id,
			Start:       now.Add(-age),
			Status:      st,
			Description: dur + " #" + id,
			Commits:     []string{rev},
			URL:         "https://dev.azure.com/acme/storefront/_build/results?buildId=" + id,
		}
	}

	return &demoSource{
		running: []provider.BuildInfo{
			mk("20240301.7", status.InProgress, 2*time.Minute, "2m 4s", "9f2c41aa"),
			mk("20240301.8", status.InProgress, 40*time.Second, "40s", "b81d03fe"),
		},
		finished: []provider.BuildInfo{
			mk("20240301.6", status.Success, 12*time.Minute, "4m 11s", "c44a91d2"),
			mk("20240301.5", status.Failure, 35*time.Minute, "3m 58s", "77ab2c90"),
			mk("20240301.4", status.Unstable, time.Hour, "5m 2s", "d901e4bb"),
			mk("20240301.3", status.Stopped, 2*time.Hour, "1m 12s", "12fe8a07"),
			mk("20240301.2", status.Success, 3*time.Hour, "4m 44s", "e3305c19"),
			mk("20240301.1", status.Success, 4*time.Hour, "4m 37s", "0ab66df4"),
		},
	}
}
