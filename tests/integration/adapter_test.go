// Package integration exercises the full path from HTTP responses to emitted
// build records: Azure client, query service, definition cache and adapter
// streams together.
package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"buildwatch/src/adapter"
	"buildwatch/src/azure"
	"buildwatch/src/cache"
	"buildwatch/src/config"
	"buildwatch/src/logger"
	"buildwatch/src/provider"
	"buildwatch/src/status"
)

type staticSource struct {
	settings config.Settings
}

func (s staticSource) IsUsable() bool { return s.settings.IsUsable() }

func (s staticSource) Resolve() (config.Settings, error) { return s.settings, nil }

// ciServer fakes the two Build API endpoints the adapter exercises.
func ciServer(t *testing.T, definitionCalls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/_apis/build/definitions"):
			atomic.AddInt32(definitionCalls, 1)
			fmt.Fprint(w, `{"count":1,"value":[{"id":12,"name":"storefront-ci"}]}`)
		case strings.HasSuffix(r.URL.Path, "/_apis/build/builds"):
			if r.URL.Query().Get("definitions") != "12" {
				t.Errorf("builds queried with definitions=%q, want 12", r.URL.Query().Get("definitions"))
			}
			fmt.Fprint(w, `{"count":1,"value":[{
				"id": 900,
				"buildNumber": "451",
				"status": "completed",
				"result": "succeeded",
				"startTime": "2024-03-01T12:00:00Z",
				"finishTime": "2024-03-01T12:00:05Z",
				"sourceVersion": "deadbeefcafe",
				"_links": {"web": {"href": "https://ci.example/org/proj/_build/results?buildId=900"}}
			}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
}

func newAdapter(t *testing.T, endpoint string, defs *cache.DefinitionCache) *adapter.Adapter {
	t.Helper()
	a := adapter.New(defs, logger.NewSilentLogger(), func(s config.Settings) provider.QueryService {
		return azure.NewService(s.CollectionURL, s.AccessToken)
	})
	err := a.Initialize(staticSource{settings: config.Settings{
		CollectionURL:    endpoint,
		AccessToken:      "abc",
		DefinitionFilter: "*",
	}})
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return a
}

func drain(t *testing.T, ch <-chan adapter.Event) []adapter.Event {
	t.Helper()
	var events []adapter.Event
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-deadline:
			t.Fatal("stream did not complete in time")
		}
	}
}

func TestEndToEnd_FinishedBuildFlow(t *testing.T) {
	var definitionCalls int32
	server := ciServer(t, &definitionCalls)
	defer server.Close()

	a := newAdapter(t, server.URL, cache.New())
	defer a.Dispose()

	// The first finished-builds call is the host's setup baseline and must
	// complete empty.
	if events := drain(t, a.FinishedBuildsSince(context.Background(), nil)); len(events) != 0 {
		t.Fatalf("first call emitted %d events, want 0", len(events))
	}

	events := drain(t, a.FinishedBuildsSince(context.Background(), nil))
	if len(events) != 1 {
		t.Fatalf("second call emitted %d events, want 1", len(events))
	}
	if events[0].Err != nil {
		t.Fatalf("stream error: %v", events[0].Err)
	}

	info := events[0].Build
	if info.Status != status.Success {
		t.Errorf("Status = %v, want Success", info.Status)
	}
	if !strings.HasPrefix(info.Description, "5s") {
		t.Errorf("Description = %q, want 5-second duration prefix", info.Description)
	}
	if info.ID != "451" {
		t.Errorf("ID = %q, want %q", info.ID, "451")
	}
	if len(info.Commits) != 1 || info.Commits[0] != "deadbeefcafe" {
		t.Errorf("Commits = %v, want parsed revision", info.Commits)
	}
	if !strings.Contains(info.URL, "buildId=900") {
		t.Errorf("URL = %q", info.URL)
	}
}

func TestEndToEnd_DefinitionResolutionSharedViaCache(t *testing.T) {
	var definitionCalls int32
	server := ciServer(t, &definitionCalls)
	defer server.Close()

	defs := cache.New()

	a1 := newAdapter(t, server.URL, defs)
	defer a1.Dispose()
	drain(t, a1.RunningBuilds(context.Background()))

	a2 := newAdapter(t, server.URL, defs)
	defer a2.Dispose()
	drain(t, a2.RunningBuilds(context.Background()))

	if got := atomic.LoadInt32(&definitionCalls); got != 1 {
		t.Errorf("definitions endpoint hit %d times, want 1 (second adapter uses the cache)", got)
	}
}
