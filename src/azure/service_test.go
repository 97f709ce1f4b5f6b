package azure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestService_ResolveDefinitions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":2,"value":[{"id":3,"name":"a"},{"id":14,"name":"b"}]}`))
	}))
	defer server.Close()

	svc := NewService(server.URL, "tok")
	metadata, err := svc.ResolveDefinitions(context.Background(), "*")
	if err != nil {
		t.Fatalf("ResolveDefinitions() error = %v", err)
	}
	if metadata != "3,14" {
		t.Errorf("metadata = %q, want %q", metadata, "3,14")
	}
}

func TestService_ResolveDefinitions_NoMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":0,"value":[]}`))
	}))
	defer server.Close()

	svc := NewService(server.URL, "tok")
	metadata, err := svc.ResolveDefinitions(context.Background(), "nothing-*")
	if err != nil {
		t.Fatalf("ResolveDefinitions() error = %v", err)
	}
	if metadata != "" {
		t.Errorf("metadata = %q, want empty for no matches", metadata)
	}
}

func TestService_QueryBuilds_RunningFilterMapping(t *testing.T) {
	tests := []struct {
		name       string
		running    *bool
		wantFilter string
	}{
		{name: "running", running: boolPtr(true), wantFilter: "inProgress"},
		{name: "finished", running: boolPtr(false), wantFilter: "completed"},
		{name: "unfiltered", running: nil, wantFilter: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotFilter string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotFilter = r.URL.Query().Get("statusFilter")
				w.Write([]byte(`{"count":0,"value":[]}`))
			}))
			defer server.Close()

			svc := NewService(server.URL, "tok")
			if _, err := svc.QueryBuilds(context.Background(), "1", nil, tt.running); err != nil {
				t.Fatalf("QueryBuilds() error = %v", err)
			}
			if gotFilter != tt.wantFilter {
				t.Errorf("statusFilter = %q, want %q", gotFilter, tt.wantFilter)
			}
		})
	}
}

func TestService_QueryBuilds_MapsRawFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":1,"value":[{
			"buildNumber": "77",
			"status": "inProgress",
			"sourceVersion": "cafebabe",
			"startTime": "2024-03-01T12:00:00Z",
			"_links": {"web": {"href": "https://ci/77"}}
		}]}`))
	}))
	defer server.Close()

	svc := NewService(server.URL, "tok")
	raws, err := svc.QueryBuilds(context.Background(), "1", nil, nil)
	if err != nil {
		t.Fatalf("QueryBuilds() error = %v", err)
	}
	if len(raws) != 1 {
		t.Fatalf("got %d builds, want 1", len(raws))
	}

	raw := raws[0]
	if raw.BuildNumber != "77" {
		t.Errorf("BuildNumber = %q", raw.BuildNumber)
	}
	if !raw.InProgress() {
		t.Error("InProgress() = false for an inProgress build")
	}
	if raw.FinishTime != nil {
		t.Errorf("FinishTime = %v, want nil", raw.FinishTime)
	}
	want := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if raw.StartTime == nil || !raw.StartTime.Equal(want) {
		t.Errorf("StartTime = %v, want %v", raw.StartTime, want)
	}
	if raw.WebURL != "https://ci/77" {
		t.Errorf("WebURL = %q", raw.WebURL)
	}
}

func TestService_Close(t *testing.T) {
	svc := NewService("https://dev.azure.com/org/proj", "tok")
	if err := svc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}

func boolPtr(b bool) *bool { return &b }
