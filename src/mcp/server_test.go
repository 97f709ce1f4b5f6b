package mcp

import (
	"context"
	"testing"
	"time"

	"buildwatch/src/contracts"
	"buildwatch/src/store"
)

func seedStore(t *testing.T) store.Store {
	t.Helper()
	s := store.NewMemoryStore()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"101", "102"} {
		err := s.RecordBuild(context.Background(), &contracts.BuildRecord{
			AdapterKey:  "https://ci.example/org/proj",
			BuildID:     id,
			Start:       base,
			Status:      "success",
			Description: "5s #" + id,
			Commits:     []string{"deadbeef"},
			URL:         "https://ci.example/builds/" + id,
			EmittedAt:   base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("RecordBuild() error = %v", err)
		}
	}
	return s
}

func TestToSummary(t *testing.T) {
	record := contracts.BuildRecord{
		BuildID:     "101",
		Status:      "success",
		Description: "5s #101",
		Start:       time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Commits:     []string{"deadbeef"},
		URL:         "https://ci.example/builds/101",
	}

	got := toSummary(record)
	if got.BuildID != "101" {
		t.Errorf("BuildID = %q", got.BuildID)
	}
	if got.Start != "2024-03-01T12:00:00Z" {
		t.Errorf("Start = %q", got.Start)
	}
	if len(got.Commits) != 1 || got.Commits[0] != "deadbeef" {
		t.Errorf("Commits = %v", got.Commits)
	}
}

func TestSummarize(t *testing.T) {
	s := seedStore(t)
	records, err := s.RecentBuilds(context.Background(), "https://ci.example/org/proj", 10)
	if err != nil {
		t.Fatalf("RecentBuilds() error = %v", err)
	}

	summaries := summarize(records)
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}
	// Most recently emitted first.
	if summaries[0].BuildID != "102" {
		t.Errorf("summaries[0].BuildID = %q, want %q", summaries[0].BuildID, "102")
	}
}

func TestNewServer(t *testing.T) {
	srv := NewServer(seedStore(t))
	if srv == nil {
		t.Fatal("NewServer() returned nil")
	}
	if srv.mcpServer == nil {
		t.Error("mcpServer is nil")
	}
}
