package store

import (
	"context"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestRunLifecycle(t *testing.T) {
	s := openTestStore(t)
	repo := s.RunRepo()
	ctx := context.Background()

	// Unknown run is nil, not an error.
	run, err := repo.GetRun(ctx, "missing")
	if err != nil {
		t.Fatalf("get missing run: %v", err)
	}
	if run != nil {
		t.Fatal("expected nil for unknown run")
	}

	if err := repo.CreateRun(ctx, "r1", "course-1"); err != nil {
		t.Fatalf("create run: %v", err)
	}
	if err := repo.CreateRun(ctx, "r1", "course-1"); err == nil {
		t.Fatal("expected duplicate run creation to fail")
	}

	run, err = repo.GetRun(ctx, "r1")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if run.CourseID != "course-1" {
		t.Errorf("course = %q, want course-1", run.CourseID)
	}

	if err := repo.SetState(ctx, "r1", "generate"); err != nil {
		t.Fatalf("set state: %v", err)
	}
	run, err = repo.GetRun(ctx, "r1")
	if err != nil {
		t.Fatalf("get run after state change: %v", err)
	}
	if run.State != "generate" {
		t.Errorf("state = %q, want generate", run.State)
	}
}

func TestStepMarkers(t *testing.T) {
	s := openTestStore(t)
	repo := s.RunRepo()
	ctx := context.Background()

	if err := repo.CreateRun(ctx, "r1", "course-1"); err != nil {
		t.Fatalf("create run: %v", err)
	}

	done, err := repo.StepDone(ctx, "r1", "generate")
	if err != nil {
		t.Fatalf("step done (unmarked): %v", err)
	}
	if done {
		t.Fatal("step should not be done before marking")
	}

	if err := repo.MarkStep(ctx, "r1", "generate"); err != nil {
		t.Fatalf("mark step: %v", err)
	}
	// Marking twice is idempotent.
	if err := repo.MarkStep(ctx, "r1", "generate"); err != nil {
		t.Fatalf("re-mark step: %v", err)
	}

	done, err = repo.StepDone(ctx, "r1", "generate")
	if err != nil {
		t.Fatalf("step done (marked): %v", err)
	}
	if !done {
		t.Fatal("step should be done after marking")
	}

	// Markers are scoped per run.
	done, err = repo.StepDone(ctx, "r2", "generate")
	if err != nil {
		t.Fatalf("step done (other run): %v", err)
	}
	if done {
		t.Fatal("marker leaked across runs")
	}
}

func TestItemOutcomeUpsert(t *testing.T) {
	s := openTestStore(t)
	repo := s.RunRepo()
	ctx := context.Background()

	if err := repo.CreateRun(ctx, "r1", "course-1"); err != nil {
		t.Fatalf("create run: %v", err)
	}

	rec := ItemOutcomeRecord{ItemID: "q1", Status: StatusFailed, Detail: "timeout"}
	if err := repo.SaveItemOutcome(ctx, "r1", "generate", rec); err != nil {
		t.Fatalf("save outcome: %v", err)
	}

	// Saving again replaces, not duplicates.
	rec.Status = StatusOK
	rec.Detail = ""
	rec.Payload = `[{"id":"q1-v1"}]`
	if err := repo.SaveItemOutcome(ctx, "r1", "generate", rec); err != nil {
		t.Fatalf("re-save outcome: %v", err)
	}

	outcomes, err := repo.ItemOutcomes(ctx, "r1", "generate")
	if err != nil {
		t.Fatalf("load outcomes: %v", err)
	}
	if len(outcomes) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(outcomes))
	}
	got := outcomes["q1"]
	if got.Status != StatusOK || got.Payload != rec.Payload {
		t.Errorf("outcome = %+v, want upserted record", got)
	}

	// Other steps see nothing.
	outcomes, err = repo.ItemOutcomes(ctx, "r1", "validate")
	if err != nil {
		t.Fatalf("load other step: %v", err)
	}
	if len(outcomes) != 0 {
		t.Fatalf("expected no outcomes for other step, got %d", len(outcomes))
	}
}
