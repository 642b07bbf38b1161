package store

import (
	"context"
	"time"
)

// Run is the durable record of one pipeline invocation.
type Run struct {
	RunID     string
	CourseID  string
	State     string
	StartedAt time.Time
	UpdatedAt time.Time
}

// ItemOutcomeRecord is the durable per-item result of a fan-out step.
type ItemOutcomeRecord struct {
	ItemID  string
	Status  string // "ok" or "failed"
	Detail  string
	Payload string
}

// Outcome status values.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// RunRepo persists orchestrator state: run records, step completion markers
// and per-item outcomes. It is the memoization layer that lets a restarted
// process resume instead of repeating side-effecting calls.
type RunRepo interface {
	// CreateRun records a new run. Fails if the run ID already exists.
	CreateRun(ctx context.Context, runID, courseID string) error

	// GetRun returns the run record, or nil if no such run exists.
	GetRun(ctx context.Context, runID string) (*Run, error)

	// SetState updates the run's current orchestrator state.
	SetState(ctx context.Context, runID, state string) error

	// MarkStep records that a step completed for the run. Idempotent.
	MarkStep(ctx context.Context, runID, step string) error

	// StepDone reports whether the step's completion marker exists.
	StepDone(ctx context.Context, runID, step string) (bool, error)

	// SaveItemOutcome upserts the outcome for one item in one step.
	SaveItemOutcome(ctx context.Context, runID, step string, rec ItemOutcomeRecord) error

	// ItemOutcomes returns all recorded outcomes for a step, keyed by item ID.
	ItemOutcomes(ctx context.Context, runID, step string) (map[string]ItemOutcomeRecord, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRepo provides append access to pipeline events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}
