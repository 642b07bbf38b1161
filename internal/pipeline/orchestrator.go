// Package pipeline sequences the generate-validate-assemble workflow as a
// durable state machine. Every step records its completion and per-item
// outcomes in the run store, so a re-invocation after a crash resumes
// where it stopped instead of repeating side-effecting calls.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bjornpagen/qtiforge/internal/catalog"
	"github.com/bjornpagen/qtiforge/internal/config"
	"github.com/bjornpagen/qtiforge/internal/probe"
	"github.com/bjornpagen/qtiforge/internal/retry"
	"github.com/bjornpagen/qtiforge/internal/store"
	"github.com/bjornpagen/qtiforge/internal/variantgen"
)

// Orchestrator state names, in execution order.
const (
	StateDiscover   = "discover"
	StateGenerate   = "generate"
	StateValidate   = "validate"
	StateParaphrase = "paraphrase"
	StateAssemble   = "assemble"
	StatePersist    = "persist"
	StateDone       = "done"
)

// Failure is one recorded unit-of-work failure. Failures never abort the
// run; they are aggregated into the final report.
type Failure struct {
	Stage  string `json:"stage"`
	ItemID string `json:"item_id"`
	Reason string `json:"reason"`
}

// Summary is the final accounting for a run.
type Summary struct {
	RunID          string    `json:"run_id"`
	CourseID       string    `json:"course_id"`
	ValidatedItems int       `json:"validated_items"`
	SkippedItems   int       `json:"skipped_items"`
	Paraphrases    int       `json:"paraphrases"`
	Tests          int       `json:"tests"`
	SkippedTests   int       `json:"skipped_tests"`

	// Skips are item-level validation rejections: expected filtering,
	// reported with reasons but not counted as failures.
	Skips    []Failure `json:"skips,omitempty"`
	Failures []Failure `json:"failures"`
}

// ErrorCount returns how many failures the run accumulated.
func (s *Summary) ErrorCount() int {
	return len(s.Failures)
}

// Orchestrator wires the adapters, the batch validator, the assembler and
// the run store into the pipeline state machine.
type Orchestrator struct {
	cfg     config.Config
	catalog catalog.Service
	gen     *variantgen.Generator

	itemValidator *probe.Validator
	docValidator  *probe.Validator

	runs   store.RunRepo
	runner *retry.Runner
	log    *zap.Logger
}

// New creates an Orchestrator.
func New(
	cfg config.Config,
	cat catalog.Service,
	gen *variantgen.Generator,
	itemValidator, docValidator *probe.Validator,
	runs store.RunRepo,
	runner *retry.Runner,
	log *zap.Logger,
) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		cfg:           cfg,
		catalog:       cat,
		gen:           gen,
		itemValidator: itemValidator,
		docValidator:  docValidator,
		runs:          runs,
		runner:        runner,
		log:           log,
	}
}

// Run executes (or resumes) a pipeline run for the course. An empty runID
// starts a fresh run. The returned Summary always covers the whole run,
// including failures; the error return is reserved for conditions that
// prevent the pipeline from proceeding at all (store unavailable,
// discovery impossible).
func (o *Orchestrator) Run(ctx context.Context, runID, courseID string) (*Summary, error) {
	if runID == "" {
		runID = uuid.NewString()
	}

	existing, err := o.runs.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		if err := o.runs.CreateRun(ctx, runID, courseID); err != nil {
			return nil, err
		}
	} else {
		courseID = existing.CourseID
		o.log.Info("resuming run",
			zap.String("run", runID),
			zap.String("state", existing.State))
	}

	log := o.log.With(zap.String("run", runID), zap.String("course", courseID))
	summary := &Summary{RunID: runID, CourseID: courseID}

	snapshot, err := o.discover(ctx, runID, courseID, log)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}

	candidates, err := o.generate(ctx, runID, snapshot, summary, log)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	validated, err := o.validate(ctx, runID, snapshot, candidates, summary, log)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	paraphrases, err := o.paraphrase(ctx, runID, snapshot, summary, log)
	if err != nil {
		return nil, fmt.Errorf("paraphrase: %w", err)
	}

	documents, err := o.assemble(ctx, runID, snapshot, validated, summary, log)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}

	if err := o.persist(ctx, runID, validated, paraphrases, documents, summary, log); err != nil {
		return nil, fmt.Errorf("persist: %w", err)
	}

	if err := o.runs.SetState(ctx, runID, StateDone); err != nil {
		return nil, err
	}

	log.Info("run complete",
		zap.Int("validated_items", summary.ValidatedItems),
		zap.Int("skipped_items", summary.SkippedItems),
		zap.Int("tests", summary.Tests),
		zap.Int("failures", summary.ErrorCount()))

	return summary, nil
}

// catalogSnapshot is everything discovery fetched, persisted as one
// payload so later states never need the catalog again.
type catalogSnapshot struct {
	Course              *catalog.Course               `json:"course"`
	Exercises           []catalog.Exercise            `json:"exercises"`
	QuestionsByExercise map[string][]catalog.Question `json:"questions_by_exercise"`
	Passages            []catalog.Passage             `json:"passages"`
	Assessments         []catalog.Assessment          `json:"assessments"`
}

// questionsInOrder returns all questions in catalog order: exercises as
// discovered, questions as listed per exercise.
func (s *catalogSnapshot) questionsInOrder() []catalog.Question {
	var out []catalog.Question
	for _, ex := range s.Exercises {
		out = append(out, s.QuestionsByExercise[ex.ID]...)
	}
	return out
}

// validatedSet is the post-validation candidate partition.
type validatedSet struct {
	Passed  []variantgen.Candidate
	Skipped []probe.Outcome
}
