package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bjornpagen/qtiforge/internal/assemble"
	"github.com/bjornpagen/qtiforge/internal/catalog"
	"github.com/bjornpagen/qtiforge/internal/idmap"
	"github.com/bjornpagen/qtiforge/internal/probe"
	"github.com/bjornpagen/qtiforge/internal/retry"
	"github.com/bjornpagen/qtiforge/internal/store"
	"github.com/bjornpagen/qtiforge/internal/variantgen"
)

// generateConcurrency caps the LLM fan-out. Provider rate limits surface
// as retryable errors, so the cap only bounds in-flight requests.
const generateConcurrency = 8

// snapshotItemID keys the single discovery payload within its step.
const snapshotItemID = "catalog"

// discover fetches the full course catalog, or reloads the snapshot a
// previous invocation already persisted. Discovery is the one phase that
// retries forever: without the catalog nothing downstream can run.
func (o *Orchestrator) discover(ctx context.Context, runID, courseID string, log *zap.Logger) (*catalogSnapshot, error) {
	done, err := o.runs.StepDone(ctx, runID, StateDiscover)
	if err != nil {
		return nil, err
	}
	if done {
		recs, err := o.runs.ItemOutcomes(ctx, runID, StateDiscover)
		if err != nil {
			return nil, err
		}
		rec, ok := recs[snapshotItemID]
		if !ok {
			return nil, fmt.Errorf("run %s: discover marked done but snapshot missing", runID)
		}
		var snap catalogSnapshot
		if err := json.Unmarshal([]byte(rec.Payload), &snap); err != nil {
			return nil, fmt.Errorf("decode catalog snapshot: %w", err)
		}
		log.Info("reusing persisted catalog snapshot")
		return &snap, nil
	}

	if err := o.runs.SetState(ctx, runID, StateDiscover); err != nil {
		return nil, err
	}

	course, err := retry.Do(ctx, o.runner, "discover course", retry.Infinite,
		func(ctx context.Context) (*catalog.Course, error) {
			return o.catalog.Course(ctx, courseID)
		})
	if err != nil {
		return nil, err
	}

	exercises, err := retry.Do(ctx, o.runner, "discover exercises", retry.Infinite,
		func(ctx context.Context) ([]catalog.Exercise, error) {
			return o.catalog.Exercises(ctx, courseID)
		})
	if err != nil {
		return nil, err
	}

	snap := &catalogSnapshot{
		Course:              course,
		Exercises:           exercises,
		QuestionsByExercise: make(map[string][]catalog.Question, len(exercises)),
	}

	for _, ex := range exercises {
		exID := ex.ID
		questions, err := retry.Do(ctx, o.runner, "discover questions "+exID, retry.Infinite,
			func(ctx context.Context) ([]catalog.Question, error) {
				return o.catalog.Questions(ctx, exID)
			})
		if err != nil {
			return nil, err
		}
		snap.QuestionsByExercise[exID] = questions
	}

	snap.Passages, err = retry.Do(ctx, o.runner, "discover passages", retry.Infinite,
		func(ctx context.Context) ([]catalog.Passage, error) {
			return o.catalog.Passages(ctx, courseID)
		})
	if err != nil {
		return nil, err
	}

	snap.Assessments, err = retry.Do(ctx, o.runner, "discover assessments", retry.Infinite,
		func(ctx context.Context) ([]catalog.Assessment, error) {
			return o.catalog.Assessments(ctx, courseID)
		})
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode catalog snapshot: %w", err)
	}
	if err := o.runs.SaveItemOutcome(ctx, runID, StateDiscover, store.ItemOutcomeRecord{
		ItemID:  snapshotItemID,
		Status:  store.StatusOK,
		Payload: string(payload),
	}); err != nil {
		return nil, err
	}
	if err := o.runs.MarkStep(ctx, runID, StateDiscover); err != nil {
		return nil, err
	}

	log.Info("discovery complete",
		zap.Int("exercises", len(snap.Exercises)),
		zap.Int("passages", len(snap.Passages)),
		zap.Int("assessments", len(snap.Assessments)))
	return snap, nil
}

// generate fans out variant generation per question. Each question's
// outcome (success payload or exhausted failure) is persisted before the
// step marker, so a resumed run only calls the model for questions that
// never settled.
func (o *Orchestrator) generate(ctx context.Context, runID string, snap *catalogSnapshot, summary *Summary, log *zap.Logger) (map[string][]variantgen.Candidate, error) {
	done, err := o.runs.StepDone(ctx, runID, StateGenerate)
	if err != nil {
		return nil, err
	}

	if !done {
		if err := o.runs.SetState(ctx, runID, StateGenerate); err != nil {
			return nil, err
		}
		prior, err := o.runs.ItemOutcomes(ctx, runID, StateGenerate)
		if err != nil {
			return nil, err
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(generateConcurrency)
		for _, q := range snap.questionsInOrder() {
			if _, settled := prior[q.ID]; settled {
				continue
			}
			q := q
			g.Go(func() error {
				candidates, err := retry.Do(gctx, o.runner, "generate "+q.ID,
					o.cfg.Generation.MaxAttempts,
					func(ctx context.Context) ([]variantgen.Candidate, error) {
						return o.gen.GenerateVariants(ctx, q, o.cfg.Generation.VariantsPerQuestion)
					})
				if err != nil {
					log.Warn("variant generation failed",
						zap.String("question", q.ID),
						zap.Error(err))
					return o.runs.SaveItemOutcome(gctx, runID, StateGenerate, store.ItemOutcomeRecord{
						ItemID: q.ID,
						Status: store.StatusFailed,
						Detail: err.Error(),
					})
				}
				payload, err := json.Marshal(candidates)
				if err != nil {
					return fmt.Errorf("encode candidates for %s: %w", q.ID, err)
				}
				return o.runs.SaveItemOutcome(gctx, runID, StateGenerate, store.ItemOutcomeRecord{
					ItemID:  q.ID,
					Status:  store.StatusOK,
					Payload: string(payload),
				})
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if err := o.runs.MarkStep(ctx, runID, StateGenerate); err != nil {
			return nil, err
		}
	}

	recs, err := o.runs.ItemOutcomes(ctx, runID, StateGenerate)
	if err != nil {
		return nil, err
	}

	byQuestion := make(map[string][]variantgen.Candidate)
	for _, q := range snap.questionsInOrder() {
		rec, ok := recs[q.ID]
		if !ok {
			return nil, fmt.Errorf("run %s: generate marked done but question %s has no outcome", runID, q.ID)
		}
		if rec.Status != store.StatusOK {
			summary.Failures = append(summary.Failures, Failure{
				Stage:  StateGenerate,
				ItemID: q.ID,
				Reason: rec.Detail,
			})
			continue
		}
		var candidates []variantgen.Candidate
		if err := json.Unmarshal([]byte(rec.Payload), &candidates); err != nil {
			return nil, fmt.Errorf("decode candidates for %s: %w", q.ID, err)
		}
		byQuestion[q.ID] = candidates
	}
	return byQuestion, nil
}

// validate probes every candidate against the content service and
// partitions the set. Candidates whose outcome is already persisted are
// not probed again.
func (o *Orchestrator) validate(ctx context.Context, runID string, snap *catalogSnapshot, byQuestion map[string][]variantgen.Candidate, summary *Summary, log *zap.Logger) (*validatedSet, error) {
	done, err := o.runs.StepDone(ctx, runID, StateValidate)
	if err != nil {
		return nil, err
	}

	// Candidate order follows catalog question order and variant sequence,
	// so the batch layout is reproducible across invocations.
	var ordered []variantgen.Candidate
	for _, q := range snap.questionsInOrder() {
		ordered = append(ordered, byQuestion[q.ID]...)
	}

	if !done {
		if err := o.runs.SetState(ctx, runID, StateValidate); err != nil {
			return nil, err
		}
		prior, err := o.runs.ItemOutcomes(ctx, runID, StateValidate)
		if err != nil {
			return nil, err
		}

		var pending []probe.Artifact
		for _, c := range ordered {
			if _, settled := prior[c.ID]; settled {
				continue
			}
			pending = append(pending, probe.Artifact{ID: c.ID, Content: c.XML})
		}

		outcomes := o.itemValidator.ValidateAll(ctx, pending)
		for _, out := range outcomes {
			rec := store.ItemOutcomeRecord{ItemID: out.Artifact.ID, Status: store.StatusOK}
			if !out.Passed {
				rec.Status = store.StatusFailed
				rec.Detail = out.Reason
			}
			if err := o.runs.SaveItemOutcome(ctx, runID, StateValidate, rec); err != nil {
				return nil, err
			}
		}
		if err := o.runs.MarkStep(ctx, runID, StateValidate); err != nil {
			return nil, err
		}
	}

	recs, err := o.runs.ItemOutcomes(ctx, runID, StateValidate)
	if err != nil {
		return nil, err
	}

	set := &validatedSet{}
	for _, c := range ordered {
		rec, ok := recs[c.ID]
		if !ok {
			return nil, fmt.Errorf("run %s: validate marked done but candidate %s has no outcome", runID, c.ID)
		}
		if rec.Status == store.StatusOK {
			set.Passed = append(set.Passed, c)
			continue
		}
		set.Skipped = append(set.Skipped, probe.Outcome{
			Artifact: probe.Artifact{ID: c.ID, Content: c.XML},
			Passed:   false,
			Reason:   rec.Detail,
		})
		summary.Skips = append(summary.Skips, Failure{
			Stage:  StateValidate,
			ItemID: c.ID,
			Reason: rec.Detail,
		})
	}
	summary.ValidatedItems = len(set.Passed)
	summary.SkippedItems = len(set.Skipped)

	log.Info("validation complete",
		zap.Int("passed", len(set.Passed)),
		zap.Int("skipped", len(set.Skipped)))
	return set, nil
}

// paraphrase fans out passage paraphrasing, memoized per passage like
// generate.
func (o *Orchestrator) paraphrase(ctx context.Context, runID string, snap *catalogSnapshot, summary *Summary, log *zap.Logger) ([]variantgen.ParaphrasedPassage, error) {
	done, err := o.runs.StepDone(ctx, runID, StateParaphrase)
	if err != nil {
		return nil, err
	}

	if !done {
		if err := o.runs.SetState(ctx, runID, StateParaphrase); err != nil {
			return nil, err
		}
		prior, err := o.runs.ItemOutcomes(ctx, runID, StateParaphrase)
		if err != nil {
			return nil, err
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(generateConcurrency)
		for _, p := range snap.Passages {
			if _, settled := prior[p.ID]; settled {
				continue
			}
			p := p
			g.Go(func() error {
				para, err := retry.Do(gctx, o.runner, "paraphrase "+p.ID,
					o.cfg.Generation.MaxAttempts,
					func(ctx context.Context) (*variantgen.ParaphrasedPassage, error) {
						return o.gen.Paraphrase(ctx, p)
					})
				if err != nil {
					log.Warn("paraphrase failed",
						zap.String("passage", p.ID),
						zap.Error(err))
					return o.runs.SaveItemOutcome(gctx, runID, StateParaphrase, store.ItemOutcomeRecord{
						ItemID: p.ID,
						Status: store.StatusFailed,
						Detail: err.Error(),
					})
				}
				payload, err := json.Marshal(para)
				if err != nil {
					return fmt.Errorf("encode paraphrase for %s: %w", p.ID, err)
				}
				return o.runs.SaveItemOutcome(gctx, runID, StateParaphrase, store.ItemOutcomeRecord{
					ItemID:  p.ID,
					Status:  store.StatusOK,
					Payload: string(payload),
				})
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if err := o.runs.MarkStep(ctx, runID, StateParaphrase); err != nil {
			return nil, err
		}
	}

	recs, err := o.runs.ItemOutcomes(ctx, runID, StateParaphrase)
	if err != nil {
		return nil, err
	}

	var out []variantgen.ParaphrasedPassage
	for _, p := range snap.Passages {
		rec, ok := recs[p.ID]
		if !ok {
			return nil, fmt.Errorf("run %s: paraphrase marked done but passage %s has no outcome", runID, p.ID)
		}
		if rec.Status != store.StatusOK {
			summary.Failures = append(summary.Failures, Failure{
				Stage:  StateParaphrase,
				ItemID: p.ID,
				Reason: rec.Detail,
			})
			continue
		}
		var para variantgen.ParaphrasedPassage
		if err := json.Unmarshal([]byte(rec.Payload), &para); err != nil {
			return nil, fmt.Errorf("decode paraphrase for %s: %w", p.ID, err)
		}
		out = append(out, para)
	}
	summary.Paraphrases = len(out)
	return out, nil
}

// assembleOutcome is the persisted per-assessment result of the assemble
// step.
type assembleOutcome struct {
	Document *assemble.Document `json:"document,omitempty"`

	// ProbeSkip marks a document that built but failed its probe, as
	// opposed to one that never built.
	ProbeSkip bool   `json:"probe_skip,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// assemble builds the identifier map from validated candidates, runs the
// assembler over every assessment and persists one outcome per
// assessment.
func (o *Orchestrator) assemble(ctx context.Context, runID string, snap *catalogSnapshot, validated *validatedSet, summary *Summary, log *zap.Logger) ([]assemble.Document, error) {
	done, err := o.runs.StepDone(ctx, runID, StateAssemble)
	if err != nil {
		return nil, err
	}

	if !done {
		if err := o.runs.SetState(ctx, runID, StateAssemble); err != nil {
			return nil, err
		}

		mapper := newItemMapper(validated.Passed)
		assembler := assemble.New(mapper, o.docValidator, o.cfg.Assembly, log)
		res := assembler.BuildAll(ctx, assemble.Input{
			Assessments:         snap.Assessments,
			QuestionsByExercise: snap.QuestionsByExercise,
		})

		for i := range res.Documents {
			doc := res.Documents[i]
			if err := o.saveAssembleOutcome(ctx, runID, doc.ID, store.StatusOK, "",
				assembleOutcome{Document: &doc}); err != nil {
				return nil, err
			}
		}
		for _, s := range res.Skipped {
			if err := o.saveAssembleOutcome(ctx, runID, s.ID, store.StatusFailed, s.Reason,
				assembleOutcome{ProbeSkip: true, Reason: s.Reason}); err != nil {
				return nil, err
			}
		}
		for _, e := range res.Errors {
			if err := o.saveAssembleOutcome(ctx, runID, e.AssessmentID, store.StatusFailed, e.Err.Error(),
				assembleOutcome{Reason: e.Err.Error()}); err != nil {
				return nil, err
			}
		}
		if err := o.runs.MarkStep(ctx, runID, StateAssemble); err != nil {
			return nil, err
		}
	}

	recs, err := o.runs.ItemOutcomes(ctx, runID, StateAssemble)
	if err != nil {
		return nil, err
	}

	var documents []assemble.Document
	for _, a := range snap.Assessments {
		rec, ok := recs[a.ID]
		if !ok {
			return nil, fmt.Errorf("run %s: assemble marked done but assessment %s has no outcome", runID, a.ID)
		}
		var out assembleOutcome
		if err := json.Unmarshal([]byte(rec.Payload), &out); err != nil {
			return nil, fmt.Errorf("decode assemble outcome for %s: %w", a.ID, err)
		}
		switch {
		case rec.Status == store.StatusOK && out.Document != nil:
			documents = append(documents, *out.Document)
		case out.ProbeSkip:
			summary.SkippedTests++
			summary.Failures = append(summary.Failures, Failure{
				Stage:  StateAssemble,
				ItemID: a.ID,
				Reason: "document probe rejected: " + out.Reason,
			})
		default:
			summary.Failures = append(summary.Failures, Failure{
				Stage:  StateAssemble,
				ItemID: a.ID,
				Reason: out.Reason,
			})
		}
	}
	summary.Tests = len(documents)
	return documents, nil
}

func (o *Orchestrator) saveAssembleOutcome(ctx context.Context, runID, assessmentID, status, detail string, out assembleOutcome) error {
	payload, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encode assemble outcome for %s: %w", assessmentID, err)
	}
	return o.runs.SaveItemOutcome(ctx, runID, StateAssemble, store.ItemOutcomeRecord{
		ItemID:  assessmentID,
		Status:  status,
		Detail:  detail,
		Payload: string(payload),
	})
}

// newItemMapper builds the frozen canonical-to-generated relation from
// the validated candidates, in validation order.
func newItemMapper(passed []variantgen.Candidate) *idmap.Mapper {
	m := idmap.New()
	for _, c := range passed {
		// Record cannot fail before Freeze.
		_ = m.Record(c.SourceID, c.ID)
	}
	m.Freeze()
	return m
}
