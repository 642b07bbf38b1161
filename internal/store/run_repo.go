package store

import (
	"context"
	"fmt"

	"github.com/bjornpagen/qtiforge/ent"
	"github.com/bjornpagen/qtiforge/ent/itemoutcome"
	"github.com/bjornpagen/qtiforge/ent/pipelinerun"
	"github.com/bjornpagen/qtiforge/ent/stepmarker"
)

// runRepo implements RunRepo using the ent client.
type runRepo struct {
	client *ent.Client
}

func (r *runRepo) CreateRun(ctx context.Context, runID, courseID string) error {
	_, err := r.client.PipelineRun.Create().
		SetRunID(runID).
		SetCourseID(courseID).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("create run %s: %w", runID, err)
	}
	return nil
}

func (r *runRepo) GetRun(ctx context.Context, runID string) (*Run, error) {
	pr, err := r.client.PipelineRun.Query().
		Where(pipelinerun.RunIDEQ(runID)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("query run %s: %w", runID, err)
	}
	return &Run{
		RunID:     pr.RunID,
		CourseID:  pr.CourseID,
		State:     pr.State,
		StartedAt: pr.StartedAt,
		UpdatedAt: pr.UpdatedAt,
	}, nil
}

func (r *runRepo) SetState(ctx context.Context, runID, state string) error {
	n, err := r.client.PipelineRun.Update().
		Where(pipelinerun.RunIDEQ(runID)).
		SetState(state).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("set state %s for run %s: %w", state, runID, err)
	}
	if n == 0 {
		return fmt.Errorf("set state %s: run %s not found", state, runID)
	}
	return nil
}

func (r *runRepo) MarkStep(ctx context.Context, runID, step string) error {
	done, err := r.StepDone(ctx, runID, step)
	if err != nil {
		return err
	}
	if done {
		return nil
	}
	_, err = r.client.StepMarker.Create().
		SetRunID(runID).
		SetStep(step).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("mark step %s for run %s: %w", step, runID, err)
	}
	return nil
}

func (r *runRepo) StepDone(ctx context.Context, runID, step string) (bool, error) {
	exists, err := r.client.StepMarker.Query().
		Where(stepmarker.RunIDEQ(runID), stepmarker.StepEQ(step)).
		Exist(ctx)
	if err != nil {
		return false, fmt.Errorf("query step marker %s/%s: %w", runID, step, err)
	}
	return exists, nil
}

func (r *runRepo) SaveItemOutcome(ctx context.Context, runID, step string, rec ItemOutcomeRecord) error {
	// Upsert by deleting any prior record for the same key.
	_, err := r.client.ItemOutcome.Delete().
		Where(
			itemoutcome.RunIDEQ(runID),
			itemoutcome.StepEQ(step),
			itemoutcome.ItemIDEQ(rec.ItemID),
		).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("clear prior outcome %s/%s/%s: %w", runID, step, rec.ItemID, err)
	}

	_, err = r.client.ItemOutcome.Create().
		SetRunID(runID).
		SetStep(step).
		SetItemID(rec.ItemID).
		SetStatus(rec.Status).
		SetDetail(rec.Detail).
		SetPayload(rec.Payload).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save outcome %s/%s/%s: %w", runID, step, rec.ItemID, err)
	}
	return nil
}

func (r *runRepo) ItemOutcomes(ctx context.Context, runID, step string) (map[string]ItemOutcomeRecord, error) {
	rows, err := r.client.ItemOutcome.Query().
		Where(itemoutcome.RunIDEQ(runID), itemoutcome.StepEQ(step)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query outcomes %s/%s: %w", runID, step, err)
	}
	out := make(map[string]ItemOutcomeRecord, len(rows))
	for _, row := range rows {
		out[row.ItemID] = ItemOutcomeRecord{
			ItemID:  row.ItemID,
			Status:  row.Status,
			Detail:  row.Detail,
			Payload: row.Payload,
		}
	}
	return out, nil
}
