package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/bjornpagen/qtiforge/internal/assemble"
	"github.com/bjornpagen/qtiforge/internal/idmap"
	"github.com/bjornpagen/qtiforge/internal/variantgen"
)

// courseScopeDir collects artifacts that belong to the course as a whole
// rather than to one unit (the course challenge, mainly).
const courseScopeDir = "course"

// itemRecord is one line of a unit's items.jsonl artifact.
type itemRecord struct {
	ID         string `json:"id"`
	SourceID   string `json:"source_id"`
	ExerciseID string `json:"exercise_id"`
	UnitID     string `json:"unit_id"`
	Category   string `json:"category"`
	XML        string `json:"xml"`
}

// passageRecord is one line of a unit's passages.jsonl artifact.
type passageRecord struct {
	ID       string `json:"id"`
	SourceID string `json:"source_id"`
	UnitID   string `json:"unit_id"`
	XML      string `json:"xml"`
}

// persist writes the per-unit artifact files and the run report. Item XML
// is rewritten first so passage references point at the paraphrased
// passages that ship alongside them.
func (o *Orchestrator) persist(ctx context.Context, runID string, validated *validatedSet, paraphrases []variantgen.ParaphrasedPassage, documents []assemble.Document, summary *Summary, log *zap.Logger) error {
	done, err := o.runs.StepDone(ctx, runID, StatePersist)
	if err != nil {
		return err
	}

	if !done {
		if err := o.runs.SetState(ctx, runID, StatePersist); err != nil {
			return err
		}

		passageMapper := idmap.New()
		for _, p := range paraphrases {
			_ = passageMapper.Record(p.SourceID, p.ID)
		}
		passageMapper.Freeze()

		itemsByUnit := make(map[string][]itemRecord)
		for _, c := range validated.Passed {
			unit := unitScope(c.UnitID)
			itemsByUnit[unit] = append(itemsByUnit[unit], itemRecord{
				ID:         c.ID,
				SourceID:   c.SourceID,
				ExerciseID: c.ExerciseID,
				UnitID:     c.UnitID,
				Category:   c.Category,
				XML:        passageMapper.RewriteReferences(c.XML),
			})
		}

		passagesByUnit := make(map[string][]passageRecord)
		for _, p := range paraphrases {
			unit := unitScope(p.UnitID)
			passagesByUnit[unit] = append(passagesByUnit[unit], passageRecord{
				ID:       p.ID,
				SourceID: p.SourceID,
				UnitID:   p.UnitID,
				XML:      p.XML,
			})
		}

		for unit, items := range itemsByUnit {
			if err := writeJSONLines(filepath.Join(o.cfg.OutputDir, unit, "items.jsonl"), items); err != nil {
				return err
			}
		}
		for unit, passages := range passagesByUnit {
			if err := writeJSONLines(filepath.Join(o.cfg.OutputDir, unit, "passages.jsonl"), passages); err != nil {
				return err
			}
		}

		for _, doc := range documents {
			dir := filepath.Join(o.cfg.OutputDir, unitScope(doc.UnitID), "tests")
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir %s: %w", dir, err)
			}
			path := filepath.Join(dir, doc.ID+".xml")
			if err := os.WriteFile(path, []byte(doc.XML), 0o644); err != nil {
				return fmt.Errorf("write test document %s: %w", path, err)
			}
		}

		if err := o.runs.MarkStep(ctx, runID, StatePersist); err != nil {
			return err
		}
		log.Info("artifacts written", zap.String("dir", o.cfg.OutputDir))
	}

	// The report reflects this invocation's full accounting, so it is
	// rewritten even when the artifact files already exist.
	return writeReport(o.cfg.OutputDir, summary)
}

func unitScope(unitID string) string {
	if unitID == "" {
		return courseScopeDir
	}
	return unitID
}

// writeJSONLines writes one JSON object per line, creating parent
// directories as needed.
func writeJSONLines[T any](path string, records []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return f.Close()
}

// writeReport writes the run summary, failures included, next to the
// per-unit artifacts.
func writeReport(outputDir string, summary *Summary) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", outputDir, err)
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("encode run report: %w", err)
	}
	path := filepath.Join(outputDir, "report.json")
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write run report: %w", err)
	}
	return nil
}
