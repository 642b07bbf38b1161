// Package assemble builds assessment test documents from validated
// generated items: collect the assessment's member questions, translate
// canonical ids through the identifier map, bucket into sections, render
// the test envelope and probe the finished document before it is allowed
// to persist.
package assemble

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bjornpagen/qtiforge/internal/catalog"
	"github.com/bjornpagen/qtiforge/internal/config"
	"github.com/bjornpagen/qtiforge/internal/idmap"
	"github.com/bjornpagen/qtiforge/internal/probe"
	"github.com/bjornpagen/qtiforge/internal/qti"
	"github.com/bjornpagen/qtiforge/internal/selection"
)

// Document is one assembled, document-probed test ready to persist.
type Document struct {
	ID     string
	Title  string
	Kind   catalog.AssessmentKind
	UnitID string
	XML    string
}

// SkippedTest records a document that failed its document-level probe.
type SkippedTest struct {
	ID     string
	Reason string
}

// Error is a per-assessment construction failure. It is fatal for that
// assessment only; sibling assessments still assemble.
type Error struct {
	AssessmentID string
	Err          error
}

func (e *Error) Error() string {
	return fmt.Sprintf("assemble %s: %v", e.AssessmentID, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Result is the outcome of assembling every assessment in a run.
type Result struct {
	Documents []Document
	Skipped   []SkippedTest
	Errors    []*Error
}

// Assembler composes the identifier map, the bucketing selector and the
// document-level probe pass into test documents.
type Assembler struct {
	mapper       *idmap.Mapper
	docValidator *probe.Validator
	cfg          config.AssemblyConfig
	log          *zap.Logger
}

// New creates an Assembler. The mapper must already be frozen.
func New(mapper *idmap.Mapper, docValidator *probe.Validator, cfg config.AssemblyConfig, log *zap.Logger) *Assembler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assembler{
		mapper:       mapper,
		docValidator: docValidator,
		cfg:          cfg,
		log:          log,
	}
}

// Input is the source catalog membership an assembly pass works from.
type Input struct {
	Assessments []catalog.Assessment

	// QuestionsByExercise is the catalog's exercise-to-question
	// membership for every exercise any assessment references.
	QuestionsByExercise map[string][]catalog.Question
}

// BuildAll assembles every assessment. Construction failures are
// aggregated per assessment; the built documents then go through one
// batched document-level probe pass, and documents that fail it are
// recorded as skipped, never returned for persistence.
func (a *Assembler) BuildAll(ctx context.Context, in Input) Result {
	var res Result
	var built []Document

	for _, assessment := range in.Assessments {
		doc, err := a.build(assessment, in.QuestionsByExercise)
		if err != nil {
			a.log.Error("assessment construction failed",
				zap.String("assessment", assessment.ID),
				zap.Error(err))
			res.Errors = append(res.Errors, &Error{AssessmentID: assessment.ID, Err: err})
			continue
		}
		built = append(built, *doc)
	}

	if len(built) == 0 {
		return res
	}

	artifacts := make([]probe.Artifact, len(built))
	for i, doc := range built {
		artifacts[i] = probe.Artifact{ID: doc.ID, Content: doc.XML}
	}
	outcomes := a.docValidator.ValidateAll(ctx, artifacts)

	for i, o := range outcomes {
		if o.Passed {
			res.Documents = append(res.Documents, built[i])
			continue
		}
		a.log.Warn("test document failed probe, skipping",
			zap.String("test", built[i].ID),
			zap.String("reason", o.Reason))
		res.Skipped = append(res.Skipped, SkippedTest{ID: built[i].ID, Reason: o.Reason})
	}

	return res
}

// build constructs one test document: collect, translate, bucket, render.
func (a *Assembler) build(assessment catalog.Assessment, questions map[string][]catalog.Question) (*Document, error) {
	if len(assessment.ExerciseIDs) == 0 {
		return nil, fmt.Errorf("no exercise membership")
	}

	var items []selection.Item
	for _, exID := range assessment.ExerciseIDs {
		pool, ok := questions[exID]
		if !ok {
			return nil, fmt.Errorf("exercise %s has no catalog entry", exID)
		}
		for _, q := range pool {
			generated := a.mapper.Resolve(q.ID)
			if len(generated) == 0 {
				a.log.Info("question has no validated variants, contributing none",
					zap.String("assessment", assessment.ID),
					zap.String("question", q.ID))
				continue
			}
			key := a.groupKey(assessment.Kind, q)
			for _, gid := range generated {
				items = append(items, selection.Item{ID: gid, Key: key})
			}
		}
	}

	buckets := selection.Buckets(items, a.target(assessment.Kind))
	if len(buckets) == 0 {
		a.log.Warn("assessment resolved to zero sections, emitting empty test",
			zap.String("assessment", assessment.ID))
	}

	sections := make([]qti.Section, 0, len(buckets))
	for i, b := range buckets {
		sections = append(sections, qti.NewSection(i+1, b.Key, b.ItemIDs))
	}

	doc := qti.NewTestDocument(assessment.ID, assessment.Title, sections)
	xmlText, err := doc.Render()
	if err != nil {
		return nil, err
	}

	return &Document{
		ID:     assessment.ID,
		Title:  assessment.Title,
		Kind:   assessment.Kind,
		UnitID: assessment.UnitID,
		XML:    xmlText,
	}, nil
}

// groupKey picks the bucketing key for the assessment type: unit+category
// for the broad assessments, category alone for quizzes drawn from one
// exercise's pool, exercise for exercise tests.
func (a *Assembler) groupKey(kind catalog.AssessmentKind, q catalog.Question) string {
	switch kind {
	case catalog.KindCourseChallenge, catalog.KindUnitTest:
		return selection.CompositeKey(q.UnitID, q.Category)
	case catalog.KindQuiz:
		return q.Category
	default:
		return q.ExerciseID
	}
}

// target returns the fixed selection size for the assessment type, or 0
// when every group keeps its full pool.
func (a *Assembler) target(kind catalog.AssessmentKind) int {
	switch kind {
	case catalog.KindCourseChallenge:
		return a.cfg.CourseChallengeTarget
	case catalog.KindUnitTest:
		return a.cfg.UnitTestTarget
	default:
		return 0
	}
}
