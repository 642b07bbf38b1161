package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bjornpagen/qtiforge/internal/catalog"
	"github.com/bjornpagen/qtiforge/internal/config"
	"github.com/bjornpagen/qtiforge/internal/contentsvc"
	"github.com/bjornpagen/qtiforge/internal/llm"
	"github.com/bjornpagen/qtiforge/internal/probe"
	"github.com/bjornpagen/qtiforge/internal/retry"
	"github.com/bjornpagen/qtiforge/internal/store"
	"github.com/bjornpagen/qtiforge/internal/variantgen"
)

// memRunRepo is an in-memory store.RunRepo for orchestrator tests.
type memRunRepo struct {
	mu       sync.Mutex
	runs     map[string]*store.Run
	steps    map[string]bool
	outcomes map[string]map[string]store.ItemOutcomeRecord
}

func newMemRunRepo() *memRunRepo {
	return &memRunRepo{
		runs:     make(map[string]*store.Run),
		steps:    make(map[string]bool),
		outcomes: make(map[string]map[string]store.ItemOutcomeRecord),
	}
}

func stepKey(runID, step string) string { return runID + "\x00" + step }

func (m *memRunRepo) CreateRun(_ context.Context, runID, courseID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.runs[runID]; ok {
		return fmt.Errorf("run %s already exists", runID)
	}
	now := time.Now()
	m.runs[runID] = &store.Run{RunID: runID, CourseID: courseID, State: StateDiscover, StartedAt: now, UpdatedAt: now}
	return nil
}

func (m *memRunRepo) GetRun(_ context.Context, runID string) (*store.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.runs[runID]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memRunRepo) SetState(_ context.Context, runID, state string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.runs[runID]
	if !ok {
		return fmt.Errorf("no such run %s", runID)
	}
	r.State = state
	r.UpdatedAt = time.Now()
	return nil
}

func (m *memRunRepo) MarkStep(_ context.Context, runID, step string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps[stepKey(runID, step)] = true
	return nil
}

func (m *memRunRepo) StepDone(_ context.Context, runID, step string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.steps[stepKey(runID, step)], nil
}

func (m *memRunRepo) SaveItemOutcome(_ context.Context, runID, step string, rec store.ItemOutcomeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := stepKey(runID, step)
	if m.outcomes[key] == nil {
		m.outcomes[key] = make(map[string]store.ItemOutcomeRecord)
	}
	m.outcomes[key][rec.ItemID] = rec
	return nil
}

func (m *memRunRepo) ItemOutcomes(_ context.Context, runID, step string) (map[string]store.ItemOutcomeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]store.ItemOutcomeRecord, len(m.outcomes[stepKey(runID, step)]))
	for k, v := range m.outcomes[stepKey(runID, step)] {
		out[k] = v
	}
	return out, nil
}

// fakeCatalog serves a fixed course from memory.
type fakeCatalog struct {
	course      catalog.Course
	exercises   []catalog.Exercise
	questions   map[string][]catalog.Question
	passages    []catalog.Passage
	assessments []catalog.Assessment
}

func (f *fakeCatalog) Course(_ context.Context, courseID string) (*catalog.Course, error) {
	if courseID != f.course.ID {
		return nil, retry.NonRetryable(&catalog.ErrNotFound{Kind: "course", ID: courseID})
	}
	cp := f.course
	return &cp, nil
}

func (f *fakeCatalog) Exercises(_ context.Context, _ string) ([]catalog.Exercise, error) {
	return f.exercises, nil
}

func (f *fakeCatalog) Questions(_ context.Context, exerciseID string) ([]catalog.Question, error) {
	return f.questions[exerciseID], nil
}

func (f *fakeCatalog) Passages(_ context.Context, _ string) ([]catalog.Passage, error) {
	return f.passages, nil
}

func (f *fakeCatalog) Assessments(_ context.Context, _ string) ([]catalog.Assessment, error) {
	return f.assessments, nil
}

func smallCourse() *fakeCatalog {
	return &fakeCatalog{
		course: catalog.Course{
			ID:    "c1",
			Title: "Fractions",
			Units: []catalog.Unit{{ID: "u1", Title: "Unit 1", ExerciseIDs: []string{"ex1"}, PassageIDs: []string{"p1"}}},
		},
		exercises: []catalog.Exercise{{ID: "ex1", Title: "Adding fractions", UnitID: "u1"}},
		questions: map[string][]catalog.Question{
			"ex1": {{
				ID:         "q1",
				XML:        `<assessmentItem identifier="q1"><itemBody>1/2 + 1/4 = ?</itemBody></assessmentItem>`,
				ExerciseID: "ex1",
				UnitID:     "u1",
				Category:   "addition",
			}},
		},
		passages: []catalog.Passage{{
			ID:     "p1",
			XML:    `<passage identifier="p1"><p>Fractions describe parts of a whole.</p></passage>`,
			UnitID: "u1",
			Title:  "Intro",
		}},
		assessments: []catalog.Assessment{{
			ID:          "ex1-test",
			Title:       "Exercise 1 Test",
			Kind:        catalog.KindExerciseTest,
			UnitID:      "u1",
			ExerciseIDs: []string{"ex1"},
		}},
	}
}

// variantsResponse builds a canned structured-output payload with the
// given item XML fragments.
func variantsResponse(t *testing.T, variants ...string) llm.MockResponse {
	t.Helper()
	payload, err := json.Marshal(map[string]any{"variants": variants})
	require.NoError(t, err)
	return llm.MockResponse{Content: payload}
}

func paraphraseResponse(t *testing.T, xml string) llm.MockResponse {
	t.Helper()
	payload, err := json.Marshal(map[string]any{"paraphrase": xml})
	require.NoError(t, err)
	return llm.MockResponse{Content: payload}
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Generation.MaxAttempts = 1
	cfg.ItemProbe = config.ProbeConfig{BatchSize: 3, BatchDelay: time.Millisecond, MaxAttempts: 1}
	cfg.DocumentProbe = config.ProbeConfig{BatchSize: 2, BatchDelay: time.Millisecond, MaxAttempts: 1}
	cfg.OutputDir = t.TempDir()
	return cfg
}

func newTestOrchestrator(t *testing.T, cfg config.Config, cat catalog.Service, provider llm.Provider, svc contentsvc.Service, runs store.RunRepo) *Orchestrator {
	t.Helper()
	runner := retry.NewRunner(retry.Config{Base: time.Millisecond, Cap: 5 * time.Millisecond}, nil)
	gen := variantgen.New(provider, cfg.Generation)
	itemValidator := probe.New(svc, runner, cfg.ItemProbe, nil)
	docValidator := probe.New(svc, runner, cfg.DocumentProbe, nil)
	return New(cfg, cat, gen, itemValidator, docValidator, runs, runner, nil)
}

func TestRun_EndToEnd(t *testing.T) {
	cfg := testConfig(t)

	// Five variants for the one question; two are rejected by the content
	// service. One paraphrase for the one passage.
	variantXML := func(n int, marker string) string {
		return fmt.Sprintf(`<assessmentItem identifier="q1"><itemBody>%svariant %d <passageRef identifier="p1" href="p1.xml"/></itemBody></assessmentItem>`, marker, n)
	}
	provider := llm.NewMockProvider(
		variantsResponse(t,
			variantXML(1, ""),
			variantXML(2, ""),
			variantXML(3, ""),
			variantXML(4, "MALFORMED "),
			variantXML(5, "MALFORMED "),
		),
		paraphraseResponse(t, `<passage identifier="p1"><p>A fraction names part of a whole.</p></passage>`),
	)

	svc := contentsvc.NewFake()
	svc.RejectContent = "MALFORMED"

	runs := newMemRunRepo()
	o := newTestOrchestrator(t, cfg, smallCourse(), provider, svc, runs)

	summary, err := o.Run(context.Background(), "", "c1")
	require.NoError(t, err)

	require.Equal(t, 3, summary.ValidatedItems)
	require.Equal(t, 2, summary.SkippedItems)
	require.Len(t, summary.Skips, 2)
	for _, s := range summary.Skips {
		require.NotEmpty(t, s.Reason)
	}
	require.Equal(t, 1, summary.Paraphrases)
	require.Equal(t, 1, summary.Tests)
	require.Zero(t, summary.ErrorCount())

	// Probes leave nothing behind in the content service.
	require.Zero(t, svc.Count())

	// The assembled test references the three surviving variants.
	testXML, err := os.ReadFile(filepath.Join(cfg.OutputDir, "u1", "tests", "ex1-test.xml"))
	require.NoError(t, err)
	for _, id := range []string{"q1-v1", "q1-v2", "q1-v3"} {
		require.Contains(t, string(testXML), id)
	}
	require.NotContains(t, string(testXML), "q1-v4")

	// Item artifacts reference the paraphrased passage, not the canonical
	// one.
	itemsData, err := os.ReadFile(filepath.Join(cfg.OutputDir, "u1", "items.jsonl"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(itemsData)), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		var rec struct {
			ID       string `json:"id"`
			SourceID string `json:"source_id"`
			XML      string `json:"xml"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		require.Equal(t, "q1", rec.SourceID)
		require.Contains(t, rec.XML, `identifier="p1-para"`)
		require.NotContains(t, rec.XML, `identifier="p1"`)
	}

	// Run record reached the terminal state.
	run, err := runs.GetRun(context.Background(), summary.RunID)
	require.NoError(t, err)
	require.Equal(t, StateDone, run.State)

	// Report exists and matches the summary.
	reportData, err := os.ReadFile(filepath.Join(cfg.OutputDir, "report.json"))
	require.NoError(t, err)
	var report Summary
	require.NoError(t, json.Unmarshal(reportData, &report))
	require.Equal(t, summary.ValidatedItems, report.ValidatedItems)
}

func TestRun_ResumeRepeatsNoSideEffects(t *testing.T) {
	cfg := testConfig(t)
	provider := llm.NewMockProvider(
		variantsResponse(t, `<assessmentItem identifier="q1"><itemBody>v</itemBody></assessmentItem>`),
		paraphraseResponse(t, `<passage identifier="p1"><p>P.</p></passage>`),
	)
	svc := contentsvc.NewFake()
	runs := newMemRunRepo()
	o := newTestOrchestrator(t, cfg, smallCourse(), provider, svc, runs)

	first, err := o.Run(context.Background(), "", "c1")
	require.NoError(t, err)
	require.Equal(t, 1, first.ValidatedItems)

	llmCalls := provider.CallCount()
	svcOps := len(svc.Ops)

	// Re-running the same run must replay from the store: no LLM calls, no
	// content service traffic, identical accounting.
	second, err := o.Run(context.Background(), first.RunID, "")
	require.NoError(t, err)
	require.Equal(t, llmCalls, provider.CallCount())
	require.Len(t, svc.Ops, svcOps)
	require.Equal(t, first.ValidatedItems, second.ValidatedItems)
	require.Equal(t, first.Tests, second.Tests)
	require.Equal(t, first.CourseID, second.CourseID)
}

func TestRun_GenerationFailureIsRecordedNotFatal(t *testing.T) {
	cfg := testConfig(t)

	// The provider errors on every call, so both generation and paraphrase
	// fail. The run still completes and reports the failures.
	provider := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
	)
	svc := contentsvc.NewFake()
	runs := newMemRunRepo()
	o := newTestOrchestrator(t, cfg, smallCourse(), provider, svc, runs)

	summary, err := o.Run(context.Background(), "", "c1")
	require.NoError(t, err)

	require.Zero(t, summary.ValidatedItems)
	require.Zero(t, summary.Paraphrases)
	require.Equal(t, 2, summary.ErrorCount())

	stages := map[string]int{}
	for _, f := range summary.Failures {
		stages[f.Stage]++
	}
	require.Equal(t, 1, stages[StateGenerate])
	require.Equal(t, 1, stages[StateParaphrase])

	// A question with no surviving variants contributes nothing, so the
	// exercise test is emitted empty rather than dropped.
	require.Equal(t, 1, summary.Tests)
}

func TestRun_FailedDocumentProbeCountsAsSkippedTest(t *testing.T) {
	cfg := testConfig(t)
	provider := llm.NewMockProvider(
		variantsResponse(t, `<assessmentItem identifier="q1"><itemBody>v</itemBody></assessmentItem>`),
		paraphraseResponse(t, `<passage identifier="p1"><p>P.</p></passage>`),
	)

	// Reject the assembled test document by matching its identifier, which
	// only appears in document payloads.
	svc := contentsvc.NewFake()
	svc.RejectContent = "ex1-test"

	runs := newMemRunRepo()
	o := newTestOrchestrator(t, cfg, smallCourse(), provider, svc, runs)

	summary, err := o.Run(context.Background(), "", "c1")
	require.NoError(t, err)

	require.Equal(t, 1, summary.ValidatedItems)
	require.Zero(t, summary.Tests)
	require.Equal(t, 1, summary.SkippedTests)
	require.Equal(t, 1, summary.ErrorCount())
	require.Equal(t, StateAssemble, summary.Failures[0].Stage)

	// No test document file was written.
	_, err = os.Stat(filepath.Join(cfg.OutputDir, "u1", "tests", "ex1-test.xml"))
	require.True(t, os.IsNotExist(err))
}
