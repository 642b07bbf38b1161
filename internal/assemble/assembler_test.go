package assemble

import (
	"context"
	"encoding/xml"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bjornpagen/qtiforge/internal/catalog"
	"github.com/bjornpagen/qtiforge/internal/config"
	"github.com/bjornpagen/qtiforge/internal/contentsvc"
	"github.com/bjornpagen/qtiforge/internal/idmap"
	"github.com/bjornpagen/qtiforge/internal/probe"
	"github.com/bjornpagen/qtiforge/internal/qti"
	"github.com/bjornpagen/qtiforge/internal/retry"
)

func testAssembler(t *testing.T, mapper *idmap.Mapper, svc contentsvc.Service) *Assembler {
	t.Helper()
	runner := retry.NewRunner(retry.Config{Base: time.Millisecond, Cap: 5 * time.Millisecond}, nil)
	docValidator := probe.New(svc, runner, config.ProbeConfig{
		BatchSize:   5,
		BatchDelay:  time.Millisecond,
		MaxAttempts: 1,
	}, nil)
	return New(mapper, docValidator, config.AssemblyConfig{
		CourseChallengeTarget: 30,
		UnitTestTarget:        12,
	}, nil)
}

func TestBuildAll_ExerciseTestFromValidatedVariants(t *testing.T) {
	mapper := idmap.New()
	require.NoError(t, mapper.Record("q1", "q1-v1"))
	require.NoError(t, mapper.Record("q1", "q1-v2"))
	require.NoError(t, mapper.Record("q1", "q1-v3"))
	mapper.Freeze()

	in := Input{
		Assessments: []catalog.Assessment{{
			ID:          "ex1-test",
			Title:       "Exercise 1 Test",
			Kind:        catalog.KindExerciseTest,
			UnitID:      "u1",
			ExerciseIDs: []string{"ex1"},
		}},
		QuestionsByExercise: map[string][]catalog.Question{
			"ex1": {{ID: "q1", ExerciseID: "ex1", UnitID: "u1", Category: "A"}},
		},
	}

	res := testAssembler(t, mapper, contentsvc.NewFake()).BuildAll(context.Background(), in)

	require.Empty(t, res.Errors)
	require.Empty(t, res.Skipped)
	require.Len(t, res.Documents, 1)

	var doc qti.TestDocument
	require.NoError(t, xml.Unmarshal([]byte(res.Documents[0].XML), &doc))
	require.Len(t, doc.TestPart.Sections, 1)
	require.Len(t, doc.TestPart.Sections[0].ItemRefs, 3)
}

func TestBuildAll_UnitTestRoundRobinAcrossCategories(t *testing.T) {
	// Five categories with pools {10,1,1,1,1}: target 12 takes 8 from the
	// large category and 1 from each singleton.
	mapper := idmap.New()
	questions := []catalog.Question{}
	for i := 0; i < 10; i++ {
		qid := fmt.Sprintf("big-q%02d", i)
		require.NoError(t, mapper.Record(qid, qid+"-v1"))
		questions = append(questions, catalog.Question{
			ID: qid, ExerciseID: "ex-big", UnitID: "u1", Category: "a-cat",
		})
	}
	smallQuestions := map[string][]catalog.Question{"ex-big": questions}
	for _, c := range []string{"b", "c", "d", "e"} {
		qid := c + "-q0"
		require.NoError(t, mapper.Record(qid, qid+"-v1"))
		smallQuestions["ex-"+c] = []catalog.Question{{
			ID: qid, ExerciseID: "ex-" + c, UnitID: "u1", Category: c + "-cat",
		}}
	}
	mapper.Freeze()

	in := Input{
		Assessments: []catalog.Assessment{{
			ID:          "u1-test",
			Title:       "Unit 1 Test",
			Kind:        catalog.KindUnitTest,
			UnitID:      "u1",
			ExerciseIDs: []string{"ex-big", "ex-b", "ex-c", "ex-d", "ex-e"},
		}},
		QuestionsByExercise: smallQuestions,
	}

	res := testAssembler(t, mapper, contentsvc.NewFake()).BuildAll(context.Background(), in)
	require.Empty(t, res.Errors)
	require.Len(t, res.Documents, 1)

	var doc qti.TestDocument
	require.NoError(t, xml.Unmarshal([]byte(res.Documents[0].XML), &doc))
	require.Len(t, doc.TestPart.Sections, 5)

	total := 0
	counts := map[string]int{}
	for _, sec := range doc.TestPart.Sections {
		counts[sec.Title] = len(sec.ItemRefs)
		total += len(sec.ItemRefs)
	}
	require.Equal(t, 12, total)
	require.Equal(t, 8, counts["u1|a-cat"])
	for _, c := range []string{"b", "c", "d", "e"} {
		require.Equal(t, 1, counts["u1|"+c+"-cat"])
	}
	// Sections visit category keys in lexicographic order.
	require.Equal(t, "u1|a-cat", doc.TestPart.Sections[0].Title)
	require.Equal(t, "u1|b-cat", doc.TestPart.Sections[1].Title)
}

func TestBuildAll_ZeroValidatedItemsEmitsEmptyTest(t *testing.T) {
	mapper := idmap.New()
	mapper.Freeze()

	in := Input{
		Assessments: []catalog.Assessment{{
			ID:          "ex1-test",
			Title:       "Exercise 1 Test",
			Kind:        catalog.KindExerciseTest,
			ExerciseIDs: []string{"ex1"},
		}},
		QuestionsByExercise: map[string][]catalog.Question{
			"ex1": {{ID: "q1", ExerciseID: "ex1", Category: "A"}},
		},
	}

	res := testAssembler(t, mapper, contentsvc.NewFake()).BuildAll(context.Background(), in)

	require.Empty(t, res.Errors)
	require.Len(t, res.Documents, 1)

	var doc qti.TestDocument
	require.NoError(t, xml.Unmarshal([]byte(res.Documents[0].XML), &doc))
	require.Empty(t, doc.TestPart.Sections)
}

func TestBuildAll_MissingExerciseInfoFailsOnlyThatAssessment(t *testing.T) {
	mapper := idmap.New()
	require.NoError(t, mapper.Record("q1", "q1-v1"))
	mapper.Freeze()

	in := Input{
		Assessments: []catalog.Assessment{
			{ID: "broken", Kind: catalog.KindQuiz}, // no exercise membership
			{
				ID: "ok", Kind: catalog.KindExerciseTest,
				ExerciseIDs: []string{"ex1"},
			},
		},
		QuestionsByExercise: map[string][]catalog.Question{
			"ex1": {{ID: "q1", ExerciseID: "ex1", Category: "A"}},
		},
	}

	res := testAssembler(t, mapper, contentsvc.NewFake()).BuildAll(context.Background(), in)

	require.Len(t, res.Errors, 1)
	require.Equal(t, "broken", res.Errors[0].AssessmentID)
	require.Len(t, res.Documents, 1)
	require.Equal(t, "ok", res.Documents[0].ID)
}

func TestBuildAll_FailedDocumentProbeSkipsNotPersists(t *testing.T) {
	mapper := idmap.New()
	require.NoError(t, mapper.Record("q1", "q1-v1"))
	mapper.Freeze()

	svc := contentsvc.NewFake()
	svc.RejectContent = "ex1-test"

	in := Input{
		Assessments: []catalog.Assessment{{
			ID: "ex1-test", Kind: catalog.KindExerciseTest,
			ExerciseIDs: []string{"ex1"},
		}},
		QuestionsByExercise: map[string][]catalog.Question{
			"ex1": {{ID: "q1", ExerciseID: "ex1", Category: "A"}},
		},
	}

	res := testAssembler(t, mapper, svc).BuildAll(context.Background(), in)

	require.Empty(t, res.Documents)
	require.Len(t, res.Skipped, 1)
	require.Equal(t, "ex1-test", res.Skipped[0].ID)
	require.NotEmpty(t, res.Skipped[0].Reason)
}
