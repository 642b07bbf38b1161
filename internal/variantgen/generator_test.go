package variantgen

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/bjornpagen/qtiforge/internal/catalog"
	"github.com/bjornpagen/qtiforge/internal/config"
	"github.com/bjornpagen/qtiforge/internal/llm"
	"github.com/bjornpagen/qtiforge/internal/retry"
)

func genConfig() config.GenerationConfig {
	return config.GenerationConfig{
		VariantsPerQuestion: 3,
		MaxTokens:           1024,
		Temperature:         0.7,
	}
}

func question() catalog.Question {
	return catalog.Question{
		ID:         "q1",
		XML:        `<assessmentItem identifier="q1"><itemBody>What is 2+2?</itemBody></assessmentItem>`,
		ExerciseID: "ex1",
		UnitID:     "u1",
		Category:   "addition",
	}
}

func variantsJSON(t *testing.T, variants ...string) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(map[string]any{"variants": variants})
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func TestGenerateVariants_DerivesIDsAndProvenance(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: variantsJSON(t, "<a/>", "<b/>", "<c/>"),
	})
	g := New(mock, genConfig())

	got, err := g.GenerateVariants(context.Background(), question(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got))
	}
	for i, c := range got {
		if want := CandidateID("q1", i+1); c.ID != want {
			t.Errorf("candidate %d: expected id %s, got %s", i, want, c.ID)
		}
		if c.SourceID != "q1" || c.ExerciseID != "ex1" || c.UnitID != "u1" || c.Category != "addition" {
			t.Errorf("candidate %d lost provenance: %+v", i, c)
		}
	}
}

func TestGenerateVariants_TruncatesExcess(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: variantsJSON(t, "<a/>", "<b/>", "<c/>", "<d/>", "<e/>"),
	})
	g := New(mock, genConfig())

	got, err := g.GenerateVariants(context.Background(), question(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got))
	}
}

func TestGenerateVariants_EmptySourceIsNonRetryable(t *testing.T) {
	mock := llm.NewMockProvider()
	g := New(mock, genConfig())

	q := question()
	q.XML = "   "
	_, err := g.GenerateVariants(context.Background(), q, 3)
	if err == nil {
		t.Fatal("expected error")
	}
	if !retry.IsNonRetryable(err) {
		t.Fatalf("expected non-retryable error, got %v", err)
	}
	if !errors.Is(err, ErrEmptySource) {
		t.Fatalf("expected ErrEmptySource in chain, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Fatalf("provider should not be called for empty source, got %d calls", mock.CallCount())
	}
}

func TestGenerateVariants_NoVariantsIsError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: variantsJSON(t),
	})
	g := New(mock, genConfig())

	if _, err := g.GenerateVariants(context.Background(), question(), 3); err == nil {
		t.Fatal("expected error for empty variant list")
	}
}

func TestParaphrase_ProducesOneCandidate(t *testing.T) {
	raw, _ := json.Marshal(map[string]string{"paraphrase": "<passage>reworded</passage>"})
	mock := llm.NewMockProvider(llm.MockResponse{Content: raw})
	g := New(mock, genConfig())

	p := catalog.Passage{ID: "p1", XML: "<passage>original</passage>", UnitID: "u1"}
	got, err := g.Paraphrase(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != ParaphraseID("p1") {
		t.Errorf("expected id %s, got %s", ParaphraseID("p1"), got.ID)
	}
	if got.SourceID != "p1" || got.UnitID != "u1" {
		t.Errorf("paraphrase lost provenance: %+v", got)
	}
}

func TestParaphrase_EmptySourceIsNonRetryable(t *testing.T) {
	g := New(llm.NewMockProvider(), genConfig())

	_, err := g.Paraphrase(context.Background(), catalog.Passage{ID: "p1"})
	if !retry.IsNonRetryable(err) {
		t.Fatalf("expected non-retryable error, got %v", err)
	}
}
