package variantgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bjornpagen/qtiforge/internal/catalog"
	"github.com/bjornpagen/qtiforge/internal/config"
	"github.com/bjornpagen/qtiforge/internal/llm"
	"github.com/bjornpagen/qtiforge/internal/retry"
)

// Generator produces question variants and passage paraphrases using an
// LLM provider. It performs no retries of its own; callers wrap each call
// in the task runner.
type Generator struct {
	provider llm.Provider
	cfg      config.GenerationConfig
}

// New creates a Generator with the given provider and config.
func New(provider llm.Provider, cfg config.GenerationConfig) *Generator {
	return &Generator{provider: provider, cfg: cfg}
}

type variantsOutput struct {
	Variants []string `json:"variants"`
}

type paraphraseOutput struct {
	Paraphrase string `json:"paraphrase"`
}

// GenerateVariants produces n candidate variants of the source question.
// Each candidate gets a derived identifier and carries the question's
// provenance metadata.
func (g *Generator) GenerateVariants(ctx context.Context, q catalog.Question, n int) ([]Candidate, error) {
	if strings.TrimSpace(q.XML) == "" {
		return nil, retry.NonRetryable(fmt.Errorf("question %s: %w", q.ID, ErrEmptySource))
	}

	ctx = llm.WithPurpose(ctx, "variant-gen")

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      variantSystemPrompt,
		Prompt:      buildVariantPrompt(q.XML, n),
		Schema:      VariantsSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate variants for %s: %w", q.ID, err)
	}

	var out variantsOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse variants for %s: %w", q.ID, err)
	}
	if len(out.Variants) == 0 {
		return nil, fmt.Errorf("generate variants for %s: model returned none", q.ID)
	}
	if len(out.Variants) > n {
		out.Variants = out.Variants[:n]
	}

	candidates := make([]Candidate, 0, len(out.Variants))
	for i, xml := range out.Variants {
		if strings.TrimSpace(xml) == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			ID:         CandidateID(q.ID, i+1),
			XML:        xml,
			SourceID:   q.ID,
			ExerciseID: q.ExerciseID,
			UnitID:     q.UnitID,
			Category:   q.Category,
		})
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("generate variants for %s: all variants empty", q.ID)
	}
	return candidates, nil
}

// Paraphrase produces exactly one paraphrased version of the passage.
func (g *Generator) Paraphrase(ctx context.Context, p catalog.Passage) (*ParaphrasedPassage, error) {
	if strings.TrimSpace(p.XML) == "" {
		return nil, retry.NonRetryable(fmt.Errorf("passage %s: %w", p.ID, ErrEmptySource))
	}

	ctx = llm.WithPurpose(ctx, "paraphrase")

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      paraphraseSystemPrompt,
		Prompt:      buildParaphrasePrompt(p.XML),
		Schema:      ParaphraseSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("paraphrase %s: %w", p.ID, err)
	}

	var out paraphraseOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse paraphrase for %s: %w", p.ID, err)
	}
	if strings.TrimSpace(out.Paraphrase) == "" {
		return nil, fmt.Errorf("paraphrase %s: model returned empty content", p.ID)
	}

	return &ParaphrasedPassage{
		ID:       ParaphraseID(p.ID),
		XML:      out.Paraphrase,
		SourceID: p.ID,
		UnitID:   p.UnitID,
	}, nil
}
