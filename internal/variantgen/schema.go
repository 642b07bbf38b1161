package variantgen

import "github.com/bjornpagen/qtiforge/internal/llm"

// VariantsSchema is the structured output contract for variant generation.
var VariantsSchema = &llm.Schema{
	Name:        "question-variants",
	Description: "A list of assessment item XML documents, each a distinct variant of the source question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"variants": map[string]any{
				"type":        "array",
				"description": "One complete assessmentItem XML document per variant",
				"items": map[string]any{
					"type": "string",
				},
			},
		},
		"required": []any{"variants"},
	},
}

// ParaphraseSchema is the structured output contract for passage paraphrase.
var ParaphraseSchema = &llm.Schema{
	Name:        "passage-paraphrase",
	Description: "A paraphrased version of the source reading passage",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"paraphrase": map[string]any{
				"type":        "string",
				"description": "The complete paraphrased passage XML",
			},
		},
		"required": []any{"paraphrase"},
	},
}
