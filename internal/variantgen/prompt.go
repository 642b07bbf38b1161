package variantgen

import (
	"fmt"
	"strings"
)

const variantSystemPrompt = `You are an assessment content author. You produce variants of existing assessment items: same skill, same difficulty, same interaction type and XML structure, but different surface details (numbers, names, contexts, distractors).

Rules:
- Each variant must be a complete, well-formed assessmentItem XML document.
- Keep the identifier attribute of the source item unchanged; the caller assigns new identifiers.
- Never change the response declaration structure or the scoring semantics.
- Variants must be mutually distinct and distinct from the source.`

const paraphraseSystemPrompt = `You are an assessment content author. You paraphrase reading passages: same meaning, same reading level, same length within 10 percent, different wording and sentence structure.

Rules:
- Output a complete passage XML document with the same element structure as the source.
- Preserve all markup; rephrase only the prose content.`

// buildVariantPrompt assembles the user message for variant generation.
func buildVariantPrompt(sourceXML string, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Produce exactly %d variants of the following assessment item.\n\n", n)
	b.WriteString("Source item XML:\n")
	b.WriteString(sourceXML)
	return b.String()
}

// buildParaphrasePrompt assembles the user message for passage paraphrase.
func buildParaphrasePrompt(sourceXML string) string {
	var b strings.Builder
	b.WriteString("Paraphrase the following passage.\n\n")
	b.WriteString("Source passage XML:\n")
	b.WriteString(sourceXML)
	return b.String()
}
