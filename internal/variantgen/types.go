package variantgen

import (
	"errors"
	"fmt"
)

// ErrEmptySource is returned when a source item has no content to expand.
// It is a domain error, tagged non-retryable before it leaves the adapter,
// so callers can match it with errors.Is.
var ErrEmptySource = errors.New("source content is empty")

// Candidate is one AI-produced variant of a canonical question. Not yet
// known to be valid; the probe pass decides that.
type Candidate struct {
	// ID is the generated identifier, derived from the source id and the
	// variant sequence number.
	ID string

	// XML is the candidate assessment item markup.
	XML string

	// Provenance back to the canonical source.
	SourceID   string
	ExerciseID string
	UnitID     string
	Category   string
}

// ParaphrasedPassage is the AI paraphrase of one reading passage.
type ParaphrasedPassage struct {
	ID       string
	XML      string
	SourceID string
	UnitID   string
}

// CandidateID derives the generated identifier for variant n (1-based) of
// the given source item.
func CandidateID(sourceID string, n int) string {
	return fmt.Sprintf("%s-v%d", sourceID, n)
}

// ParaphraseID derives the identifier for the paraphrase of a passage.
func ParaphraseID(sourceID string) string {
	return sourceID + "-para"
}
