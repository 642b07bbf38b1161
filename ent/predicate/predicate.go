// Code generated by ent, DO NOT EDIT.

package predicate

import (
	"entgo.io/ent/dialect/sql"
)

// ItemOutcome is the predicate function for itemoutcome builders.
type ItemOutcome func(*sql.Selector)

// LLMRequestEvent is the predicate function for llmrequestevent builders.
type LLMRequestEvent func(*sql.Selector)

// PipelineRun is the predicate function for pipelinerun builders.
type PipelineRun func(*sql.Selector)

// StepMarker is the predicate function for stepmarker builders.
type StepMarker func(*sql.Selector)
