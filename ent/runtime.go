// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/bjornpagen/qtiforge/ent/itemoutcome"
	"github.com/bjornpagen/qtiforge/ent/llmrequestevent"
	"github.com/bjornpagen/qtiforge/ent/pipelinerun"
	"github.com/bjornpagen/qtiforge/ent/schema"
	"github.com/bjornpagen/qtiforge/ent/stepmarker"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	itemoutcomeFields := schema.ItemOutcome{}.Fields()
	_ = itemoutcomeFields
	// itemoutcomeDescDetail is the schema descriptor for detail field.
	itemoutcomeDescDetail := itemoutcomeFields[4].Descriptor()
	// itemoutcome.DefaultDetail holds the default value on creation for the detail field.
	itemoutcome.DefaultDetail = itemoutcomeDescDetail.Default.(string)
	// itemoutcomeDescPayload is the schema descriptor for payload field.
	itemoutcomeDescPayload := itemoutcomeFields[5].Descriptor()
	// itemoutcome.DefaultPayload holds the default value on creation for the payload field.
	itemoutcome.DefaultPayload = itemoutcomeDescPayload.Default.(string)
	// itemoutcomeDescRecordedAt is the schema descriptor for recorded_at field.
	itemoutcomeDescRecordedAt := itemoutcomeFields[6].Descriptor()
	// itemoutcome.DefaultRecordedAt holds the default value on creation for the recorded_at field.
	itemoutcome.DefaultRecordedAt = itemoutcomeDescRecordedAt.Default.(func() time.Time)
	llmrequesteventFields := schema.LLMRequestEvent{}.Fields()
	_ = llmrequesteventFields
	// llmrequesteventDescInputTokens is the schema descriptor for input_tokens field.
	llmrequesteventDescInputTokens := llmrequesteventFields[3].Descriptor()
	// llmrequestevent.DefaultInputTokens holds the default value on creation for the input_tokens field.
	llmrequestevent.DefaultInputTokens = llmrequesteventDescInputTokens.Default.(int)
	// llmrequesteventDescOutputTokens is the schema descriptor for output_tokens field.
	llmrequesteventDescOutputTokens := llmrequesteventFields[4].Descriptor()
	// llmrequestevent.DefaultOutputTokens holds the default value on creation for the output_tokens field.
	llmrequestevent.DefaultOutputTokens = llmrequesteventDescOutputTokens.Default.(int)
	// llmrequesteventDescLatencyMs is the schema descriptor for latency_ms field.
	llmrequesteventDescLatencyMs := llmrequesteventFields[5].Descriptor()
	// llmrequestevent.DefaultLatencyMs holds the default value on creation for the latency_ms field.
	llmrequestevent.DefaultLatencyMs = llmrequesteventDescLatencyMs.Default.(int64)
	// llmrequesteventDescErrorMessage is the schema descriptor for error_message field.
	llmrequesteventDescErrorMessage := llmrequesteventFields[7].Descriptor()
	// llmrequestevent.DefaultErrorMessage holds the default value on creation for the error_message field.
	llmrequestevent.DefaultErrorMessage = llmrequesteventDescErrorMessage.Default.(string)
	// llmrequesteventDescTimestamp is the schema descriptor for timestamp field.
	llmrequesteventDescTimestamp := llmrequesteventFields[8].Descriptor()
	// llmrequestevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	llmrequestevent.DefaultTimestamp = llmrequesteventDescTimestamp.Default.(func() time.Time)
	pipelinerunFields := schema.PipelineRun{}.Fields()
	_ = pipelinerunFields
	// pipelinerunDescState is the schema descriptor for state field.
	pipelinerunDescState := pipelinerunFields[2].Descriptor()
	// pipelinerun.DefaultState holds the default value on creation for the state field.
	pipelinerun.DefaultState = pipelinerunDescState.Default.(string)
	// pipelinerunDescStartedAt is the schema descriptor for started_at field.
	pipelinerunDescStartedAt := pipelinerunFields[3].Descriptor()
	// pipelinerun.DefaultStartedAt holds the default value on creation for the started_at field.
	pipelinerun.DefaultStartedAt = pipelinerunDescStartedAt.Default.(func() time.Time)
	// pipelinerunDescUpdatedAt is the schema descriptor for updated_at field.
	pipelinerunDescUpdatedAt := pipelinerunFields[4].Descriptor()
	// pipelinerun.DefaultUpdatedAt holds the default value on creation for the updated_at field.
	pipelinerun.DefaultUpdatedAt = pipelinerunDescUpdatedAt.Default.(func() time.Time)
	// pipelinerun.UpdateDefaultUpdatedAt holds the default value on update for the updated_at field.
	pipelinerun.UpdateDefaultUpdatedAt = pipelinerunDescUpdatedAt.UpdateDefault.(func() time.Time)
	stepmarkerFields := schema.StepMarker{}.Fields()
	_ = stepmarkerFields
	// stepmarkerDescCompletedAt is the schema descriptor for completed_at field.
	stepmarkerDescCompletedAt := stepmarkerFields[2].Descriptor()
	// stepmarker.DefaultCompletedAt holds the default value on creation for the completed_at field.
	stepmarker.DefaultCompletedAt = stepmarkerDescCompletedAt.Default.(func() time.Time)
}
