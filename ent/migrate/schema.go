// Code generated by ent, DO NOT EDIT.

package migrate

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// ItemOutcomesColumns holds the columns for the "item_outcomes" table.
	ItemOutcomesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "run_id", Type: field.TypeString},
		{Name: "step", Type: field.TypeString},
		{Name: "item_id", Type: field.TypeString},
		{Name: "status", Type: field.TypeString},
		{Name: "detail", Type: field.TypeString, Default: ""},
		{Name: "payload", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "recorded_at", Type: field.TypeTime},
	}
	// ItemOutcomesTable holds the schema information for the "item_outcomes" table.
	ItemOutcomesTable = &schema.Table{
		Name:       "item_outcomes",
		Columns:    ItemOutcomesColumns,
		PrimaryKey: []*schema.Column{ItemOutcomesColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "itemoutcome_run_id_step_item_id",
				Unique:  true,
				Columns: []*schema.Column{ItemOutcomesColumns[1], ItemOutcomesColumns[2], ItemOutcomesColumns[3]},
			},
			{
				Name:    "itemoutcome_run_id_step",
				Unique:  false,
				Columns: []*schema.Column{ItemOutcomesColumns[1], ItemOutcomesColumns[2]},
			},
		},
	}
	// LlmRequestEventsColumns holds the columns for the "llm_request_events" table.
	LlmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "timestamp", Type: field.TypeTime},
	}
	// LlmRequestEventsTable holds the schema information for the "llm_request_events" table.
	LlmRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    LlmRequestEventsColumns,
		PrimaryKey: []*schema.Column{LlmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "llmrequestevent_provider",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[1]},
			},
			{
				Name:    "llmrequestevent_purpose",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[3]},
			},
			{
				Name:    "llmrequestevent_success",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[7]},
			},
		},
	}
	// PipelineRunsColumns holds the columns for the "pipeline_runs" table.
	PipelineRunsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "run_id", Type: field.TypeString, Unique: true},
		{Name: "course_id", Type: field.TypeString},
		{Name: "state", Type: field.TypeString, Default: "discover"},
		{Name: "started_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// PipelineRunsTable holds the schema information for the "pipeline_runs" table.
	PipelineRunsTable = &schema.Table{
		Name:       "pipeline_runs",
		Columns:    PipelineRunsColumns,
		PrimaryKey: []*schema.Column{PipelineRunsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "pipelinerun_run_id",
				Unique:  false,
				Columns: []*schema.Column{PipelineRunsColumns[1]},
			},
		},
	}
	// StepMarkersColumns holds the columns for the "step_markers" table.
	StepMarkersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "run_id", Type: field.TypeString},
		{Name: "step", Type: field.TypeString},
		{Name: "completed_at", Type: field.TypeTime},
	}
	// StepMarkersTable holds the schema information for the "step_markers" table.
	StepMarkersTable = &schema.Table{
		Name:       "step_markers",
		Columns:    StepMarkersColumns,
		PrimaryKey: []*schema.Column{StepMarkersColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "stepmarker_run_id_step",
				Unique:  true,
				Columns: []*schema.Column{StepMarkersColumns[1], StepMarkersColumns[2]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		ItemOutcomesTable,
		LlmRequestEventsTable,
		PipelineRunsTable,
		StepMarkersTable,
	}
)

func init() {
}
