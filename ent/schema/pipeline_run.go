package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// PipelineRun is one invocation of the generate-validate-assemble pipeline.
// A run survives process crashes: a re-invocation with the same run ID
// resumes from the last completed step instead of repeating side-effecting
// calls.
type PipelineRun struct {
	ent.Schema
}

func (PipelineRun) Fields() []ent.Field {
	return []ent.Field{
		field.String("run_id").
			Unique().
			Immutable().
			Comment("Caller-visible run identifier (UUID)"),
		field.String("course_id").
			Comment("Course the run operates on"),
		field.String("state").
			Default("discover").
			Comment("Current orchestrator state"),
		field.Time("started_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

func (PipelineRun) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("run_id"),
	}
}
