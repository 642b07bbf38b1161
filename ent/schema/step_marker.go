package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// StepMarker records that a pipeline step completed for a run. Presence of
// the marker is what makes a step memoized: on resume the orchestrator skips
// any step whose marker exists.
type StepMarker struct {
	ent.Schema
}

func (StepMarker) Fields() []ent.Field {
	return []ent.Field{
		field.String("run_id").
			Immutable(),
		field.String("step").
			Immutable().
			Comment("Orchestrator step name, e.g. generate, validate"),
		field.Time("completed_at").
			Default(time.Now).
			Immutable(),
	}
}

func (StepMarker) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("run_id", "step").Unique(),
	}
}
