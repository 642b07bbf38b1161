package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ItemOutcome is the durable per-item result of a fan-out step. The payload
// carries whatever the step produced (generated candidate XML, validation
// verdict) so that a resumed run can reuse it without re-calling the LLM or
// the content service.
type ItemOutcome struct {
	ent.Schema
}

func (ItemOutcome) Fields() []ent.Field {
	return []ent.Field{
		field.String("run_id").
			Immutable(),
		field.String("step").
			Immutable(),
		field.String("item_id").
			Immutable().
			Comment("Source item or candidate identifier"),
		field.String("status").
			Comment("ok | failed"),
		field.String("detail").
			Default("").
			Comment("Failure reason when status is failed"),
		field.Text("payload").
			Default("").
			Comment("Step output, JSON-encoded"),
		field.Time("recorded_at").
			Default(time.Now),
	}
}

func (ItemOutcome) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("run_id", "step", "item_id").Unique(),
		index.Fields("run_id", "step"),
	}
}
