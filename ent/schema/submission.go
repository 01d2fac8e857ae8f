package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Submission records one prediction attempt, successful or not.
type Submission struct {
	ent.Schema
}

func (Submission) Fields() []ent.Field {
	return []ent.Field{
		field.String("submission_id").
			Unique().
			Immutable().
			Comment("UUID assigned when the attempt is recorded"),
		field.Int64("created_at").
			Immutable().
			Comment("Unix milliseconds, UTC"),
		field.String("answers").
			Comment("Answer set as a JSON object"),
		field.String("prediction").
			Default("").
			Comment("Label returned by the service; empty on failure"),
		field.Bool("success").
			Default(false),
		field.String("error_message").
			Default(""),
		field.Int64("latency_ms").
			Default(0).
			Comment("Round trip of the prediction request"),
	}
}

func (Submission) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("created_at"),
	}
}
