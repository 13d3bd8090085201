package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScoreHistory is the append-only audit document written after every
// successful recomputation. It lives in Mongo with a TTL index so the
// trail ages out on its own.
type ScoreHistory struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	CandidateID string  `bson:"candidate_id" json:"candidate_id"`
	PostingID   *string `bson:"posting_id,omitempty" json:"posting_id,omitempty"`
	TaskID      string  `bson:"task_id" json:"task_id"`

	Kind  string  `bson:"kind" json:"kind"` // candidate|pair
	Score float64 `bson:"score" json:"score"`

	ComputeVersion string    `bson:"compute_version" json:"compute_version"`
	ComputedAt     time.Time `bson:"computed_at" json:"computed_at"`

	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"` // for TTL index
}
