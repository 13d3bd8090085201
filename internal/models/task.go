package models

import (
	"time"

	"gorm.io/datatypes"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskProcessing TaskStatus = "processing"
	TaskCompleted  TaskStatus = "completed"
	TaskRetrying   TaskStatus = "retrying"
	TaskFailed     TaskStatus = "failed"
)

// Terminal reports whether a task can no longer change state.
func (s TaskStatus) Terminal() bool {
	return s == TaskCompleted || s == TaskFailed
}

const (
	TaskRecomputeCandidate = "recompute-candidate"
	TaskRecomputePair      = "recompute-pair"
)

// Priority ladder used across all enqueue sites. Higher runs first.
const (
	PriorityUrgent = 9
	PriorityHigh   = 7
	PriorityNormal = 5
	PriorityBulk   = 2
)

// TaskMaxAttempts is the fixed retry cap applied to every new task.
const TaskMaxAttempts = 3

type QueueTask struct {
	ID       string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TaskType string `gorm:"column:task_type;type:text;index" json:"task_type"`

	Payload datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload"`

	// DedupKey identifies equivalent work (task_type + target identity) so
	// rapid successive edits collapse into one pending task.
	DedupKey string `gorm:"column:dedup_key;type:text;index" json:"dedup_key"`

	Priority int        `gorm:"column:priority;type:integer;index" json:"priority"`
	Status   TaskStatus `gorm:"column:status;type:text;index" json:"status"`

	Attempts    int     `gorm:"column:attempts;type:integer" json:"attempts"`
	MaxAttempts int     `gorm:"column:max_attempts;type:integer" json:"max_attempts"`
	LastError   *string `gorm:"column:last_error;type:text" json:"last_error,omitempty"`

	CreatedAt   time.Time  `gorm:"column:created_at;type:timestamptz;index" json:"created_at"`
	ProcessedAt *time.Time `gorm:"column:processed_at;type:timestamptz" json:"processed_at,omitempty"`
	CompletedAt *time.Time `gorm:"column:completed_at;type:timestamptz" json:"completed_at,omitempty"`
}

func (QueueTask) TableName() string { return "queue_tasks" }

// TaskPayload is the target identity carried by every queue task.
type TaskPayload struct {
	CandidateID string `json:"candidate_id"`
	PostingID   string `json:"posting_id,omitempty"`
}

// QueueStats is the operational snapshot served by the queue stats endpoint.
type QueueStats struct {
	Pending     int64   `json:"pending"`
	Processing  int64   `json:"processing"`
	Completed   int64   `json:"completed"`
	Retrying    int64   `json:"retrying"`
	Failed      int64   `json:"failed"`
	SuccessRate float64 `json:"success_rate"`
}
