package models

import (
	"time"

	"github.com/lib/pq"
)

type Posting struct {
	ID      string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title   string `gorm:"column:title;type:text" json:"title"`
	Company string `gorm:"column:company;type:text" json:"company"`
	Status  string `gorm:"column:status;type:text" json:"status"` // open|closed

	Tags pq.StringArray `gorm:"column:tags;type:text[]" json:"tags"`

	// Nil threshold means the posting does not gate on GPA.
	GPAThreshold *float64 `gorm:"column:gpa_threshold;type:numeric" json:"gpa_threshold,omitempty"`

	Skills []PostingSkill `gorm:"foreignKey:PostingID" json:"skills,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Posting) TableName() string { return "postings" }

type PostingSkill struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PostingID string `gorm:"column:posting_id;type:uuid;index" json:"posting_id"`
	SkillID   string `gorm:"column:skill_id;type:text" json:"skill_id"`

	ImportanceWeight int  `gorm:"column:importance_weight;type:integer" json:"importance_weight"` // 1..5
	Required         bool `gorm:"column:required" json:"required"`
}

func (PostingSkill) TableName() string { return "posting_skills" }
