package models

import "time"

// CandidateMetrics is the cached absolute quality score for one candidate.
// The row is replaced as a unit on every recomputation: all four factor
// scores and the composite always come from the same ComputeVersion.
type CandidateMetrics struct {
	CandidateID string `gorm:"column:candidate_id;type:uuid;primaryKey" json:"candidate_id"`

	SkillScore       float64 `gorm:"column:skill_score;type:numeric" json:"skill_score"`
	AcademicScore    float64 `gorm:"column:academic_score;type:numeric" json:"academic_score"`
	ExperienceScore  float64 `gorm:"column:experience_score;type:numeric" json:"experience_score"`
	PreferenceScore  float64 `gorm:"column:preference_score;type:numeric" json:"preference_score"`
	HireabilityScore float64 `gorm:"column:hireability_score;type:numeric" json:"hireability_score"`

	ComputeVersion string    `gorm:"column:compute_version;type:text" json:"compute_version"`
	LastComputed   time.Time `gorm:"column:last_computed;type:timestamptz" json:"last_computed"`
}

func (CandidateMetrics) TableName() string { return "candidate_metrics" }
