package models

import "time"

// MatchScore is the cached pairwise fit between one candidate and one
// posting. All values are on the 0-100 scale, same as CandidateMetrics.
type MatchScore struct {
	CandidateID string `gorm:"column:candidate_id;type:uuid;primaryKey" json:"candidate_id"`
	PostingID   string `gorm:"column:posting_id;type:uuid;primaryKey" json:"posting_id"`

	SkillMatch      float64 `gorm:"column:skill_match;type:numeric" json:"skill_match"`
	AcademicFit     float64 `gorm:"column:academic_fit;type:numeric" json:"academic_fit"`
	ExperienceMatch float64 `gorm:"column:experience_match;type:numeric" json:"experience_match"`
	PreferenceFit   float64 `gorm:"column:preference_fit;type:numeric" json:"preference_fit"`
	TotalScore      float64 `gorm:"column:total_score;type:numeric" json:"total_score"`

	ComputeVersion string    `gorm:"column:compute_version;type:text" json:"compute_version"`
	CreatedAt      time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (MatchScore) TableName() string { return "match_scores" }
