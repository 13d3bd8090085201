package models

import "time"

// Snapshots are the read-only views the scoring engine consumes. They are
// assembled on demand from the persisted entities and never written back.

type SkillSnapshot struct {
	SkillID           string  `json:"skill_id"`
	Proficiency       int     `json:"proficiency"` // 1..5
	YearsOfExperience float64 `json:"years_of_experience"`
}

type ExperiencePeriod struct {
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"` // nil = ongoing
}

type PreferenceSnapshot struct {
	PreferenceID string `json:"preference_id"`
	Priority     int    `json:"priority"` // 1..5
}

type CandidateSnapshot struct {
	CandidateID      string               `json:"candidate_id"`
	Skills           []SkillSnapshot      `json:"skills"`
	GPA              *float64             `json:"gpa,omitempty"`
	CompletedCourses int                  `json:"completed_courses"`
	Experiences      []ExperiencePeriod   `json:"experiences"`
	ProjectCount     int                  `json:"project_count"`
	Preferences      []PreferenceSnapshot `json:"preferences"`
}

type PostingSkillSnapshot struct {
	SkillID          string `json:"skill_id"`
	ImportanceWeight int    `json:"importance_weight"` // 1..5
	Required         bool   `json:"required"`
}

type PostingSnapshot struct {
	PostingID    string                 `json:"posting_id"`
	Skills       []PostingSkillSnapshot `json:"skills"`
	GPAThreshold *float64               `json:"gpa_threshold,omitempty"`
}
