package models

import (
	"time"

	"github.com/lib/pq"
)

type Candidate struct {
	ID       string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FullName string `gorm:"column:full_name;type:text" json:"full_name"`
	Email    string `gorm:"column:email;type:text" json:"email"`
	Headline string `gorm:"column:headline;type:text" json:"headline"`

	Languages pq.StringArray `gorm:"column:languages;type:text[]" json:"languages"`

	// Academic record. GPA is nullable: absent means "not reported".
	GPA              *float64 `gorm:"column:gpa;type:numeric" json:"gpa,omitempty"`
	CompletedCourses int      `gorm:"column:completed_courses;type:integer" json:"completed_courses"`

	Skills      []CandidateSkill      `gorm:"foreignKey:CandidateID" json:"skills,omitempty"`
	Experiences []ExperienceRecord    `gorm:"foreignKey:CandidateID" json:"experiences,omitempty"`
	Projects    []ProjectRecord       `gorm:"foreignKey:CandidateID" json:"projects,omitempty"`
	Preferences []CandidatePreference `gorm:"foreignKey:CandidateID" json:"preferences,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Candidate) TableName() string { return "candidates" }

type CandidateSkill struct {
	ID          uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CandidateID string `gorm:"column:candidate_id;type:uuid;index" json:"candidate_id"`
	SkillID     string `gorm:"column:skill_id;type:text" json:"skill_id"`

	Proficiency       int     `gorm:"column:proficiency;type:integer" json:"proficiency"` // 1..5
	YearsOfExperience float64 `gorm:"column:years_of_experience;type:numeric" json:"years_of_experience"`
}

func (CandidateSkill) TableName() string { return "candidate_skills" }

type ExperienceRecord struct {
	ID          uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CandidateID string `gorm:"column:candidate_id;type:uuid;index" json:"candidate_id"`
	Company     string `gorm:"column:company;type:text" json:"company"`
	Title       string `gorm:"column:title;type:text" json:"title"`

	StartDate time.Time `gorm:"column:start_date;type:timestamptz" json:"start_date"`
	// Nil end date means the engagement is still ongoing.
	EndDate *time.Time `gorm:"column:end_date;type:timestamptz" json:"end_date,omitempty"`
}

func (ExperienceRecord) TableName() string { return "experience_records" }

type ProjectRecord struct {
	ID          uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CandidateID string `gorm:"column:candidate_id;type:uuid;index" json:"candidate_id"`
	Name        string `gorm:"column:name;type:text" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description"`
}

func (ProjectRecord) TableName() string { return "project_records" }

type CandidatePreference struct {
	ID           uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CandidateID  string `gorm:"column:candidate_id;type:uuid;index" json:"candidate_id"`
	PreferenceID string `gorm:"column:preference_id;type:text" json:"preference_id"`
	Priority     int    `gorm:"column:priority;type:integer" json:"priority"` // 1..5
}

func (CandidatePreference) TableName() string { return "candidate_preferences" }
