package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hireloop/hireloop/internal/models"
	"github.com/hireloop/hireloop/internal/utils"
)

type CandidateRepository interface {
	// GetWithAssociations loads the candidate plus everything snapshot
	// assembly needs: skills, experiences, projects, preferences.
	GetWithAssociations(ctx context.Context, id string) (*models.Candidate, error)
	Upsert(ctx context.Context, c *models.Candidate) error
}

type candidateRepo struct {
	db *gorm.DB
}

func NewCandidateRepo(db *gorm.DB) CandidateRepository {
	return &candidateRepo{db: db}
}

func (r *candidateRepo) GetWithAssociations(ctx context.Context, id string) (*models.Candidate, error) {
	var c models.Candidate
	err := r.db.WithContext(ctx).
		Preload("Skills").
		Preload("Experiences").
		Preload("Projects").
		Preload("Preferences").
		Where("id = ?", id).
		Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *candidateRepo) Upsert(ctx context.Context, c *models.Candidate) error {
	return r.db.WithContext(ctx).Save(c).Error
}
