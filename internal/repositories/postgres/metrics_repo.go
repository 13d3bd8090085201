package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hireloop/hireloop/internal/models"
	"github.com/hireloop/hireloop/internal/utils"
)

type MetricsRepository interface {
	GetByCandidateID(ctx context.Context, candidateID string) (*models.CandidateMetrics, error)
	Upsert(ctx context.Context, m *models.CandidateMetrics) error
}

type metricsRepo struct {
	db *gorm.DB
}

func NewMetricsRepo(db *gorm.DB) MetricsRepository {
	return &metricsRepo{db: db}
}

func (r *metricsRepo) GetByCandidateID(ctx context.Context, candidateID string) (*models.CandidateMetrics, error) {
	var m models.CandidateMetrics
	err := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Upsert replaces the whole row in one statement: the four factor scores and
// the composite always land together under one compute version.
func (r *metricsRepo) Upsert(ctx context.Context, m *models.CandidateMetrics) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "candidate_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"skill_score", "academic_score", "experience_score", "preference_score", "hireability_score", "compute_version", "last_computed"}),
		}).
		Create(m).Error
}
