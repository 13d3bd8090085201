package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hireloop/hireloop/internal/models"
	"github.com/hireloop/hireloop/internal/utils"
)

type MatchRepository interface {
	Get(ctx context.Context, candidateID, postingID string) (*models.MatchScore, error)
	ListByPosting(ctx context.Context, postingID string, limit int) ([]models.MatchScore, error)
	Upsert(ctx context.Context, m *models.MatchScore) error
}

type matchRepo struct {
	db *gorm.DB
}

func NewMatchRepo(db *gorm.DB) MatchRepository {
	return &matchRepo{db: db}
}

func (r *matchRepo) Get(ctx context.Context, candidateID, postingID string) (*models.MatchScore, error) {
	var m models.MatchScore
	err := r.db.WithContext(ctx).
		Where("candidate_id = ? AND posting_id = ?", candidateID, postingID).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *matchRepo) ListByPosting(ctx context.Context, postingID string, limit int) ([]models.MatchScore, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.MatchScore
	err := r.db.WithContext(ctx).
		Where("posting_id = ?", postingID).
		Order("total_score DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// Upsert: later recomputation for the same pair replaces the cached row.
func (r *matchRepo) Upsert(ctx context.Context, m *models.MatchScore) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "candidate_id"}, {Name: "posting_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"skill_match", "academic_fit", "experience_match", "preference_fit", "total_score", "compute_version", "created_at"}),
		}).
		Create(m).Error
}
