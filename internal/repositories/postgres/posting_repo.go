package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hireloop/hireloop/internal/models"
	"github.com/hireloop/hireloop/internal/utils"
)

type PostingRepository interface {
	GetWithSkills(ctx context.Context, id string) (*models.Posting, error)
	Upsert(ctx context.Context, p *models.Posting) error
}

type postingRepo struct {
	db *gorm.DB
}

func NewPostingRepo(db *gorm.DB) PostingRepository {
	return &postingRepo{db: db}
}

func (r *postingRepo) GetWithSkills(ctx context.Context, id string) (*models.Posting, error) {
	var p models.Posting
	err := r.db.WithContext(ctx).
		Preload("Skills").
		Where("id = ?", id).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postingRepo) Upsert(ctx context.Context, p *models.Posting) error {
	return r.db.WithContext(ctx).Save(p).Error
}
