package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hireloop/hireloop/internal/models"
)

type HistoryRepository interface {
	Insert(ctx context.Context, h *models.ScoreHistory) error
	ListByCandidate(ctx context.Context, candidateID string, limit int64) ([]models.ScoreHistory, error)
}

type historyRepo struct {
	col *mongo.Collection
}

func NewHistoryRepo(db *mongo.Database) HistoryRepository {
	return &historyRepo{col: db.Collection("score_history")}
}

func (r *historyRepo) Insert(ctx context.Context, h *models.ScoreHistory) error {
	if h.ComputedAt.IsZero() {
		h.ComputedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, h)
	return err
}

func (r *historyRepo) ListByCandidate(ctx context.Context, candidateID string, limit int64) ([]models.ScoreHistory, error) {
	if limit <= 0 {
		limit = 100
	}

	cur, err := r.col.Find(ctx,
		bson.M{"candidate_id": candidateID},
		options.Find().
			SetSort(bson.D{{Key: "computed_at", Value: -1}}).
			SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ScoreHistory
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
