package services

import (
	"context"

	"github.com/hireloop/hireloop/internal/models"
	mongorepo "github.com/hireloop/hireloop/internal/repositories/mongo"
	"github.com/hireloop/hireloop/internal/utils"
)

type HistoryService interface {
	ListByCandidate(ctx context.Context, candidateID string, limit int64) ([]models.ScoreHistory, error)
}

type historyService struct {
	history mongorepo.HistoryRepository
}

func NewHistoryService(history mongorepo.HistoryRepository) HistoryService {
	return &historyService{history: history}
}

func (s *historyService) ListByCandidate(ctx context.Context, candidateID string, limit int64) ([]models.ScoreHistory, error) {
	const op = "HistoryService.ListByCandidate"

	if candidateID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "candidate_id is required", nil)
	}
	out, err := s.history.ListByCandidate(ctx, candidateID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list score history", err)
	}
	return out, nil
}
