package services

import (
	"context"
	"errors"
	"time"

	"github.com/hireloop/hireloop/internal/cache"
	"github.com/hireloop/hireloop/internal/models"
	pgrepo "github.com/hireloop/hireloop/internal/repositories/postgres"
	"github.com/hireloop/hireloop/internal/utils"
)

const scoreCacheTTL = 5 * time.Minute

// ScoreService is the read path for cached scores. A candidate whose last
// recomputation failed simply keeps serving the previous row (or absence);
// the underlying failure never surfaces here.
type ScoreService interface {
	GetCandidateMetrics(ctx context.Context, candidateID string) (*models.CandidateMetrics, error)
	GetMatchScore(ctx context.Context, candidateID, postingID string) (*models.MatchScore, error)
}

type scoreService struct {
	metrics pgrepo.MetricsRepository
	matches pgrepo.MatchRepository
	cache   cache.Cache // optional
}

func NewScoreService(metrics pgrepo.MetricsRepository, matches pgrepo.MatchRepository, c cache.Cache) ScoreService {
	return &scoreService{metrics: metrics, matches: matches, cache: c}
}

func (s *scoreService) GetCandidateMetrics(ctx context.Context, candidateID string) (*models.CandidateMetrics, error) {
	const op = "ScoreService.GetCandidateMetrics"

	if candidateID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "candidate_id is required", nil)
	}

	key := cache.CandidateMetricsKey(candidateID)
	if s.cache != nil {
		var cached models.CandidateMetrics
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	m, err := s.metrics.GetByCandidateID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "no metrics computed yet", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get candidate metrics", err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, m, scoreCacheTTL)
	}
	return m, nil
}

func (s *scoreService) GetMatchScore(ctx context.Context, candidateID, postingID string) (*models.MatchScore, error) {
	const op = "ScoreService.GetMatchScore"

	if candidateID == "" || postingID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "candidate_id and posting_id are required", nil)
	}

	key := cache.MatchScoreKey(candidateID, postingID)
	if s.cache != nil {
		var cached models.MatchScore
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	m, err := s.matches.Get(ctx, candidateID, postingID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "no match score computed yet", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get match score", err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, m, scoreCacheTTL)
	}
	return m, nil
}
