package services

import (
	"context"
	"errors"

	"github.com/hireloop/hireloop/internal/models"
	pgrepo "github.com/hireloop/hireloop/internal/repositories/postgres"
	"github.com/hireloop/hireloop/internal/utils"
)

// SnapshotService assembles the read-only views the scoring engine consumes
// from the persisted entities.
type SnapshotService interface {
	Candidate(ctx context.Context, candidateID string) (models.CandidateSnapshot, error)
	Posting(ctx context.Context, postingID string) (models.PostingSnapshot, error)
}

type snapshotService struct {
	candidates pgrepo.CandidateRepository
	postings   pgrepo.PostingRepository
}

func NewSnapshotService(candidates pgrepo.CandidateRepository, postings pgrepo.PostingRepository) SnapshotService {
	return &snapshotService{candidates: candidates, postings: postings}
}

func (s *snapshotService) Candidate(ctx context.Context, candidateID string) (models.CandidateSnapshot, error) {
	const op = "SnapshotService.Candidate"

	if candidateID == "" {
		return models.CandidateSnapshot{}, utils.E(utils.CodeInvalidArgument, op, "candidate_id is required", nil)
	}

	c, err := s.candidates.GetWithAssociations(ctx, candidateID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return models.CandidateSnapshot{}, utils.E(utils.CodeNotFound, op, "candidate not found", err)
		}
		return models.CandidateSnapshot{}, utils.E(utils.CodeInternal, op, "failed to load candidate", err)
	}

	snap := models.CandidateSnapshot{
		CandidateID:      c.ID,
		GPA:              c.GPA,
		CompletedCourses: c.CompletedCourses,
		ProjectCount:     len(c.Projects),
	}
	for _, sk := range c.Skills {
		snap.Skills = append(snap.Skills, models.SkillSnapshot{
			SkillID:           sk.SkillID,
			Proficiency:       sk.Proficiency,
			YearsOfExperience: sk.YearsOfExperience,
		})
	}
	for _, e := range c.Experiences {
		snap.Experiences = append(snap.Experiences, models.ExperiencePeriod{
			StartDate: e.StartDate,
			EndDate:   e.EndDate,
		})
	}
	for _, p := range c.Preferences {
		snap.Preferences = append(snap.Preferences, models.PreferenceSnapshot{
			PreferenceID: p.PreferenceID,
			Priority:     p.Priority,
		})
	}
	return snap, nil
}

func (s *snapshotService) Posting(ctx context.Context, postingID string) (models.PostingSnapshot, error) {
	const op = "SnapshotService.Posting"

	if postingID == "" {
		return models.PostingSnapshot{}, utils.E(utils.CodeInvalidArgument, op, "posting_id is required", nil)
	}

	p, err := s.postings.GetWithSkills(ctx, postingID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return models.PostingSnapshot{}, utils.E(utils.CodeNotFound, op, "posting not found", err)
		}
		return models.PostingSnapshot{}, utils.E(utils.CodeInternal, op, "failed to load posting", err)
	}

	snap := models.PostingSnapshot{
		PostingID:    p.ID,
		GPAThreshold: p.GPAThreshold,
	}
	for _, sk := range p.Skills {
		snap.Skills = append(snap.Skills, models.PostingSkillSnapshot{
			SkillID:          sk.SkillID,
			ImportanceWeight: sk.ImportanceWeight,
			Required:         sk.Required,
		})
	}
	return snap, nil
}
