package services

import (
	"context"

	"github.com/hireloop/hireloop/internal/models"
	"github.com/hireloop/hireloop/internal/utils"
)

// EventRouter translates domain-change notifications into queue tasks. It
// performs no computation of its own.
type EventRouter interface {
	CandidateProfileChanged(ctx context.Context, candidateID string) error
	CandidateSkillsChanged(ctx context.Context, candidateID string) error
	CandidateExperienceChanged(ctx context.Context, candidateID string) error
	// PostingRequirementsChanged fans out one pair task per affected
	// candidate at bulk priority so a big posting edit cannot starve
	// candidate-scoped work.
	PostingRequirementsChanged(ctx context.Context, postingID string, candidateIDs []string) error
}

type eventRouter struct {
	queue QueueService
}

func NewEventRouter(queue QueueService) EventRouter {
	return &eventRouter{queue: queue}
}

func (r *eventRouter) recomputeCandidate(ctx context.Context, op, candidateID string) error {
	if candidateID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "candidate_id is required", nil)
	}
	_, err := r.queue.Enqueue(ctx, models.TaskRecomputeCandidate,
		models.TaskPayload{CandidateID: candidateID}, models.PriorityNormal)
	return err
}

func (r *eventRouter) CandidateProfileChanged(ctx context.Context, candidateID string) error {
	return r.recomputeCandidate(ctx, "EventRouter.CandidateProfileChanged", candidateID)
}

func (r *eventRouter) CandidateSkillsChanged(ctx context.Context, candidateID string) error {
	return r.recomputeCandidate(ctx, "EventRouter.CandidateSkillsChanged", candidateID)
}

func (r *eventRouter) CandidateExperienceChanged(ctx context.Context, candidateID string) error {
	return r.recomputeCandidate(ctx, "EventRouter.CandidateExperienceChanged", candidateID)
}

func (r *eventRouter) PostingRequirementsChanged(ctx context.Context, postingID string, candidateIDs []string) error {
	const op = "EventRouter.PostingRequirementsChanged"

	if postingID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "posting_id is required", nil)
	}
	for _, candidateID := range candidateIDs {
		if candidateID == "" {
			continue
		}
		_, err := r.queue.Enqueue(ctx, models.TaskRecomputePair,
			models.TaskPayload{CandidateID: candidateID, PostingID: postingID},
			models.PriorityBulk)
		if err != nil {
			return err
		}
	}
	return nil
}
