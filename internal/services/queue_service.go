package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hireloop/hireloop/internal/models"
	pgrepo "github.com/hireloop/hireloop/internal/repositories/postgres"
	"github.com/hireloop/hireloop/internal/utils"
)

type QueueService interface {
	// Enqueue records a recomputation task. If an equivalent task is
	// already pending, the existing one is returned instead of creating a
	// duplicate; its priority is raised when the new request is more
	// urgent.
	Enqueue(ctx context.Context, taskType string, payload models.TaskPayload, priority int) (*models.QueueTask, error)
	GetTask(ctx context.Context, id string) (*models.QueueTask, error)
	Stats(ctx context.Context) (*models.QueueStats, error)
}

type queueService struct {
	tasks pgrepo.TaskRepository
}

func NewQueueService(tasks pgrepo.TaskRepository) QueueService {
	return &queueService{tasks: tasks}
}

func dedupKey(taskType string, p models.TaskPayload) string {
	key := taskType + ":" + p.CandidateID
	if p.PostingID != "" {
		key += ":" + p.PostingID
	}
	return key
}

func (s *queueService) Enqueue(ctx context.Context, taskType string, payload models.TaskPayload, priority int) (*models.QueueTask, error) {
	const op = "QueueService.Enqueue"

	if taskType == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "task_type is required", nil)
	}
	if payload.CandidateID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "payload.candidate_id is required", nil)
	}
	if taskType == models.TaskRecomputePair && payload.PostingID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "payload.posting_id is required for pair tasks", nil)
	}
	if priority <= 0 {
		priority = models.PriorityNormal
	}

	key := dedupKey(taskType, payload)
	existing, err := s.tasks.FindPendingByDedupKey(ctx, key)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to check pending tasks", err)
	}
	if existing != nil {
		if priority > existing.Priority {
			if err := s.tasks.BumpPriority(ctx, existing.ID, priority); err != nil {
				return nil, utils.E(utils.CodeInternal, op, "failed to bump task priority", err)
			}
			existing.Priority = priority
		}
		return existing, nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to encode payload", err)
	}

	task := &models.QueueTask{
		ID:          uuid.NewString(),
		TaskType:    taskType,
		Payload:     raw,
		DedupKey:    key,
		Priority:    priority,
		Status:      models.TaskPending,
		Attempts:    0,
		MaxAttempts: models.TaskMaxAttempts,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.tasks.Insert(ctx, task); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to enqueue task", err)
	}
	return task, nil
}

func (s *queueService) GetTask(ctx context.Context, id string) (*models.QueueTask, error) {
	const op = "QueueService.GetTask"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "task id is required", nil)
	}
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "task not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get task", err)
	}
	return t, nil
}

func (s *queueService) Stats(ctx context.Context) (*models.QueueStats, error) {
	const op = "QueueService.Stats"

	stats, err := s.tasks.Stats(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to read queue stats", err)
	}
	return stats, nil
}
