package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireloop/hireloop/internal/models"
	"github.com/hireloop/hireloop/internal/utils"
)

type fakeTaskStore struct {
	byKey    map[string]*models.QueueTask
	inserted []*models.QueueTask
	bumped   map[string]int
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{byKey: map[string]*models.QueueTask{}, bumped: map[string]int{}}
}

func (f *fakeTaskStore) Insert(ctx context.Context, t *models.QueueTask) error {
	f.inserted = append(f.inserted, t)
	f.byKey[t.DedupKey] = t
	return nil
}

func (f *fakeTaskStore) GetByID(ctx context.Context, id string) (*models.QueueTask, error) {
	for _, t := range f.inserted {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (f *fakeTaskStore) FindPendingByDedupKey(ctx context.Context, key string) (*models.QueueTask, error) {
	t, ok := f.byKey[key]
	if !ok || t.Status != models.TaskPending {
		return nil, utils.ErrNotFound
	}
	return t, nil
}

func (f *fakeTaskStore) BumpPriority(ctx context.Context, id string, priority int) error {
	f.bumped[id] = priority
	return nil
}

func (f *fakeTaskStore) ClaimBatch(ctx context.Context, limit int) ([]models.QueueTask, error) {
	return nil, nil
}

func (f *fakeTaskStore) MarkCompleted(ctx context.Context, id string) error { return nil }

func (f *fakeTaskStore) MarkFailed(ctx context.Context, id string, taskErr string) error { return nil }

func (f *fakeTaskStore) Stats(ctx context.Context) (*models.QueueStats, error) {
	return &models.QueueStats{}, nil
}

func TestEnqueueCreatesPendingTask(t *testing.T) {
	store := newFakeTaskStore()
	svc := NewQueueService(store)

	task, err := svc.Enqueue(context.Background(), models.TaskRecomputeCandidate,
		models.TaskPayload{CandidateID: "c1"}, models.PriorityHigh)
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, models.TaskPending, task.Status)
	assert.Equal(t, models.PriorityHigh, task.Priority)
	assert.Equal(t, 0, task.Attempts)
	assert.Equal(t, models.TaskMaxAttempts, task.MaxAttempts)
	assert.Equal(t, "recompute-candidate:c1", task.DedupKey)

	var payload models.TaskPayload
	require.NoError(t, json.Unmarshal(task.Payload, &payload))
	assert.Equal(t, "c1", payload.CandidateID)
}

func TestEnqueueDefaultsPriority(t *testing.T) {
	svc := NewQueueService(newFakeTaskStore())

	task, err := svc.Enqueue(context.Background(), models.TaskRecomputeCandidate,
		models.TaskPayload{CandidateID: "c1"}, 0)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityNormal, task.Priority)
}

func TestEnqueueDeduplicatesPendingTasks(t *testing.T) {
	store := newFakeTaskStore()
	svc := NewQueueService(store)
	ctx := context.Background()

	first, err := svc.Enqueue(ctx, models.TaskRecomputeCandidate,
		models.TaskPayload{CandidateID: "c1"}, models.PriorityNormal)
	require.NoError(t, err)

	second, err := svc.Enqueue(ctx, models.TaskRecomputeCandidate,
		models.TaskPayload{CandidateID: "c1"}, models.PriorityNormal)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	require.Len(t, store.inserted, 1)
	assert.Empty(t, store.bumped)
}

func TestEnqueueBumpsPriorityOfEquivalentPendingTask(t *testing.T) {
	store := newFakeTaskStore()
	svc := NewQueueService(store)
	ctx := context.Background()

	first, err := svc.Enqueue(ctx, models.TaskRecomputeCandidate,
		models.TaskPayload{CandidateID: "c1"}, models.PriorityBulk)
	require.NoError(t, err)

	second, err := svc.Enqueue(ctx, models.TaskRecomputeCandidate,
		models.TaskPayload{CandidateID: "c1"}, models.PriorityUrgent)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.PriorityUrgent, second.Priority)
	assert.Equal(t, models.PriorityUrgent, store.bumped[first.ID])
	require.Len(t, store.inserted, 1)
}

func TestEnqueueDistinctTargetsAreNotDeduplicated(t *testing.T) {
	store := newFakeTaskStore()
	svc := NewQueueService(store)
	ctx := context.Background()

	_, err := svc.Enqueue(ctx, models.TaskRecomputePair,
		models.TaskPayload{CandidateID: "c1", PostingID: "p1"}, models.PriorityBulk)
	require.NoError(t, err)
	_, err = svc.Enqueue(ctx, models.TaskRecomputePair,
		models.TaskPayload{CandidateID: "c1", PostingID: "p2"}, models.PriorityBulk)
	require.NoError(t, err)

	assert.Len(t, store.inserted, 2)
}

func TestEnqueueValidation(t *testing.T) {
	svc := NewQueueService(newFakeTaskStore())
	ctx := context.Background()

	_, err := svc.Enqueue(ctx, "", models.TaskPayload{CandidateID: "c1"}, models.PriorityNormal)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.Enqueue(ctx, models.TaskRecomputeCandidate, models.TaskPayload{}, models.PriorityNormal)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.Enqueue(ctx, models.TaskRecomputePair,
		models.TaskPayload{CandidateID: "c1"}, models.PriorityNormal)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}
