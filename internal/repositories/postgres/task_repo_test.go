package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireloop/hireloop/internal/models"
	"github.com/hireloop/hireloop/internal/utils"
)

func TestClaimBatchTransitionsToProcessing(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepo(newTestDB(t))

	task := newPendingTask(models.PriorityNormal, time.Now().UTC())
	require.NoError(t, repo.Insert(ctx, task))

	claimed, err := repo.ClaimBatch(ctx, 1)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	assert.Equal(t, task.ID, claimed[0].ID)
	assert.Equal(t, models.TaskProcessing, claimed[0].Status)
	require.NotNil(t, claimed[0].ProcessedAt)

	// The row is gone from the pending pool.
	again, err := repo.ClaimBatch(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestClaimBatchOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepo(newTestDB(t))

	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	low := newPendingTask(1, base)
	high := newPendingTask(5, base.Add(time.Second))
	mid := newPendingTask(3, base.Add(2*time.Second))
	for _, task := range []*models.QueueTask{low, high, mid} {
		require.NoError(t, repo.Insert(ctx, task))
	}

	claimed, err := repo.ClaimBatch(ctx, 3)
	require.NoError(t, err)
	require.Len(t, claimed, 3)
	assert.Equal(t, high.ID, claimed[0].ID)
	assert.Equal(t, mid.ID, claimed[1].ID)
	assert.Equal(t, low.ID, claimed[2].ID)
}

func TestClaimBatchEqualPriorityOldestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepo(newTestDB(t))

	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	older := newPendingTask(models.PriorityNormal, base)
	newer := newPendingTask(models.PriorityNormal, base.Add(time.Minute))
	require.NoError(t, repo.Insert(ctx, newer))
	require.NoError(t, repo.Insert(ctx, older))

	claimed, err := repo.ClaimBatch(ctx, 2)
	require.NoError(t, err)
	require.Len(t, claimed, 2)
	assert.Equal(t, older.ID, claimed[0].ID)
	assert.Equal(t, newer.ID, claimed[1].ID)
}

func TestClaimBatchSkipsProcessingAndTerminal(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepo(newTestDB(t))

	pending := newPendingTask(models.PriorityNormal, time.Now().UTC())
	processing := newPendingTask(models.PriorityUrgent, time.Now().UTC())
	processing.Status = models.TaskProcessing
	done := newPendingTask(models.PriorityUrgent, time.Now().UTC())
	done.Status = models.TaskCompleted
	for _, task := range []*models.QueueTask{pending, processing, done} {
		require.NoError(t, repo.Insert(ctx, task))
	}

	claimed, err := repo.ClaimBatch(ctx, 10)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	assert.Equal(t, pending.ID, claimed[0].ID)
}

func TestMarkFailedRequeuesUntilAttemptsExhausted(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepo(newTestDB(t))

	task := newPendingTask(models.PriorityNormal, time.Now().UTC())
	require.NoError(t, repo.Insert(ctx, task))

	for attempt := 1; attempt < models.TaskMaxAttempts; attempt++ {
		claimed, err := repo.ClaimBatch(ctx, 1)
		require.NoError(t, err)
		require.Len(t, claimed, 1)

		require.NoError(t, repo.MarkFailed(ctx, task.ID, "snapshot assembly failed"))

		got, err := repo.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, models.TaskPending, got.Status)
		assert.Equal(t, attempt, got.Attempts)
		require.NotNil(t, got.LastError)
	}

	claimed, err := repo.ClaimBatch(ctx, 1)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	require.NoError(t, repo.MarkFailed(ctx, task.ID, "snapshot assembly failed"))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskFailed, got.Status)
	assert.Equal(t, models.TaskMaxAttempts, got.Attempts)
	require.NotNil(t, got.LastError)
	assert.Equal(t, "snapshot assembly failed", *got.LastError)

	// Failed is terminal: another failure report changes nothing and the
	// task never rejoins the pending pool.
	require.NoError(t, repo.MarkFailed(ctx, task.ID, "again"))
	got, err = repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskFailed, got.Status)
	assert.Equal(t, models.TaskMaxAttempts, got.Attempts)

	empty, err := repo.ClaimBatch(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMarkCompletedIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepo(newTestDB(t))

	task := newPendingTask(models.PriorityNormal, time.Now().UTC())
	require.NoError(t, repo.Insert(ctx, task))

	_, err := repo.ClaimBatch(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, repo.MarkCompleted(ctx, task.ID))
	first, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskCompleted, first.Status)
	require.NotNil(t, first.CompletedAt)
	assert.Nil(t, first.LastError)

	require.NoError(t, repo.MarkCompleted(ctx, task.ID))
	second, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskCompleted, second.Status)
	assert.Equal(t, first.CompletedAt.UTC(), second.CompletedAt.UTC())
}

func TestFindPendingByDedupKeyAndBump(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepo(newTestDB(t))

	task := newPendingTask(models.PriorityBulk, time.Now().UTC())
	require.NoError(t, repo.Insert(ctx, task))

	found, err := repo.FindPendingByDedupKey(ctx, task.DedupKey)
	require.NoError(t, err)
	assert.Equal(t, task.ID, found.ID)

	_, err = repo.FindPendingByDedupKey(ctx, "recompute-candidate:nobody")
	assert.ErrorIs(t, err, utils.ErrNotFound)

	require.NoError(t, repo.BumpPriority(ctx, task.ID, models.PriorityUrgent))
	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityUrgent, got.Priority)

	// Bumping never lowers priority.
	require.NoError(t, repo.BumpPriority(ctx, task.ID, models.PriorityBulk))
	got, err = repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityUrgent, got.Priority)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	repo := NewTaskRepo(newTestDB(t))

	now := time.Now().UTC()
	statuses := []models.TaskStatus{
		models.TaskPending, models.TaskPending,
		models.TaskProcessing,
		models.TaskCompleted, models.TaskCompleted, models.TaskCompleted,
		models.TaskFailed,
	}
	for _, st := range statuses {
		task := newPendingTask(models.PriorityNormal, now)
		task.Status = st
		require.NoError(t, repo.Insert(ctx, task))
	}

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Pending)
	assert.Equal(t, int64(1), stats.Processing)
	assert.Equal(t, int64(3), stats.Completed)
	assert.Equal(t, int64(0), stats.Retrying)
	assert.Equal(t, int64(1), stats.Failed)
	assert.InDelta(t, 0.75, stats.SuccessRate, 1e-9)
}
