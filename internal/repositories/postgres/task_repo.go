package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hireloop/hireloop/internal/models"
	"github.com/hireloop/hireloop/internal/utils"
)

type TaskRepository interface {
	Insert(ctx context.Context, t *models.QueueTask) error
	GetByID(ctx context.Context, id string) (*models.QueueTask, error)
	FindPendingByDedupKey(ctx context.Context, dedupKey string) (*models.QueueTask, error)
	BumpPriority(ctx context.Context, id string, priority int) error

	// ClaimBatch atomically moves up to limit pending tasks to processing,
	// ordered by priority (high first) then creation time (old first).
	// Concurrent claimers never receive the same row.
	ClaimBatch(ctx context.Context, limit int) ([]models.QueueTask, error)

	// MarkCompleted is idempotent; repeated calls leave the row completed.
	MarkCompleted(ctx context.Context, id string) error

	// MarkFailed increments attempts and either requeues the task (through
	// retrying back to pending) or, once attempts reach the cap, parks it
	// as failed with the error recorded. Terminal rows are left untouched.
	MarkFailed(ctx context.Context, id string, taskErr string) error

	Stats(ctx context.Context) (*models.QueueStats, error)
}

type taskRepo struct {
	db *gorm.DB
}

func NewTaskRepo(db *gorm.DB) TaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) Insert(ctx context.Context, t *models.QueueTask) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *taskRepo) GetByID(ctx context.Context, id string) (*models.QueueTask, error) {
	var t models.QueueTask
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepo) FindPendingByDedupKey(ctx context.Context, dedupKey string) (*models.QueueTask, error) {
	var t models.QueueTask
	err := r.db.WithContext(ctx).
		Where("dedup_key = ? AND status = ?", dedupKey, models.TaskPending).
		Order("created_at ASC").
		Take(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepo) BumpPriority(ctx context.Context, id string, priority int) error {
	return r.db.WithContext(ctx).
		Model(&models.QueueTask{}).
		Where("id = ? AND status = ? AND priority < ?", id, models.TaskPending, priority).
		Update("priority", priority).Error
}

func (r *taskRepo) ClaimBatch(ctx context.Context, limit int) ([]models.QueueTask, error) {
	if limit <= 0 {
		limit = 10
	}

	var claimed []models.QueueTask
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pending []models.QueueTask
		if err := tx.
			Where("status = ?", models.TaskPending).
			Order("priority DESC").
			Order("created_at ASC").
			Order("id ASC").
			Limit(limit).
			Find(&pending).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		for i := range pending {
			t := pending[i]
			// Conditional transition: only wins if the row is still
			// pending, so a concurrent claimer cannot take it too.
			res := tx.Model(&models.QueueTask{}).
				Where("id = ? AND status = ?", t.ID, models.TaskPending).
				Updates(map[string]any{
					"status":       models.TaskProcessing,
					"processed_at": gorm.Expr("COALESCE(processed_at, ?)", now),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				continue
			}
			t.Status = models.TaskProcessing
			if t.ProcessedAt == nil {
				t.ProcessedAt = &now
			}
			claimed = append(claimed, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

func (r *taskRepo) MarkCompleted(ctx context.Context, id string) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&models.QueueTask{}).
		Where("id = ? AND status <> ?", id, models.TaskFailed).
		Updates(map[string]any{
			"status":       models.TaskCompleted,
			"completed_at": gorm.Expr("COALESCE(completed_at, ?)", now),
			"last_error":   nil,
		})
	return res.Error
}

func (r *taskRepo) MarkFailed(ctx context.Context, id string, taskErr string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.QueueTask
		if err := tx.Where("id = ?", id).Take(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrNotFound
			}
			return err
		}
		if t.Status.Terminal() {
			return nil
		}

		attempts := t.Attempts + 1
		if attempts >= t.MaxAttempts {
			return tx.Model(&models.QueueTask{}).
				Where("id = ?", id).
				Updates(map[string]any{
					"status":     models.TaskFailed,
					"attempts":   attempts,
					"last_error": taskErr,
				}).Error
		}

		// Pass through retrying before landing back in pending so the
		// intermediate state is visible to anything tailing the table.
		if err := tx.Model(&models.QueueTask{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"status":     models.TaskRetrying,
				"attempts":   attempts,
				"last_error": taskErr,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&models.QueueTask{}).
			Where("id = ?", id).
			Update("status", models.TaskPending).Error
	})
}

func (r *taskRepo) Stats(ctx context.Context) (*models.QueueStats, error) {
	var rows []struct {
		Status models.TaskStatus
		N      int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.QueueTask{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &models.QueueStats{}
	for _, row := range rows {
		switch row.Status {
		case models.TaskPending:
			stats.Pending = row.N
		case models.TaskProcessing:
			stats.Processing = row.N
		case models.TaskCompleted:
			stats.Completed = row.N
		case models.TaskRetrying:
			stats.Retrying = row.N
		case models.TaskFailed:
			stats.Failed = row.N
		}
	}
	if terminal := stats.Completed + stats.Failed; terminal > 0 {
		stats.SuccessRate = float64(stats.Completed) / float64(terminal)
	}
	return stats, nil
}
