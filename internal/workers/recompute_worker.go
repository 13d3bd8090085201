package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hireloop/hireloop/internal/cache"
	"github.com/hireloop/hireloop/internal/models"
	mongorepo "github.com/hireloop/hireloop/internal/repositories/mongo"
	pgrepo "github.com/hireloop/hireloop/internal/repositories/postgres"
	"github.com/hireloop/hireloop/internal/scoring"
	"github.com/hireloop/hireloop/internal/services"
)

// RecomputeWorker drains the task queue in batches: claim, dispatch on task
// type, write the recomputed score, resolve the task's terminal state. One
// task's failure never aborts the rest of its batch.
type RecomputeWorker struct {
	Tasks     pgrepo.TaskRepository
	Snapshots services.SnapshotService
	Metrics   pgrepo.MetricsRepository
	Matches   pgrepo.MatchRepository

	History mongorepo.HistoryRepository // optional audit trail
	Cache   cache.Cache                 // optional, invalidated after writes

	Logger     *logrus.Logger
	BatchSize  int
	HistoryTTL time.Duration

	// inFlight makes overlapping ProcessQueue calls no-ops. It only guards
	// this instance; cross-process safety comes from the conditional claim.
	inFlight atomic.Bool

	mu      sync.Mutex
	stop    chan struct{}
	stopped chan struct{}
}

func (w *RecomputeWorker) init() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Tasks == nil || w.Snapshots == nil || w.Metrics == nil || w.Matches == nil {
		return errors.New("RecomputeWorker missing dependency: Tasks/Snapshots/Metrics/Matches must be set")
	}
	if w.BatchSize <= 0 {
		w.BatchSize = 10
	}
	if w.HistoryTTL <= 0 {
		w.HistoryTTL = 30 * 24 * time.Hour
	}
	if w.Logger == nil {
		w.Logger = logrus.New()
	}
	return nil
}

// ProcessQueue claims and processes one batch. A call that finds another
// pass already in flight returns immediately without touching the queue.
func (w *RecomputeWorker) ProcessQueue(ctx context.Context) error {
	if err := w.init(); err != nil {
		return err
	}
	if !w.inFlight.CompareAndSwap(false, true) {
		return nil
	}
	defer w.inFlight.Store(false)

	batch, err := w.Tasks.ClaimBatch(ctx, w.BatchSize)
	if err != nil {
		return fmt.Errorf("claim batch: %w", err)
	}
	if len(batch) == 0 {
		return nil
	}

	for i := range batch {
		task := batch[i]
		log := w.Logger.WithFields(logrus.Fields{
			"task_id":   task.ID,
			"task_type": task.TaskType,
			"attempt":   task.Attempts + 1,
		})

		if err := w.handleTask(ctx, &task); err != nil {
			log.WithError(err).Warn("task failed")
			if mErr := w.Tasks.MarkFailed(ctx, task.ID, err.Error()); mErr != nil {
				log.WithError(mErr).Error("failed to record task failure")
			}
			continue
		}

		if err := w.Tasks.MarkCompleted(ctx, task.ID); err != nil {
			log.WithError(err).Error("failed to record task completion")
			continue
		}
		log.Debug("task completed")
	}
	return nil
}

func (w *RecomputeWorker) handleTask(ctx context.Context, task *models.QueueTask) error {
	var payload models.TaskPayload
	if err := json.Unmarshal(task.Payload, &payload); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if payload.CandidateID == "" {
		return errors.New("payload missing candidate_id")
	}

	switch task.TaskType {
	case models.TaskRecomputeCandidate:
		return w.recomputeCandidate(ctx, task, payload.CandidateID)
	case models.TaskRecomputePair:
		if payload.PostingID == "" {
			return errors.New("payload missing posting_id")
		}
		return w.recomputePair(ctx, task, payload.CandidateID, payload.PostingID)
	default:
		return fmt.Errorf("unknown task type %q", task.TaskType)
	}
}

func (w *RecomputeWorker) recomputeCandidate(ctx context.Context, task *models.QueueTask, candidateID string) error {
	snap, err := w.Snapshots.Candidate(ctx, candidateID)
	if err != nil {
		return err
	}

	metrics := scoring.ComputeCandidateMetrics(snap, time.Now().UTC())
	if err := w.Metrics.Upsert(ctx, &metrics); err != nil {
		return fmt.Errorf("upsert metrics: %w", err)
	}

	w.invalidate(ctx, cache.CandidateMetricsKey(candidateID))
	w.appendHistory(ctx, &models.ScoreHistory{
		CandidateID:    candidateID,
		TaskID:         task.ID,
		Kind:           "candidate",
		Score:          metrics.HireabilityScore,
		ComputeVersion: metrics.ComputeVersion,
		ComputedAt:     metrics.LastComputed,
	})
	return nil
}

func (w *RecomputeWorker) recomputePair(ctx context.Context, task *models.QueueTask, candidateID, postingID string) error {
	candidate, err := w.Snapshots.Candidate(ctx, candidateID)
	if err != nil {
		return err
	}
	posting, err := w.Snapshots.Posting(ctx, postingID)
	if err != nil {
		return err
	}

	match := scoring.ComputeMatchScore(candidate, posting)
	match.CreatedAt = time.Now().UTC()
	if err := w.Matches.Upsert(ctx, &match); err != nil {
		return fmt.Errorf("upsert match score: %w", err)
	}

	w.invalidate(ctx, cache.MatchScoreKey(candidateID, postingID))
	w.appendHistory(ctx, &models.ScoreHistory{
		CandidateID:    candidateID,
		PostingID:      &postingID,
		TaskID:         task.ID,
		Kind:           "pair",
		Score:          match.TotalScore,
		ComputeVersion: match.ComputeVersion,
		ComputedAt:     match.CreatedAt,
	})
	return nil
}

// Cache and history writes are best-effort: the score row is already
// durable, so their errors are logged rather than failing the task.

func (w *RecomputeWorker) invalidate(ctx context.Context, key string) {
	if w.Cache == nil {
		return
	}
	if err := w.Cache.Del(ctx, key); err != nil {
		w.Logger.WithError(err).WithField("key", key).Warn("cache invalidation failed")
	}
}

func (w *RecomputeWorker) appendHistory(ctx context.Context, h *models.ScoreHistory) {
	if w.History == nil {
		return
	}
	h.ExpiresAt = h.ComputedAt.Add(w.HistoryTTL)
	if err := w.History.Insert(ctx, h); err != nil {
		w.Logger.WithError(err).WithField("task_id", h.TaskID).Warn("score history write failed")
	}
}

// StartProcessor runs ProcessQueue on a fixed interval until StopProcessor
// is called. Returns false if the processor is already running.
func (w *RecomputeWorker) StartProcessor(interval time.Duration) bool {
	if err := w.init(); err != nil {
		return false
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stop != nil {
		return false
	}
	stop := make(chan struct{})
	stopped := make(chan struct{})
	w.stop = stop
	w.stopped = stopped

	go func() {
		defer close(stopped)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if err := w.ProcessQueue(context.Background()); err != nil {
					w.Logger.WithError(err).Error("queue pass failed")
				}
			}
		}
	}()

	w.Logger.WithField("interval_ms", interval.Milliseconds()).Info("queue processor started")
	return true
}

// StopProcessor halts the interval loop and waits for the current pass to
// hand back. Returns false if the processor was not running.
func (w *RecomputeWorker) StopProcessor() bool {
	w.mu.Lock()
	stop, stopped := w.stop, w.stopped
	w.stop, w.stopped = nil, nil
	w.mu.Unlock()

	if stop == nil {
		return false
	}
	close(stop)
	<-stopped
	if w.Logger != nil {
		w.Logger.Info("queue processor stopped")
	}
	return true
}

// Running reports whether the interval loop is active.
func (w *RecomputeWorker) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stop != nil
}
