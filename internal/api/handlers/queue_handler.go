package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hireloop/hireloop/internal/models"
	"github.com/hireloop/hireloop/internal/services"
	"github.com/hireloop/hireloop/internal/utils"
	"github.com/hireloop/hireloop/internal/workers"
)

type QueueHandler struct {
	queue  services.QueueService
	worker *workers.RecomputeWorker
}

func NewQueueHandler(queue services.QueueService, worker *workers.RecomputeWorker) *QueueHandler {
	return &QueueHandler{queue: queue, worker: worker}
}

type EnqueueRequest struct {
	TaskType    string `json:"task_type"`
	CandidateID string `json:"candidate_id"`
	PostingID   string `json:"posting_id,omitempty"`
	Priority    int    `json:"priority,omitempty"`
}

func (h *QueueHandler) Enqueue(c *gin.Context) {
	var req EnqueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "QueueHandler.Enqueue", "invalid request body", err))
		return
	}

	priority := req.Priority
	if priority <= 0 {
		// Operator-driven enqueue jumps ahead of routine event traffic.
		priority = models.PriorityHigh
	}

	task, err := h.queue.Enqueue(c.Request.Context(), req.TaskType, models.TaskPayload{
		CandidateID: req.CandidateID,
		PostingID:   req.PostingID,
	}, priority)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, task)
}

func (h *QueueHandler) GetTask(c *gin.Context) {
	id, ok := requireParam(c, "task_id")
	if !ok {
		return
	}

	task, err := h.queue.GetTask(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *QueueHandler) Stats(c *gin.Context) {
	stats, err := h.queue.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ProcessOnce runs a single queue pass inline. Overlap with a running pass
// is a no-op, same as the interval loop.
func (h *QueueHandler) ProcessOnce(c *gin.Context) {
	if err := h.worker.ProcessQueue(c.Request.Context()); err != nil {
		writeError(c, utils.E(utils.CodeInternal, "QueueHandler.ProcessOnce", "queue pass failed", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type StartProcessorRequest struct {
	IntervalMS int64 `json:"interval_ms"`
}

func (h *QueueHandler) StartProcessor(c *gin.Context) {
	var req StartProcessorRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "QueueHandler.StartProcessor", "invalid request body", err))
		return
	}

	if !h.worker.StartProcessor(time.Duration(req.IntervalMS) * time.Millisecond) {
		writeError(c, utils.E(utils.CodeConflict, "QueueHandler.StartProcessor", "processor already running", nil))
		return
	}
	c.JSON(http.StatusOK, gin.H{"running": true})
}

func (h *QueueHandler) StopProcessor(c *gin.Context) {
	if !h.worker.StopProcessor() {
		writeError(c, utils.E(utils.CodeConflict, "QueueHandler.StopProcessor", "processor not running", nil))
		return
	}
	c.JSON(http.StatusOK, gin.H{"running": false})
}
