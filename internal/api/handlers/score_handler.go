package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hireloop/hireloop/internal/services"
)

type ScoreHandler struct {
	scores  services.ScoreService
	history services.HistoryService // optional
}

func NewScoreHandler(scores services.ScoreService, history services.HistoryService) *ScoreHandler {
	return &ScoreHandler{scores: scores, history: history}
}

func (h *ScoreHandler) CandidateMetrics(c *gin.Context) {
	candidateID, ok := requireParam(c, "candidate_id")
	if !ok {
		return
	}

	m, err := h.scores.GetCandidateMetrics(c.Request.Context(), candidateID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *ScoreHandler) MatchScore(c *gin.Context) {
	candidateID, ok := requireParam(c, "candidate_id")
	if !ok {
		return
	}
	postingID, ok := requireParam(c, "posting_id")
	if !ok {
		return
	}

	m, err := h.scores.GetMatchScore(c.Request.Context(), candidateID, postingID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *ScoreHandler) ScoreHistory(c *gin.Context) {
	candidateID, ok := requireParam(c, "candidate_id")
	if !ok {
		return
	}

	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)
	out, err := h.history.ListByCandidate(c.Request.Context(), candidateID, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
