package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hireloop/hireloop/internal/services"
	"github.com/hireloop/hireloop/internal/utils"
)

// EventHandler is the ingress collaborators hit after a profile or posting
// mutation. It only forwards to the router; all it ever does is enqueue.
type EventHandler struct {
	router services.EventRouter
}

func NewEventHandler(router services.EventRouter) *EventHandler {
	return &EventHandler{router: router}
}

func (h *EventHandler) candidateEvent(c *gin.Context, fn func(string) error) {
	candidateID, ok := requireParam(c, "candidate_id")
	if !ok {
		return
	}
	if err := fn(candidateID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}

func (h *EventHandler) ProfileChanged(c *gin.Context) {
	h.candidateEvent(c, func(id string) error {
		return h.router.CandidateProfileChanged(c.Request.Context(), id)
	})
}

func (h *EventHandler) SkillsChanged(c *gin.Context) {
	h.candidateEvent(c, func(id string) error {
		return h.router.CandidateSkillsChanged(c.Request.Context(), id)
	})
}

func (h *EventHandler) ExperienceChanged(c *gin.Context) {
	h.candidateEvent(c, func(id string) error {
		return h.router.CandidateExperienceChanged(c.Request.Context(), id)
	})
}

type PostingRequirementsChangedRequest struct {
	CandidateIDs []string `json:"candidate_ids"`
}

func (h *EventHandler) PostingRequirementsChanged(c *gin.Context) {
	postingID, ok := requireParam(c, "posting_id")
	if !ok {
		return
	}

	var req PostingRequirementsChangedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "EventHandler.PostingRequirementsChanged", "invalid request body", err))
		return
	}

	if err := h.router.PostingRequirementsChanged(c.Request.Context(), postingID, req.CandidateIDs); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "queued", "count": len(req.CandidateIDs)})
}
