package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hireloop/hireloop/internal/api/handlers"
)

type Deps struct {
	Queue *handlers.QueueHandler
	Score *handlers.ScoreHandler
	Event *handlers.EventHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/queue/tasks", d.Queue.Enqueue)
	r.GET("/queue/tasks/:task_id", d.Queue.GetTask)
	r.GET("/queue/stats", d.Queue.Stats)
	r.POST("/queue/process", d.Queue.ProcessOnce)
	r.POST("/queue/processor/start", d.Queue.StartProcessor)
	r.POST("/queue/processor/stop", d.Queue.StopProcessor)

	r.GET("/candidates/:candidate_id/metrics", d.Score.CandidateMetrics)
	r.GET("/candidates/:candidate_id/match/:posting_id", d.Score.MatchScore)
	r.GET("/candidates/:candidate_id/score-history", d.Score.ScoreHistory)

	r.POST("/events/candidates/:candidate_id/profile-changed", d.Event.ProfileChanged)
	r.POST("/events/candidates/:candidate_id/skills-changed", d.Event.SkillsChanged)
	r.POST("/events/candidates/:candidate_id/experience-changed", d.Event.ExperienceChanged)
	r.POST("/events/postings/:posting_id/requirements-changed", d.Event.PostingRequirementsChanged)
}
