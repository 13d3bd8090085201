package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/hireloop/hireloop/internal/models"
)

// newTestDB opens an isolated in-memory database. A single connection keeps
// the :memory: store alive for the whole test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.QueueTask{},
		&models.CandidateMetrics{},
		&models.MatchScore{},
	))
	return db
}

func newPendingTask(priority int, createdAt time.Time) *models.QueueTask {
	id := uuid.NewString()
	return &models.QueueTask{
		ID:          id,
		TaskType:    models.TaskRecomputeCandidate,
		Payload:     datatypes.JSON([]byte(`{"candidate_id":"` + id + `"}`)),
		DedupKey:    models.TaskRecomputeCandidate + ":" + id,
		Priority:    priority,
		Status:      models.TaskPending,
		MaxAttempts: models.TaskMaxAttempts,
		CreatedAt:   createdAt,
	}
}
