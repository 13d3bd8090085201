package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/hireloop/hireloop/config"
	"github.com/hireloop/hireloop/internal/api/handlers"
	"github.com/hireloop/hireloop/internal/api/middleware"
	"github.com/hireloop/hireloop/internal/api/routes"
	"github.com/hireloop/hireloop/internal/cache"
	"github.com/hireloop/hireloop/internal/logger"
	mongorepo "github.com/hireloop/hireloop/internal/repositories/mongo"
	pgrepo "github.com/hireloop/hireloop/internal/repositories/postgres"
	"github.com/hireloop/hireloop/internal/services"
	"github.com/hireloop/hireloop/internal/workers"
)

func main() {
	_ = godotenv.Load()

	l := logger.New()

	// Init PostgreSQL
	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.MigratePostgres(); err != nil {
		log.Fatalf("PostgreSQL migrate error: %v", err)
	}
	l.Info("PostgreSQL connected")

	// Init MongoDB (score history)
	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	if err := config.EnsureMongoIndexes(); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}
	l.Info("MongoDB connected")

	// Init Redis
	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	l.Info("Redis connected")

	// Repositories
	taskRepo := pgrepo.NewTaskRepo(config.PostgresDB)
	metricsRepo := pgrepo.NewMetricsRepo(config.PostgresDB)
	matchRepo := pgrepo.NewMatchRepo(config.PostgresDB)
	candidateRepo := pgrepo.NewCandidateRepo(config.PostgresDB)
	postingRepo := pgrepo.NewPostingRepo(config.PostgresDB)
	historyRepo := mongorepo.NewHistoryRepo(config.MongoDatabase())

	redisCache := cache.NewRedisCache(config.RedisClient)

	// Services
	queueSvc := services.NewQueueService(taskRepo)
	router := services.NewEventRouter(queueSvc)
	snapshots := services.NewSnapshotService(candidateRepo, postingRepo)
	scores := services.NewScoreService(metricsRepo, matchRepo, redisCache)
	history := services.NewHistoryService(historyRepo)

	// Worker
	worker := &workers.RecomputeWorker{
		Tasks:     taskRepo,
		Snapshots: snapshots,
		Metrics:   metricsRepo,
		Matches:   matchRepo,
		History:   historyRepo,
		Cache:     redisCache,
		Logger:    l,
		BatchSize: envInt("QUEUE_BATCH_SIZE", 10),
	}

	if intervalMS := envInt("QUEUE_INTERVAL_MS", 0); intervalMS > 0 {
		worker.StartProcessor(time.Duration(intervalMS) * time.Millisecond)
	}

	// Gin server
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(l))

	routes.RegisterRoutes(r, routes.Deps{
		Queue: handlers.NewQueueHandler(queueSvc, worker),
		Score: handlers.NewScoreHandler(scores, history),
		Event: handlers.NewEventHandler(router),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
