package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tarundeepakjain/Quintz/internal/cache"
	"github.com/tarundeepakjain/Quintz/internal/config"
	"github.com/tarundeepakjain/Quintz/internal/repository"
	"github.com/tarundeepakjain/Quintz/internal/service"
	"github.com/tarundeepakjain/Quintz/internal/transport/rest"
	"github.com/tarundeepakjain/Quintz/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.QuizTimezone)
	if err != nil {
		log.Fatal("Invalid QUIZ_TZ:", err)
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	questionRepo := repository.NewQuestionRepo(db)
	quizRepo := repository.NewQuizRepo(db)
	userRepo := repository.NewUserRepo(db)
	resultRepo := repository.NewResultRepo(db)
	performanceRepo := repository.NewPerformanceRepo(db)
	tagRepo := repository.NewTagRepo(db)

	// Initialize caches
	leaderboard := cache.NewLeaderboardCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	pool := service.NewQuestionPool(questionRepo, tagRepo)
	grader := service.NewGrader(pool)
	ledger := service.NewResultsLedger(resultRepo, leaderboard)
	tracker := service.NewPerformanceTracker(userRepo, performanceRepo, loc)
	catalog := service.NewQuizCatalog(quizRepo, userRepo, resultRepo, pool, ledger, tracker, loc)
	submitSvc := service.NewSubmissionService(catalog, grader, ledger, tracker)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	submitSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:       authSvc,
		QuestionPool:      pool,
		QuizCatalog:       catalog,
		SubmissionService: submitSvc,
		Tracker:           tracker,
		WSHub:             wsHub,
	}
	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
