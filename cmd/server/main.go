package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"forcepulse/internal/cache"
	"forcepulse/internal/config"
	"forcepulse/internal/repository"
	"forcepulse/internal/service"
	"forcepulse/internal/transport/rest"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// Log classifier settings
	aiConfig := config.DefaultAIConfig()
	log.Printf("AI Config:")
	log.Printf("  Classify: %s", aiConfig.Models.Classify)
	if aiConfig.IsEnabled() {
		log.Println("  API Key:  configured")
	} else {
		log.Println("  API Key:  NOT SET (using keyword heuristic classifier)")
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

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize repositories
	surveyRepo := repository.NewSurveyRepo(db)
	questionRepo := repository.NewQuestionRepo(db)
	responseRepo := repository.NewResponseRepo(db)
	mappingRepo := repository.NewMappingRepo(db)
	analysisRepo := repository.NewAnalysisRepo(db)

	// Initialize caches
	mappingCache := cache.NewMappingCache(rdb)
	aggregateCache := cache.NewAggregateCache(rdb)

	// Initialize services
	surveySvc := service.NewSurveyService(surveyRepo, questionRepo)
	mapperSvc := service.NewMapperService(mappingRepo, mappingCache)
	classifier := service.NewClassifierService()
	validatorSvc := service.NewValidatorService(mapperSvc)
	distributionSvc := service.NewDistributionService(mapperSvc, analysisRepo)
	aggregatorSvc := service.NewAggregatorService(analysisRepo, aggregateCache)
	completionSvc := service.NewCompletionService(mapperSvc)
	analysisSvc := service.NewAnalysisService(questionRepo, responseRepo, mapperSvc, classifier, validatorSvc, distributionSvc, aggregatorSvc, completionSvc)

	// Create router with container
	container := &rest.Container{
		SurveyService:     surveySvc,
		AnalysisService:   analysisSvc,
		MapperService:     mapperSvc,
		ValidatorService:  validatorSvc,
		AggregatorService: aggregatorSvc,
		Distributions:     analysisRepo,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST/GET /v1/surveys")
		log.Println("  POST/GET /v1/surveys/{surveyId}/questions")
		log.Println("  POST /v1/surveys/{surveyId}/responses")
		log.Println("  GET  /v1/questions/{questionId}/mapping")
		log.Println("  POST /v1/questions/{questionId}/validate")
		log.Println("  GET  /v1/surveys/{surveyId}/questions/{questionId}/distribution")
		log.Println("  GET/POST /v1/surveys/{surveyId}/aggregate")
		log.Println("  GET  /v1/surveys/{surveyId}/completion")

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
