// File: placewise/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"placewise/config"
	"placewise/database"
	poiRepo "placewise/database/repository/poi"
	"placewise/handlers"
	"placewise/middleware"
	"placewise/routes"
	"placewise/services/intent"
	"placewise/services/retrieval"
	"placewise/services/scoring"
	"placewise/services/search"
	"placewise/services/session"
	"placewise/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()

	// Session context store: Redis for multi-node deployments, in-process
	// cache otherwise.
	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	var sessionStore session.ContextStore
	var redisClient *redis.Client
	if config.AppConfig.SessionBackend == "memory" {
		sessionStore = session.NewMemoryContextStore(sessionTTL, config.AppConfig.MaxHistoryLength)
	} else {
		utils.InitSessionCache()
		redisClient = utils.GetSessionCacheClient()
		sessionStore = session.NewRedisContextStore(redisClient, sessionTTL, config.AppConfig.MaxHistoryLength)
	}

	// Embedding provider for the retrieval collaborator.
	var embedder retrieval.Embedder
	switch config.AppConfig.EmbeddingProvider {
	case "gemini":
		if config.AppConfig.GeminiAPIKey != "" {
			g, err := retrieval.NewGeminiEmbedder(config.AppConfig.GeminiAPIKey, config.AppConfig.EmbeddingModel)
			if err != nil {
				logger.Sugar().Fatalf("main: failed to initialize gemini embedder: %v", err)
			}
			embedder = g
		}
	default:
		if config.AppConfig.OpenAIAPIKey != "" {
			embedder = retrieval.NewOpenAIEmbedder(config.AppConfig.OpenAIAPIKey, config.AppConfig.EmbeddingModel)
		}
	}
	if embedder == nil {
		logger.Sugar().Warn("main: no embedding provider configured, falling back to lexical retrieval")
	}

	scoringCfg, err := scoring.FromAppConfig(config.AppConfig)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid scoring configuration: %v", err)
	}

	// Repositories and services.
	repo := poiRepo.NewMongoPOIRepo()
	retriever := retrieval.NewMongoSemanticRetriever(repo, embedder)
	dietarySvc := intent.NewDietaryIntentService()
	generalSvc := intent.NewGeneralIntentService()
	scoringSvc := scoring.NewScoringService(scoringCfg, dietarySvc, generalSvc)

	searchSvc := &search.DefaultSearchService{
		Parser:     search.NewQueryParser(),
		Resolver:   search.NewContextResolver(),
		Dietary:    dietarySvc,
		General:    generalSvc,
		Scoring:    scoringSvc,
		Retriever:  retriever,
		Sessions:   sessionStore,
		MaxResults: config.AppConfig.MaxResultsPerSearch,
		Collection: config.AppConfig.POICollection,
	}
	searchHandler := handlers.NewSearchHandler(searchSvc)

	utils.StartHealthMonitor(redisClient, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.GeolocationMiddleware())

	routes.RegisterRoutes(router, searchHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
