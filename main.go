package main

import (
	"context"
	"flashcard-service/internal/config"
	"flashcard-service/internal/db"
	"flashcard-service/internal/deck"
	"flashcard-service/internal/event"
	"flashcard-service/internal/generate"
	"flashcard-service/internal/handlers"
	"flashcard-service/internal/middleware"
	"flashcard-service/internal/repository"
	"flashcard-service/internal/service"
	"flashcard-service/internal/session"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	gin.SetMode(cfg.GinMode)

	db.InitMongo(cfg.MongoURI)

	// RabbitMQ event publisher
	var publisher *event.EventPublisher
	if cfg.RabbitMQURI != "" {
		var err error
		publisher, err = event.NewEventPublisher(cfg.RabbitMQURI, cfg.RabbitMQExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, study events will not be published")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "capacitor://localhost", "ionic://localhost"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Khởi tạo repository, service, handler
	database := db.Client.Database(cfg.MongoDatabase)

	subjectRepo := repository.NewSubjectRepository(database)
	topicRepo := repository.NewTopicRepository(database)
	flashcardRepo := repository.NewFlashcardRepository(database)
	resultRepo := repository.NewResultRepository(database)
	userRepo := repository.NewUserRepository(database)

	// Subjects
	subjectService := service.NewSubjectService(subjectRepo, topicRepo, flashcardRepo)
	subjectHandler := handlers.NewSubjectHandler(subjectService)

	// Topics
	topicService := service.NewTopicService(topicRepo, subjectRepo, flashcardRepo)
	topicHandler := handlers.NewTopicHandler(topicService)

	// Flashcards, with LLM-backed draft generation
	generator := generate.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	flashcardService := service.NewFlashcardService(flashcardRepo, topicRepo, subjectRepo, generator)
	flashcardHandler := handlers.NewFlashcardHandler(flashcardService)

	// Results
	resultService := service.NewResultService(resultRepo)
	resultHandler := handlers.NewResultHandler(resultService)

	// Users
	userService := service.NewUserService(userRepo)
	userHandler := handlers.NewUserHandler(userService)

	// Test sessions live in memory only; the janitor reclaims abandoned ones.
	registry := session.NewRegistry(time.Duration(cfg.SessionTTLMinutes) * time.Minute)
	registry.StartJanitor(context.Background(), 5*time.Minute)

	builder := deck.NewBuilder(topicRepo, flashcardRepo)
	sessionService := service.NewSessionService(subjectRepo, resultRepo, builder, registry)
	if publisher != nil {
		sessionService.Events = publisher
	}
	sessionHandler := handlers.NewSessionHandler(sessionService)

	// Public routes
	public := r.Group("/public/study")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":    "healthy",
				"service":   "flashcard-service",
				"timestamp": time.Now(),
			})
		})
		public.GET("/user/:id/results", func(c *gin.Context) {
			resultHandler.GetResultsByUser(c)
			if publisher != nil {
				publisher.Publish("study.user.results_requested", gin.H{"id": c.Param("id")})
			}
		})
	}

	// Protected routes require a resolved user identity.
	protected := r.Group("/protected/study")
	protected.Use(middleware.RequireUser(cfg.JWTSecret))

	subjectRoutes := protected.Group("/subject")
	{
		subjectRoutes.GET("/", subjectHandler.ListSubjects)
		subjectRoutes.POST("/", subjectHandler.CreateSubject)
		subjectRoutes.GET("/:id", subjectHandler.GetSubject)
		subjectRoutes.PUT("/:id", subjectHandler.UpdateSubject)
		subjectRoutes.DELETE("/:id", subjectHandler.DeleteSubject)
		subjectRoutes.GET("/:id/topics", topicHandler.ListTopics)
	}

	topicRoutes := protected.Group("/topic")
	{
		topicRoutes.POST("/", topicHandler.CreateTopic)
		topicRoutes.GET("/:id", topicHandler.GetTopic)
		topicRoutes.PUT("/:id", topicHandler.UpdateTopic)
		topicRoutes.DELETE("/:id", topicHandler.DeleteTopic)
		topicRoutes.GET("/:id/flashcards", flashcardHandler.ListFlashcards)
	}

	flashcardRoutes := protected.Group("/flashcard")
	{
		flashcardRoutes.POST("/", flashcardHandler.CreateFlashcard)
		flashcardRoutes.GET("/:id", flashcardHandler.GetFlashcard)
		flashcardRoutes.PUT("/:id", flashcardHandler.UpdateFlashcard)
		flashcardRoutes.DELETE("/:id", flashcardHandler.DeleteFlashcard)
		flashcardRoutes.POST("/generate", func(c *gin.Context) {
			flashcardHandler.GenerateFlashcards(c)
			if publisher != nil && c.Writer.Status() < 400 {
				publisher.Publish(event.CardsGenerated, gin.H{
					"user_id":   middleware.UserID(c),
					"timestamp": time.Now(),
				})
			}
		})
	}

	resultRoutes := protected.Group("/result")
	{
		resultRoutes.GET("/", resultHandler.ListMyResults)
	}

	userRoutes := protected.Group("/user")
	{
		userRoutes.GET("/profile", userHandler.GetProfile)
		userRoutes.PUT("/profile", userHandler.SyncProfile)
	}

	setupSessionRoutes(protected, sessionHandler, publisher)

	log.Printf("Starting Flashcard Service on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func setupSessionRoutes(protected *gin.RouterGroup, sessionHandler *handlers.SessionHandler, publisher *event.EventPublisher) {
	sessionRoutes := protected.Group("/session")
	{
		// Start a new test session
		sessionRoutes.POST("/", func(c *gin.Context) {
			sessionHandler.StartSession(c)
			if publisher != nil && c.Writer.Status() < 400 {
				publisher.Publish(event.SessionStarted, gin.H{
					"user_id":   middleware.UserID(c),
					"timestamp": time.Now(),
				})
			}
		})

		// Current state of a running session
		sessionRoutes.GET("/:id", sessionHandler.GetSession)

		// Reveal the answer side of the current card
		sessionRoutes.POST("/:id/flip", sessionHandler.FlipCard)

		// Grade the current card and advance
		sessionRoutes.POST("/:id/mark", sessionHandler.MarkCard)

		// Abandon the session without recording anything further
		sessionRoutes.POST("/:id/exit", func(c *gin.Context) {
			sessionHandler.ExitSession(c)
			if publisher != nil && c.Writer.Status() < 400 {
				publisher.Publish(event.SessionExited, gin.H{
					"session_id": c.Param("id"),
					"user_id":    middleware.UserID(c),
					"timestamp":  time.Now(),
				})
			}
		})
	}
}
