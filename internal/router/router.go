package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rakib7/projectpulse/backend/internal/handlers"
	"github.com/rakib7/projectpulse/backend/internal/middleware"
	"github.com/rakib7/projectpulse/backend/internal/models"
	"github.com/rakib7/projectpulse/backend/internal/repositories"
	"github.com/rakib7/projectpulse/backend/internal/services"
	"github.com/rakib7/projectpulse/backend/pkg/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(metrics.Middleware())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, logger *zap.Logger) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Milestone{},
		&models.Like{},
		&models.Comment{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check and metrics - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	projectRepo := repositories.NewPostgresProjectRepository(pgdb)
	milestoneRepo := repositories.NewPostgresMilestoneRepository(pgdb)
	feedRepo := repositories.NewMongoFeedRepository(mgClient.Database("projectpulse"), logger)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)

	// --- Initialize Services ---
	progressService := services.NewProgressService(projectRepo, milestoneRepo, logger)
	activityService := services.NewActivityService(feedRepo, logger)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, logger)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	projectHandler := handlers.NewProjectHandler(projectRepo, milestoneRepo, feedRepo)
	milestoneHandler := handlers.NewMilestoneHandler(milestoneRepo, projectRepo, userRepo, progressService, activityService)

	// --- Public share routes (no authentication) ---
	publicGroup := e.Group("/api/v1/public")
	projectHandler.RegisterPublicProjectRoutes(publicGroup)
	log.Println("Public share routes configured.")

	// --- Protected JSON API routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	authHandler.RegisterProtectedAuthRoutes(api)

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	projectHandler.RegisterProjectRoutes(api)
	milestoneHandler.RegisterMilestoneRoutes(api)
	log.Println("Project and milestone routes configured.")

	feedHandler := handlers.NewFeedHandler(feedRepo, userRepo, likeRepo, commentRepo)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	likeHandler := handlers.NewLikeHandler(likeRepo, feedRepo)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	commentHandler := handlers.NewCommentHandler(commentRepo, feedRepo)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// --- Browser form routes (redirect convention, cookie or bearer auth) ---
	forms := e.Group("/dashboard")
	forms.Use(middleware.JWTFormAuthMiddleware())
	projectHandler.RegisterProjectFormRoutes(forms)
	milestoneHandler.RegisterMilestoneFormRoutes(forms)
	log.Println("Dashboard form routes configured.")

	log.Println("All routes configured.")
}
