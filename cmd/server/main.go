package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/rakib7/projectpulse/backend/internal/router"
	"github.com/rakib7/projectpulse/backend/pkg/config"
	"github.com/rakib7/projectpulse/backend/pkg/firebase"
	"github.com/rakib7/projectpulse/backend/pkg/logger"
	"github.com/rakib7/projectpulse/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Structured logger for services and repositories
	zlog := logger.NewLogger(cfg.Env)
	defer zlog.Sync()

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, firebaseApp.AuthClient, zlog)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
