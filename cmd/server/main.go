// Package main initializes and starts the task-manager authentication server,
// setting up configuration, logging, the database connection, repositories,
// services, and handlers.
package main

import (
	"cmp"
	"fmt"
	"os"

	nethttp "net/http"

	"github.com/ovoloshko/task-manager/internal/config"
	"github.com/ovoloshko/task-manager/internal/db"
	"github.com/ovoloshko/task-manager/internal/logger"
	"github.com/ovoloshko/task-manager/internal/password"
	"github.com/ovoloshko/task-manager/internal/repository"
	"github.com/ovoloshko/task-manager/internal/server/handler/http"
	"github.com/ovoloshko/task-manager/internal/service"
	"github.com/ovoloshko/task-manager/internal/token"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize the credential repository.
	authRepo := repository.NewPostgresAuthRepository(postgresDB)

	// Initialize the token issuer and validator sharing the signing secret.
	issuer, err := token.NewIssuer(options.TokenSecret, options.TokenLifetimeHours)
	if err != nil {
		zapLogger.Fatal("cannot init token issuer", zap.Error(err))
	}
	validator, err := token.NewValidator(options.TokenSecret)
	if err != nil {
		zapLogger.Fatal("cannot init token validator", zap.Error(err))
	}

	// Initialize the business-logic service.
	authService := service.NewAuthService(authRepo, password.NewHasher(), issuer)

	// Create HTTP handlers for the auth and user endpoints.
	authHandler := &http.AuthHandler{AuthService: authService}
	userHandler := &http.UserHandler{}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, userHandler, validator, zapLogger)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
