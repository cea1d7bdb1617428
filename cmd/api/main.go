package main

import (
	"os"

	"github.com/aravind/rollbook/internal/pkg/logger"
	"github.com/aravind/rollbook/internal/server"
)

// @title Rollbook API
// @version 1.0
// @description Attendance tracking service for courses, students, and class sessions

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal arrives.
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
