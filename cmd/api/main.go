package main

import (
	"os"

	"github.com/yigit/coursesched/internal/pkg/logger"
	"github.com/yigit/coursesched/internal/server"
)

// @title Course Scheduling API
// @version 1.0
// @description Scheduling and enrollment service for courses, class sessions, rooms, lecturers and students

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	// NewServer orchestrates config, logger, store, dependencies and router setup
	srv, err := server.NewServer()
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
