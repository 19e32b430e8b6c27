package main

import (
	"os"

	"github.com/avelin/formatrack/internal/pkg/logger"
	"github.com/avelin/formatrack/internal/server"
)

// @title FormaTrack API
// @version 1.0
// @description Training institute management backend: catalog, scheduling, enrollments, attendance and documents.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT access token

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed")
		os.Exit(1)
	}
}
