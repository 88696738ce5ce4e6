package main

import (
	"context"
	"os"

	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/logger"
	"github.com/HarinChan/MirrorMirrorEngine/internal/server"
)

// @title Classroom Pen Pals API
// @version 1.0
// @description Backend for classroom pen pals: classrooms, friends, a shared feed and Webex meetings

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer(context.Background())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
