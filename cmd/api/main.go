package main

import (
	"flag"
	"os"

	"github.com/yigit/scholarmatch/internal/bootstrap"
	"github.com/yigit/scholarmatch/internal/pkg/logger"
	"github.com/yigit/scholarmatch/internal/server"
)

// @title ScholarMatch API
// @version 1.0
// @description Scholarship catalog and rule-based recommendation API

// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	configPath := flag.String("config", bootstrap.DefaultConfigPath, "path to the YAML configuration file")
	flag.Parse()

	srv, err := server.NewServer(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until shutdown
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
