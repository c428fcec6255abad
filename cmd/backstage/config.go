package main

import (
	"github.com/joho/godotenv"

	"backstage/internal/config"
)

// loadConfig reads optional env files before resolving the environment.
// Variables already exported win over values from the files.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("config/local.env")

	return config.Load()
}
