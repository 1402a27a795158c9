package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Debug("The .env file not found.")
	}

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
