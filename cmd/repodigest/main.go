package main

import (
	"context"
	"os"

	"github.com/alimgiray/repodigest/internal/handlers"
	"github.com/alimgiray/repodigest/pkg/logger"
)

func main() {
	// Initialize logger
	logger.Init()

	if err := handlers.Execute(context.Background()); err != nil {
		logger.WithError(err).Error("repodigest failed")
		os.Exit(1)
	}
}
