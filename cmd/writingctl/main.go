package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/writingpad/writingpad/pkg/logger"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
