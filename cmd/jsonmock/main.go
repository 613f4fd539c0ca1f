package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/theheadmen/jsonmock/internal/logger"
)

func main() {
	// Create a context that can be cancelled
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		logger.Log.Fatal("jsonmock failed", zap.Error(err))
	}
}
