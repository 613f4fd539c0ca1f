package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theheadmen/jsonmock/internal/grpcserver"
	"github.com/theheadmen/jsonmock/internal/logger"
	"github.com/theheadmen/jsonmock/internal/serverapi"
	config "github.com/theheadmen/jsonmock/internal/serverconfig"
)

func newServeCmd(configStore *config.ConfigStore) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the dataset once and serve it over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configStore)
		},
	}
}

func runServe(ctx context.Context, configStore *config.ConfigStore) error {
	listener, err := net.Listen("tcp", configStore.FlagRunAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", configStore.FlagRunAddr, err)
	}
	return serve(ctx, configStore, listener)
}

// serve работает до отмены ctx, затем останавливает HTTP и gRPC серверы
// не дольше чем за FlagShutdownTimeout.
func serve(ctx context.Context, configStore *config.ConfigStore, listener net.Listener) error {
	source, err := openSource(ctx, configStore)
	if err != nil {
		listener.Close()
		return err
	}
	defer closeSource(source)

	dataset, err := source.Load(ctx)
	if err != nil {
		listener.Close()
		return fmt.Errorf("load dataset: %w", err)
	}

	// Create a new server
	server := &http.Server{
		Handler:           serverapi.MakeChiServ(source, dataset),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Log.Info("Running server", zap.String("address", listener.Addr().String()), zap.String("source", configStore.SourceKind()))
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var grpcServer *grpcserver.Server
	if configStore.FlagGRPCAddr != "" {
		grpcListener, err := net.Listen("tcp", configStore.FlagGRPCAddr)
		if err != nil {
			server.Close()
			return fmt.Errorf("listen %s: %w", configStore.FlagGRPCAddr, err)
		}
		grpcServer = grpcserver.NewServer()
		go func() {
			if err := grpcServer.Serve(grpcListener); err != nil {
				errCh <- err
			}
		}()
	}

	// Block until we receive a signal or one of the servers fails
	var runErr error
	select {
	case <-ctx.Done():
		logger.Log.Info("Shutting down server")
	case runErr = <-errCh:
		logger.Log.Error("Server is down", zap.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), configStore.FlagShutdownTimeout)
	defer cancel()

	if grpcServer != nil {
		grpcServer.Shutdown(shutdownCtx)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Info("HTTP graceful shutdown failed", zap.Error(err))
		server.Close()
	}
	return runErr
}
