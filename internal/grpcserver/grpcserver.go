// Package grpcserver поднимает gRPC сервис здоровья рядом с HTTP сервером.
package grpcserver

import (
	"context"
	"net"

	"github.com/google/uuid"
	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_zap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"

	"github.com/theheadmen/jsonmock/internal/logger"
)

// ResourcesService имя сервиса, под которым сообщается готовность набора данных.
const ResourcesService = "jsonmock.Resources"

// requestIDKey ключ метаданных, совпадает с HTTP заголовком X-Request-Id.
const requestIDKey = "x-request-id"

type Server struct {
	server *grpc.Server
	health *health.Server
}

// NewServer создает сервер с зарегистрированным сервисом здоровья.
// Набор данных к этому моменту уже загружен, поэтому сразу SERVING.
func NewServer() *Server {
	s := grpc.NewServer(
		grpc.UnaryInterceptor(UnaryServerInterceptor()),
		grpc.StreamInterceptor(StreamServerInterceptor()),
	)
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ResourcesService, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, healthServer)

	return &Server{server: s, health: healthServer}
}

// Serve блокируется до остановки сервера.
func (s *Server) Serve(lis net.Listener) error {
	logger.Log.Info("Running gRPC server", zap.String("address", lis.Addr().String()))
	return s.server.Serve(lis)
}

// SetNotServing переводит все сервисы в NOT_SERVING, новые проверки больше не проходят.
func (s *Server) SetNotServing() {
	s.health.Shutdown()
}

// Shutdown дожидается завершения активных вызовов, но не дольше, чем живет ctx.
func (s *Server) Shutdown(ctx context.Context) {
	s.SetNotServing()

	stopped := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		logger.Log.Info("gRPC graceful stop timed out, forcing", zap.Error(ctx.Err()))
		s.server.Stop()
		<-stopped
	}
}

// UnaryServerInterceptor возвращает цепочку: логирование, request id, восстановление после паники.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return grpc_middleware.ChainUnaryServer(
		grpc_zap.UnaryServerInterceptor(logger.Log),
		func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
			id := requestIDFromMetadata(ctx)
			ctxzap.AddFields(ctx, zap.String("request_id", id))
			if err := grpc.SetHeader(ctx, metadata.Pairs(requestIDKey, id)); err != nil {
				logger.Log.Debug("cannot set request id header", zap.Error(err))
			}
			return handler(ctx, req)
		},
		grpc_recovery.UnaryServerInterceptor(),
	)
}

// StreamServerInterceptor то же самое для потоковых вызовов (Health.Watch).
func StreamServerInterceptor() grpc.StreamServerInterceptor {
	return grpc_middleware.ChainStreamServer(
		grpc_zap.StreamServerInterceptor(logger.Log),
		func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
			wrapped := grpc_middleware.WrapServerStream(ss)
			id := requestIDFromMetadata(wrapped.Context())
			ctxzap.AddFields(wrapped.Context(), zap.String("request_id", id))
			if err := ss.SetHeader(metadata.Pairs(requestIDKey, id)); err != nil {
				logger.Log.Debug("cannot set request id header", zap.Error(err))
			}
			return handler(srv, wrapped)
		},
		grpc_recovery.StreamServerInterceptor(),
	)
}

// requestIDFromMetadata берет id от клиента или генерирует новый.
func requestIDFromMetadata(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(requestIDKey); len(values) > 0 && values[0] != "" {
			return values[0]
		}
	}
	return uuid.NewString()
}
