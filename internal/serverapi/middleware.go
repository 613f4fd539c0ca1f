package serverapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/theheadmen/jsonmock/internal/logger"
	"github.com/theheadmen/jsonmock/internal/models"
)

// RequestIDHeader is echoed back when the client sends it, generated otherwise.
const RequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// RequestID returns the id attached by requestIDMiddleware, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.Log.Info("Request processed",
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.String("request_id", RequestID(r.Context())),
			zap.Duration("duration", time.Since(start)),
			zap.Int("status", ww.Status()),
			zap.Int("size", ww.BytesWritten()),
		)
	})
}

func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.Log.Error("Handler panicked",
				zap.Any("panic", rec),
				zap.String("uri", r.RequestURI),
				zap.String("request_id", RequestID(r.Context())),
				zap.Stack("stack"),
			)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: internalErrorMessage})
		}()
		next.ServeHTTP(w, r)
	})
}
