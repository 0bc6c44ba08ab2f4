// ============================================================================
// backend/cmd/api/main.go
// Entry point for the StudySync API: REST gateway plus the analytics gRPC server
// ============================================================================

package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"studysync/backend/internal/analytics"
	"studysync/backend/internal/calendar"
	"studysync/backend/internal/gateway"
	"studysync/backend/internal/shared"
	"studysync/backend/internal/store"
)

func main() {
	if err := shared.LoadEnv(".env"); err != nil {
		slog.Warn(".env file not found, using system environment variables")
	}

	config, err := shared.LoadServiceConfig("studysync-api")
	if err != nil {
		fatal("failed to load configuration", err)
	}
	shared.SetupLogger(config)

	if err := shared.ValidateServiceConfig(config); err != nil {
		fatal("invalid configuration", err)
	}
	if shared.IsDevelopment(config) {
		shared.PrintConfig(config)
	}

	// 1. Open the store
	openCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	st, err := store.Open(openCtx, config)
	cancel()
	if err != nil {
		fatal("failed to open store", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(ctx); err != nil {
			slog.Error("error closing store", "error", err)
		}
	}()
	slog.Info("store ready", "driver", st.Driver())

	svcs := gateway.NewServices(st, config, calendar.SystemClock{})

	// 2. gRPC server
	grpcServer := grpc.NewServer(
		grpc.MaxRecvMsgSize(config.GRPC.MaxRecvMsgSize),
		grpc.MaxSendMsgSize(config.GRPC.MaxSendMsgSize),
		grpc.ConnectionTimeout(config.GRPC.ConnectionTimeout),
	)
	analytics.RegisterAnalyticsServer(grpcServer, analytics.NewGRPCServer(svcs.Analytics, config.GRPC.RequestTimeout))

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(analytics.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	// Register reflection service (useful for debugging with grpcurl)
	reflection.Register(grpcServer)

	listener, err := net.Listen("tcp", ":"+config.GRPCPort)
	if err != nil {
		fatal("failed to listen for gRPC", err, "port", config.GRPCPort)
	}
	go func() {
		slog.Info("analytics gRPC listening", "port", config.GRPCPort)
		if err := grpcServer.Serve(listener); err != nil {
			fatal("gRPC server error", err)
		}
	}()

	// 3. HTTP server
	server := &http.Server{
		Addr:         ":" + config.HTTPPort,
		Handler:      gateway.SetupRoutes(svcs, config),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		slog.Info("HTTP gateway listening", "port", config.HTTPPort, "auth_disabled", config.Security.AuthDisabled)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("HTTP server error", err)
		}
	}()

	// 4. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	healthServer.SetServingStatus(analytics.ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("HTTP shutdown", "error", err)
	}
	grpcServer.GracefulStop()

	slog.Info("stopped")
}

func fatal(msg string, err error, args ...any) {
	slog.Error(msg, append([]any{"error", err}, args...)...)
	os.Exit(1)
}
