package temporal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.temporal.io/sdk/worker"

	"github.com/base-14/order-fulfillment/pkg/telemetry"
)

// ServiceConfig describes a standalone worker service: telemetry identity,
// the task queue it polls, and a hook to register its workflows/activities.
type ServiceConfig struct {
	Name             string
	DefaultTaskQueue string
	Register         func(w worker.Worker)
}

// RunService is the shared main loop for the per-domain worker services under
// services/. It wires telemetry, dials Temporal with retry, registers the
// service's activities, and runs until SIGINT/SIGTERM.
func RunService(cfg ServiceConfig) error {
	ctx := context.Background()

	serviceName := envOr("OTEL_SERVICE_NAME", cfg.Name)
	environment := envOr("ENVIRONMENT", "development")
	otelEndpoint := envOr("OTEL_EXPORTER_OTLP_ENDPOINT", "http://otel-collector:4318")
	temporalHost := envOr("TEMPORAL_HOST", "temporal:7233")
	temporalNamespace := envOr("TEMPORAL_NAMESPACE", "default")
	taskQueue := envOr("TASK_QUEUE", cfg.DefaultTaskQueue)

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    environment,
		Endpoint:       otelEndpoint,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(ctx); err != nil {
			slog.Error("failed to shutdown telemetry", slog.String("error", err.Error()))
		}
	}()

	temporalClient, err := NewClientWithRetry(ctx, ClientConfig{
		HostPort:  temporalHost,
		Namespace: temporalNamespace,
	})
	if err != nil {
		return fmt.Errorf("failed to create Temporal client: %w", err)
	}
	defer temporalClient.Close()

	w, err := NewWorker(temporalClient, WorkerConfig{TaskQueue: taskQueue})
	if err != nil {
		return fmt.Errorf("failed to create Temporal worker: %w", err)
	}

	cfg.Register(w)

	slog.Info("starting worker",
		slog.String("service", serviceName),
		slog.String("temporal_host", temporalHost),
		slog.String("task_queue", taskQueue),
		slog.String("environment", environment),
	)

	workerErr := make(chan error, 1)
	go func() {
		if err := w.Run(nil); err != nil {
			workerErr <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-workerErr:
		return fmt.Errorf("worker error: %w", err)
	case <-sigCh:
	}

	slog.Info("shutting down worker", slog.String("service", serviceName))
	w.Stop()

	return nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
