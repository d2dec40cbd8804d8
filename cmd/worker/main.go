// The all-in-one worker hosts every task queue in a single process. It exists
// for local development; production runs the split workers under services/.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.temporal.io/sdk/worker"
	"golang.org/x/sync/errgroup"

	"github.com/base-14/order-fulfillment/internal/activities"
	"github.com/base-14/order-fulfillment/internal/workflows"
	"github.com/base-14/order-fulfillment/pkg/telemetry"
	pkgtemporal "github.com/base-14/order-fulfillment/pkg/temporal"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	serviceName := getEnv("OTEL_SERVICE_NAME", "order-fulfillment-worker")
	environment := getEnv("ENVIRONMENT", "development")
	otelEndpoint := getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318")
	temporalHost := getEnv("TEMPORAL_HOST", "localhost:7233")
	temporalNamespace := getEnv("TEMPORAL_NAMESPACE", "default")

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

	temporalClient, err := pkgtemporal.NewClientWithRetry(ctx, pkgtemporal.ClientConfig{
		HostPort:  temporalHost,
		Namespace: temporalNamespace,
	})
	if err != nil {
		return fmt.Errorf("failed to create Temporal client: %w", err)
	}
	defer temporalClient.Close()

	// One worker per task queue, mirroring the split deployment. Validation
	// and metrics recording stay on the workflow queue.
	registrations := []struct {
		taskQueue string
		register  func(w worker.Worker)
	}{
		{workflows.TaskQueue, func(w worker.Worker) {
			w.RegisterWorkflow(workflows.OrderFulfillmentWorkflow)
			w.RegisterActivity(activities.ValidateOrder)
			w.RegisterActivity(activities.RecordOrderMetrics)
		}},
		{workflows.FraudAssessmentQueue, func(w worker.Worker) {
			w.RegisterActivity(activities.FraudAssessment)
		}},
		{workflows.InventoryQueue, func(w worker.Worker) {
			w.RegisterActivity(activities.InventoryCheck)
		}},
		{workflows.PaymentQueue, func(w worker.Worker) {
			w.RegisterActivity(activities.ProcessPayment)
		}},
		{workflows.ShippingQueue, func(w worker.Worker) {
			w.RegisterActivity(activities.ReserveShipping)
		}},
		{workflows.NotificationQueue, func(w worker.Worker) {
			w.RegisterActivity(activities.SendConfirmation)
		}},
	}

	interrupt := make(chan interface{})
	g, gctx := errgroup.WithContext(ctx)

	for _, reg := range registrations {
		w, err := pkgtemporal.NewWorker(temporalClient, pkgtemporal.WorkerConfig{TaskQueue: reg.taskQueue})
		if err != nil {
			return fmt.Errorf("failed to create worker for %s: %w", reg.taskQueue, err)
		}
		reg.register(w)

		taskQueue := reg.taskQueue
		g.Go(func() error {
			slog.Info("starting worker", slog.String("task_queue", taskQueue))
			if err := w.Run(interrupt); err != nil {
				return fmt.Errorf("worker %s: %w", taskQueue, err)
			}
			return nil
		})
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		slog.Info("shutting down workers")
	case <-gctx.Done():
	}
	close(interrupt)

	return g.Wait()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
