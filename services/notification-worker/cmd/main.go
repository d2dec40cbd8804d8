package main

import (
	"log/slog"
	"os"

	"go.temporal.io/sdk/worker"

	"github.com/base-14/order-fulfillment/internal/workflows"
	"github.com/base-14/order-fulfillment/pkg/temporal"
	"github.com/base-14/order-fulfillment/services/notification-worker/activities"
)

func main() {
	err := temporal.RunService(temporal.ServiceConfig{
		Name:             "notification-worker",
		DefaultTaskQueue: workflows.NotificationQueue,
		Register: func(w worker.Worker) {
			activities.InitSimulation()
			w.RegisterActivity(activities.SendConfirmation)
		},
	})
	if err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
