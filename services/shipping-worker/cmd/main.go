package main

import (
	"log/slog"
	"os"

	"go.temporal.io/sdk/worker"

	"github.com/base-14/order-fulfillment/internal/workflows"
	"github.com/base-14/order-fulfillment/pkg/temporal"
	"github.com/base-14/order-fulfillment/services/shipping-worker/activities"
)

func main() {
	err := temporal.RunService(temporal.ServiceConfig{
		Name:             "shipping-worker",
		DefaultTaskQueue: workflows.ShippingQueue,
		Register: func(w worker.Worker) {
			activities.InitSimulation()
			w.RegisterActivity(activities.ReserveShipping)
		},
	})
	if err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
