package main

import (
	"log/slog"
	"os"

	"go.temporal.io/sdk/worker"

	"github.com/base-14/order-fulfillment/internal/workflows"
	"github.com/base-14/order-fulfillment/pkg/temporal"
	"github.com/base-14/order-fulfillment/services/payment-worker/activities"
)

func main() {
	err := temporal.RunService(temporal.ServiceConfig{
		Name:             "payment-worker",
		DefaultTaskQueue: workflows.PaymentQueue,
		Register: func(w worker.Worker) {
			activities.InitSimulation()
			w.RegisterActivity(activities.ProcessPayment)
		},
	})
	if err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
