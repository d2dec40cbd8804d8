// Package activities hosts the notification worker's activity implementations.
package activities

import (
	"context"

	"go.opentelemetry.io/otel"

	core "github.com/base-14/order-fulfillment/internal/activities"
	contracts "github.com/base-14/order-fulfillment/pkg/activities"
	"github.com/base-14/order-fulfillment/pkg/simulation"
)

var simConfig simulation.Config

func InitSimulation() {
	simConfig = simulation.LoadConfig("NOTIFICATION")
}

func SendConfirmation(ctx context.Context, input contracts.NotificationInput) error {
	if err := simConfig.Inject(ctx); err != nil {
		_, span := otel.Tracer("notification-worker").Start(ctx, "send_notification")
		span.RecordError(err)
		span.End()
		return err
	}

	return core.SendConfirmation(ctx, input)
}
