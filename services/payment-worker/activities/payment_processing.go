// Package activities hosts the payment worker's activity implementations.
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
	simConfig = simulation.LoadConfig("PAYMENT")
}

func ProcessPayment(ctx context.Context, input contracts.PaymentInput) (*contracts.PaymentResult, error) {
	if err := simConfig.Inject(ctx); err != nil {
		_, span := otel.Tracer("payment-worker").Start(ctx, "process_payment")
		span.RecordError(err)
		span.End()
		return nil, err
	}

	return core.ProcessPayment(ctx, input)
}
