// Package activities hosts the shipping worker's activity implementations.
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
	simConfig = simulation.LoadConfig("SHIPPING")
}

func ReserveShipping(ctx context.Context, input contracts.ShippingInput) (*contracts.ShippingResult, error) {
	if err := simConfig.Inject(ctx); err != nil {
		_, span := otel.Tracer("shipping-worker").Start(ctx, "reserve_shipping")
		span.RecordError(err)
		span.End()
		return nil, err
	}

	return core.ReserveShipping(ctx, input)
}
