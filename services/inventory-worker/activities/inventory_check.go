// Package activities hosts the inventory worker's activity implementations.
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
	simConfig = simulation.LoadConfig("INVENTORY")
}

func InventoryCheck(ctx context.Context, input contracts.InventoryCheckInput) (*contracts.InventoryCheckResult, error) {
	if err := simConfig.Inject(ctx); err != nil {
		_, span := otel.Tracer("inventory-worker").Start(ctx, "inventory_check")
		span.RecordError(err)
		span.End()
		return nil, err
	}

	return core.InventoryCheck(ctx, input)
}
