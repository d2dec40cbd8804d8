// Package activities hosts the fraud worker's activity implementations:
// the shared reference logic behind env-tunable fault injection.
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
	simConfig = simulation.LoadConfig("FRAUD")
}

func FraudAssessment(ctx context.Context, input contracts.FraudAssessmentInput) (*contracts.FraudAssessmentResult, error) {
	if err := simConfig.Inject(ctx); err != nil {
		_, span := otel.Tracer("fraud-worker").Start(ctx, "fraud_assessment")
		span.RecordError(err)
		span.End()
		return nil, err
	}

	return core.FraudAssessment(ctx, input)
}
