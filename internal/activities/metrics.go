package activities

import (
	"context"

	"github.com/base-14/order-fulfillment/internal/telemetry"
	contracts "github.com/base-14/order-fulfillment/pkg/activities"
)

// RecordOrderMetrics translates a terminal decision path into the telemetry
// counters and histograms. The workflow discards this activity's error, so it
// can never change an order's outcome.
func RecordOrderMetrics(ctx context.Context, input RecordMetricsInput) error {
	telemetry.RecordOrderProcessed(ctx, input.CustomerTier)

	if input.RiskScore > 0 {
		telemetry.RecordFraudRiskScore(ctx, input.RiskScore, input.CustomerTier)
	}

	switch input.DecisionPath {
	case contracts.PathAutoApproved, contracts.PathManualApproved:
		telemetry.RecordOrderApproved(ctx, input.CustomerTier)
	case contracts.PathManualReview:
		telemetry.RecordOrderManualReview(ctx, input.RiskScore)
	case contracts.PathManualRejected:
		telemetry.RecordOrderRejected(ctx, "manual_review_rejected")
	case contracts.PathBackorder:
		telemetry.RecordOrderBackordered(ctx)
	case contracts.PathPaymentDeclined, contracts.PathPaymentError:
		telemetry.RecordOrderPaymentFailed(ctx, input.FailureReason)
	case contracts.PathValidationFailed, contracts.PathValidationError:
		telemetry.RecordOrderRejected(ctx, "validation_failed")
	case contracts.PathFraudError:
		telemetry.RecordOrderRejected(ctx, "fraud_check_error")
	case contracts.PathInventoryError:
		telemetry.RecordOrderRejected(ctx, "inventory_check_error")
	}

	if input.DurationSecs > 0 {
		telemetry.RecordOrderProcessingDuration(ctx, input.DurationSecs, string(input.DecisionPath))
	}

	return nil
}
