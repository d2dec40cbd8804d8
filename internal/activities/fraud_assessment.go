package activities

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// FraudAssessment scores an order 0-100. Scores above 80 send the order to
// manual review in the workflow; the threshold lives there, not here.
func FraudAssessment(ctx context.Context, input FraudAssessmentInput) (*FraudAssessmentResult, error) {
	_, span := otel.Tracer("activities").Start(ctx, "fraud_assessment",
		trace.WithAttributes(
			attribute.String("order.id", input.OrderID),
			attribute.String("customer.id", input.CustomerID),
			attribute.String("customer.tier", input.CustomerTier),
			attribute.Float64("order.amount", input.TotalAmount),
		),
	)
	defer span.End()

	score, factors := scoreOrder(input)

	span.SetAttributes(
		attribute.Int("fraud.risk_score", score),
		attribute.Bool("fraud.high_risk", score > 80),
		attribute.StringSlice("fraud.risk_factors", factors),
	)

	return &FraudAssessmentResult{
		RiskScore: score,
		Reason:    strings.Join(factors, ", "),
	}, nil
}

func scoreOrder(input FraudAssessmentInput) (int, []string) {
	score := 0
	var factors []string

	if strings.HasPrefix(input.CustomerID, "new-") {
		score += 30
		factors = append(factors, "new_customer")
	}

	if input.CustomerTier == "new" || input.CustomerTier == "" {
		score += 20
		factors = append(factors, "non_premium_tier")
	}

	if input.TotalAmount > 1000 {
		score += 25
		factors = append(factors, "high_value_order")
	}

	if input.TotalAmount > 5000 {
		score += 30
		factors = append(factors, "very_high_value_order")
	}

	if input.CustomerTier == "premium" {
		score -= 20
		if score < 0 {
			score = 0
		}
	}

	return score, factors
}
