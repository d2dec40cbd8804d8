// Package activities holds the in-process reference implementations of the
// order fulfillment activities. Production deployments run the per-domain
// workers under services/ instead; these implementations back the all-in-one
// dev worker and the test suite.
package activities

import contracts "github.com/base-14/order-fulfillment/pkg/activities"

// The shared contract types are aliased so this package's activity functions
// register with the exact types the workflow serializes.
type (
	OrderItem             = contracts.OrderItem
	ValidateOrderInput    = contracts.ValidateOrderInput
	ValidateOrderResult   = contracts.ValidateOrderResult
	FraudAssessmentInput  = contracts.FraudAssessmentInput
	FraudAssessmentResult = contracts.FraudAssessmentResult
	InventoryCheckInput   = contracts.InventoryCheckInput
	InventoryCheckResult  = contracts.InventoryCheckResult
	UnavailableItem       = contracts.UnavailableItem
	PaymentInput          = contracts.PaymentInput
	PaymentResult         = contracts.PaymentResult
	ShippingInput         = contracts.ShippingInput
	ShippingResult        = contracts.ShippingResult
	NotificationInput     = contracts.NotificationInput
	RecordMetricsInput    = contracts.RecordMetricsInput
)
