package activities

// DecisionPath names the terminal (or, for manual review, intermediate)
// branch an order resolved to. The set is closed: it doubles as a metrics
// dimension, and a typo here would silently create a new untracked series.
type DecisionPath string

const (
	PathValidationError  DecisionPath = "validation_error"
	PathValidationFailed DecisionPath = "validation_failed"
	PathFraudError       DecisionPath = "fraud_error"
	PathManualReview     DecisionPath = "manual_review"
	PathManualApproved   DecisionPath = "manual_approved"
	PathManualRejected   DecisionPath = "manual_rejected"
	PathInventoryError   DecisionPath = "inventory_error"
	PathBackorder        DecisionPath = "backorder"
	PathPaymentError     DecisionPath = "payment_error"
	PathPaymentDeclined  DecisionPath = "payment_declined"
	PathAutoApproved     DecisionPath = "auto_approved"
)

// Status is the terminal order status reported back to the caller.
type Status string

const (
	StatusCompleted        Status = "completed"
	StatusApproved         Status = "approved"
	StatusRejected         Status = "rejected"
	StatusInvalid          Status = "invalid"
	StatusValidationFailed Status = "validation_failed"
	StatusFraudCheckFailed Status = "fraud_check_failed"
	StatusInventoryFailed  Status = "inventory_check_failed"
	StatusPaymentFailed    Status = "payment_failed"
	StatusBackordered      Status = "backordered"
)
