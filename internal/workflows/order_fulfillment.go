package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/base-14/order-fulfillment/internal/activities"
	contracts "github.com/base-14/order-fulfillment/pkg/activities"
)

// Task queues, one per business domain so each worker pool scales on its own.
const (
	TaskQueue            = "order-fulfillment"
	FraudAssessmentQueue = "fraud-assessment-queue"
	InventoryQueue       = "inventory-queue"
	PaymentQueue         = "payment-queue"
	ShippingQueue        = "shipping-queue"
	NotificationQueue    = "notification-queue"
)

const (
	// ManualReviewSignal delivers the human decision ("approved" or anything
	// else, treated as a rejection) to a workflow parked in manual review.
	ManualReviewSignal = "manual-review-decision"

	// OrderStatusQuery exposes a read-only snapshot of the in-flight run.
	OrderStatusQuery = "order-status"

	manualReviewTimeout = 24 * time.Hour
)

type OrderInput struct {
	OrderID      string           `json:"order_id"`
	CustomerID   string           `json:"customer_id"`
	CustomerTier string           `json:"customer_tier"`
	TotalAmount  float64          `json:"total_amount"`
	Items        []OrderItemInput `json:"items"`
}

type OrderItemInput struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderResult struct {
	OrderID      string                 `json:"order_id"`
	Status       contracts.Status       `json:"status"`
	DecisionPath contracts.DecisionPath `json:"decision_path"`
	RiskScore    int                    `json:"risk_score,omitempty"`
	Message      string                 `json:"message,omitempty"`
}

// StatusSnapshot is the answer to an OrderStatusQuery: the stage the order is
// currently in plus the risk score once fraud assessment has run. It reflects
// the orchestrator's local state only and never influences a decision.
type StatusSnapshot struct {
	Stage     string `json:"stage"`
	RiskScore int    `json:"risk_score"`
}

// orderRun carries the per-execution state of one order through the stage
// sequence. All fields are local to a single workflow instance.
type orderRun struct {
	ctx       workflow.Context
	input     OrderInput
	startedAt time.Time
	snapshot  StatusSnapshot
}

// OrderFulfillmentWorkflow drives a proposed order through validation, fraud
// assessment, inventory, payment, shipping, and notification, and resolves it
// to exactly one decision path. Business declines are results, not errors;
// the returned error is reserved for the substrate failing to make progress.
func OrderFulfillmentWorkflow(ctx workflow.Context, input OrderInput) (*OrderResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting order fulfillment workflow", "order_id", input.OrderID)

	run := &orderRun{
		ctx:       ctx,
		input:     input,
		startedAt: workflow.Now(ctx),
		snapshot:  StatusSnapshot{Stage: "validate"},
	}

	if err := workflow.SetQueryHandler(ctx, OrderStatusQuery, func() (StatusSnapshot, error) {
		return run.snapshot, nil
	}); err != nil {
		return nil, err
	}

	return run.execute()
}

func (r *orderRun) execute() (*OrderResult, error) {
	logger := workflow.GetLogger(r.ctx)
	ctx := r.withQueue("")

	var validateResult contracts.ValidateOrderResult
	if err := workflow.ExecuteActivity(ctx, activities.ValidateOrder, contracts.ValidateOrderInput{
		OrderID:     r.input.OrderID,
		CustomerID:  r.input.CustomerID,
		TotalAmount: r.input.TotalAmount,
		Items:       r.activityItems(),
	}).Get(ctx, &validateResult); err != nil {
		return r.finish(contracts.StatusValidationFailed, contracts.PathValidationError, err.Error(), err.Error()), nil
	}

	if !validateResult.Valid {
		return r.finish(contracts.StatusInvalid, contracts.PathValidationFailed, validateResult.Reason, validateResult.Reason), nil
	}

	r.snapshot.Stage = "fraud_assessment"
	fraudCtx := r.withQueue(FraudAssessmentQueue)
	var fraudResult contracts.FraudAssessmentResult
	if err := workflow.ExecuteActivity(fraudCtx, "FraudAssessment", contracts.FraudAssessmentInput{
		OrderID:      r.input.OrderID,
		CustomerID:   r.input.CustomerID,
		CustomerTier: r.input.CustomerTier,
		TotalAmount:  r.input.TotalAmount,
	}).Get(ctx, &fraudResult); err != nil {
		return r.finish(contracts.StatusFraudCheckFailed, contracts.PathFraudError, err.Error(), err.Error()), nil
	}
	r.snapshot.RiskScore = fraudResult.RiskScore

	if fraudResult.RiskScore > 80 {
		logger.Info("High risk order, requiring manual review", "risk_score", fraudResult.RiskScore)
		return r.manualReview()
	}

	r.snapshot.Stage = "inventory_check"
	inventoryCtx := r.withQueue(InventoryQueue)
	var inventoryResult contracts.InventoryCheckResult
	if err := workflow.ExecuteActivity(inventoryCtx, "InventoryCheck", contracts.InventoryCheckInput{
		OrderID: r.input.OrderID,
		Items:   r.activityItems(),
	}).Get(ctx, &inventoryResult); err != nil {
		return r.finish(contracts.StatusInventoryFailed, contracts.PathInventoryError, err.Error(), err.Error()), nil
	}

	if !inventoryResult.AllAvailable {
		logger.Info("Items not available, creating backorder", "unavailable_count", len(inventoryResult.UnavailableItems))
		return r.backorder()
	}

	r.snapshot.Stage = "payment"
	paymentCtx := r.withQueue(PaymentQueue)
	var paymentResult contracts.PaymentResult
	if err := workflow.ExecuteActivity(paymentCtx, "ProcessPayment", contracts.PaymentInput{
		OrderID:    r.input.OrderID,
		CustomerID: r.input.CustomerID,
		Amount:     r.input.TotalAmount,
	}).Get(ctx, &paymentResult); err != nil {
		return r.finish(contracts.StatusPaymentFailed, contracts.PathPaymentError, err.Error(), err.Error()), nil
	}

	if !paymentResult.Success {
		logger.Info("Payment declined", "reason", paymentResult.Reason)
		return r.finish(contracts.StatusPaymentFailed, contracts.PathPaymentDeclined, paymentResult.Reason, paymentResult.Reason), nil
	}

	// Shipping reservation is advisory: a failure is logged and the order
	// proceeds. The payment has already been taken at this point.
	r.snapshot.Stage = "shipping"
	shippingCtx := r.withQueue(ShippingQueue)
	var shippingResult contracts.ShippingResult
	if err := workflow.ExecuteActivity(shippingCtx, "ReserveShipping", contracts.ShippingInput{
		OrderID:    r.input.OrderID,
		CustomerID: r.input.CustomerID,
		Items:      r.activityItems(),
	}).Get(ctx, &shippingResult); err != nil {
		logger.Warn("Shipping reservation failed, but continuing", "error", err)
	}

	r.snapshot.Stage = "confirmation"
	r.notify("order_confirmed", "Your order has been confirmed and is being processed.")

	logger.Info("Order fulfillment completed successfully", "order_id", r.input.OrderID)
	return r.finish(contracts.StatusCompleted, contracts.PathAutoApproved, "Order processed successfully", ""), nil
}

// manualReview parks the order until either a human decision signal arrives or
// the review window expires, whichever the selector reports first. The timer
// firing is treated as a decision value of "timeout".
func (r *orderRun) manualReview() (*OrderResult, error) {
	logger := workflow.GetLogger(r.ctx)
	r.snapshot.Stage = "manual_review"

	r.notify("manual_review", "Your order is under review.")
	r.recordMetrics(contracts.PathManualReview, "")

	reviewChannel := workflow.GetSignalChannel(r.ctx, ManualReviewSignal)
	reviewTimer := workflow.NewTimer(r.ctx, manualReviewTimeout)

	var decision string
	selector := workflow.NewSelector(r.ctx)
	selector.AddReceive(reviewChannel, func(c workflow.ReceiveChannel, more bool) {
		c.Receive(r.ctx, &decision)
	})
	selector.AddFuture(reviewTimer, func(f workflow.Future) {
		decision = "timeout"
	})
	selector.Select(r.ctx)

	if decision == "approved" {
		logger.Info("Manual review approved", "order_id", r.input.OrderID)
		return r.finish(contracts.StatusApproved, contracts.PathManualApproved, "Order approved after manual review", ""), nil
	}

	logger.Info("Manual review rejected or timed out", "order_id", r.input.OrderID, "decision", decision)
	return r.finish(contracts.StatusRejected, contracts.PathManualRejected, "Order rejected during manual review", "manual_review_"+decision), nil
}

func (r *orderRun) backorder() (*OrderResult, error) {
	r.snapshot.Stage = "backorder"
	r.notify("backorder", "Some items in your order are currently out of stock. We'll notify you when they become available.")
	return r.finish(contracts.StatusBackordered, contracts.PathBackorder, "Order placed on backorder due to insufficient stock", ""), nil
}

// finish builds the terminal result and emits the metrics side effect. The
// risk score is whatever the snapshot holds: zero until fraud assessment ran.
func (r *orderRun) finish(status contracts.Status, path contracts.DecisionPath, message, failureReason string) *OrderResult {
	result := &OrderResult{
		OrderID:      r.input.OrderID,
		Status:       status,
		DecisionPath: path,
		RiskScore:    r.snapshot.RiskScore,
		Message:      message,
	}
	r.recordMetrics(path, failureReason)
	return result
}

// recordMetrics is fire-and-forget: a failed recording must never change the
// order's outcome, so the activity error is discarded.
func (r *orderRun) recordMetrics(path contracts.DecisionPath, failureReason string) {
	ctx := r.withQueue("")
	duration := workflow.Now(r.ctx).Sub(r.startedAt).Seconds()
	_ = workflow.ExecuteActivity(ctx, activities.RecordOrderMetrics, contracts.RecordMetricsInput{
		OrderID:       r.input.OrderID,
		CustomerTier:  r.input.CustomerTier,
		DecisionPath:  path,
		RiskScore:     r.snapshot.RiskScore,
		DurationSecs:  duration,
		FailureReason: failureReason,
	}).Get(ctx, nil)
}

// notify sends a customer notification and swallows any error. Notification
// delivery is best-effort throughout the workflow.
func (r *orderRun) notify(notificationType, message string) {
	ctx := r.withQueue(NotificationQueue)
	_ = workflow.ExecuteActivity(ctx, "SendConfirmation", contracts.NotificationInput{
		OrderID:    r.input.OrderID,
		CustomerID: r.input.CustomerID,
		Type:       notificationType,
		Message:    message,
	}).Get(ctx, nil)
}

// withQueue derives an activity context for the given task queue with the
// standard retry policy: 1s initial backoff, doubling, capped at one minute,
// three attempts. An empty queue keeps the workflow's own task queue.
func (r *orderRun) withQueue(taskQueue string) workflow.Context {
	return workflow.WithActivityOptions(r.ctx, workflow.ActivityOptions{
		TaskQueue:           taskQueue,
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	})
}

func (r *orderRun) activityItems() []contracts.OrderItem {
	items := make([]contracts.OrderItem, len(r.input.Items))
	for i, item := range r.input.Items {
		items[i] = contracts.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}
	return items
}
