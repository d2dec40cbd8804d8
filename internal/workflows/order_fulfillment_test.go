package workflows_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"

	"github.com/base-14/order-fulfillment/internal/activities"
	"github.com/base-14/order-fulfillment/internal/workflows"
	contracts "github.com/base-14/order-fulfillment/pkg/activities"
)

func newEnv(t *testing.T) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	testSuite := &testsuite.WorkflowTestSuite{}
	return testSuite.NewTestWorkflowEnvironment()
}

func validOrder(orderID string) workflows.OrderInput {
	return workflows.OrderInput{
		OrderID:      orderID,
		CustomerID:   "test-customer",
		CustomerTier: "standard",
		TotalAmount:  100.00,
		Items: []workflows.OrderItemInput{
			{ProductID: "prod-1", Quantity: 1, Price: 100.00},
		},
	}
}

// mockHappyPath mocks every activity with responses that auto-approve.
func mockHappyPath(env *testsuite.TestWorkflowEnvironment, riskScore int) {
	env.OnActivity(activities.ValidateOrder, mock.Anything, mock.Anything).Return(&contracts.ValidateOrderResult{Valid: true}, nil)
	env.OnActivity(activities.FraudAssessment, mock.Anything, mock.Anything).Return(&contracts.FraudAssessmentResult{RiskScore: riskScore}, nil)
	env.OnActivity(activities.InventoryCheck, mock.Anything, mock.Anything).Return(&contracts.InventoryCheckResult{AllAvailable: true}, nil)
	env.OnActivity(activities.ProcessPayment, mock.Anything, mock.Anything).Return(&contracts.PaymentResult{Success: true, TransactionID: "txn-123"}, nil)
	env.OnActivity(activities.ReserveShipping, mock.Anything, mock.Anything).Return(&contracts.ShippingResult{Reserved: true, TrackingID: "TRK-123"}, nil)
	env.OnActivity(activities.SendConfirmation, mock.Anything, mock.Anything).Return(nil)
	env.OnActivity(activities.RecordOrderMetrics, mock.Anything, mock.Anything).Return(nil)
}

func getResult(t *testing.T, env *testsuite.TestWorkflowEnvironment) workflows.OrderResult {
	t.Helper()
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result workflows.OrderResult
	require.NoError(t, env.GetWorkflowResult(&result))
	return result
}

func TestOrderFulfillmentWorkflow_AutoApprove(t *testing.T) {
	env := newEnv(t)

	env.OnActivity(activities.ValidateOrder, mock.Anything, mock.Anything).Return(&contracts.ValidateOrderResult{Valid: true}, nil)
	env.OnActivity(activities.FraudAssessment, mock.Anything, mock.Anything).Return(&contracts.FraudAssessmentResult{RiskScore: 20}, nil)
	env.OnActivity(activities.InventoryCheck, mock.Anything, mock.Anything).Return(&contracts.InventoryCheckResult{AllAvailable: true}, nil)
	env.OnActivity(activities.ProcessPayment, mock.Anything, mock.Anything).Return(&contracts.PaymentResult{Success: true, TransactionID: "txn-123"}, nil)
	env.OnActivity(activities.ReserveShipping, mock.Anything, mock.Anything).Return(&contracts.ShippingResult{Reserved: true, TrackingID: "TRK-123"}, nil)
	env.OnActivity(activities.SendConfirmation, mock.Anything, mock.Anything).Return(nil)
	env.OnActivity(activities.RecordOrderMetrics, mock.Anything, mock.Anything).Return(nil)

	env.ExecuteWorkflow(workflows.OrderFulfillmentWorkflow, workflows.OrderInput{
		OrderID:      "t1",
		CustomerID:   "premium-customer",
		CustomerTier: "premium",
		TotalAmount:  50.00,
		Items: []workflows.OrderItemInput{
			{ProductID: "prod-1", Quantity: 1, Price: 50.00},
		},
	})

	result := getResult(t, env)
	require.Equal(t, contracts.StatusCompleted, result.Status)
	require.Equal(t, contracts.PathAutoApproved, result.DecisionPath)
	require.Equal(t, 20, result.RiskScore)
}

func TestOrderFulfillmentWorkflow_ManualReviewApproved(t *testing.T) {
	env := newEnv(t)

	env.OnActivity(activities.ValidateOrder, mock.Anything, mock.Anything).Return(&contracts.ValidateOrderResult{Valid: true}, nil)
	env.OnActivity(activities.FraudAssessment, mock.Anything, mock.Anything).Return(&contracts.FraudAssessmentResult{RiskScore: 85}, nil)
	env.OnActivity(activities.SendConfirmation, mock.Anything, mock.Anything).Return(nil)
	env.OnActivity(activities.RecordOrderMetrics, mock.Anything, mock.Anything).Return(nil)

	env.RegisterDelayedCallback(func() {
		env.SignalWorkflow(workflows.ManualReviewSignal, "approved")
	}, 0)

	env.ExecuteWorkflow(workflows.OrderFulfillmentWorkflow, workflows.OrderInput{
		OrderID:      "t2",
		CustomerID:   "new-customer",
		CustomerTier: "new",
		TotalAmount:  5000.00,
		Items: []workflows.OrderItemInput{
			{ProductID: "prod-1", Quantity: 100, Price: 50.00},
		},
	})

	result := getResult(t, env)
	require.Equal(t, contracts.StatusApproved, result.Status)
	require.Equal(t, contracts.PathManualApproved, result.DecisionPath)
	require.Equal(t, 85, result.RiskScore)
}

func TestOrderFulfillmentWorkflow_ManualReviewRejected(t *testing.T) {
	env := newEnv(t)

	var recorded []contracts.RecordMetricsInput
	env.OnActivity(activities.ValidateOrder, mock.Anything, mock.Anything).Return(&contracts.ValidateOrderResult{Valid: true}, nil)
	env.OnActivity(activities.FraudAssessment, mock.Anything, mock.Anything).Return(&contracts.FraudAssessmentResult{RiskScore: 90}, nil)
	env.OnActivity(activities.SendConfirmation, mock.Anything, mock.Anything).Return(nil)
	env.OnActivity(activities.RecordOrderMetrics, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			recorded = append(recorded, args.Get(1).(contracts.RecordMetricsInput))
		}).
		Return(nil)

	env.RegisterDelayedCallback(func() {
		env.SignalWorkflow(workflows.ManualReviewSignal, "rejected")
	}, 0)

	env.ExecuteWorkflow(workflows.OrderFulfillmentWorkflow, validOrder("t-review-rejected"))

	result := getResult(t, env)
	require.Equal(t, contracts.StatusRejected, result.Status)
	require.Equal(t, contracts.PathManualRejected, result.DecisionPath)

	// Metrics fire twice on this path: on review entry and on resolution.
	require.Len(t, recorded, 2)
	require.Equal(t, contracts.PathManualReview, recorded[0].DecisionPath)
	require.Equal(t, contracts.PathManualRejected, recorded[1].DecisionPath)
	require.Equal(t, "manual_review_rejected", recorded[1].FailureReason)
}

func TestOrderFulfillmentWorkflow_ManualReviewTimeout(t *testing.T) {
	env := newEnv(t)

	var recorded []contracts.RecordMetricsInput
	env.OnActivity(activities.ValidateOrder, mock.Anything, mock.Anything).Return(&contracts.ValidateOrderResult{Valid: true}, nil)
	env.OnActivity(activities.FraudAssessment, mock.Anything, mock.Anything).Return(&contracts.FraudAssessmentResult{RiskScore: 95}, nil)
	env.OnActivity(activities.SendConfirmation, mock.Anything, mock.Anything).Return(nil)
	env.OnActivity(activities.RecordOrderMetrics, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			recorded = append(recorded, args.Get(1).(contracts.RecordMetricsInput))
		}).
		Return(nil)

	// No signal: the 24h review timer fires (the test env skips time).
	env.ExecuteWorkflow(workflows.OrderFulfillmentWorkflow, validOrder("t-review-timeout"))

	result := getResult(t, env)
	require.Equal(t, contracts.StatusRejected, result.Status)
	require.Equal(t, contracts.PathManualRejected, result.DecisionPath)

	require.Len(t, recorded, 2)
	require.Equal(t, "manual_review_timeout", recorded[1].FailureReason)
}

func TestOrderFulfillmentWorkflow_Backorder(t *testing.T) {
	env := newEnv(t)

	env.OnActivity(activities.ValidateOrder, mock.Anything, mock.Anything).Return(&contracts.ValidateOrderResult{Valid: true}, nil)
	env.OnActivity(activities.FraudAssessment, mock.Anything, mock.Anything).Return(&contracts.FraudAssessmentResult{RiskScore: 20}, nil)
	env.OnActivity(activities.InventoryCheck, mock.Anything, mock.Anything).Return(&contracts.InventoryCheckResult{
		AllAvailable: false,
		UnavailableItems: []contracts.UnavailableItem{
			{ProductID: "out-of-stock-item", Requested: 100, Available: 0},
		},
	}, nil)
	env.OnActivity(activities.SendConfirmation, mock.Anything, mock.Anything).Return(nil)
	env.OnActivity(activities.RecordOrderMetrics, mock.Anything, mock.Anything).Return(nil)

	env.ExecuteWorkflow(workflows.OrderFulfillmentWorkflow, workflows.OrderInput{
		OrderID:      "t3",
		CustomerID:   "test-customer",
		CustomerTier: "standard",
		TotalAmount:  100.00,
		Items: []workflows.OrderItemInput{
			{ProductID: "out-of-stock-item", Quantity: 100, Price: 1.00},
		},
	})

	result := getResult(t, env)
	require.Equal(t, contracts.StatusBackordered, result.Status)
	require.Equal(t, contracts.PathBackorder, result.DecisionPath)
	require.Equal(t, 20, result.RiskScore)
}

func TestOrderFulfillmentWorkflow_PaymentDeclined(t *testing.T) {
	env := newEnv(t)

	env.OnActivity(activities.ValidateOrder, mock.Anything, mock.Anything).Return(&contracts.ValidateOrderResult{Valid: true}, nil)
	env.OnActivity(activities.FraudAssessment, mock.Anything, mock.Anything).Return(&contracts.FraudAssessmentResult{RiskScore: 20}, nil)
	env.OnActivity(activities.InventoryCheck, mock.Anything, mock.Anything).Return(&contracts.InventoryCheckResult{AllAvailable: true}, nil)
	env.OnActivity(activities.ProcessPayment, mock.Anything, mock.Anything).Return(&contracts.PaymentResult{
		Success: false,
		Reason:  "Card declined",
	}, nil)
	env.OnActivity(activities.RecordOrderMetrics, mock.Anything, mock.Anything).Return(nil)

	env.ExecuteWorkflow(workflows.OrderFulfillmentWorkflow, validOrder("t4"))

	result := getResult(t, env)
	require.Equal(t, contracts.StatusPaymentFailed, result.Status)
	require.Equal(t, contracts.PathPaymentDeclined, result.DecisionPath)
	require.Equal(t, "Card declined", result.Message)
}

func TestOrderFulfillmentWorkflow_InvalidOrder(t *testing.T) {
	env := newEnv(t)

	env.OnActivity(activities.ValidateOrder, mock.Anything, mock.Anything).Return(&contracts.ValidateOrderResult{
		Valid:  false,
		Reason: "customer ID is required",
	}, nil)
	env.OnActivity(activities.RecordOrderMetrics, mock.Anything, mock.Anything).Return(nil)

	env.ExecuteWorkflow(workflows.OrderFulfillmentWorkflow, validOrder("t-invalid"))

	result := getResult(t, env)
	require.Equal(t, contracts.StatusInvalid, result.Status)
	require.Equal(t, contracts.PathValidationFailed, result.DecisionPath)
	require.Equal(t, "customer ID is required", result.Message)
	require.Zero(t, result.RiskScore)
}

func TestOrderFulfillmentWorkflow_ValidationActivityError(t *testing.T) {
	env := newEnv(t)

	env.OnActivity(activities.ValidateOrder, mock.Anything, mock.Anything).Return(nil, errors.New("validation service unavailable"))
	env.OnActivity(activities.RecordOrderMetrics, mock.Anything, mock.Anything).Return(nil)

	env.ExecuteWorkflow(workflows.OrderFulfillmentWorkflow, validOrder("t-validate-err"))

	result := getResult(t, env)
	require.Equal(t, contracts.StatusValidationFailed, result.Status)
	require.Equal(t, contracts.PathValidationError, result.DecisionPath)
	require.Zero(t, result.RiskScore)
}

func TestOrderFulfillmentWorkflow_FraudActivityError(t *testing.T) {
	env := newEnv(t)

	env.OnActivity(activities.ValidateOrder, mock.Anything, mock.Anything).Return(&contracts.ValidateOrderResult{Valid: true}, nil)
	env.OnActivity(activities.FraudAssessment, mock.Anything, mock.Anything).Return(nil, errors.New("fraud service unavailable"))
	env.OnActivity(activities.RecordOrderMetrics, mock.Anything, mock.Anything).Return(nil)

	env.ExecuteWorkflow(workflows.OrderFulfillmentWorkflow, validOrder("t-fraud-err"))

	result := getResult(t, env)
	require.Equal(t, contracts.StatusFraudCheckFailed, result.Status)
	require.Equal(t, contracts.PathFraudError, result.DecisionPath)
}

func TestOrderFulfillmentWorkflow_InventoryActivityError(t *testing.T) {
	env := newEnv(t)

	env.OnActivity(activities.ValidateOrder, mock.Anything, mock.Anything).Return(&contracts.ValidateOrderResult{Valid: true}, nil)
	env.OnActivity(activities.FraudAssessment, mock.Anything, mock.Anything).Return(&contracts.FraudAssessmentResult{RiskScore: 30}, nil)
	env.OnActivity(activities.InventoryCheck, mock.Anything, mock.Anything).Return(nil, errors.New("inventory service unavailable"))
	env.OnActivity(activities.RecordOrderMetrics, mock.Anything, mock.Anything).Return(nil)

	env.ExecuteWorkflow(workflows.OrderFulfillmentWorkflow, validOrder("t-inv-err"))

	result := getResult(t, env)
	require.Equal(t, contracts.StatusInventoryFailed, result.Status)
	require.Equal(t, contracts.PathInventoryError, result.DecisionPath)
	require.Equal(t, 30, result.RiskScore)
}

func TestOrderFulfillmentWorkflow_PaymentActivityError(t *testing.T) {
	env := newEnv(t)

	env.OnActivity(activities.ValidateOrder, mock.Anything, mock.Anything).Return(&contracts.ValidateOrderResult{Valid: true}, nil)
	env.OnActivity(activities.FraudAssessment, mock.Anything, mock.Anything).Return(&contracts.FraudAssessmentResult{RiskScore: 30}, nil)
	env.OnActivity(activities.InventoryCheck, mock.Anything, mock.Anything).Return(&contracts.InventoryCheckResult{AllAvailable: true}, nil)
	env.OnActivity(activities.ProcessPayment, mock.Anything, mock.Anything).Return(nil, errors.New("payment gateway unavailable"))
	env.OnActivity(activities.RecordOrderMetrics, mock.Anything, mock.Anything).Return(nil)

	env.ExecuteWorkflow(workflows.OrderFulfillmentWorkflow, validOrder("t-pay-err"))

	result := getResult(t, env)
	require.Equal(t, contracts.StatusPaymentFailed, result.Status)
	require.Equal(t, contracts.PathPaymentError, result.DecisionPath)
}

func TestOrderFulfillmentWorkflow_ShippingFailureStillCompletes(t *testing.T) {
	env := newEnv(t)

	env.OnActivity(activities.ValidateOrder, mock.Anything, mock.Anything).Return(&contracts.ValidateOrderResult{Valid: true}, nil)
	env.OnActivity(activities.FraudAssessment, mock.Anything, mock.Anything).Return(&contracts.FraudAssessmentResult{RiskScore: 10}, nil)
	env.OnActivity(activities.InventoryCheck, mock.Anything, mock.Anything).Return(&contracts.InventoryCheckResult{AllAvailable: true}, nil)
	env.OnActivity(activities.ProcessPayment, mock.Anything, mock.Anything).Return(&contracts.PaymentResult{Success: true, TransactionID: "txn-777"}, nil)
	env.OnActivity(activities.ReserveShipping, mock.Anything, mock.Anything).Return(nil, errors.New("carrier unavailable"))
	env.OnActivity(activities.SendConfirmation, mock.Anything, mock.Anything).Return(nil)
	env.OnActivity(activities.RecordOrderMetrics, mock.Anything, mock.Anything).Return(nil)

	env.ExecuteWorkflow(workflows.OrderFulfillmentWorkflow, validOrder("t-ship-fail"))

	result := getResult(t, env)
	require.Equal(t, contracts.StatusCompleted, result.Status)
	require.Equal(t, contracts.PathAutoApproved, result.DecisionPath)
}

func TestOrderFulfillmentWorkflow_MetricsFailureDoesNotChangeResult(t *testing.T) {
	env := newEnv(t)

	env.OnActivity(activities.ValidateOrder, mock.Anything, mock.Anything).Return(&contracts.ValidateOrderResult{Valid: true}, nil)
	env.OnActivity(activities.FraudAssessment, mock.Anything, mock.Anything).Return(&contracts.FraudAssessmentResult{RiskScore: 10}, nil)
	env.OnActivity(activities.InventoryCheck, mock.Anything, mock.Anything).Return(&contracts.InventoryCheckResult{AllAvailable: true}, nil)
	env.OnActivity(activities.ProcessPayment, mock.Anything, mock.Anything).Return(&contracts.PaymentResult{Success: true, TransactionID: "txn-888"}, nil)
	env.OnActivity(activities.ReserveShipping, mock.Anything, mock.Anything).Return(&contracts.ShippingResult{Reserved: true}, nil)
	env.OnActivity(activities.SendConfirmation, mock.Anything, mock.Anything).Return(nil)
	env.OnActivity(activities.RecordOrderMetrics, mock.Anything, mock.Anything).Return(errors.New("metrics sink down"))

	env.ExecuteWorkflow(workflows.OrderFulfillmentWorkflow, validOrder("t-metrics-fail"))

	result := getResult(t, env)
	require.Equal(t, contracts.StatusCompleted, result.Status)
	require.Equal(t, contracts.PathAutoApproved, result.DecisionPath)
}

func TestOrderFulfillmentWorkflow_DeterministicResult(t *testing.T) {
	run := func() workflows.OrderResult {
		env := newEnv(t)
		mockHappyPath(env, 42)
		env.ExecuteWorkflow(workflows.OrderFulfillmentWorkflow, validOrder("t-replay"))
		return getResult(t, env)
	}

	first := run()
	second := run()
	require.Equal(t, first, second)
}

func TestOrderFulfillmentWorkflow_StatusQuery(t *testing.T) {
	env := newEnv(t)
	mockHappyPath(env, 42)

	env.ExecuteWorkflow(workflows.OrderFulfillmentWorkflow, validOrder("t-query"))
	require.True(t, env.IsWorkflowCompleted())

	value, err := env.QueryWorkflow(workflows.OrderStatusQuery)
	require.NoError(t, err)

	var snapshot workflows.StatusSnapshot
	require.NoError(t, value.Get(&snapshot))
	require.Equal(t, "confirmation", snapshot.Stage)
	require.Equal(t, 42, snapshot.RiskScore)
}
