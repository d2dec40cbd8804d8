package activities

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/activity"
)

var (
	paymentMeter         = otel.Meter("payment-processing")
	paymentAttemptsCount metric.Int64Counter
	paymentFailuresCount metric.Int64Counter
	paymentSuccessCount  metric.Int64Counter
	paymentAmountTotal   metric.Float64Counter
)

func init() {
	var err error

	paymentAttemptsCount, err = paymentMeter.Int64Counter("payment.attempts",
		metric.WithDescription("Total payment attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		panic(err)
	}

	paymentFailuresCount, err = paymentMeter.Int64Counter("payment.failures",
		metric.WithDescription("Payment failures"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		panic(err)
	}

	paymentSuccessCount, err = paymentMeter.Int64Counter("payment.successes",
		metric.WithDescription("Successful payments"),
		metric.WithUnit("{success}"),
	)
	if err != nil {
		panic(err)
	}

	paymentAmountTotal, err = paymentMeter.Float64Counter("payment.amount.total",
		metric.WithDescription("Total payment amount processed"),
		metric.WithUnit("{USD}"),
	)
	if err != nil {
		panic(err)
	}
}

// ProcessPayment charges the customer. A decline is a business outcome
// returned in the result; only infrastructure problems surface as errors.
// The "test_decline" customer id always declines, for exercising that path.
func ProcessPayment(ctx context.Context, input PaymentInput) (*PaymentResult, error) {
	info := activity.GetInfo(ctx)

	ctx, span := otel.Tracer("activities").Start(ctx, "process_payment",
		trace.WithAttributes(
			attribute.String("order.id", input.OrderID),
			attribute.String("customer.id", input.CustomerID),
			attribute.Float64("payment.amount", input.Amount),
			attribute.String("temporal.activity_id", info.ActivityID),
			attribute.String("temporal.workflow_id", info.WorkflowExecution.ID),
		),
	)
	defer span.End()

	traceID := span.SpanContext().TraceID().String()

	// NOTE: order_id, workflow_id, and trace_id as metric attributes are
	// high-cardinality. In production prefer status/payment_method and keep
	// these IDs in traces and logs.
	commonAttrs := metric.WithAttributes(
		attribute.String("order_id", input.OrderID),
		attribute.String("workflow_id", info.WorkflowExecution.ID),
		attribute.String("trace_id", traceID),
	)

	paymentAttemptsCount.Add(ctx, 1, commonAttrs)

	if input.CustomerID == "test_decline" {
		span.SetStatus(codes.Error, "payment declined")
		span.SetAttributes(
			attribute.Bool("payment.success", false),
			attribute.String("payment.decline_reason", "test_decline"),
		)
		span.RecordError(fmt.Errorf("payment declined: test decline scenario"))

		paymentFailuresCount.Add(ctx, 1,
			metric.WithAttributes(
				attribute.String("order_id", input.OrderID),
				attribute.String("workflow_id", info.WorkflowExecution.ID),
				attribute.String("trace_id", traceID),
				attribute.String("decline_reason", "test_decline"),
				attribute.Float64("amount", input.Amount),
			),
		)

		slog.ErrorContext(ctx, "payment declined",
			slog.String("order_id", input.OrderID),
			slog.String("customer_id", input.CustomerID),
			slog.Float64("amount", input.Amount),
			slog.String("decline_reason", "test_decline"),
			slog.String("workflow_id", info.WorkflowExecution.ID),
			slog.String("trace_id", traceID),
		)

		return &PaymentResult{
			Success: false,
			Reason:  "Payment declined: test decline scenario",
		}, nil
	}

	transactionID := fmt.Sprintf("txn-%s", uuid.New().String()[:8])

	span.SetStatus(codes.Ok, "payment successful")
	span.SetAttributes(
		attribute.Bool("payment.success", true),
		attribute.String("payment.transaction_id", transactionID),
	)

	paymentSuccessCount.Add(ctx, 1, commonAttrs)
	paymentAmountTotal.Add(ctx, input.Amount, commonAttrs)

	slog.InfoContext(ctx, "payment processed successfully",
		slog.String("order_id", input.OrderID),
		slog.String("customer_id", input.CustomerID),
		slog.Float64("amount", input.Amount),
		slog.String("transaction_id", transactionID),
		slog.String("workflow_id", info.WorkflowExecution.ID),
		slog.String("trace_id", traceID),
	)

	return &PaymentResult{
		Success:       true,
		TransactionID: transactionID,
	}, nil
}
