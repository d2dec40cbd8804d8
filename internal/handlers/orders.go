package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	enums "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"gorm.io/gorm"

	"github.com/base-14/order-fulfillment/internal/catalog"
	"github.com/base-14/order-fulfillment/internal/models"
	"github.com/base-14/order-fulfillment/internal/workflows"
)

// fallbackPrice is used when an item's price is not supplied and its SKU is
// not in the catalog, so ad hoc load-test orders still get a sane total.
const fallbackPrice = 10.00

type OrderHandler struct {
	db             *gorm.DB
	temporalClient client.Client
	catalog        *catalog.Cache
	taskQueue      string
}

func NewOrderHandler(db *gorm.DB, temporalClient client.Client, cat *catalog.Cache, taskQueue string) *OrderHandler {
	return &OrderHandler{
		db:             db,
		temporalClient: temporalClient,
		catalog:        cat,
		taskQueue:      taskQueue,
	}
}

type CreateOrderRequest struct {
	CustomerID    string            `json:"customer_id"`
	CustomerTier  string            `json:"customer_tier"`
	Items         []CreateOrderItem `json:"items"`
	PaymentMethod string            `json:"payment_method,omitempty"`
}

type CreateOrderItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price,omitempty"`
}

func (h *OrderHandler) Create(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.CustomerID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "customer_id is required")
	}
	if len(req.Items) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one item is required")
	}

	ctx := c.Request().Context()

	var totalAmount float64
	orderItems := make([]models.OrderItem, 0, len(req.Items))
	workflowItems := make([]workflows.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		price := item.Price
		if price == 0 {
			if product, err := h.catalog.Lookup(ctx, item.ProductID); err == nil {
				price = product.Price
			} else {
				price = fallbackPrice
			}
		}
		totalAmount += price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     price,
		})
		workflowItems = append(workflowItems, workflows.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     price,
		})
	}

	// The payment worker declines everything for this customer id; the
	// payment_method hook lets callers trigger that path deliberately.
	customerID := req.CustomerID
	if req.PaymentMethod == "test_decline" {
		customerID = "test_decline"
	}

	order := models.Order{
		CustomerID:   req.CustomerID,
		CustomerTier: req.CustomerTier,
		Status:       models.OrderStatusPending,
		TotalAmount:  totalAmount,
		Items:        orderItems,
	}

	if order.CustomerTier == "" {
		order.CustomerTier = "standard"
	}

	if err := h.db.WithContext(ctx).Create(&order).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create order")
	}

	workflowID := fmt.Sprintf("order-%s", order.ID.String())
	workflowInput := workflows.OrderInput{
		OrderID:      order.ID.String(),
		CustomerID:   customerID,
		CustomerTier: order.CustomerTier,
		TotalAmount:  totalAmount,
		Items:        workflowItems,
	}

	workflowOptions := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: h.taskQueue,
	}

	_, err := h.temporalClient.ExecuteWorkflow(ctx, workflowOptions, workflows.OrderFulfillmentWorkflow, workflowInput)
	if err != nil {
		order.Status = models.OrderStatusCancelled
		h.db.WithContext(ctx).Save(&order)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to start workflow: "+err.Error())
	}

	order.WorkflowID = workflowID
	order.Status = models.OrderStatusProcessing
	h.db.WithContext(ctx).Save(&order)

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"order":       order,
		"workflow_id": workflowID,
	})
}

func (h *OrderHandler) List(c echo.Context) error {
	var orders []models.Order
	if err := h.db.WithContext(c.Request().Context()).Preload("Items").Find(&orders).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch orders")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
	})
}

func (h *OrderHandler) Get(c echo.Context) error {
	id := c.Param("id")
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	ctx := c.Request().Context()

	var order models.Order
	if err := h.db.WithContext(ctx).Preload("Items").Where("id = ?", parsedID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch order")
	}

	// Orders stuck in processing may have closed since the last read; pull
	// the workflow result forward onto the row when that happened.
	if order.Status == models.OrderStatusProcessing && order.WorkflowID != "" {
		h.reconcile(c, &order)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"order": order,
	})
}

// reconcile checks whether the order's workflow has closed and, if so,
// persists its terminal status, decision path, and risk score. Failures here
// are swallowed: the stored row is still a valid answer.
func (h *OrderHandler) reconcile(c echo.Context, order *models.Order) {
	ctx := c.Request().Context()

	desc, err := h.temporalClient.DescribeWorkflowExecution(ctx, order.WorkflowID, "")
	if err != nil {
		return
	}
	if desc.GetWorkflowExecutionInfo().GetStatus() == enums.WORKFLOW_EXECUTION_STATUS_RUNNING {
		return
	}

	var result workflows.OrderResult
	if err := h.temporalClient.GetWorkflow(ctx, order.WorkflowID, "").Get(ctx, &result); err != nil {
		return
	}

	order.Status = models.OrderStatus(result.Status)
	order.DecisionPath = string(result.DecisionPath)
	order.RiskScore = result.RiskScore
	h.db.WithContext(ctx).Save(order)
}

type ReviewRequest struct {
	Decision string `json:"decision"`
}

// Review delivers a manual-review decision to the order's workflow. The
// workflow treats any value other than "approved" as a rejection.
func (h *OrderHandler) Review(c echo.Context) error {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Decision == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "decision is required")
	}

	workflowID := fmt.Sprintf("order-%s", id)
	if err := h.temporalClient.SignalWorkflow(c.Request().Context(), workflowID, "", workflows.ManualReviewSignal, req.Decision); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to signal workflow: "+err.Error())
	}

	return c.JSON(http.StatusAccepted, map[string]interface{}{
		"order_id": id,
		"decision": req.Decision,
	})
}

// Status queries the live workflow for its current stage and risk score.
func (h *OrderHandler) Status(c echo.Context) error {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	workflowID := fmt.Sprintf("order-%s", id)
	resp, err := h.temporalClient.QueryWorkflow(c.Request().Context(), workflowID, "", workflows.OrderStatusQuery)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "workflow not found or not queryable")
	}

	var snapshot workflows.StatusSnapshot
	if err := resp.Get(&snapshot); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to decode workflow status")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"order_id": id,
		"status":   snapshot,
	})
}
