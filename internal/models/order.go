package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus tracks the persisted lifecycle of an order row. The pending and
// processing values are API-side states; the rest mirror the workflow's
// terminal statuses once the run closes.
type OrderStatus string

const (
	OrderStatusPending          OrderStatus = "pending"
	OrderStatusProcessing       OrderStatus = "processing"
	OrderStatusCompleted        OrderStatus = "completed"
	OrderStatusApproved         OrderStatus = "approved"
	OrderStatusRejected         OrderStatus = "rejected"
	OrderStatusInvalid          OrderStatus = "invalid"
	OrderStatusValidationFailed OrderStatus = "validation_failed"
	OrderStatusFraudCheckFailed OrderStatus = "fraud_check_failed"
	OrderStatusInventoryFailed  OrderStatus = "inventory_check_failed"
	OrderStatusPaymentFailed    OrderStatus = "payment_failed"
	OrderStatusBackordered      OrderStatus = "backordered"
	OrderStatusCancelled        OrderStatus = "cancelled"
)

type Order struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID   string      `gorm:"not null;index" json:"customer_id"`
	CustomerTier string      `gorm:"default:'standard'" json:"customer_tier"`
	Status       OrderStatus `gorm:"type:varchar(50);default:'pending';index" json:"status"`
	TotalAmount  float64     `gorm:"not null" json:"total_amount"`
	RiskScore    int         `gorm:"default:0" json:"risk_score"`
	DecisionPath string      `gorm:"type:varchar(50)" json:"decision_path,omitempty"`
	WorkflowID   string      `gorm:"index" json:"workflow_id,omitempty"`
	Items        []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID string    `gorm:"not null" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}
