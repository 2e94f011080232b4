package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. Order creation only uses pending; the remaining values
// exist for the fulfillment surface and are not a state machine here.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order is created atomically with all of its items. TotalAmount is always
// computed server-side: round2(sum of rounded line amounts) + round2(shipping).
type Order struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID  *int64    `gorm:"column:customer_id"`
	Customer    *Customer `gorm:"foreignKey:CustomerID"`
	Status      string    `gorm:"column:status;not null;default:'pending'"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2);not null;default:0"`

	ShippingAddress    *string         `gorm:"column:shipping_address"`
	ShippingCity       *string         `gorm:"column:shipping_city"`
	ShippingPostalCode *string         `gorm:"column:shipping_postal_code"`
	ShippingCountry    *string         `gorm:"column:shipping_country"`
	ShippingCost       decimal.Decimal `gorm:"column:shipping_cost;type:numeric(10,2);not null;default:0"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	IsDeleted bool       `gorm:"column:is_deleted;not null;default:false"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt *time.Time `gorm:"column:deleted_at"`
}

func (Order) TableName() string {
	return "orders"
}

// Number renders the customer-facing order number, e.g. ORD123.
func (o Order) Number() string {
	return fmt.Sprintf("ORD%d", o.ID)
}
