package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem snapshots one purchased line. UnitPrice is fixed at creation time;
// later catalog price changes never touch existing orders.
type OrderItem struct {
	ID          int64             `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID     int64             `gorm:"column:order_id;not null"`
	ProductID   *int64            `gorm:"column:product_id"`
	Product     *Product          `gorm:"foreignKey:ProductID"`
	VariationID *int64            `gorm:"column:variation_id"`
	Variation   *ProductVariation `gorm:"foreignKey:VariationID"`
	Quantity    int               `gorm:"column:quantity;not null;default:1"`
	UnitPrice   decimal.Decimal   `gorm:"column:unit_price;type:numeric(10,2);not null;default:0"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal is the extended amount for this line.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
