package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductVariation is a concrete purchasable variant of a product, e.g.
// "Silver Ring - Size 7". Its price overrides the owning product's price.
type ProductVariation struct {
	ID        int64            `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID int64            `gorm:"column:product_id;not null"`
	Product   *Product         `gorm:"foreignKey:ProductID"`
	Name      string           `gorm:"column:name;not null"`
	SKU       string           `gorm:"column:sku;not null;uniqueIndex"`
	Price     decimal.Decimal  `gorm:"column:price;type:numeric(10,2);not null"`
	SalePrice *decimal.Decimal `gorm:"column:sale_price;type:numeric(10,2)"`

	StockQuantity int  `gorm:"column:stock_quantity;not null;default:0"`
	IsActive      bool `gorm:"column:is_active;not null;default:true"`
	IsDeleted     bool `gorm:"column:is_deleted;not null;default:false"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt *time.Time `gorm:"column:deleted_at"`
}

func (ProductVariation) TableName() string {
	return "product_variations"
}

// CurrentPrice returns the sale price when one is set, otherwise the own price.
func (v ProductVariation) CurrentPrice() decimal.Decimal {
	if v.SalePrice != nil {
		return *v.SalePrice
	}
	return v.Price
}

// IsOnSale reports whether the sale price undercuts the variation price.
func (v ProductVariation) IsOnSale() bool {
	return v.SalePrice != nil && v.SalePrice.LessThan(v.Price)
}

// IsInStock reports whether the variation has units available.
func (v ProductVariation) IsInStock() bool {
	return v.StockQuantity > 0
}
