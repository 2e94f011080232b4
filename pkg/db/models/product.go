package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable catalog entry. Pricing fields are stored as exact
// decimals; current price, sale state and stock are derived on read.
type Product struct {
	ID               int64            `gorm:"column:id;primaryKey;autoIncrement"`
	Name             string           `gorm:"column:name;not null"`
	Description      *string          `gorm:"column:description"`
	ShortDescription *string          `gorm:"column:short_description"`
	SKU              string           `gorm:"column:sku;not null;uniqueIndex"`
	CategoryID       *int64           `gorm:"column:category_id"`
	Category         *Category        `gorm:"foreignKey:CategoryID"`
	IsActive         bool             `gorm:"column:is_active;not null;default:true"`
	IsFeatured       bool             `gorm:"column:is_featured;not null;default:false"`
	IsDeleted        bool             `gorm:"column:is_deleted;not null;default:false"`
	BasePrice        decimal.Decimal  `gorm:"column:base_price;type:numeric(10,2);not null;default:0"`
	SalePrice        *decimal.Decimal `gorm:"column:sale_price;type:numeric(10,2)"`

	TrackInventory    bool `gorm:"column:track_inventory;not null;default:true"`
	StockQuantity     int  `gorm:"column:stock_quantity;not null;default:0"`
	LowStockThreshold int  `gorm:"column:low_stock_threshold;not null;default:5"`

	Variations []ProductVariation `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt *time.Time `gorm:"column:deleted_at"`
}

func (Product) TableName() string {
	return "products"
}

// CurrentPrice returns the sale price when one is set, otherwise the base price.
func (p Product) CurrentPrice() decimal.Decimal {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.BasePrice
}

// IsOnSale reports whether the sale price actually undercuts the base price.
// The comparison is exact decimal comparison, never floating point.
func (p Product) IsOnSale() bool {
	return p.SalePrice != nil && p.SalePrice.LessThan(p.BasePrice)
}

// TotalStock sums own stock plus active, non-deleted variation stock. The
// second return is false when inventory is untracked (stock is unbounded).
func (p Product) TotalStock() (int, bool) {
	if !p.TrackInventory {
		return 0, false
	}
	total := p.StockQuantity
	for _, v := range p.Variations {
		if v.IsActive && !v.IsDeleted {
			total += v.StockQuantity
		}
	}
	return total, true
}

// IsInStock reports availability; untracked inventory is always in stock.
func (p Product) IsInStock() bool {
	total, tracked := p.TotalStock()
	if !tracked {
		return true
	}
	return total > 0
}

// IsLowStock reports whether tracked stock has fallen to the threshold.
func (p Product) IsLowStock() bool {
	total, tracked := p.TotalStock()
	if !tracked {
		return false
	}
	return total <= p.LowStockThreshold
}
