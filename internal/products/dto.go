package products

import (
	"time"

	"github.com/silverempire/commerce-backend/pkg/db/models"
)

// ProductDTO is the catalog projection with all server-computed price and
// stock fields rendered. Money renders as fixed two-digit strings.
type ProductDTO struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Description      *string `json:"description,omitempty"`
	ShortDescription *string `json:"short_description,omitempty"`
	SKU              string  `json:"sku"`
	CategoryID       *int64  `json:"category_id,omitempty"`
	CategoryName     *string `json:"category_name,omitempty"`
	IsActive         bool    `json:"is_active"`
	IsFeatured       bool    `json:"is_featured"`

	BasePrice          string  `json:"base_price"`
	SalePrice          *string `json:"sale_price,omitempty"`
	CurrentPrice       string  `json:"current_price"`
	IsOnSale           bool    `json:"is_on_sale"`
	DiscountPercentage string  `json:"discount_percentage"`

	TrackInventory bool `json:"track_inventory"`
	TotalStock     *int `json:"total_stock,omitempty"`
	IsInStock      bool `json:"is_in_stock"`
	IsLowStock     bool `json:"is_low_stock"`

	Variations []VariationDTO `json:"variations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VariationDTO is the purchasable-variant projection.
type VariationDTO struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`

	Price              string  `json:"price"`
	SalePrice          *string `json:"sale_price,omitempty"`
	CurrentPrice       string  `json:"current_price"`
	IsOnSale           bool    `json:"is_on_sale"`
	DiscountPercentage string  `json:"discount_percentage"`

	StockQuantity int  `json:"stock_quantity"`
	IsActive      bool `json:"is_active"`
	IsInStock     bool `json:"is_in_stock"`
}

func toProductDTO(p models.Product, withVariations bool) ProductDTO {
	dto := ProductDTO{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		ShortDescription:   p.ShortDescription,
		SKU:                p.SKU,
		CategoryID:         p.CategoryID,
		IsActive:           p.IsActive,
		IsFeatured:         p.IsFeatured,
		BasePrice:          p.BasePrice.StringFixed(2),
		CurrentPrice:       p.CurrentPrice().StringFixed(2),
		IsOnSale:           p.IsOnSale(),
		DiscountPercentage: ProductDiscountPercent(p).StringFixed(2),
		TrackInventory:     p.TrackInventory,
		IsInStock:          p.IsInStock(),
		IsLowStock:         p.IsLowStock(),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
	if p.SalePrice != nil {
		s := p.SalePrice.StringFixed(2)
		dto.SalePrice = &s
	}
	if p.Category != nil {
		dto.CategoryName = &p.Category.Name
	}
	if total, tracked := p.TotalStock(); tracked {
		dto.TotalStock = &total
	}
	if withVariations {
		for _, v := range p.Variations {
			if v.IsDeleted {
				continue
			}
			dto.Variations = append(dto.Variations, toVariationDTO(v))
		}
	}
	return dto
}

func toVariationDTO(v models.ProductVariation) VariationDTO {
	dto := VariationDTO{
		ID:                 v.ID,
		ProductID:          v.ProductID,
		Name:               v.Name,
		SKU:                v.SKU,
		Price:              v.Price.StringFixed(2),
		CurrentPrice:       v.CurrentPrice().StringFixed(2),
		IsOnSale:           v.IsOnSale(),
		DiscountPercentage: VariationDiscountPercent(v).StringFixed(2),
		StockQuantity:      v.StockQuantity,
		IsActive:           v.IsActive,
		IsInStock:          v.IsInStock(),
	}
	if v.SalePrice != nil {
		s := v.SalePrice.StringFixed(2)
		dto.SalePrice = &s
	}
	return dto
}
