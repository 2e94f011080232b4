package orders

import (
	"time"

	"github.com/silverempire/commerce-backend/pkg/db/models"
)

// OrderDTO is the order projection. Money renders as fixed two-digit strings;
// the number field carries the customer-facing ORD-prefixed identifier.
type OrderDTO struct {
	ID         int64  `json:"id"`
	Number     string `json:"number"`
	Status     string `json:"status"`
	CustomerID *int64 `json:"customer_id,omitempty"`

	ShippingAddress    *string `json:"shipping_address,omitempty"`
	ShippingCity       *string `json:"shipping_city,omitempty"`
	ShippingPostalCode *string `json:"shipping_postal_code,omitempty"`
	ShippingCountry    *string `json:"shipping_country,omitempty"`

	ShippingCost string `json:"shipping_cost"`
	TotalAmount  string `json:"total_amount"`
	TotalItems   int    `json:"total_items"`

	Items []OrderItemDTO `json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItemDTO is one purchased line with its price snapshot.
type OrderItemDTO struct {
	ID            int64   `json:"id"`
	ProductID     *int64  `json:"product_id,omitempty"`
	ProductName   *string `json:"product_name,omitempty"`
	VariationID   *int64  `json:"variation_id,omitempty"`
	VariationName *string `json:"variation_name,omitempty"`
	Quantity      int     `json:"quantity"`
	UnitPrice     string  `json:"unit_price"`
	LineTotal     string  `json:"line_total"`
}

func toOrderDTO(o models.Order) OrderDTO {
	dto := OrderDTO{
		ID:                 o.ID,
		Number:             o.Number(),
		Status:             o.Status,
		CustomerID:         o.CustomerID,
		ShippingAddress:    o.ShippingAddress,
		ShippingCity:       o.ShippingCity,
		ShippingPostalCode: o.ShippingPostalCode,
		ShippingCountry:    o.ShippingCountry,
		ShippingCost:       o.ShippingCost.StringFixed(2),
		TotalAmount:        o.TotalAmount.StringFixed(2),
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
	for _, item := range o.Items {
		dto.Items = append(dto.Items, toOrderItemDTO(item))
		dto.TotalItems += item.Quantity
	}
	return dto
}

func toOrderItemDTO(i models.OrderItem) OrderItemDTO {
	dto := OrderItemDTO{
		ID:          i.ID,
		ProductID:   i.ProductID,
		VariationID: i.VariationID,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice.StringFixed(2),
		LineTotal:   i.LineTotal().StringFixed(2),
	}
	if i.Product != nil {
		dto.ProductName = &i.Product.Name
	}
	if i.Variation != nil {
		dto.VariationName = &i.Variation.Name
	}
	return dto
}
