package orders

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/silverempire/commerce-backend/pkg/db/models"
	"github.com/silverempire/commerce-backend/pkg/pagination"
)

// ListFilter scopes the order listing. A nil CustomerID lists across all
// customers (back-office view); a set CustomerID restricts to that customer.
type ListFilter struct {
	CustomerID *int64
	Status     string
	Page       pagination.Params
}

// Repository exposes the order persistence surface.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) error
	FindOrderByID(ctx context.Context, id int64) (*models.Order, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]models.Order, error)
	UpdateOrder(ctx context.Context, order *models.Order) error
	FindCustomerByID(ctx context.Context, id int64) (*models.Customer, error)
}

// CreateOrderItemInput is one requested line. At least one of ProductID and
// VariationID must be set; with both, the variation must belong to the product.
type CreateOrderItemInput struct {
	ProductID   *int64 `json:"product_id" validate:"omitempty,gt=0"`
	VariationID *int64 `json:"variation_id" validate:"omitempty,gt=0"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderInput is the full order request. Unit prices are never accepted
// from the client; the service resolves them from the catalog.
type CreateOrderInput struct {
	CustomerID *int64 `json:"customer_id" validate:"omitempty,gt=0"`

	ShippingAddress    *string `json:"shipping_address"`
	ShippingCity       *string `json:"shipping_city"`
	ShippingPostalCode *string `json:"shipping_postal_code"`
	ShippingCountry    *string `json:"shipping_country"`

	ShippingCost decimal.Decimal        `json:"shipping_cost"`
	Items        []CreateOrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// Service assembles and reads orders.
type Service interface {
	// Create validates the request, resolves unit prices from the catalog,
	// computes the total and persists the order with all items atomically.
	Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error)

	GetByID(ctx context.Context, id int64, customerID *int64) (*OrderDTO, error)
	List(ctx context.Context, filter ListFilter) ([]OrderDTO, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*OrderDTO, error)
	SoftDelete(ctx context.Context, id int64) error
}
