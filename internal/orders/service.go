package orders

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/silverempire/commerce-backend/internal/products"
	"github.com/silverempire/commerce-backend/pkg/config"
	"github.com/silverempire/commerce-backend/pkg/db/models"
	pkgerrors "github.com/silverempire/commerce-backend/pkg/errors"
	"github.com/silverempire/commerce-backend/pkg/metrics"
	"github.com/silverempire/commerce-backend/pkg/money"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Rejection reasons reported to the orders_rejected_total metric.
const (
	rejectEmptyItems       = "empty_items"
	rejectTooManyItems     = "too_many_items"
	rejectInvalidQuantity  = "invalid_quantity"
	rejectNoPricingRef     = "missing_pricing_reference"
	rejectMismatch         = "variation_product_mismatch"
	rejectUnknownProduct   = "unknown_product"
	rejectUnknownVariation = "unknown_variation"
	rejectUnknownCustomer  = "unknown_customer"
	rejectNegativeShipping = "negative_shipping"
	rejectDependency       = "dependency"
)

var validStatuses = map[string]struct{}{
	models.OrderStatusPending:   {},
	models.OrderStatusPaid:      {},
	models.OrderStatusShipped:   {},
	models.OrderStatusDelivered: {},
	models.OrderStatusCancelled: {},
}

type service struct {
	repo     Repository
	catalog  products.Repository
	tx       txRunner
	cfg      config.OrdersConfig
	measures *metrics.APIMetrics
}

// NewService builds an order service. The metrics handle may be nil; recording
// is skipped in that case.
func NewService(repo Repository, catalog products.Repository, tx txRunner, cfg config.OrdersConfig, measures *metrics.APIMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if cfg.MaxLineItems <= 0 {
		cfg.MaxLineItems = 100
	}
	return &service{repo: repo, catalog: catalog, tx: tx, cfg: cfg, measures: measures}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	var created *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		catalog := s.catalog.WithTx(tx)

		if input.CustomerID != nil {
			if _, err := repo.FindCustomerByID(ctx, *input.CustomerID); err != nil {
				if err == gorm.ErrRecordNotFound {
					return s.reject(rejectUnknownCustomer, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found"))
				}
				return s.reject(rejectDependency, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer"))
			}
		}

		items := make([]models.OrderItem, 0, len(input.Items))
		lineAmounts := make([]decimal.Decimal, 0, len(input.Items))
		for _, line := range input.Items {
			item, err := s.assembleItem(ctx, catalog, line)
			if err != nil {
				return err
			}
			items = append(items, *item)
			lineAmounts = append(lineAmounts, item.LineTotal())
		}

		order := &models.Order{
			CustomerID:         input.CustomerID,
			Status:             models.OrderStatusPending,
			TotalAmount:        money.OrderTotal(lineAmounts, input.ShippingCost),
			ShippingAddress:    input.ShippingAddress,
			ShippingCity:       input.ShippingCity,
			ShippingPostalCode: input.ShippingPostalCode,
			ShippingCountry:    input.ShippingCountry,
			ShippingCost:       money.Round2(input.ShippingCost),
			Items:              items,
		}
		if err := repo.CreateOrder(ctx, order); err != nil {
			return s.reject(rejectDependency, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order"))
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.measures.IncOrderCreated()
	dto := toOrderDTO(*created)
	return &dto, nil
}

// validateInput covers everything checkable without touching the catalog.
func (s *service) validateInput(input CreateOrderInput) error {
	if len(input.Items) == 0 {
		return s.reject(rejectEmptyItems, pkgerrors.New(pkgerrors.CodeValidation, "order requires at least one item"))
	}
	if len(input.Items) > s.cfg.MaxLineItems {
		return s.reject(rejectTooManyItems, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("order exceeds the %d line item limit", s.cfg.MaxLineItems)))
	}
	if input.ShippingCost.IsNegative() {
		return s.reject(rejectNegativeShipping, pkgerrors.New(pkgerrors.CodeValidation, "shipping cost cannot be negative"))
	}
	for i, line := range input.Items {
		if line.Quantity <= 0 {
			return s.reject(rejectInvalidQuantity, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("item %d: quantity must be positive", i)))
		}
		if line.ProductID == nil && line.VariationID == nil {
			return s.reject(rejectNoPricingRef, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("item %d: product or variation required", i)))
		}
	}
	return nil
}

// assembleItem resolves the catalog rows for one line and snapshots the unit
// price. Variation pricing wins when a variation is referenced.
func (s *service) assembleItem(ctx context.Context, catalog products.Repository, line CreateOrderItemInput) (*models.OrderItem, error) {
	item := &models.OrderItem{
		ProductID:   line.ProductID,
		VariationID: line.VariationID,
		Quantity:    line.Quantity,
	}

	var (
		product   *models.Product
		variation *models.ProductVariation
		err       error
	)

	if line.VariationID != nil {
		variation, err = catalog.FindVariationByID(ctx, *line.VariationID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, s.reject(rejectUnknownVariation, pkgerrors.New(pkgerrors.CodeNotFound, "variation not found"))
			}
			return nil, s.reject(rejectDependency, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variation"))
		}
		if variation.IsDeleted || !variation.IsActive {
			return nil, s.reject(rejectUnknownVariation, pkgerrors.New(pkgerrors.CodeNotFound, "variation not found"))
		}
		if line.ProductID != nil && variation.ProductID != *line.ProductID {
			return nil, s.reject(rejectMismatch, pkgerrors.New(pkgerrors.CodeValidation,
				"variation does not belong to the referenced product"))
		}
		owner := variation.ProductID
		item.ProductID = &owner
	}

	if variation == nil {
		product, err = catalog.FindProductByID(ctx, *line.ProductID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, s.reject(rejectUnknownProduct, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			}
			return nil, s.reject(rejectDependency, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product"))
		}
		if product.IsDeleted || !product.IsActive {
			return nil, s.reject(rejectUnknownProduct, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
		}
	}

	unitPrice, err := products.ResolveUnitPrice(product, variation)
	if err != nil {
		return nil, s.reject(rejectNoPricingRef, err)
	}
	item.UnitPrice = money.Round2(unitPrice)
	return item, nil
}

func (s *service) GetByID(ctx context.Context, id int64, customerID *int64) (*OrderDTO, error) {
	order, err := s.loadVisible(ctx, id)
	if err != nil {
		return nil, err
	}
	if customerID != nil {
		if order.CustomerID == nil || *order.CustomerID != *customerID {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
	}
	dto := toOrderDTO(*order)
	return &dto, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]OrderDTO, error) {
	rows, err := s.repo.ListOrders(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	out := make([]OrderDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toOrderDTO(row))
	}
	return out, nil
}

func (s *service) UpdateStatus(ctx context.Context, id int64, status string) (*OrderDTO, error) {
	if _, ok := validStatuses[status]; !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", status))
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := s.loadVisibleWith(ctx, repo, id)
		if err != nil {
			return err
		}
		order.Status = status
		if err := repo.UpdateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	dto := toOrderDTO(*updated)
	return &dto, nil
}

func (s *service) SoftDelete(ctx context.Context, id int64) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := s.loadVisibleWith(ctx, repo, id)
		if err != nil {
			return err
		}
		order.IsDeleted = true
		if err := repo.UpdateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "soft delete order")
		}
		return nil
	})
}

func (s *service) loadVisible(ctx context.Context, id int64) (*models.Order, error) {
	return s.loadVisibleWith(ctx, s.repo, id)
}

func (s *service) loadVisibleWith(ctx context.Context, repo Repository, id int64) (*models.Order, error) {
	order, err := repo.FindOrderByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.IsDeleted {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

// reject records the rejection metric and passes the error through unchanged.
func (s *service) reject(reason string, err error) error {
	s.measures.IncOrderRejected(reason)
	return err
}
