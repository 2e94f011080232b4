package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/silverempire/commerce-backend/internal/repo"
	"github.com/silverempire/commerce-backend/pkg/db/models"
	"github.com/silverempire/commerce-backend/pkg/pagination"
)

type repository struct {
	repo.Base
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

// CreateOrder inserts the order row and its items in one Create call; gorm
// cascades the association so item rows carry the new order id.
func (r *repository) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB(ctx).Create(order).Error
}

func (r *repository) FindOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := r.DB(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Variation").
		Preload("Customer").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListOrders(ctx context.Context, filter ListFilter) ([]models.Order, error) {
	page := pagination.Normalize(filter.Page)

	q := r.DB(ctx).
		Preload("Items").
		Where("is_deleted = ?", false)

	if filter.CustomerID != nil {
		q = q.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var out []models.Order
	err := q.
		Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) UpdateOrder(ctx context.Context, order *models.Order) error {
	return r.DB(ctx).Omit("Items", "Customer").Save(order).Error
}

func (r *repository) FindCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	err := r.DB(ctx).
		Where("id = ?", id).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}
