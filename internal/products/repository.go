package products

import (
	"context"

	"gorm.io/gorm"

	"github.com/silverempire/commerce-backend/internal/repo"
	"github.com/silverempire/commerce-backend/pkg/db/models"
	"github.com/silverempire/commerce-backend/pkg/pagination"
)

// ListQuery filters the product listing. Activity and deletion are explicit
// predicates supplied by the caller; the repository applies no hidden filter.
type ListQuery struct {
	CategoryIDs    []int64
	FeaturedOnly   bool
	ActiveOnly     bool
	IncludeDeleted bool
	Search         string
	Page           pagination.Params
}

// Repository exposes the catalog persistence surface.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindProductByID(ctx context.Context, id int64) (*models.Product, error)
	FindVariationByID(ctx context.Context, id int64) (*models.ProductVariation, error)
	ListProducts(ctx context.Context, query ListQuery) ([]models.Product, error)
	ListVariations(ctx context.Context, productID int64) ([]models.ProductVariation, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	UpdateVariation(ctx context.Context, variation *models.ProductVariation) error
}

type repository struct {
	repo.Base
}

// NewRepository builds a products repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

func (r *repository) FindProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.DB(ctx).
		Preload("Variations").
		Preload("Category").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) FindVariationByID(ctx context.Context, id int64) (*models.ProductVariation, error) {
	var variation models.ProductVariation
	err := r.DB(ctx).
		Preload("Product").
		Where("id = ?", id).
		First(&variation).Error
	if err != nil {
		return nil, err
	}
	return &variation, nil
}

func (r *repository) ListProducts(ctx context.Context, query ListQuery) ([]models.Product, error) {
	page := pagination.Normalize(query.Page)

	q := r.DB(ctx).
		Preload("Variations").
		Preload("Category")

	if !query.IncludeDeleted {
		q = q.Where("is_deleted = ?", false)
	}
	if query.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if query.FeaturedOnly {
		q = q.Where("is_featured = ?", true)
	}
	if len(query.CategoryIDs) > 0 {
		q = q.Where("category_id IN ?", query.CategoryIDs)
	}
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		q = q.Where("name LIKE ? OR sku LIKE ?", pattern, pattern)
	}

	var out []models.Product
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

func (r *repository) ListVariations(ctx context.Context, productID int64) ([]models.ProductVariation, error) {
	var out []models.ProductVariation
	err := r.DB(ctx).
		Where("product_id = ?", productID).
		Order("name ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.DB(ctx).Create(product).Error
}

func (r *repository) UpdateProduct(ctx context.Context, product *models.Product) error {
	return r.DB(ctx).Save(product).Error
}

func (r *repository) UpdateVariation(ctx context.Context, variation *models.ProductVariation) error {
	return r.DB(ctx).Save(variation).Error
}
