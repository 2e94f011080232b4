package categories

import (
	"context"

	"gorm.io/gorm"

	"github.com/silverempire/commerce-backend/internal/repo"
	"github.com/silverempire/commerce-backend/pkg/db/models"
)

// Repository exposes the persistence surface for the category tree.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id int64) (*models.Category, error)
	FindAll(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
}

type repository struct {
	repo.Base
}

// NewRepository builds a categories repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	if err := r.DB(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindAll loads the whole tree in one query. Traversals run over this
// snapshot so a single request never observes two different parent states.
func (r *repository) FindAll(ctx context.Context) ([]models.Category, error) {
	var nodes []models.Category
	if err := r.DB(ctx).
		Order("sort_order ASC, name ASC").
		Find(&nodes).Error; err != nil {
		return nil, err
	}
	return nodes, nil
}

func (r *repository) Create(ctx context.Context, category *models.Category) error {
	return r.DB(ctx).Create(category).Error
}

func (r *repository) Update(ctx context.Context, category *models.Category) error {
	return r.DB(ctx).Save(category).Error
}
