package products

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pkgerrors "github.com/silverempire/commerce-backend/pkg/errors"
	"github.com/silverempire/commerce-backend/pkg/money"
	"github.com/silverempire/commerce-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// categoryTree is the slice of the category service the catalog needs for
// category-and-below filtering.
type categoryTree interface {
	DescendantIDs(ctx context.Context, id int64) ([]int64, error)
}

// ListParams filters the catalog listing. A category filter matches the
// category and its whole active subtree.
type ListParams struct {
	CategoryID      *int64
	FeaturedOnly    bool
	Search          string
	IncludeInactive bool
	Page            pagination.Params
}

// Service exposes catalog reads and soft-delete lifecycle transitions.
type Service interface {
	List(ctx context.Context, params ListParams) ([]ProductDTO, error)
	GetByID(ctx context.Context, id int64) (*ProductDTO, error)
	Variations(ctx context.Context, productID int64) ([]VariationDTO, error)
	GetVariation(ctx context.Context, id int64) (*VariationDTO, error)

	// CurrentPrice resolves the display price for a product or variation id.
	CurrentPrice(ctx context.Context, productID, variationID *int64) (decimal.Decimal, error)

	SoftDelete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
	tree categoryTree
	tx   txRunner
}

// NewService builds a catalog service with the required dependencies.
func NewService(repo Repository, tree categoryTree, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if tree == nil {
		return nil, fmt.Errorf("category tree required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tree: tree, tx: tx}, nil
}

func (s *service) List(ctx context.Context, params ListParams) ([]ProductDTO, error) {
	query := ListQuery{
		FeaturedOnly: params.FeaturedOnly,
		ActiveOnly:   !params.IncludeInactive,
		Search:       strings.TrimSpace(params.Search),
		Page:         params.Page,
	}

	if params.CategoryID != nil {
		ids, err := s.tree.DescendantIDs(ctx, *params.CategoryID)
		if err != nil {
			return nil, err
		}
		query.CategoryIDs = append([]int64{*params.CategoryID}, ids...)
	}

	rows, err := s.repo.ListProducts(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	out := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toProductDTO(row, false))
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*ProductDTO, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product.IsDeleted || !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	dto := toProductDTO(*product, true)
	return &dto, nil
}

func (s *service) Variations(ctx context.Context, productID int64) ([]VariationDTO, error) {
	if _, err := s.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListVariations(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list variations")
	}
	out := []VariationDTO{}
	for _, row := range rows {
		if row.IsDeleted || !row.IsActive {
			continue
		}
		out = append(out, toVariationDTO(row))
	}
	return out, nil
}

func (s *service) GetVariation(ctx context.Context, id int64) (*VariationDTO, error) {
	variation, err := s.repo.FindVariationByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variation")
	}
	if variation.IsDeleted || !variation.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variation not found")
	}
	dto := toVariationDTO(*variation)
	return &dto, nil
}

func (s *service) CurrentPrice(ctx context.Context, productID, variationID *int64) (decimal.Decimal, error) {
	if variationID != nil {
		variation, err := s.repo.FindVariationByID(ctx, *variationID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return decimal.Zero, pkgerrors.New(pkgerrors.CodeNotFound, "variation not found")
			}
			return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variation")
		}
		price, err := ResolveUnitPrice(nil, variation)
		if err != nil {
			return decimal.Zero, err
		}
		return money.Round2(price), nil
	}
	if productID != nil {
		product, err := s.repo.FindProductByID(ctx, *productID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return decimal.Zero, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		price, err := ResolveUnitPrice(product, nil)
		if err != nil {
			return decimal.Zero, err
		}
		return money.Round2(price), nil
	}
	return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "no pricing source: product or variation required")
}

// SoftDelete marks the product deleted and inactive, cascading the same
// transition to every variation. Rows are never removed.
func (s *service) SoftDelete(ctx context.Context, id int64) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		product, err := repo.FindProductByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		now := time.Now().UTC()
		product.IsDeleted = true
		product.IsActive = false
		product.DeletedAt = &now
		if err := repo.UpdateProduct(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "soft delete product")
		}

		for i := range product.Variations {
			variation := product.Variations[i]
			variation.IsDeleted = true
			variation.IsActive = false
			variation.DeletedAt = &now
			if err := repo.UpdateVariation(ctx, &variation); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "soft delete variation")
			}
		}
		return nil
	})
}

// Restore reverses a soft delete on the product and its variations.
func (s *service) Restore(ctx context.Context, id int64) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		product, err := repo.FindProductByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		product.IsDeleted = false
		product.IsActive = true
		product.DeletedAt = nil
		if err := repo.UpdateProduct(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore product")
		}

		for i := range product.Variations {
			variation := product.Variations[i]
			variation.IsDeleted = false
			variation.IsActive = true
			variation.DeletedAt = nil
			if err := repo.UpdateVariation(ctx, &variation); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore variation")
			}
		}
		return nil
	})
}
