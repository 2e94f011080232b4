package categories

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/silverempire/commerce-backend/pkg/db/models"
	pkgerrors "github.com/silverempire/commerce-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the category tree to the HTTP layer and to the catalog.
type Service interface {
	List(ctx context.Context, params ListParams) ([]CategoryDTO, error)
	GetByID(ctx context.Context, id int64) (*CategoryDTO, error)
	GetRoots(ctx context.Context) ([]CategoryDTO, error)
	GetChildren(ctx context.Context, id int64) ([]CategoryDTO, error)
	GetBreadcrumb(ctx context.Context, id int64) ([]BreadcrumbEntry, error)
	GetTree(ctx context.Context) ([]TreeNode, error)

	// DescendantIDs feeds category-and-below product filtering.
	DescendantIDs(ctx context.Context, id int64) ([]int64, error)

	Create(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error)
	Update(ctx context.Context, id int64, input UpdateCategoryInput) (*CategoryDTO, error)
	Deactivate(ctx context.Context, id int64) error
}

// ListParams filters the flat listing. Activity is an explicit predicate; the
// store applies no hidden default filter.
type ListParams struct {
	ParentID        *int64
	RootsOnly       bool
	Search          string
	IncludeInactive bool
}

// CreateCategoryInput carries the writable category fields.
type CreateCategoryInput struct {
	Name        string
	Description *string
	ParentID    *int64
	IsActive    *bool
	SortOrder   int
}

// UpdateCategoryInput applies partial updates; nil fields are left untouched.
// ParentID uses a double pointer so "move to root" (explicit null) and "leave
// alone" (absent) stay distinguishable.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	ParentID    **int64
	IsActive    *bool
	SortOrder   *int
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds the category service with its required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("categories repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) load(ctx context.Context) (*snapshot, error) {
	nodes, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category tree")
	}
	return newSnapshot(nodes), nil
}

func (s *service) List(ctx context.Context, params ListParams) ([]CategoryDTO, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(params.Search))
	out := []CategoryDTO{}
	for _, node := range snap.ordered() {
		if !params.IncludeInactive && !node.IsActive {
			continue
		}
		if params.RootsOnly && node.ParentID != nil {
			continue
		}
		if params.ParentID != nil && (node.ParentID == nil || *node.ParentID != *params.ParentID) {
			continue
		}
		if search != "" && !matchesSearch(node, search) {
			continue
		}
		dto, err := snap.toDTO(node)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

func matchesSearch(node *models.Category, search string) bool {
	if strings.Contains(strings.ToLower(node.Name), search) {
		return true
	}
	return node.Description != nil && strings.Contains(strings.ToLower(*node.Description), search)
}

func (s *service) GetByID(ctx context.Context, id int64) (*CategoryDTO, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	node, err := snap.get(id)
	if err != nil {
		return nil, err
	}
	if !node.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	dto, err := snap.toDTO(node)
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

func (s *service) GetRoots(ctx context.Context) ([]CategoryDTO, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := []CategoryDTO{}
	for _, node := range snap.roots {
		dto, err := snap.toDTO(node)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

func (s *service) GetChildren(ctx context.Context, id int64) ([]CategoryDTO, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := snap.get(id); err != nil {
		return nil, err
	}
	out := []CategoryDTO{}
	for _, child := range snap.children[id] {
		dto, err := snap.toDTO(child)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

func (s *service) GetBreadcrumb(ctx context.Context, id int64) ([]BreadcrumbEntry, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.toBreadcrumb(id)
}

func (s *service) GetTree(ctx context.Context) ([]TreeNode, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	// run the cycle guard over every root before serializing so the
	// recursive projection below cannot be reached with a cyclic arena
	for _, root := range snap.roots {
		if _, err := snap.descendants(root.ID); err != nil {
			return nil, err
		}
	}

	out := []TreeNode{}
	for _, root := range snap.roots {
		out = append(out, snap.toTree(root))
	}
	return out, nil
}

func (s *service) DescendantIDs(ctx context.Context, id int64) ([]int64, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	nodes, err := snap.descendants(id)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(nodes))
	for _, node := range nodes {
		ids = append(ids, node.ID)
	}
	return ids, nil
}

func (s *service) Create(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}

	var created *models.Category
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if input.ParentID != nil {
			if _, err := repo.FindByID(ctx, *input.ParentID); err != nil {
				if err == gorm.ErrRecordNotFound {
					return pkgerrors.New(pkgerrors.CodeNotFound, "parent category not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load parent category")
			}
		}

		node := &models.Category{
			Name:        name,
			Description: input.Description,
			ParentID:    input.ParentID,
			IsActive:    true,
			SortOrder:   input.SortOrder,
		}
		if input.IsActive != nil {
			node.IsActive = *input.IsActive
		}
		if err := repo.Create(ctx, node); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "create category")
		}
		created = node
		return nil
	})
	if err != nil {
		return nil, err
	}

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	dto, err := snap.toDTO(created)
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateCategoryInput) (*CategoryDTO, error) {
	var updated *models.Category
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		node, err := repo.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
		}

		if input.ParentID != nil {
			newParent := *input.ParentID
			if err := s.validateParent(ctx, repo, node.ID, newParent); err != nil {
				return err
			}
			node.ParentID = newParent
		}
		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return pkgerrors.New(pkgerrors.CodeValidation, "category name required")
			}
			node.Name = name
		}
		if input.Description != nil {
			node.Description = input.Description
		}
		if input.IsActive != nil {
			node.IsActive = *input.IsActive
		}
		if input.SortOrder != nil {
			node.SortOrder = *input.SortOrder
		}

		if err := repo.Update(ctx, node); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "update category")
		}
		updated = node
		return nil
	})
	if err != nil {
		return nil, err
	}

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	dto, err := snap.toDTO(updated)
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// validateParent rejects re-parenting onto the node itself or any node whose
// parent chain passes through it. The chain walk runs over the full arena
// (inactive nodes included) so deactivated subtrees cannot smuggle a cycle in.
func (s *service) validateParent(ctx context.Context, repo Repository, nodeID int64, parentID *int64) error {
	if parentID == nil {
		return nil
	}
	if *parentID == nodeID {
		return pkgerrors.New(pkgerrors.CodeInvalidParent, "category cannot be its own parent").
			WithDetails(map[string]any{"category_id": nodeID})
	}

	nodes, err := repo.FindAll(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category tree")
	}
	snap := newSnapshot(nodes)

	candidate, ok := snap.byID[*parentID]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "parent category not found")
	}

	visited := map[int64]struct{}{}
	for candidate != nil {
		if candidate.ID == nodeID {
			return pkgerrors.New(pkgerrors.CodeInvalidParent, "proposed parent is a descendant of the category").
				WithDetails(map[string]any{"category_id": nodeID, "parent_id": *parentID})
		}
		if _, seen := visited[candidate.ID]; seen {
			return pkgerrors.New(pkgerrors.CodeCycleDetected, "category parent chain contains a cycle").
				WithDetails(map[string]any{"repeated_id": candidate.ID})
		}
		visited[candidate.ID] = struct{}{}
		if candidate.ParentID == nil {
			break
		}
		candidate = snap.byID[*candidate.ParentID]
	}
	return nil
}

func (s *service) Deactivate(ctx context.Context, id int64) error {
	inactive := false
	_, err := s.Update(ctx, id, UpdateCategoryInput{IsActive: &inactive})
	return err
}
