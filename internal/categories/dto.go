package categories

import (
	"time"

	"github.com/silverempire/commerce-backend/pkg/db/models"
)

// CategoryDTO is the flat listing projection with the derived tree fields.
type CategoryDTO struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Description      *string `json:"description,omitempty"`
	ParentID         *int64  `json:"parent_id,omitempty"`
	ParentName       *string `json:"parent_name,omitempty"`
	IsActive         bool    `json:"is_active"`
	SortOrder        int     `json:"sort_order"`
	Level            int     `json:"level"`
	FullPath         string  `json:"full_path"`
	IsLeaf           bool    `json:"is_leaf"`
	SubcategoryCount int     `json:"subcategory_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TreeNode is one node of the recursive tree projection.
type TreeNode struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	SortOrder   int        `json:"sort_order"`
	Children    []TreeNode `json:"children"`
}

// BreadcrumbEntry annotates a node on the root-to-self path with its level.
type BreadcrumbEntry struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

func (s *snapshot) toDTO(node *models.Category) (CategoryDTO, error) {
	level, err := s.level(node.ID)
	if err != nil {
		return CategoryDTO{}, err
	}
	fullPath, err := s.fullPath(node.ID)
	if err != nil {
		return CategoryDTO{}, err
	}

	dto := CategoryDTO{
		ID:               node.ID,
		Name:             node.Name,
		Description:      node.Description,
		ParentID:         node.ParentID,
		IsActive:         node.IsActive,
		SortOrder:        node.SortOrder,
		Level:            level,
		FullPath:         fullPath,
		IsLeaf:           len(s.children[node.ID]) == 0,
		SubcategoryCount: len(s.children[node.ID]),
		CreatedAt:        node.CreatedAt,
		UpdatedAt:        node.UpdatedAt,
	}
	if node.ParentID != nil {
		if parent, ok := s.byID[*node.ParentID]; ok {
			dto.ParentName = &parent.Name
		}
	}
	return dto, nil
}

// toTree serializes the subtree below node. Children are active only and keep
// the (sort_order, name) ordering; depth is bounded by the cycle guard that
// already ran on the snapshot before serialization starts.
func (s *snapshot) toTree(node *models.Category) TreeNode {
	out := TreeNode{
		ID:          node.ID,
		Name:        node.Name,
		Description: node.Description,
		SortOrder:   node.SortOrder,
		Children:    []TreeNode{},
	}
	for _, child := range s.children[node.ID] {
		out.Children = append(out.Children, s.toTree(child))
	}
	return out
}

// toBreadcrumb returns ancestors root-first followed by the node itself.
func (s *snapshot) toBreadcrumb(id int64) ([]BreadcrumbEntry, error) {
	node, err := s.get(id)
	if err != nil {
		return nil, err
	}
	chain, err := s.ancestors(id)
	if err != nil {
		return nil, err
	}

	out := make([]BreadcrumbEntry, 0, len(chain)+1)
	for i, ancestor := range chain {
		out = append(out, BreadcrumbEntry{ID: ancestor.ID, Name: ancestor.Name, Level: i})
	}
	out = append(out, BreadcrumbEntry{ID: node.ID, Name: node.Name, Level: len(chain)})
	return out, nil
}
