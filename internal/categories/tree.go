package categories

import (
	"strings"

	"github.com/silverempire/commerce-backend/pkg/db/models"
	pkgerrors "github.com/silverempire/commerce-backend/pkg/errors"
)

// PathSeparator joins category names into a full path, e.g. "Rings > Silver".
const PathSeparator = " > "

// snapshot is an arena view of the category table keyed by id. Every traversal
// resolves parent and child links through the arena, never through loaded
// struct pointers, which keeps cycle detection a plain visited-id set.
type snapshot struct {
	byID     map[int64]*models.Category
	children map[int64][]*models.Category
	roots    []*models.Category
	order    []*models.Category
}

// newSnapshot indexes the rows as loaded. Child slices keep the repository's
// (sort_order, name) ordering and contain active nodes only; the byID index
// contains every node so ancestor walks work for inactive ones too.
func newSnapshot(nodes []models.Category) *snapshot {
	s := &snapshot{
		byID:     make(map[int64]*models.Category, len(nodes)),
		children: make(map[int64][]*models.Category),
	}
	for i := range nodes {
		node := &nodes[i]
		s.byID[node.ID] = node
		s.order = append(s.order, node)
	}
	for i := range nodes {
		node := &nodes[i]
		if !node.IsActive {
			continue
		}
		if node.ParentID == nil {
			s.roots = append(s.roots, node)
			continue
		}
		s.children[*node.ParentID] = append(s.children[*node.ParentID], node)
	}
	return s
}

// ordered returns every node in the repository's (sort_order, name) order.
func (s *snapshot) ordered() []*models.Category {
	return s.order
}

func (s *snapshot) get(id int64) (*models.Category, error) {
	node, ok := s.byID[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return node, nil
}

// ancestors walks parent links up to the root and returns them root-first.
// The walk is bounded by the arena size; revisiting a node means the stored
// parent chain contains a cycle and the walk fails instead of spinning.
func (s *snapshot) ancestors(id int64) ([]models.Category, error) {
	node, err := s.get(id)
	if err != nil {
		return nil, err
	}

	visited := map[int64]struct{}{node.ID: {}}
	var chain []models.Category
	for node.ParentID != nil {
		parent, ok := s.byID[*node.ParentID]
		if !ok {
			// dangling parent reference terminates the chain
			break
		}
		if _, seen := visited[parent.ID]; seen {
			return nil, pkgerrors.New(pkgerrors.CodeCycleDetected, "category parent chain contains a cycle").
				WithDetails(map[string]any{"category_id": id, "repeated_id": parent.ID})
		}
		visited[parent.ID] = struct{}{}
		chain = append(chain, *parent)
		node = parent
		if len(chain) > len(s.byID) {
			return nil, pkgerrors.New(pkgerrors.CodeCycleDetected, "category parent chain exceeds tree size")
		}
	}

	// reverse to root-first order
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// descendants collects every active node reachable through child links,
// depth-first pre-order, visiting each node exactly once.
func (s *snapshot) descendants(id int64) ([]models.Category, error) {
	if _, err := s.get(id); err != nil {
		return nil, err
	}

	visited := map[int64]struct{}{id: {}}
	var out []models.Category
	var walk func(parentID int64) error
	walk = func(parentID int64) error {
		for _, child := range s.children[parentID] {
			if _, seen := visited[child.ID]; seen {
				return pkgerrors.New(pkgerrors.CodeCycleDetected, "category child links contain a cycle").
					WithDetails(map[string]any{"category_id": id, "repeated_id": child.ID})
			}
			visited[child.ID] = struct{}{}
			out = append(out, *child)
			if err := walk(child.ID); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(id); err != nil {
		return nil, err
	}
	return out, nil
}

// level is the distance to the root: 0 for roots, parent level + 1 below.
func (s *snapshot) level(id int64) (int, error) {
	chain, err := s.ancestors(id)
	if err != nil {
		return 0, err
	}
	return len(chain), nil
}

// root returns the top of the node's parent chain, or the node itself.
func (s *snapshot) root(id int64) (*models.Category, error) {
	chain, err := s.ancestors(id)
	if err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		return s.get(id)
	}
	return s.byID[chain[0].ID], nil
}

// fullPath joins ancestor names root-first, ending with the node's own name.
func (s *snapshot) fullPath(id int64) (string, error) {
	node, err := s.get(id)
	if err != nil {
		return "", err
	}
	chain, err := s.ancestors(id)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(chain)+1)
	for _, ancestor := range chain {
		parts = append(parts, ancestor.Name)
	}
	parts = append(parts, node.Name)
	return strings.Join(parts, PathSeparator), nil
}

// isLeaf reports whether no active child references the node as parent.
func (s *snapshot) isLeaf(id int64) (bool, error) {
	if _, err := s.get(id); err != nil {
		return false, err
	}
	return len(s.children[id]) == 0, nil
}
