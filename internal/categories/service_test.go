package categories

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/silverempire/commerce-backend/pkg/db/models"
	pkgerrors "github.com/silverempire/commerce-backend/pkg/errors"
)

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// stubRepo keeps categories in memory; WithTx(nil) returns the repo itself,
// matching the production repository behavior.
type stubRepo struct {
	nodes  []models.Category
	nextID int64
	err    error
}

func newStubRepo(nodes []models.Category) *stubRepo {
	next := int64(1)
	for _, n := range nodes {
		if n.ID >= next {
			next = n.ID + 1
		}
	}
	return &stubRepo{nodes: nodes, nextID: next}
}

func (r *stubRepo) WithTx(tx *gorm.DB) Repository { return r }

func (r *stubRepo) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.nodes {
		if r.nodes[i].ID == id {
			node := r.nodes[i]
			return &node, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRepo) FindAll(ctx context.Context) ([]models.Category, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]models.Category, len(r.nodes))
	copy(out, r.nodes)
	return out, nil
}

func (r *stubRepo) Create(ctx context.Context, category *models.Category) error {
	if r.err != nil {
		return r.err
	}
	category.ID = r.nextID
	r.nextID++
	r.nodes = append(r.nodes, *category)
	return nil
}

func (r *stubRepo) Update(ctx context.Context, category *models.Category) error {
	if r.err != nil {
		return r.err
	}
	for i := range r.nodes {
		if r.nodes[i].ID == category.ID {
			r.nodes[i] = *category
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, stubTxRunner{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestNewServiceRequiresDeps(t *testing.T) {
	if _, err := NewService(nil, stubTxRunner{}); err == nil {
		t.Fatal("expected error without repo")
	}
	if _, err := NewService(newStubRepo(nil), nil); err == nil {
		t.Fatal("expected error without tx runner")
	}
}

func TestGetTreeSortedAndNested(t *testing.T) {
	svc := newTestService(t, newStubRepo(fixtureNodes()))

	tree, err := svc.GetTree(context.Background())
	if err != nil {
		t.Fatalf("get tree: %v", err)
	}
	if len(tree) != 1 {
		t.Fatalf("expected a single root, got %d", len(tree))
	}
	if tree[0].Name != "Jewelry" || len(tree[0].Children) != 2 {
		t.Fatalf("unexpected tree %+v", tree[0])
	}
}

func TestGetTreeIsRepeatable(t *testing.T) {
	svc := newTestService(t, newStubRepo(fixtureNodes()))

	first, err := svc.GetTree(context.Background())
	if err != nil {
		t.Fatalf("get tree: %v", err)
	}
	second, err := svc.GetTree(context.Background())
	if err != nil {
		t.Fatalf("get tree again: %v", err)
	}
	if len(first) != len(second) || first[0].Children[0].ID != second[0].Children[0].ID {
		t.Fatal("tree serialization must be stable across invocations")
	}
}

func TestGetChildrenActiveSorted(t *testing.T) {
	svc := newTestService(t, newStubRepo(fixtureNodes()))

	children, err := svc.GetChildren(context.Background(), 2)
	if err != nil {
		t.Fatalf("get children: %v", err)
	}
	if len(children) != 1 || children[0].Name != "Silver Rings" {
		t.Fatalf("expected only the active child, got %+v", children)
	}
}

func TestGetChildrenUnknownID(t *testing.T) {
	svc := newTestService(t, newStubRepo(fixtureNodes()))

	_, err := svc.GetChildren(context.Background(), 404)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetBreadcrumb(t *testing.T) {
	svc := newTestService(t, newStubRepo(fixtureNodes()))

	crumbs, err := svc.GetBreadcrumb(context.Background(), 4)
	if err != nil {
		t.Fatalf("breadcrumb: %v", err)
	}
	want := []string{"Jewelry", "Rings", "Silver Rings"}
	if len(crumbs) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(crumbs))
	}
	for i, name := range want {
		if crumbs[i].Name != name || crumbs[i].Level != i {
			t.Fatalf("entry %d = %+v, want %s at level %d", i, crumbs[i], name, i)
		}
	}
}

func TestListRootsOnly(t *testing.T) {
	svc := newTestService(t, newStubRepo(fixtureNodes()))

	roots, err := svc.List(context.Background(), ListParams{RootsOnly: true})
	if err != nil {
		t.Fatalf("list roots: %v", err)
	}
	if len(roots) != 1 || roots[0].Name != "Jewelry" {
		t.Fatalf("unexpected roots %+v", roots)
	}
}

func TestListSearch(t *testing.T) {
	svc := newTestService(t, newStubRepo(fixtureNodes()))

	found, err := svc.List(context.Background(), ListParams{Search: "neck"})
	if err != nil {
		t.Fatalf("list search: %v", err)
	}
	if len(found) != 1 || found[0].Name != "Necklaces" {
		t.Fatalf("unexpected search result %+v", found)
	}
}

func TestListExcludesInactiveByDefault(t *testing.T) {
	svc := newTestService(t, newStubRepo(fixtureNodes()))

	parent := int64(2)
	listed, err := svc.List(context.Background(), ListParams{ParentID: &parent})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected inactive child filtered out, got %+v", listed)
	}

	listed, err = svc.List(context.Background(), ListParams{ParentID: &parent, IncludeInactive: true})
	if err != nil {
		t.Fatalf("list inactive: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected inactive child included, got %+v", listed)
	}
}

func TestCreateUnderParent(t *testing.T) {
	repo := newStubRepo(fixtureNodes())
	svc := newTestService(t, repo)

	parent := int64(3)
	dto, err := svc.Create(context.Background(), CreateCategoryInput{
		Name:     "Pendants",
		ParentID: &parent,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Level != 2 {
		t.Fatalf("expected level 2, got %d", dto.Level)
	}
	if dto.FullPath != "Jewelry > Necklaces > Pendants" {
		t.Fatalf("unexpected full path %q", dto.FullPath)
	}
}

func TestCreateRejectsBlankName(t *testing.T) {
	svc := newTestService(t, newStubRepo(fixtureNodes()))

	_, err := svc.Create(context.Background(), CreateCategoryInput{Name: "   "})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsUnknownParent(t *testing.T) {
	svc := newTestService(t, newStubRepo(fixtureNodes()))

	parent := int64(77)
	_, err := svc.Create(context.Background(), CreateCategoryInput{Name: "Orphans", ParentID: &parent})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReparentToDescendantRejected(t *testing.T) {
	repo := newStubRepo(fixtureNodes())
	svc := newTestService(t, repo)

	// Rings (2) cannot be re-parented under Silver Rings (4)
	parent := int64Ptr(4)
	_, err := svc.Update(context.Background(), 2, UpdateCategoryInput{ParentID: &parent})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInvalidParent {
		t.Fatalf("expected invalid parent, got %v", err)
	}

	// the stored parent must be unchanged
	node, findErr := repo.FindByID(context.Background(), 2)
	if findErr != nil {
		t.Fatalf("find: %v", findErr)
	}
	if node.ParentID == nil || *node.ParentID != 1 {
		t.Fatalf("parent mutated despite rejection: %+v", node.ParentID)
	}
}

func TestReparentToSelfRejected(t *testing.T) {
	svc := newTestService(t, newStubRepo(fixtureNodes()))

	parent := int64Ptr(2)
	_, err := svc.Update(context.Background(), 2, UpdateCategoryInput{ParentID: &parent})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInvalidParent {
		t.Fatalf("expected invalid parent, got %v", err)
	}
}

func TestReparentToInactiveDescendantRejected(t *testing.T) {
	// Clearance (5) is inactive but still a descendant of Rings (2)
	svc := newTestService(t, newStubRepo(fixtureNodes()))

	parent := int64Ptr(5)
	_, err := svc.Update(context.Background(), 2, UpdateCategoryInput{ParentID: &parent})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInvalidParent {
		t.Fatalf("expected invalid parent even via inactive descendant, got %v", err)
	}
}

func TestReparentToValidNode(t *testing.T) {
	repo := newStubRepo(fixtureNodes())
	svc := newTestService(t, repo)

	// move Silver Rings (4) under Necklaces (3)
	parent := int64Ptr(3)
	dto, err := svc.Update(context.Background(), 4, UpdateCategoryInput{ParentID: &parent})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.FullPath != "Jewelry > Necklaces > Silver Rings" {
		t.Fatalf("unexpected path after move: %q", dto.FullPath)
	}
}

func TestReparentToRoot(t *testing.T) {
	repo := newStubRepo(fixtureNodes())
	svc := newTestService(t, repo)

	var nilParent *int64
	dto, err := svc.Update(context.Background(), 2, UpdateCategoryInput{ParentID: &nilParent})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.Level != 0 || dto.ParentID != nil {
		t.Fatalf("expected node promoted to root, got %+v", dto)
	}
}

func TestDeactivateHidesFromTree(t *testing.T) {
	repo := newStubRepo(fixtureNodes())
	svc := newTestService(t, repo)

	if err := svc.Deactivate(context.Background(), 2); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	tree, err := svc.GetTree(context.Background())
	if err != nil {
		t.Fatalf("get tree: %v", err)
	}
	for _, child := range tree[0].Children {
		if child.ID == 2 {
			t.Fatal("deactivated category still present in tree")
		}
	}
}

func TestDescendantIDs(t *testing.T) {
	svc := newTestService(t, newStubRepo(fixtureNodes()))

	ids, err := svc.DescendantIDs(context.Background(), 1)
	if err != nil {
		t.Fatalf("descendant ids: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("expected 3 ids, got %v", ids)
	}
	for _, id := range ids {
		if id == 1 {
			t.Fatal("descendant ids must not include the node itself")
		}
		if id == 5 {
			t.Fatal("descendant ids must exclude inactive nodes")
		}
	}
}

func TestGetByIDInactiveHidden(t *testing.T) {
	svc := newTestService(t, newStubRepo(fixtureNodes()))

	_, err := svc.GetByID(context.Background(), 5)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for inactive category, got %v", err)
	}
}
