package categories

import (
	"testing"

	"github.com/silverempire/commerce-backend/pkg/db/models"
	pkgerrors "github.com/silverempire/commerce-backend/pkg/errors"
)

func int64Ptr(v int64) *int64 { return &v }

// jewelry fixture: Jewelry > Rings > Silver Rings, Jewelry > Necklaces,
// plus an inactive Clearance child under Rings.
func fixtureNodes() []models.Category {
	return []models.Category{
		{ID: 1, Name: "Jewelry", IsActive: true, SortOrder: 0},
		{ID: 2, Name: "Rings", ParentID: int64Ptr(1), IsActive: true, SortOrder: 0},
		{ID: 3, Name: "Necklaces", ParentID: int64Ptr(1), IsActive: true, SortOrder: 1},
		{ID: 4, Name: "Silver Rings", ParentID: int64Ptr(2), IsActive: true, SortOrder: 0},
		{ID: 5, Name: "Clearance", ParentID: int64Ptr(2), IsActive: false, SortOrder: 9},
	}
}

func TestAncestorsRootFirst(t *testing.T) {
	snap := newSnapshot(fixtureNodes())

	chain, err := snap.ancestors(4)
	if err != nil {
		t.Fatalf("ancestors: %v", err)
	}
	if len(chain) != 2 {
		t.Fatalf("expected 2 ancestors, got %d", len(chain))
	}
	if chain[0].Name != "Jewelry" || chain[1].Name != "Rings" {
		t.Fatalf("expected root-first order, got %s, %s", chain[0].Name, chain[1].Name)
	}
}

func TestAncestorsOfRootIsEmpty(t *testing.T) {
	snap := newSnapshot(fixtureNodes())
	chain, err := snap.ancestors(1)
	if err != nil {
		t.Fatalf("ancestors: %v", err)
	}
	if len(chain) != 0 {
		t.Fatalf("expected no ancestors for root, got %d", len(chain))
	}
}

func TestAncestorsUnknownID(t *testing.T) {
	snap := newSnapshot(fixtureNodes())
	_, err := snap.ancestors(99)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAncestorsDetectsCycle(t *testing.T) {
	nodes := []models.Category{
		{ID: 1, Name: "A", ParentID: int64Ptr(2), IsActive: true},
		{ID: 2, Name: "B", ParentID: int64Ptr(1), IsActive: true},
	}
	snap := newSnapshot(nodes)

	_, err := snap.ancestors(1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeCycleDetected {
		t.Fatalf("expected cycle detection, got %v", err)
	}
}

func TestAncestorsSelfReferenceDetected(t *testing.T) {
	nodes := []models.Category{
		{ID: 1, Name: "Self", ParentID: int64Ptr(1), IsActive: true},
	}
	snap := newSnapshot(nodes)

	_, err := snap.ancestors(1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeCycleDetected {
		t.Fatalf("expected cycle detection for self-parent, got %v", err)
	}
}

func TestLevelProperty(t *testing.T) {
	snap := newSnapshot(fixtureNodes())

	for id, want := range map[int64]int{1: 0, 2: 1, 3: 1, 4: 2} {
		got, err := snap.level(id)
		if err != nil {
			t.Fatalf("level(%d): %v", id, err)
		}
		if got != want {
			t.Fatalf("level(%d) = %d, want %d", id, got, want)
		}
	}
}

func TestDescendantsActiveOnlyVisitOnce(t *testing.T) {
	snap := newSnapshot(fixtureNodes())

	got, err := snap.descendants(1)
	if err != nil {
		t.Fatalf("descendants: %v", err)
	}

	seen := map[int64]int{}
	for _, node := range got {
		seen[node.ID]++
		if node.ID == 1 {
			t.Fatal("descendants must not include the node itself")
		}
		if node.ID == 5 {
			t.Fatal("inactive nodes must be excluded")
		}
	}
	for id, count := range seen {
		if count != 1 {
			t.Fatalf("node %d visited %d times", id, count)
		}
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 active descendants, got %d", len(got))
	}
}

func TestDescendantsOfLeaf(t *testing.T) {
	snap := newSnapshot(fixtureNodes())
	got, err := snap.descendants(4)
	if err != nil {
		t.Fatalf("descendants: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no descendants for leaf, got %d", len(got))
	}
}

func TestRoot(t *testing.T) {
	snap := newSnapshot(fixtureNodes())

	root, err := snap.root(4)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	if root.ID != 1 {
		t.Fatalf("expected root id 1, got %d", root.ID)
	}

	self, err := snap.root(1)
	if err != nil {
		t.Fatalf("root of root: %v", err)
	}
	if self.ID != 1 {
		t.Fatalf("root of a root must be itself, got %d", self.ID)
	}
}

func TestFullPathMatchesAncestorChain(t *testing.T) {
	snap := newSnapshot(fixtureNodes())

	path, err := snap.fullPath(4)
	if err != nil {
		t.Fatalf("full path: %v", err)
	}
	if path != "Jewelry > Rings > Silver Rings" {
		t.Fatalf("unexpected path %q", path)
	}

	// the path must round-trip against the ancestors chain
	chain, err := snap.ancestors(4)
	if err != nil {
		t.Fatalf("ancestors: %v", err)
	}
	rebuilt := ""
	for _, ancestor := range chain {
		rebuilt += ancestor.Name + PathSeparator
	}
	rebuilt += "Silver Rings"
	if rebuilt != path {
		t.Fatalf("path %q does not round-trip ancestors %q", path, rebuilt)
	}
}

func TestIsLeaf(t *testing.T) {
	snap := newSnapshot(fixtureNodes())

	leaf, err := snap.isLeaf(4)
	if err != nil || !leaf {
		t.Fatalf("expected node 4 to be a leaf, got %v %v", leaf, err)
	}

	// node 2 has an active child (4) and an inactive one (5)
	leaf, err = snap.isLeaf(2)
	if err != nil || leaf {
		t.Fatalf("expected node 2 not to be a leaf, got %v %v", leaf, err)
	}

	// a node whose only child is inactive counts as a leaf
	nodes := fixtureNodes()
	nodes[3].IsActive = false // deactivate Silver Rings
	snap = newSnapshot(nodes)
	leaf, err = snap.isLeaf(2)
	if err != nil || !leaf {
		t.Fatalf("expected node 2 to be a leaf once children are inactive, got %v %v", leaf, err)
	}
}

func TestChildrenOrdering(t *testing.T) {
	// FindAll delivers rows ordered by (sort_order, name); the snapshot must
	// preserve that order within each child list.
	nodes := []models.Category{
		{ID: 1, Name: "Root", IsActive: true, SortOrder: 0},
		{ID: 2, Name: "Alpha", ParentID: int64Ptr(1), IsActive: true, SortOrder: 1},
		{ID: 3, Name: "Beta", ParentID: int64Ptr(1), IsActive: true, SortOrder: 1},
		{ID: 4, Name: "First", ParentID: int64Ptr(1), IsActive: true, SortOrder: 0},
	}
	// simulate repository ordering
	ordered := []models.Category{nodes[0], nodes[3], nodes[1], nodes[2]}
	snap := newSnapshot(ordered)

	children := snap.children[1]
	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}
	if children[0].Name != "First" || children[1].Name != "Alpha" || children[2].Name != "Beta" {
		t.Fatalf("unexpected child order: %s, %s, %s", children[0].Name, children[1].Name, children[2].Name)
	}
}

func TestToBreadcrumbLevels(t *testing.T) {
	snap := newSnapshot(fixtureNodes())

	crumbs, err := snap.toBreadcrumb(4)
	if err != nil {
		t.Fatalf("breadcrumb: %v", err)
	}
	if len(crumbs) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(crumbs))
	}
	for i, crumb := range crumbs {
		if crumb.Level != i {
			t.Fatalf("entry %d has level %d", i, crumb.Level)
		}
	}
	if crumbs[2].Name != "Silver Rings" {
		t.Fatalf("last entry must be the node itself, got %s", crumbs[2].Name)
	}
}

func TestToTreeNesting(t *testing.T) {
	snap := newSnapshot(fixtureNodes())

	tree := snap.toTree(snap.byID[1])
	if tree.Name != "Jewelry" {
		t.Fatalf("unexpected root %s", tree.Name)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 active children, got %d", len(tree.Children))
	}
	rings := tree.Children[0]
	if rings.Name != "Rings" || len(rings.Children) != 1 || rings.Children[0].Name != "Silver Rings" {
		t.Fatalf("unexpected subtree %+v", rings)
	}
}
