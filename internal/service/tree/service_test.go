package tree

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/edustack/catalog-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// In-memory fakes
//
// Structural operations (reparent, cascade delete, level propagation) read
// their own earlier writes, so the node repo is a stateful fake over a map
// rather than a per-method mock.
// ---------------------------------------------------------------------------

type fakeNodeRepo struct {
	nodes map[uuid.UUID]*domain.Node
}

func newFakeNodeRepo() *fakeNodeRepo {
	return &fakeNodeRepo{nodes: make(map[uuid.UUID]*domain.Node)}
}

func (f *fakeNodeRepo) add(n *domain.Node) *domain.Node {
	cp := *n
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	f.nodes[cp.ID] = &cp
	return &cp
}

func (f *fakeNodeRepo) GetByID(_ context.Context, nodeID uuid.UUID) (*domain.Node, error) {
	n, ok := f.nodes[nodeID]
	if !ok {
		return nil, fmt.Errorf("node %s: %w", nodeID, domain.ErrNotFound)
	}
	cp := *n
	return &cp, nil
}

func (f *fakeNodeRepo) GetChildren(_ context.Context, nodeID uuid.UUID) ([]*domain.Node, error) {
	result := []*domain.Node{}
	for _, n := range f.nodes {
		if n.ParentID != nil && *n.ParentID == nodeID {
			cp := *n
			result = append(result, &cp)
		}
	}
	sortNodes(result)
	return result, nil
}

func (f *fakeNodeRepo) CountByNamespace(_ context.Context, namespaceID uuid.UUID) (int, error) {
	count := 0
	for _, n := range f.nodes {
		if n.NamespaceID == namespaceID {
			count++
		}
	}
	return count, nil
}

func (f *fakeNodeRepo) ListByNamespace(_ context.Context, namespaceID uuid.UUID) ([]*domain.Node, error) {
	result := []*domain.Node{}
	for _, n := range f.nodes {
		if n.NamespaceID == namespaceID {
			cp := *n
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Level != result[j].Level {
			return result[i].Level < result[j].Level
		}
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}
		return result[i].Title < result[j].Title
	})
	return result, nil
}

func (f *fakeNodeRepo) FindByTitle(_ context.Context, namespaceID uuid.UUID, title string) (*domain.Node, error) {
	for _, n := range f.nodes {
		if n.NamespaceID == namespaceID && domain.NormalizeTitle(n.Title) == domain.NormalizeTitle(title) {
			cp := *n
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeNodeRepo) FindBySlug(_ context.Context, namespaceID uuid.UUID, slug string) (*domain.Node, error) {
	for _, n := range f.nodes {
		if n.NamespaceID == namespaceID && n.Slug == slug {
			cp := *n
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeNodeRepo) CountChildren(_ context.Context, nodeID uuid.UUID) (int, error) {
	count := 0
	for _, n := range f.nodes {
		if n.ParentID != nil && *n.ParentID == nodeID {
			count++
		}
	}
	return count, nil
}

func (f *fakeNodeRepo) ListLeaves(_ context.Context, namespaceID *uuid.UUID) ([]*domain.Node, error) {
	result := []*domain.Node{}
	for _, n := range f.nodes {
		if !n.IsLeaf {
			continue
		}
		if namespaceID != nil && n.NamespaceID != *namespaceID {
			continue
		}
		cp := *n
		result = append(result, &cp)
	}
	sortNodes(result)
	return result, nil
}

func (f *fakeNodeRepo) Create(_ context.Context, n *domain.Node) (*domain.Node, error) {
	cp := *n
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	f.nodes[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeNodeRepo) Save(_ context.Context, nodeID uuid.UUID, params domain.NodeUpdateParams, slug *string) (*domain.Node, error) {
	n, ok := f.nodes[nodeID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if params.Title != nil {
		n.Title = *params.Title
	}
	if slug != nil {
		n.Slug = *slug
	}
	if params.Description != nil {
		if *params.Description == "" {
			n.Description = nil
		} else {
			n.Description = params.Description
		}
	}
	if params.Active != nil {
		n.Active = *params.Active
	}
	if params.SortOrder != nil {
		n.SortOrder = *params.SortOrder
	}
	n.UpdatedAt = time.Now()
	cp := *n
	return &cp, nil
}

func (f *fakeNodeRepo) SetParentAndLevel(_ context.Context, nodeID uuid.UUID, parentID *uuid.UUID, level int) error {
	n, ok := f.nodes[nodeID]
	if !ok {
		return domain.ErrNotFound
	}
	n.ParentID = parentID
	n.Level = level
	return nil
}

func (f *fakeNodeRepo) SetLevel(_ context.Context, nodeID uuid.UUID, level int) error {
	n, ok := f.nodes[nodeID]
	if !ok {
		return domain.ErrNotFound
	}
	n.Level = level
	return nil
}

func (f *fakeNodeRepo) SetLeaf(_ context.Context, nodeID uuid.UUID, isLeaf bool) error {
	n, ok := f.nodes[nodeID]
	if !ok {
		return domain.ErrNotFound
	}
	n.IsLeaf = isLeaf
	return nil
}

func (f *fakeNodeRepo) Delete(_ context.Context, nodeID uuid.UUID) error {
	if _, ok := f.nodes[nodeID]; !ok {
		return fmt.Errorf("node %s: %w", nodeID, domain.ErrNotFound)
	}
	delete(f.nodes, nodeID)
	return nil
}

func sortNodes(nodes []*domain.Node) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].SortOrder != nodes[j].SortOrder {
			return nodes[i].SortOrder < nodes[j].SortOrder
		}
		return nodes[i].Title < nodes[j].Title
	})
}

type fakeNamespaceRepo struct {
	namespaces map[uuid.UUID]*domain.Namespace
}

func newFakeNamespaceRepo() *fakeNamespaceRepo {
	return &fakeNamespaceRepo{namespaces: make(map[uuid.UUID]*domain.Namespace)}
}

func (f *fakeNamespaceRepo) add(active bool) *domain.Namespace {
	ns := &domain.Namespace{ID: uuid.New(), Title: "Catalog", Slug: "catalog", Active: active}
	f.namespaces[ns.ID] = ns
	return ns
}

func (f *fakeNamespaceRepo) GetByID(_ context.Context, namespaceID uuid.UUID) (*domain.Namespace, error) {
	ns, ok := f.namespaces[namespaceID]
	if !ok {
		return nil, fmt.Errorf("namespace %s: %w", namespaceID, domain.ErrNotFound)
	}
	return ns, nil
}

type fakeProjectRepo struct {
	projects map[uuid.UUID]*domain.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[uuid.UUID]*domain.Project)}
}

func (f *fakeProjectRepo) add(nodeID uuid.UUID, title string) *domain.Project {
	p := &domain.Project{ID: uuid.New(), NodeID: nodeID, Title: title, Slug: domain.Slugify(title)}
	f.projects[p.ID] = p
	return p
}

func (f *fakeProjectRepo) ListByNode(_ context.Context, nodeID uuid.UUID) ([]*domain.Project, error) {
	result := []*domain.Project{}
	for _, p := range f.projects {
		if p.NodeID == nodeID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, projectID uuid.UUID) error {
	if _, ok := f.projects[projectID]; !ok {
		return domain.ErrNotFound
	}
	delete(f.projects, projectID)
	return nil
}

type fakeMediaRepo struct {
	assets map[uuid.UUID]*domain.MediaAsset
}

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{assets: make(map[uuid.UUID]*domain.MediaAsset)}
}

func (f *fakeMediaRepo) add(entityType domain.EntityType, entityID uuid.UUID, path string) *domain.MediaAsset {
	a := &domain.MediaAsset{ID: uuid.New(), EntityType: entityType, EntityID: entityID, Path: path}
	f.assets[a.ID] = a
	return a
}

func (f *fakeMediaRepo) ListByOwner(_ context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]*domain.MediaAsset, error) {
	result := []*domain.MediaAsset{}
	for _, a := range f.assets {
		if a.EntityType == entityType && a.EntityID == entityID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeMediaRepo) DeleteByOwner(_ context.Context, entityType domain.EntityType, entityID uuid.UUID) (int, error) {
	removed := 0
	for id, a := range f.assets {
		if a.EntityType == entityType && a.EntityID == entityID {
			delete(f.assets, id)
			removed++
		}
	}
	return removed, nil
}

// fakeBlobStore records deletions; paths in failPaths return an error.
type fakeBlobStore struct {
	deleted   []string
	failPaths map[string]bool
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{failPaths: make(map[string]bool)}
}

func (f *fakeBlobStore) Delete(_ context.Context, relPath string) error {
	if f.failPaths[relPath] {
		return errors.New("permission denied")
	}
	f.deleted = append(f.deleted, relPath)
	return nil
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	return m.RunInTxFunc(ctx, fn)
}

// defaultTxMock returns a txManagerMock that simply calls the function with the same context.
func defaultTxMock() *txManagerMock {
	return &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	}
}

// treeFixture bundles the fakes behind one service instance.
type treeFixture struct {
	svc        *Service
	nodes      *fakeNodeRepo
	namespaces *fakeNamespaceRepo
	projects   *fakeProjectRepo
	media      *fakeMediaRepo
	blobs      *fakeBlobStore
	ns         *domain.Namespace
}

func newTreeFixture(t *testing.T) *treeFixture {
	t.Helper()

	f := &treeFixture{
		nodes:      newFakeNodeRepo(),
		namespaces: newFakeNamespaceRepo(),
		projects:   newFakeProjectRepo(),
		media:      newFakeMediaRepo(),
		blobs:      newFakeBlobStore(),
	}
	f.ns = f.namespaces.add(true)
	f.svc = NewService(slog.Default(), f.nodes, f.namespaces, f.projects, f.media, f.blobs, defaultTxMock(), Limits{MaxNodesPerNamespace: 100})
	return f
}

// addNode seeds a node directly into the fake store with consistent
// derived fields.
func (f *treeFixture) addNode(title string, parent *domain.Node) *domain.Node {
	level := 1
	var parentID *uuid.UUID
	if parent != nil {
		id := parent.ID
		parentID = &id
		level = parent.Level + 1
		f.nodes.nodes[parent.ID].IsLeaf = false
	}
	return f.nodes.add(&domain.Node{
		NamespaceID: f.ns.ID,
		ParentID:    parentID,
		Level:       level,
		IsLeaf:      true,
		Title:       title,
		Slug:        domain.Slugify(title),
		Active:      true,
	})
}

// ---------------------------------------------------------------------------
// CreateNode
// ---------------------------------------------------------------------------

func TestCreateNode_Root(t *testing.T) {
	t.Parallel()

	f := newTreeFixture(t)

	node, err := f.svc.CreateNode(context.Background(), CreateNodeInput{
		NamespaceID: f.ns.ID,
		Title:       "  Mathematics  ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if node.Level != 1 {
		t.Errorf("level: got %d, want 1", node.Level)
	}
	if !node.IsLeaf {
		t.Error("new root should be a leaf")
	}
	if node.ParentID != nil {
		t.Errorf("parent: got %v, want nil", node.ParentID)
	}
	if node.Title != "Mathematics" {
		t.Errorf("title: got %q, want trimmed %q", node.Title, "Mathematics")
	}
	if node.Slug != "mathematics" {
		t.Errorf("slug: got %q, want %q", node.Slug, "mathematics")
	}
}

func TestCreateNode_ChildClearsParentLeaf(t *testing.T) {
	t.Parallel()

	f := newTreeFixture(t)
	root := f.addNode("Science", nil)

	parentID := root.ID
	child, err := f.svc.CreateNode(context.Background(), CreateNodeInput{
		NamespaceID: f.ns.ID,
		ParentID:    &parentID,
		Title:       "Physics",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if child.Level != 2 {
		t.Errorf("child level: got %d, want 2", child.Level)
	}
	if !child.IsLeaf {
		t.Error("new child should be a leaf")
	}

	parent, _ := f.nodes.GetByID(context.Background(), root.ID)
	if parent.IsLeaf {
		t.Error("parent should no longer be a leaf")
	}
}

func TestCreateNode_DepthExceeded(t *testing.T) {
	t.Parallel()

	f := newTreeFixture(t)
	current := f.addNode("L1", nil)
	for i := 2; i <= domain.MaxTreeDepth; i++ {
		current = f.addNode(fmt.Sprintf("L%d", i), current)
	}

	parentID := current.ID
	_, err := f.svc.CreateNode(context.Background(), CreateNodeInput{
		NamespaceID: f.ns.ID,
		ParentID:    &parentID,
		Title:       "Too Deep",
	})
	if !errors.Is(err, domain.ErrDepthExceeded) {
		t.Errorf("error: got %v, want ErrDepthExceeded", err)
	}
}

func TestCreateNode_DuplicateTitleCaseInsensitive(t *testing.T) {
	t.Parallel()

	f := newTreeFixture(t)
	f.addNode("History", nil)

	_, err := f.svc.CreateNode(context.Background(), CreateNodeInput{
		NamespaceID: f.ns.ID,
		Title:       "hISTORY",
	})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("error: got %v, want ErrAlreadyExists", err)
	}
}

func TestCreateNode_ParentInOtherNamespace(t *testing.T) {
	t.Parallel()

	f := newTreeFixture(t)
	other := f.namespaces.add(true)
	foreign := f.nodes.add(&domain.Node{
		NamespaceID: other.ID,
		Level:       1,
		IsLeaf:      true,
		Title:       "Foreign",
		Slug:        "foreign",
		Active:      true,
	})

	parentID := foreign.ID
	_, err := f.svc.CreateNode(context.Background(), CreateNodeInput{
		NamespaceID: f.ns.ID,
		ParentID:    &parentID,
		Title:       "Orphan",
	})
	if !errors.Is(err, domain.ErrInvalidReference) {
		t.Errorf("error: got %v, want ErrInvalidReference", err)
	}
}

func TestCreateNode_InactiveNamespace(t *testing.T) {
	t.Parallel()

	f := newTreeFixture(t)
	inactive := f.namespaces.add(false)

	_, err := f.svc.CreateNode(context.Background(), CreateNodeInput{
		NamespaceID: inactive.ID,
		Title:       "Nope",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error: got %v, want ErrNotFound", err)
	}
}

func TestCreateNode_NamespaceLimitReached(t *testing.T) {
	t.Parallel()

	f := newTreeFixture(t)
	f.svc = NewService(slog.Default(), f.nodes, f.namespaces, f.projects, f.media, f.blobs, defaultTxMock(), Limits{MaxNodesPerNamespace: 2})
	f.addNode("One", nil)
	f.addNode("Two", nil)

	_, err := f.svc.CreateNode(context.Background(), CreateNodeInput{
		NamespaceID: f.ns.ID,
		Title:       "Three",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("error: got %v, want ErrConflict", err)
	}
}

func TestCreateNode_EmptyTitle(t *testing.T) {
	t.Parallel()

	f := newTreeFixture(t)

	_, err := f.svc.CreateNode(context.Background(), CreateNodeInput{
		NamespaceID: f.ns.ID,
		Title:       "   ",
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if ve.Errors[0].Field != "title" || ve.Errors[0].Message != "required" {
		t.Errorf("expected title/required, got %s/%s", ve.Errors[0].Field, ve.Errors[0].Message)
	}
}

func TestCreateNode_TitleTooLong(t *testing.T) {
	t.Parallel()

	f := newTreeFixture(t)

	_, err := f.svc.CreateNode(context.Background(), CreateNodeInput{
		NamespaceID: f.ns.ID,
		Title:       strings.Repeat("a", 151),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error: got %v, want ErrValidation", err)
	}
}

func TestCreateNode_SymbolOnlyTitle(t *testing.T) {
	t.Parallel()

	f := newTreeFixture(t)

	_, err := f.svc.CreateNode(context.Background(), CreateNodeInput{
		NamespaceID: f.ns.ID,
		Title:       "!!! ???",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error: got %v, want ErrValidation", err)
	}
}

// ---------------------------------------------------------------------------
// UpdateNode
// ---------------------------------------------------------------------------

func TestUpdateNode_TitleRewritesSlug(t *testing.T) {
	t.Parallel()

	f := newTreeFixture(t)
	node := f.addNode("Old Title", nil)

	newTitle := "Fresh Title"
	updated, err := f.svc.UpdateNode(context.Background(), UpdateNodeInput{
		NodeID: node.ID,
		Title:  &newTitle,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Title != newTitle {
		t.Errorf("title: got %q, want %q", updated.Title, newTitle)
	}
	if updated.Slug != "fresh-title" {
		t.Errorf("slug: got %q, want %q", updated.Slug, "fresh-title")
	}
}

func TestUpdateNode_CaseOnlyTitleChangeKeepsSlug(t *testing.T) {
	t.Parallel()

	f := newTreeFixture(t)
	node := f.addNode("Algebra", nil)

	newTitle := "ALGEBRA"
	updated, err := f.svc.UpdateNode(context.Background(), UpdateNodeInput{
		NodeID: node.ID,
		Title:  &newTitle,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Slug != "algebra" {
		t.Errorf("slug: got %q, want %q", updated.Slug, "algebra")
	}
}

func TestUpdateNode_TitleConflict(t *testing.T) {
	t.Parallel()

	f := newTreeFixture(t)
	f.addNode("Taken", nil)
	node := f.addNode("Mine", nil)

	newTitle := "taken"
	_, err := f.svc.UpdateNode(context.Background(), UpdateNodeInput{
		NodeID: node.ID,
		Title:  &newTitle,
	})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("error: got %v, want ErrAlreadyExists", err)
	}
}

func TestUpdateNode_NoFields(t *testing.T) {
	t.Parallel()

	f := newTreeFixture(t)
	node := f.addNode("Something", nil)

	_, err := f.svc.UpdateNode(context.Background(), UpdateNodeInput{NodeID: node.ID})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error: got %v, want ErrValidation", err)
	}
}

func TestUpdateNode_NotFound(t *testing.T) {
	t.Parallel()

	f := newTreeFixture(t)

	active := false
	_, err := f.svc.UpdateNode(context.Background(), UpdateNodeInput{
		NodeID: uuid.New(),
		Active: &active,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error: got %v, want ErrNotFound", err)
	}
}
