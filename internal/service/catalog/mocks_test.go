package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/edustack/catalog-backend/internal/domain"
)

var _ namespaceRepo = &namespaceRepoMock{}

type namespaceRepoMock struct {
	GetByIDFunc   func(ctx context.Context, namespaceID uuid.UUID) (*domain.Namespace, error)
	GetBySlugFunc func(ctx context.Context, slug string) (*domain.Namespace, error)
	ListFunc      func(ctx context.Context) ([]*domain.Namespace, error)
	CreateFunc    func(ctx context.Context, ns *domain.Namespace) (*domain.Namespace, error)
	SaveFunc      func(ctx context.Context, namespaceID uuid.UUID, params domain.NamespaceUpdateParams, slug *string) (*domain.Namespace, error)
	DeleteFunc    func(ctx context.Context, namespaceID uuid.UUID) error

	calls struct {
		GetByID []struct{ NamespaceID uuid.UUID }
		Create  []struct{ Ns *domain.Namespace }
		Save    []struct {
			NamespaceID uuid.UUID
			Params      domain.NamespaceUpdateParams
			Slug        *string
		}
		Delete []struct{ NamespaceID uuid.UUID }
	}
	lock sync.RWMutex
}

func (mock *namespaceRepoMock) GetByID(ctx context.Context, namespaceID uuid.UUID) (*domain.Namespace, error) {
	if mock.GetByIDFunc == nil {
		panic("namespaceRepoMock.GetByIDFunc: method is nil but namespaceRepo.GetByID was just called")
	}
	mock.lock.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct{ NamespaceID uuid.UUID }{namespaceID})
	mock.lock.Unlock()
	return mock.GetByIDFunc(ctx, namespaceID)
}

func (mock *namespaceRepoMock) GetByIDCalls() []struct{ NamespaceID uuid.UUID } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetByID
}

func (mock *namespaceRepoMock) GetBySlug(ctx context.Context, slug string) (*domain.Namespace, error) {
	if mock.GetBySlugFunc == nil {
		panic("namespaceRepoMock.GetBySlugFunc: method is nil but namespaceRepo.GetBySlug was just called")
	}
	return mock.GetBySlugFunc(ctx, slug)
}

func (mock *namespaceRepoMock) List(ctx context.Context) ([]*domain.Namespace, error) {
	if mock.ListFunc == nil {
		panic("namespaceRepoMock.ListFunc: method is nil but namespaceRepo.List was just called")
	}
	return mock.ListFunc(ctx)
}

func (mock *namespaceRepoMock) Create(ctx context.Context, ns *domain.Namespace) (*domain.Namespace, error) {
	if mock.CreateFunc == nil {
		panic("namespaceRepoMock.CreateFunc: method is nil but namespaceRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ Ns *domain.Namespace }{ns})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, ns)
}

func (mock *namespaceRepoMock) CreateCalls() []struct{ Ns *domain.Namespace } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *namespaceRepoMock) Save(ctx context.Context, namespaceID uuid.UUID, params domain.NamespaceUpdateParams, slug *string) (*domain.Namespace, error) {
	if mock.SaveFunc == nil {
		panic("namespaceRepoMock.SaveFunc: method is nil but namespaceRepo.Save was just called")
	}
	mock.lock.Lock()
	mock.calls.Save = append(mock.calls.Save, struct {
		NamespaceID uuid.UUID
		Params      domain.NamespaceUpdateParams
		Slug        *string
	}{namespaceID, params, slug})
	mock.lock.Unlock()
	return mock.SaveFunc(ctx, namespaceID, params, slug)
}

func (mock *namespaceRepoMock) SaveCalls() []struct {
	NamespaceID uuid.UUID
	Params      domain.NamespaceUpdateParams
	Slug        *string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Save
}

func (mock *namespaceRepoMock) Delete(ctx context.Context, namespaceID uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("namespaceRepoMock.DeleteFunc: method is nil but namespaceRepo.Delete was just called")
	}
	mock.lock.Lock()
	mock.calls.Delete = append(mock.calls.Delete, struct{ NamespaceID uuid.UUID }{namespaceID})
	mock.lock.Unlock()
	return mock.DeleteFunc(ctx, namespaceID)
}

func (mock *namespaceRepoMock) DeleteCalls() []struct{ NamespaceID uuid.UUID } {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Delete
}

var _ nodeRepo = &nodeRepoMock{}

type nodeRepoMock struct {
	CountByNamespaceFunc func(ctx context.Context, namespaceID uuid.UUID) (int, error)
}

func (mock *nodeRepoMock) CountByNamespace(ctx context.Context, namespaceID uuid.UUID) (int, error) {
	if mock.CountByNamespaceFunc == nil {
		panic("nodeRepoMock.CountByNamespaceFunc: method is nil but nodeRepo.CountByNamespace was just called")
	}
	return mock.CountByNamespaceFunc(ctx, namespaceID)
}

var _ mediaRepo = &mediaRepoMock{}

type mediaRepoMock struct {
	ListByOwnerFunc   func(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]*domain.MediaAsset, error)
	DeleteByOwnerFunc func(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) (int, error)
}

func (mock *mediaRepoMock) ListByOwner(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]*domain.MediaAsset, error) {
	if mock.ListByOwnerFunc == nil {
		panic("mediaRepoMock.ListByOwnerFunc: method is nil but mediaRepo.ListByOwner was just called")
	}
	return mock.ListByOwnerFunc(ctx, entityType, entityID)
}

func (mock *mediaRepoMock) DeleteByOwner(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) (int, error) {
	if mock.DeleteByOwnerFunc == nil {
		panic("mediaRepoMock.DeleteByOwnerFunc: method is nil but mediaRepo.DeleteByOwner was just called")
	}
	return mock.DeleteByOwnerFunc(ctx, entityType, entityID)
}

var _ blobStore = &blobStoreMock{}

type blobStoreMock struct {
	DeleteFunc func(ctx context.Context, relPath string) error
}

func (mock *blobStoreMock) Delete(ctx context.Context, relPath string) error {
	if mock.DeleteFunc == nil {
		panic("blobStoreMock.DeleteFunc: method is nil but blobStore.Delete was just called")
	}
	return mock.DeleteFunc(ctx, relPath)
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	return mock.RunInTxFunc(ctx, fn)
}
