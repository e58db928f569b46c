package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
)

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockCategoryMappingRepository struct {
	mock.Mock
}

func (m *MockCategoryMappingRepository) FindBySupplierAndExternalID(ctx context.Context, supplierID uuid.UUID, externalID int64) (*catalog.SupplierCategoryMapping, error) {
	args := m.Called(ctx, supplierID, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.SupplierCategoryMapping), args.Error(1)
}

func (m *MockCategoryMappingRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]catalog.SupplierCategoryMapping, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.SupplierCategoryMapping), args.Error(1)
}

func (m *MockCategoryMappingRepository) Save(ctx context.Context, mapping *catalog.SupplierCategoryMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByExternalID(ctx context.Context, externalID int64) (*catalog.Product, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, supplierID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DecrementQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockParameterRepository struct {
	mock.Mock
}

func (m *MockParameterRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Parameter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Parameter), args.Error(1)
}

func (m *MockParameterRepository) FindByName(ctx context.Context, name string) (*catalog.Parameter, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Parameter), args.Error(1)
}

func (m *MockParameterRepository) Save(ctx context.Context, parameter *catalog.Parameter) error {
	args := m.Called(ctx, parameter)
	return args.Error(0)
}

type MockProductParameterRepository struct {
	mock.Mock
}

func (m *MockProductParameterRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.ProductParameter, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ProductParameter), args.Error(1)
}

func (m *MockProductParameterRepository) FindByProductAndParameter(ctx context.Context, productID, parameterID uuid.UUID) (*catalog.ProductParameter, error) {
	args := m.Called(ctx, productID, parameterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductParameter), args.Error(1)
}

func (m *MockProductParameterRepository) Save(ctx context.Context, value *catalog.ProductParameter) error {
	args := m.Called(ctx, value)
	return args.Error(0)
}

// memoryIdempotencyStore is a test double for the dedup store
type memoryIdempotencyStore struct {
	mu   sync.Mutex
	seen map[string]bool
	err  error
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{seen: make(map[string]bool)}
}

func (s *memoryIdempotencyStore) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	if s.seen[key] {
		return false, nil
	}
	s.seen[key] = true
	return true, nil
}

func (s *memoryIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	return s.seen[key], nil
}

func (s *memoryIdempotencyStore) Close() error { return nil }

// recordingPublisher captures published events; err makes every Publish fail
type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) Published() []shared.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]shared.DomainEvent(nil), p.events...)
}

var (
	_ catalog.CategoryRepository         = (*MockCategoryRepository)(nil)
	_ catalog.CategoryMappingRepository  = (*MockCategoryMappingRepository)(nil)
	_ catalog.ProductRepository          = (*MockProductRepository)(nil)
	_ catalog.ParameterRepository        = (*MockParameterRepository)(nil)
	_ catalog.ProductParameterRepository = (*MockProductParameterRepository)(nil)
	_ shared.IdempotencyStore            = (*memoryIdempotencyStore)(nil)
	_ shared.EventPublisher              = (*recordingPublisher)(nil)
)
