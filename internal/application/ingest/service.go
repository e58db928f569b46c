package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
)

// IngestReport summarizes what a feed run did to the catalog
type IngestReport struct {
	Categories int  `json:"categories"`
	Products   int  `json:"products"`
	Parameters int  `json:"parameters"`
	Created    int  `json:"created"`
	Updated    int  `json:"updated"`
	Skipped    bool `json:"skipped"`
}

// IngestService applies supplier feeds to the catalog. Each row is
// persisted independently: a failure mid-feed leaves the rows already
// written in place, and the same feed can be replayed safely because
// every write is an upsert keyed by external id.
type IngestService struct {
	categoryRepo         catalog.CategoryRepository
	mappingRepo          catalog.CategoryMappingRepository
	productRepo          catalog.ProductRepository
	parameterRepo        catalog.ParameterRepository
	productParameterRepo catalog.ProductParameterRepository
	dedup                shared.IdempotencyStore
	dedupTTL             time.Duration
	eventPublisher       shared.EventPublisher
	logger               *zap.Logger
}

// NewIngestService creates an ingest service
func NewIngestService(
	categoryRepo catalog.CategoryRepository,
	mappingRepo catalog.CategoryMappingRepository,
	productRepo catalog.ProductRepository,
	parameterRepo catalog.ParameterRepository,
	productParameterRepo catalog.ProductParameterRepository,
	logger *zap.Logger,
) *IngestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IngestService{
		categoryRepo:         categoryRepo,
		mappingRepo:          mappingRepo,
		productRepo:          productRepo,
		parameterRepo:        parameterRepo,
		productParameterRepo: productParameterRepo,
		logger:               logger,
	}
}

// SetEventPublisher sets the event publisher
func (s *IngestService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetDeduplication enables digest-based skipping of unchanged feeds
func (s *IngestService) SetDeduplication(store shared.IdempotencyStore, ttl time.Duration) {
	s.dedup = store
	s.dedupTTL = ttl
}

// IngestRaw parses a raw YAML feed and applies it. A feed whose digest
// was already processed within the dedup window is skipped; a dedup
// store failure degrades to processing the feed rather than losing it.
func (s *IngestService) IngestRaw(ctx context.Context, supplierID uuid.UUID, raw []byte) (*IngestReport, error) {
	if s.dedup != nil {
		key := fmt.Sprintf("feed:%s:%s", supplierID, FeedDigest(raw))
		fresh, err := s.dedup.MarkProcessed(ctx, key, s.dedupTTL)
		if err != nil {
			s.logger.Warn("feed dedup check failed, processing anyway",
				zap.String("supplier_id", supplierID.String()),
				zap.Error(err))
		} else if !fresh {
			s.logger.Info("skipping unchanged feed",
				zap.String("supplier_id", supplierID.String()))
			return &IngestReport{Skipped: true}, nil
		}
	}

	feed, err := ParseFeed(raw)
	if err != nil {
		return nil, err
	}
	return s.Ingest(ctx, supplierID, feed)
}

// Ingest applies a parsed feed: categories first, then goods with their
// parameters. A good referencing a category the supplier never declared
// aborts the remaining batch; rows processed before the bad one stay.
func (s *IngestService) Ingest(ctx context.Context, supplierID uuid.UUID, feed *Feed) (*IngestReport, error) {
	if err := feed.Validate(); err != nil {
		return nil, err
	}

	report := &IngestReport{}
	categoryByExternal := make(map[int64]uuid.UUID, len(feed.Categories))

	for _, entry := range feed.Categories {
		categoryID, err := s.upsertCategory(ctx, supplierID, entry)
		if err != nil {
			return nil, err
		}
		categoryByExternal[entry.ID] = categoryID
		report.Categories++
	}

	for _, good := range feed.Goods {
		categoryID, err := s.resolveCategory(ctx, supplierID, good.Category, categoryByExternal)
		if err != nil {
			return nil, err
		}
		if err := s.upsertGood(ctx, supplierID, categoryID, good, report); err != nil {
			return nil, err
		}
	}

	s.logger.Info("feed applied",
		zap.String("supplier_id", supplierID.String()),
		zap.Int("categories", report.Categories),
		zap.Int("products", report.Products),
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated))

	s.publish(ctx, []shared.DomainEvent{NewIngestCompletedEvent(supplierID, *report)})

	return report, nil
}

// upsertCategory resolves a feed category to a catalog category id,
// creating the category and the supplier mapping on first sight.
func (s *IngestService) upsertCategory(ctx context.Context, supplierID uuid.UUID, entry FeedCategory) (uuid.UUID, error) {
	mapping, err := s.mappingRepo.FindBySupplierAndExternalID(ctx, supplierID, entry.ID)
	if err == nil {
		return mapping.CategoryID, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return uuid.Nil, err
	}

	category, err := s.categoryRepo.FindByName(ctx, entry.Name)
	if errors.Is(err, shared.ErrNotFound) {
		category, err = catalog.NewCategory(entry.Name)
		if err != nil {
			return uuid.Nil, err
		}
		if err := s.categoryRepo.Save(ctx, category); err != nil {
			return uuid.Nil, err
		}
		s.publish(ctx, category.GetDomainEvents())
		category.ClearDomainEvents()
	} else if err != nil {
		return uuid.Nil, err
	}

	mapping, err = catalog.NewSupplierCategoryMapping(supplierID, entry.ID, category.ID)
	if err != nil {
		return uuid.Nil, err
	}
	if err := s.mappingRepo.Save(ctx, mapping); err != nil {
		return uuid.Nil, err
	}
	return category.ID, nil
}

// resolveCategory maps a good's category reference to a catalog id,
// falling back to mappings persisted by earlier feeds.
func (s *IngestService) resolveCategory(ctx context.Context, supplierID uuid.UUID, externalID int64, seen map[int64]uuid.UUID) (uuid.UUID, error) {
	if categoryID, ok := seen[externalID]; ok {
		return categoryID, nil
	}
	mapping, err := s.mappingRepo.FindBySupplierAndExternalID(ctx, supplierID, externalID)
	if errors.Is(err, shared.ErrNotFound) {
		return uuid.Nil, shared.NewDomainError("CATEGORY_RESOLUTION",
			fmt.Sprintf("Good references unknown category %d", externalID))
	}
	if err != nil {
		return uuid.Nil, err
	}
	seen[externalID] = mapping.CategoryID
	return mapping.CategoryID, nil
}

func (s *IngestService) upsertGood(ctx context.Context, supplierID, categoryID uuid.UUID, good FeedGood, report *IngestReport) error {
	price := decimal.NewFromFloat(good.Price)
	priceRRC := decimal.NewFromFloat(good.PriceRRC)

	product, err := s.productRepo.FindByExternalID(ctx, good.ID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		product, err = catalog.NewProduct(good.ID, supplierID, categoryID, good.Name, good.Model, price, priceRRC, good.Quantity)
		if err != nil {
			return err
		}
		if err := s.productRepo.Save(ctx, product); err != nil {
			return err
		}
		report.Created++
	case err != nil:
		return err
	default:
		if err := product.ApplyFeedEntry(categoryID, good.Name, good.Model, price, priceRRC, good.Quantity); err != nil {
			return err
		}
		if err := s.productRepo.Save(ctx, product); err != nil {
			return err
		}
		report.Updated++
	}
	report.Products++

	s.publish(ctx, product.GetDomainEvents())
	product.ClearDomainEvents()

	for name, value := range good.ParameterValues() {
		if err := s.upsertParameter(ctx, product.ID, name, value); err != nil {
			return err
		}
		report.Parameters++
	}
	return nil
}

// upsertParameter stores one name/value pair for a product, creating the
// shared parameter definition on first use of the name.
func (s *IngestService) upsertParameter(ctx context.Context, productID uuid.UUID, name, value string) error {
	parameter, err := s.parameterRepo.FindByName(ctx, name)
	if errors.Is(err, shared.ErrNotFound) {
		parameter, err = catalog.NewParameter(name)
		if err != nil {
			return err
		}
		if err := s.parameterRepo.Save(ctx, parameter); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	link, err := s.productParameterRepo.FindByProductAndParameter(ctx, productID, parameter.ID)
	if errors.Is(err, shared.ErrNotFound) {
		link, err = catalog.NewProductParameter(productID, parameter.ID, value)
		if err != nil {
			return err
		}
		return s.productParameterRepo.Save(ctx, link)
	}
	if err != nil {
		return err
	}
	if err := link.UpdateValue(value); err != nil {
		return err
	}
	return s.productParameterRepo.Save(ctx, link)
}

func (s *IngestService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range events {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
}
