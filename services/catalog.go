package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chandrashekar-chandu/nature-market/cache"
	"github.com/chandrashekar-chandu/nature-market/models"
	"github.com/chandrashekar-chandu/nature-market/store"
)

const productCacheTTL = 5 * time.Minute

// CatalogService serves the product catalogue. Single-product reads go
// through an optional cache; administrative writes invalidate the cached
// entry. A nil cache disables caching entirely.
type CatalogService struct {
	products store.ProductStore
	cache    cache.Cache
}

func NewCatalogService(products store.ProductStore, c cache.Cache) *CatalogService {
	return &CatalogService{products: products, cache: c}
}

func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.FindAll(ctx)
}

func (s *CatalogService) ListByCategory(ctx context.Context, category models.Category) ([]models.Product, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidState, category)
	}
	return s.products.FindByCategory(ctx, category)
}

func (s *CatalogService) Search(ctx context.Context, query string) ([]models.Product, error) {
	return s.products.SearchByName(ctx, query)
}

func (s *CatalogService) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	if s.cache != nil {
		key := s.cache.GenerateKey("product", id.Hex())
		if raw, err := s.cache.Get(ctx, key); err == nil {
			var product models.Product
			if err := json.Unmarshal([]byte(raw), &product); err == nil {
				return &product, nil
			}
		} else if !errors.Is(err, cache.ErrMiss) {
			slog.Warn("product cache read failed", "id", id.Hex(), "error", err)
		}
	}

	product, err := s.products.FindByID(ctx, id)
	if errors.Is(err, store.ErrNoDocument) {
		return nil, fmt.Errorf("%w: product", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(product); err == nil {
			key := s.cache.GenerateKey("product", id.Hex())
			if err := s.cache.Set(ctx, key, string(raw), productCacheTTL); err != nil {
				slog.Warn("product cache write failed", "id", id.Hex(), "error", err)
			}
		}
	}
	return product, nil
}

func (s *CatalogService) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if !product.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidState, product.Category)
	}
	if product.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidState)
	}
	if product.Stock == 0 {
		product.Stock = models.DefaultStock
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if !product.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidState, product.Category)
	}
	if product.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidState)
	}
	err := s.products.Update(ctx, product)
	if errors.Is(err, store.ErrNoDocument) {
		return nil, fmt.Errorf("%w: product", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, product.ID)
	return product, nil
}

func (s *CatalogService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.products.Delete(ctx, id)
	if errors.Is(err, store.ErrNoDocument) {
		return fmt.Errorf("%w: product", ErrNotFound)
	}
	if err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, id primitive.ObjectID) {
	if s.cache == nil {
		return
	}
	key := s.cache.GenerateKey("product", id.Hex())
	if err := s.cache.Del(ctx, key); err != nil {
		slog.Warn("product cache invalidation failed", "id", id.Hex(), "error", err)
	}
}
