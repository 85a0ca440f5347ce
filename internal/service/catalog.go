package service

import (
	"context"
	"fmt"
	"time"

	"github.com/msomdec/mercado-social/internal/domain"
	"github.com/msomdec/mercado-social/internal/validation"
)

// Catalog is a store with everything it sells.
type Catalog struct {
	Store      *domain.Store
	Products   []domain.Product
	Promotions []domain.Promotion
}

// CreateProductInput describes a new product of StoreID.
type CreateProductInput struct {
	StoreID  int64   `json:"storeId" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Brand    string  `json:"brand"`
	Unit     string  `json:"unit"`
	Price    float64 `json:"price" validate:"required,gt=0"`
}

// UpdateProductInput carries a product edit. Nil fields are left untouched.
type UpdateProductInput struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Brand    *string  `json:"brand"`
	Unit     *string  `json:"unit"`
	Price    *float64 `json:"price" validate:"omitnil,gt=0"`
}

// CreatePromotionInput describes a new promotion of StoreID. Product ids are
// stored as given.
type CreatePromotionInput struct {
	StoreID    int64     `json:"storeId" validate:"required"`
	ProductIDs []int64   `json:"products" validate:"required"`
	Title      string    `json:"title" validate:"required"`
	StartsAt   time.Time `json:"startsAt" validate:"required"`
	EndsAt     time.Time `json:"endsAt" validate:"required"`
}

// CatalogService manages stores, their products and their promotions.
type CatalogService struct {
	stores     domain.StoreRepository
	products   domain.ProductRepository
	promotions domain.PromotionRepository
	media      *MediaService
	validate   *validation.Validator
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	stores domain.StoreRepository,
	products domain.ProductRepository,
	promotions domain.PromotionRepository,
	media *MediaService,
	validate *validation.Validator,
) *CatalogService {
	return &CatalogService{
		stores:     stores,
		products:   products,
		promotions: promotions,
		media:      media,
		validate:   validate,
	}
}

// Get returns the store with all of its products and promotions.
func (s *CatalogService) Get(ctx context.Context, storeID int64) (*Catalog, error) {
	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("store %d: %w", storeID, err)
	}
	products, err := s.products.ListByStore(ctx, storeID, 0)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	promotions, err := s.promotions.ListByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}
	return &Catalog{Store: store, Products: products, Promotions: promotions}, nil
}

func (s *CatalogService) UpdateStore(ctx context.Context, storeID int64, update domain.StoreUpdate) (*domain.Store, error) {
	store, err := s.stores.Update(ctx, storeID, update)
	if err != nil {
		return nil, fmt.Errorf("store %d: %w", storeID, err)
	}
	return store, nil
}

// CreateProduct adds a product to a store with an optional image.
func (s *CatalogService) CreateProduct(ctx context.Context, in CreateProductInput, image *Upload) (*domain.Product, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}
	if _, err := s.stores.GetByID(ctx, in.StoreID); err != nil {
		return nil, fmt.Errorf("store %d: %w", in.StoreID, err)
	}

	product := &domain.Product{
		StoreID:  in.StoreID,
		Name:     in.Name,
		Category: in.Category,
		Brand:    in.Brand,
		Unit:     in.Unit,
		Price:    in.Price,
	}
	if image != nil {
		path, err := s.media.Save(ctx, domain.MediaProduct, image)
		if err != nil {
			return nil, err
		}
		product.Image = path
	}

	if err := s.products.Create(ctx, product); err != nil {
		if product.Image != "" {
			s.media.Discard(ctx, product.Image)
		}
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// UpdateProduct applies a product edit, replacing the image when one is uploaded.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, in UpdateProductInput, image *Upload) (*domain.Product, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}
	if _, err := s.products.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("product %d: %w", id, err)
	}

	update := domain.ProductUpdate{
		Name:     in.Name,
		Category: in.Category,
		Brand:    in.Brand,
		Unit:     in.Unit,
		Price:    in.Price,
	}
	if image != nil {
		path, err := s.media.Save(ctx, domain.MediaProduct, image)
		if err != nil {
			return nil, err
		}
		update.Image = &path
	}

	product, err := s.products.Update(ctx, id, update)
	if err != nil {
		if update.Image != nil {
			s.media.Discard(ctx, *update.Image)
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("product %d: %w", id, err)
	}
	return nil
}

// CreatePromotion adds a promotion to a store.
func (s *CatalogService) CreatePromotion(ctx context.Context, in CreatePromotionInput) (*domain.Promotion, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}
	if _, err := s.stores.GetByID(ctx, in.StoreID); err != nil {
		return nil, fmt.Errorf("store %d: %w", in.StoreID, err)
	}

	promotion := &domain.Promotion{
		StoreID:    in.StoreID,
		ProductIDs: in.ProductIDs,
		Title:      in.Title,
		StartsAt:   in.StartsAt,
		EndsAt:     in.EndsAt,
	}
	if err := s.promotions.Create(ctx, promotion); err != nil {
		return nil, fmt.Errorf("create promotion: %w", err)
	}
	return promotion, nil
}

func (s *CatalogService) UpdatePromotion(ctx context.Context, id int64, update domain.PromotionUpdate) (*domain.Promotion, error) {
	promotion, err := s.promotions.Update(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("promotion %d: %w", id, err)
	}
	return promotion, nil
}

func (s *CatalogService) DeletePromotion(ctx context.Context, id int64) error {
	if err := s.promotions.Delete(ctx, id); err != nil {
		return fmt.Errorf("promotion %d: %w", id, err)
	}
	return nil
}
