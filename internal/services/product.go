package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bundleworks/commerce-backend/internal/apierr"
	"github.com/bundleworks/commerce-backend/internal/logger"
	"github.com/bundleworks/commerce-backend/internal/repos"
	"github.com/bundleworks/commerce-backend/internal/types"
)

type ProductService interface {
	Create(ctx context.Context, product *types.Product) (*types.Product, error)
	Get(ctx context.Context, productID uuid.UUID) (*types.Product, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*types.Product, error)
	AddVariation(ctx context.Context, productID uuid.UUID, variation *types.ProductVariation) (*types.ProductVariation, error)
}

type productService struct {
	db            *gorm.DB
	log           *logger.Logger
	productRepo   repos.ProductRepo
	variationRepo repos.ProductVariationRepo
}

func NewProductService(db *gorm.DB, baseLog *logger.Logger, productRepo repos.ProductRepo, variationRepo repos.ProductVariationRepo) ProductService {
	return &productService{
		db:            db,
		log:           baseLog.With("service", "ProductService"),
		productRepo:   productRepo,
		variationRepo: variationRepo,
	}
}

func (ps *productService) Create(ctx context.Context, product *types.Product) (*types.Product, error) {
	if product == nil {
		return nil, fmt.Errorf("no product given")
	}
	if product.Title == "" {
		return nil, fmt.Errorf("a title is required to create a product")
	}
	created, err := ps.productRepo.Create(ctx, nil, []*types.Product{product})
	if err != nil {
		return nil, fmt.Errorf("error creating product: %w", err)
	}
	ps.log.Info("Product created", "product_id", created[0].ID, "title", created[0].Title)
	return created[0], nil
}

func (ps *productService) Get(ctx context.Context, productID uuid.UUID) (*types.Product, error) {
	products, err := ps.productRepo.GetByIDs(ctx, nil, []uuid.UUID{productID})
	if err != nil {
		return nil, fmt.Errorf("error fetching product %s: %w", productID, err)
	}
	if len(products) == 0 {
		return nil, nil
	}
	return products[0], nil
}

func (ps *productService) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*types.Product, error) {
	return ps.productRepo.ListByStore(ctx, nil, storeID)
}

func (ps *productService) AddVariation(ctx context.Context, productID uuid.UUID, variation *types.ProductVariation) (*types.ProductVariation, error) {
	if variation == nil {
		return nil, fmt.Errorf("no variation given")
	}
	if variation.SKU == "" {
		return nil, fmt.Errorf("a sku is required to create a variation")
	}
	existing, err := ps.variationRepo.GetBySKU(ctx, nil, variation.SKU)
	if err != nil {
		return nil, fmt.Errorf("error checking sku %s: %w", variation.SKU, err)
	}
	if existing != nil {
		return nil, apierr.Conflict("sku_in_use", fmt.Errorf("sku %s is already in use", variation.SKU))
	}
	variation.ProductID = productID
	created, err := ps.variationRepo.Create(ctx, nil, []*types.ProductVariation{variation})
	if err != nil {
		return nil, fmt.Errorf("error creating variation: %w", err)
	}
	return created[0], nil
}
