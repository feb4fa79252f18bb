package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bundleworks/commerce-backend/internal/logger"
	"github.com/bundleworks/commerce-backend/internal/types"
)

type ProductVariationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, variations []*types.ProductVariation) ([]*types.ProductVariation, error)
	Update(ctx context.Context, tx *gorm.DB, variation *types.ProductVariation) (*types.ProductVariation, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, variationIDs []uuid.UUID) ([]*types.ProductVariation, error)
	GetBySKU(ctx context.Context, tx *gorm.DB, sku string) (*types.ProductVariation, error)
}

type productVariationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductVariationRepo(db *gorm.DB, baseLog *logger.Logger) ProductVariationRepo {
	return &productVariationRepo{db: db, log: baseLog.With("repo", "ProductVariationRepo")}
}

func (vr *productVariationRepo) Create(ctx context.Context, tx *gorm.DB, variations []*types.ProductVariation) ([]*types.ProductVariation, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	if len(variations) == 0 {
		return []*types.ProductVariation{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&variations).Error; err != nil {
		return nil, err
	}
	return variations, nil
}

func (vr *productVariationRepo) Update(ctx context.Context, tx *gorm.DB, variation *types.ProductVariation) (*types.ProductVariation, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	if err := transaction.WithContext(ctx).Save(variation).Error; err != nil {
		return nil, err
	}
	return variation, nil
}

func (vr *productVariationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, variationIDs []uuid.UUID) ([]*types.ProductVariation, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	var results []*types.ProductVariation
	if len(variationIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", variationIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (vr *productVariationRepo) GetBySKU(ctx context.Context, tx *gorm.DB, sku string) (*types.ProductVariation, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	var result types.ProductVariation
	err := transaction.WithContext(ctx).
		Where("sku = ?", sku).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
