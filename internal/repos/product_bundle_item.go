package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bundleworks/commerce-backend/internal/logger"
	"github.com/bundleworks/commerce-backend/internal/types"
)

type ProductBundleItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, items []*types.ProductBundleItem) ([]*types.ProductBundleItem, error)
	Update(ctx context.Context, tx *gorm.DB, item *types.ProductBundleItem) (*types.ProductBundleItem, error)
	Delete(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error
	GetByIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]*types.ProductBundleItem, error)
	ListByBundle(ctx context.Context, tx *gorm.DB, bundleID uuid.UUID) ([]*types.ProductBundleItem, error)
}

type productBundleItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductBundleItemRepo(db *gorm.DB, baseLog *logger.Logger) ProductBundleItemRepo {
	return &productBundleItemRepo{db: db, log: baseLog.With("repo", "ProductBundleItemRepo")}
}

func (ir *productBundleItemRepo) Create(ctx context.Context, tx *gorm.DB, items []*types.ProductBundleItem) ([]*types.ProductBundleItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	if len(items) == 0 {
		return []*types.ProductBundleItem{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (ir *productBundleItemRepo) Update(ctx context.Context, tx *gorm.DB, item *types.ProductBundleItem) (*types.ProductBundleItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	if err := transaction.WithContext(ctx).
		Omit("Variations", "CurrentVariation").
		Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (ir *productBundleItemRepo) Delete(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", itemID).
		Delete(&types.ProductBundleItem{}).Error
}

func (ir *productBundleItemRepo) GetByIDs(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID) ([]*types.ProductBundleItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var results []*types.ProductBundleItem
	if len(itemIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("CurrentVariation").
		Preload("Variations").
		Where("id IN ?", itemIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *productBundleItemRepo) ListByBundle(ctx context.Context, tx *gorm.DB, bundleID uuid.UUID) ([]*types.ProductBundleItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var results []*types.ProductBundleItem
	if err := transaction.WithContext(ctx).
		Preload("CurrentVariation").
		Preload("Variations").
		Where("bundle_id = ?", bundleID).
		Order("position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
