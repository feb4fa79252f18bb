package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bundleworks/commerce-backend/internal/logger"
	"github.com/bundleworks/commerce-backend/internal/types"
)

type ProductBundleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, bundles []*types.ProductBundle) ([]*types.ProductBundle, error)
	Update(ctx context.Context, tx *gorm.DB, bundle *types.ProductBundle) (*types.ProductBundle, error)
	Delete(ctx context.Context, tx *gorm.DB, bundleID uuid.UUID) error
	GetByIDs(ctx context.Context, tx *gorm.DB, bundleIDs []uuid.UUID) ([]*types.ProductBundle, error)
	ListByStore(ctx context.Context, tx *gorm.DB, storeID uuid.UUID) ([]*types.ProductBundle, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.ProductBundle, error)
}

type productBundleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductBundleRepo(db *gorm.DB, baseLog *logger.Logger) ProductBundleRepo {
	return &productBundleRepo{db: db, log: baseLog.With("repo", "ProductBundleRepo")}
}

func (br *productBundleRepo) Create(ctx context.Context, tx *gorm.DB, bundles []*types.ProductBundle) ([]*types.ProductBundle, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	if len(bundles) == 0 {
		return []*types.ProductBundle{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&bundles).Error; err != nil {
		return nil, err
	}
	return bundles, nil
}

func (br *productBundleRepo) Update(ctx context.Context, tx *gorm.DB, bundle *types.ProductBundle) (*types.ProductBundle, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	if err := transaction.WithContext(ctx).
		Omit("Items").
		Save(bundle).Error; err != nil {
		return nil, err
	}
	return bundle, nil
}

func (br *productBundleRepo) Delete(ctx context.Context, tx *gorm.DB, bundleID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	// Items are dropped alongside: soft-delete them in the same pass so the
	// cascade holds for soft-deleted rows too, not only for hard deletes.
	return transaction.WithContext(ctx).Transaction(func(innerTx *gorm.DB) error {
		if err := innerTx.Where("bundle_id = ?", bundleID).Delete(&types.ProductBundleItem{}).Error; err != nil {
			return err
		}
		return innerTx.Where("id = ?", bundleID).Delete(&types.ProductBundle{}).Error
	})
}

func (br *productBundleRepo) GetByIDs(ctx context.Context, tx *gorm.DB, bundleIDs []uuid.UUID) ([]*types.ProductBundle, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var results []*types.ProductBundle
	if len(bundleIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_bundle_item.position ASC")
		}).
		Preload("Items.CurrentVariation").
		Preload("Items.Variations").
		Where("id IN ?", bundleIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *productBundleRepo) ListByStore(ctx context.Context, tx *gorm.DB, storeID uuid.UUID) ([]*types.ProductBundle, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var results []*types.ProductBundle
	if err := transaction.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_bundle_item.position ASC")
		}).
		Preload("Items.CurrentVariation").
		Where("store_id = ?", storeID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *productBundleRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.ProductBundle, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var results []*types.ProductBundle
	if err := transaction.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_bundle_item.position ASC")
		}).
		Preload("Items.CurrentVariation").
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
