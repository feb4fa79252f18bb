package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bundleworks/commerce-backend/internal/logger"
	"github.com/bundleworks/commerce-backend/internal/types"
)

type StoreRepo interface {
	Create(ctx context.Context, tx *gorm.DB, stores []*types.Store) ([]*types.Store, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, storeIDs []uuid.UUID) ([]*types.Store, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Store, error)
}

type storeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStoreRepo(db *gorm.DB, baseLog *logger.Logger) StoreRepo {
	return &storeRepo{db: db, log: baseLog.With("repo", "StoreRepo")}
}

func (sr *storeRepo) Create(ctx context.Context, tx *gorm.DB, stores []*types.Store) ([]*types.Store, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(stores) == 0 {
		return []*types.Store{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

func (sr *storeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, storeIDs []uuid.UUID) ([]*types.Store, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.Store
	if len(storeIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", storeIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *storeRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Store, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var result types.Store
	err := transaction.WithContext(ctx).
		Where("name = ?", name).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
