package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bundleworks/commerce-backend/internal/logger"
	"github.com/bundleworks/commerce-backend/internal/types"
)

type StockLocationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, locations []*types.StockLocation) ([]*types.StockLocation, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, locationIDs []uuid.UUID) ([]*types.StockLocation, error)
	List(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]*types.StockLocation, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.StockLocation, error)
}

type stockLocationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStockLocationRepo(db *gorm.DB, baseLog *logger.Logger) StockLocationRepo {
	return &stockLocationRepo{db: db, log: baseLog.With("repo", "StockLocationRepo")}
}

func (lr *stockLocationRepo) Create(ctx context.Context, tx *gorm.DB, locations []*types.StockLocation) ([]*types.StockLocation, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	if len(locations) == 0 {
		return []*types.StockLocation{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (lr *stockLocationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, locationIDs []uuid.UUID) ([]*types.StockLocation, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var results []*types.StockLocation
	if len(locationIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", locationIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *stockLocationRepo) List(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]*types.StockLocation, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	query := transaction.WithContext(ctx)
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var results []*types.StockLocation
	if err := query.Order("created_at ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *stockLocationRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.StockLocation, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var result types.StockLocation
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
