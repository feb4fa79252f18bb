package repos

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bundleworks/commerce-backend/internal/logger"
	"github.com/bundleworks/commerce-backend/internal/types"
)

type StockTransactionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, txns []*types.StockTransaction) ([]*types.StockTransaction, error)
	// SumQuantity totals the ledger for one variation across the given
	// locations. An empty location list sums across all locations.
	SumQuantity(ctx context.Context, tx *gorm.DB, variationID uuid.UUID, locationIDs []uuid.UUID) (decimal.Decimal, error)
	ListByVariation(ctx context.Context, tx *gorm.DB, variationID uuid.UUID) ([]*types.StockTransaction, error)
}

type stockTransactionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStockTransactionRepo(db *gorm.DB, baseLog *logger.Logger) StockTransactionRepo {
	return &stockTransactionRepo{db: db, log: baseLog.With("repo", "StockTransactionRepo")}
}

func (tr *stockTransactionRepo) Create(ctx context.Context, tx *gorm.DB, txns []*types.StockTransaction) ([]*types.StockTransaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(txns) == 0 {
		return []*types.StockTransaction{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

func (tr *stockTransactionRepo) SumQuantity(ctx context.Context, tx *gorm.DB, variationID uuid.UUID, locationIDs []uuid.UUID) (decimal.Decimal, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	query := transaction.WithContext(ctx).
		Model(&types.StockTransaction{}).
		Where("variation_id = ?", variationID)
	if len(locationIDs) > 0 {
		query = query.Where("location_id IN ?", locationIDs)
	}
	var total decimal.NullDecimal
	if err := query.
		Select("SUM(quantity)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (tr *stockTransactionRepo) ListByVariation(ctx context.Context, tx *gorm.DB, variationID uuid.UUID) ([]*types.StockTransaction, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.StockTransaction
	if err := transaction.WithContext(ctx).
		Where("variation_id = ?", variationID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
