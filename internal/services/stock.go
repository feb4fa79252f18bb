package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/bundleworks/commerce-backend/internal/apierr"
	"github.com/bundleworks/commerce-backend/internal/logger"
	"github.com/bundleworks/commerce-backend/internal/repos"
	"github.com/bundleworks/commerce-backend/internal/types"
)

// StockChecker answers read-only stock queries for one kind of purchasable
// entity. Level and in-stock checks are scoped to a location set; an empty
// set means all locations.
type StockChecker interface {
	CheckStockLevel(ctx context.Context, entityID uuid.UUID, locationIDs []uuid.UUID) (decimal.Decimal, error)
	CheckIsInStock(ctx context.Context, entityID uuid.UUID, locationIDs []uuid.UUID) (bool, error)
	CheckIsAlwaysInStock(ctx context.Context, entityID uuid.UUID) (bool, error)
	ListLocations(ctx context.Context, activeOnly bool) (map[uuid.UUID]*types.StockLocation, error)
}

// StockUpdater appends a movement to the entity's stock ledger.
type StockUpdater interface {
	CreateTransaction(ctx context.Context, entityID uuid.UUID, locationID uuid.UUID, zone string, quantity decimal.Decimal, unitCost *decimal.Decimal, transactionTypeID int, metadata map[string]interface{}) error
}

type StockService interface {
	StockChecker
	StockUpdater
}

// LedgerStockService is the variation-level stock backend: the stock level of
// a variation at a location set is the sum of its transaction quantities
// there.
type LedgerStockService struct {
	db            *gorm.DB
	log           *logger.Logger
	variationRepo repos.ProductVariationRepo
	locationRepo  repos.StockLocationRepo
	txnRepo       repos.StockTransactionRepo
}

func NewLedgerStockService(db *gorm.DB, baseLog *logger.Logger, variationRepo repos.ProductVariationRepo, locationRepo repos.StockLocationRepo, txnRepo repos.StockTransactionRepo) *LedgerStockService {
	return &LedgerStockService{
		db:            db,
		log:           baseLog.With("service", "LedgerStockService"),
		variationRepo: variationRepo,
		locationRepo:  locationRepo,
		txnRepo:       txnRepo,
	}
}

func (s *LedgerStockService) CheckStockLevel(ctx context.Context, entityID uuid.UUID, locationIDs []uuid.UUID) (decimal.Decimal, error) {
	return s.txnRepo.SumQuantity(ctx, nil, entityID, locationIDs)
}

func (s *LedgerStockService) CheckIsInStock(ctx context.Context, entityID uuid.UUID, locationIDs []uuid.UUID) (bool, error) {
	always, err := s.CheckIsAlwaysInStock(ctx, entityID)
	if err != nil {
		return false, err
	}
	if always {
		return true, nil
	}
	level, err := s.CheckStockLevel(ctx, entityID, locationIDs)
	if err != nil {
		return false, err
	}
	return level.IsPositive(), nil
}

func (s *LedgerStockService) CheckIsAlwaysInStock(ctx context.Context, entityID uuid.UUID) (bool, error) {
	variations, err := s.variationRepo.GetByIDs(ctx, nil, []uuid.UUID{entityID})
	if err != nil {
		return false, fmt.Errorf("error fetching variation %s: %w", entityID, err)
	}
	if len(variations) == 0 {
		return false, apierr.NotFound(fmt.Errorf("variation %s not found", entityID))
	}
	return variations[0].AlwaysInStock, nil
}

func (s *LedgerStockService) ListLocations(ctx context.Context, activeOnly bool) (map[uuid.UUID]*types.StockLocation, error) {
	locations, err := s.locationRepo.List(ctx, nil, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]*types.StockLocation, len(locations))
	for _, loc := range locations {
		out[loc.ID] = loc
	}
	return out, nil
}

func (s *LedgerStockService) CreateTransaction(ctx context.Context, entityID uuid.UUID, locationID uuid.UUID, zone string, quantity decimal.Decimal, unitCost *decimal.Decimal, transactionTypeID int, metadata map[string]interface{}) error {
	var data datatypes.JSON
	if len(metadata) > 0 {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("error encoding transaction metadata: %w", err)
		}
		data = datatypes.JSON(raw)
	}
	txn := &types.StockTransaction{
		VariationID:       entityID,
		LocationID:        locationID,
		Zone:              zone,
		Quantity:          quantity,
		UnitCost:          unitCost,
		TransactionTypeID: transactionTypeID,
		Data:              data,
	}
	if _, err := s.txnRepo.Create(ctx, nil, []*types.StockTransaction{txn}); err != nil {
		return fmt.Errorf("error creating stock transaction for variation %s: %w", entityID, err)
	}
	s.log.Debug("Stock transaction recorded",
		"variation_id", entityID,
		"location_id", locationID,
		"quantity", quantity.String(),
		"transaction_type_id", transactionTypeID,
	)
	return nil
}
